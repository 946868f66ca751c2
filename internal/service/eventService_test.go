package service

import (
	"context"
	"testing"
	"time"

	repository "github.com/Shrvnsthr/Event-Booking/internal/database/postgres"
	"github.com/Shrvnsthr/Event-Booking/internal/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	events map[string]*entity.Event
}

func newFakeEventRepo(events ...*entity.Event) *fakeEventRepo {
	repo := &fakeEventRepo{events: make(map[string]*entity.Event)}
	for _, e := range events {
		repo.events[e.ID] = e
	}
	return repo
}

func (f *fakeEventRepo) Create(ctx context.Context, event *entity.Event) error {
	event.ID = uuid.New().String()
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventRepo) GetAll(ctx context.Context) ([]*entity.Event, error) {
	var result []*entity.Event
	for _, e := range f.events {
		result = append(result, e)
	}
	return result, nil
}

// Update mirrors the SQL partial update: only non-nil fields are
// written, everything else keeps its stored value.
func (f *fakeEventRepo) Update(ctx context.Context, id string, upd *repository.EventUpdate) (*entity.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, entity.ErrEventNotFound
	}

	if upd.Title != nil {
		event.Title = *upd.Title
	}
	if upd.Description != nil {
		event.Description = *upd.Description
	}
	if upd.Date != nil {
		event.Date = *upd.Date
	}
	if upd.Location != nil {
		event.Location = *upd.Location
	}
	if upd.TicketsAvailable != nil {
		event.TicketsAvailable = *upd.TicketsAvailable
	}
	if upd.Price != nil {
		event.Price = *upd.Price
	}
	if upd.ImageURL != nil {
		event.ImageURL = *upd.ImageURL
	}
	event.UpdatedAt = time.Now()

	copied := *event
	return &copied, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return entity.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func validCreateRequest() *CreateEventRequest {
	return &CreateEventRequest{
		Title:            "Go Conference",
		Description:      "Annual community conference",
		Date:             time.Now().Add(30 * 24 * time.Hour),
		Location:         "Berlin",
		TicketsAvailable: 200,
		Price:            49.99,
		ImageURL:         "https://example.com/gophercon.png",
	}
}

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("valid event is persisted with an id", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, nil)

		event, err := svc.CreateEvent(ctx, validCreateRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, "Go Conference", event.Title)
		assert.Equal(t, 200, event.TicketsAvailable)
		assert.Len(t, repo.events, 1)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name    string
			mutate  func(req *CreateEventRequest)
			wantErr error
		}{
			{
				name:    "blank title",
				mutate:  func(req *CreateEventRequest) { req.Title = "   " },
				wantErr: entity.ErrInvalidInput,
			},
			{
				name:    "date in the past",
				mutate:  func(req *CreateEventRequest) { req.Date = time.Now().Add(-time.Hour) },
				wantErr: entity.ErrEventDatePast,
			},
			{
				name:    "negative tickets",
				mutate:  func(req *CreateEventRequest) { req.TicketsAvailable = -1 },
				wantErr: entity.ErrInvalidInput,
			},
			{
				name:    "negative price",
				mutate:  func(req *CreateEventRequest) { req.Price = -0.01 },
				wantErr: entity.ErrInvalidInput,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := newFakeEventRepo()
				svc := NewEventService(repo, nil)

				req := validCreateRequest()
				tt.mutate(req)

				_, err := svc.CreateEvent(ctx, req)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.events)
			})
		}
	})
}

func TestGetEvent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo(testEvent("ev1", 10, 25))
	svc := NewEventService(repo, nil)

	event, err := svc.GetEvent(ctx, "ev1")
	require.NoError(t, err)
	assert.Equal(t, "ev1", event.ID)

	_, err = svc.GetEvent(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrEventNotFound)

	_, err = svc.GetEvent(ctx, "")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestUpdateEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("only provided fields change", func(t *testing.T) {
		original := testEvent("ev1", 10, 25)
		original.Title = "Old Title"
		original.Location = "Hall A"
		repo := newFakeEventRepo(original)
		svc := NewEventService(repo, nil)

		newTitle := "New Title"
		newPrice := 30.0
		updated, err := svc.UpdateEvent(ctx, "ev1", &UpdateEventRequest{
			Title: &newTitle,
			Price: &newPrice,
		})

		require.NoError(t, err)
		assert.Equal(t, "New Title", updated.Title)
		assert.Equal(t, 30.0, updated.Price)
		assert.Equal(t, "Hall A", updated.Location, "untouched field keeps its value")
		assert.Equal(t, 10, updated.TicketsAvailable)
	})

	t.Run("rejects empty title and negative values", func(t *testing.T) {
		repo := newFakeEventRepo(testEvent("ev1", 10, 25))
		svc := NewEventService(repo, nil)

		blank := "  "
		_, err := svc.UpdateEvent(ctx, "ev1", &UpdateEventRequest{Title: &blank})
		assert.ErrorIs(t, err, entity.ErrInvalidInput)

		negative := -5
		_, err = svc.UpdateEvent(ctx, "ev1", &UpdateEventRequest{TicketsAvailable: &negative})
		assert.ErrorIs(t, err, entity.ErrInvalidInput)

		badPrice := -1.0
		_, err = svc.UpdateEvent(ctx, "ev1", &UpdateEventRequest{Price: &badPrice})
		assert.ErrorIs(t, err, entity.ErrInvalidInput)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := NewEventService(newFakeEventRepo(), nil)

		_, err := svc.UpdateEvent(ctx, "missing", &UpdateEventRequest{})
		assert.ErrorIs(t, err, entity.ErrEventNotFound)
	})

	t.Run("edit without ticketsAvailable cannot restore sold inventory", func(t *testing.T) {
		event := testEvent("ev1", 5, 25)
		repo := newFakeEventRepo(event)
		svc := NewEventService(repo, nil)

		// A booking commits its decrement while the admin edit is in
		// flight.
		repo.events["ev1"].TicketsAvailable = 4

		newTitle := "Renamed"
		updated, err := svc.UpdateEvent(ctx, "ev1", &UpdateEventRequest{Title: &newTitle})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.Equal(t, 4, updated.TicketsAvailable, "sold ticket must stay sold")
		assert.Equal(t, 4, repo.events["ev1"].TicketsAvailable)
	})
}

func TestDeleteEvent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeEventRepo(testEvent("ev1", 10, 25))
	svc := NewEventService(repo, nil)

	require.NoError(t, svc.DeleteEvent(ctx, "ev1"))
	assert.Empty(t, repo.events)

	err := svc.DeleteEvent(ctx, "ev1")
	assert.ErrorIs(t, err, entity.ErrEventNotFound)
}
