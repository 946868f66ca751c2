package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Shrvnsthr/Event-Booking/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingRepo mimics the repository's transactional semantics in
// memory: the availability check, decrement, seat sequence bump and
// booking insert happen under one lock, exactly as the SQL transaction
// makes them atomic in production.
type fakeBookingRepo struct {
	mu       sync.Mutex
	events   map[string]*entity.Event
	bookings []*entity.Booking
}

func newFakeBookingRepo(events ...*entity.Event) *fakeBookingRepo {
	repo := &fakeBookingRepo{events: make(map[string]*entity.Event)}
	for _, e := range events {
		repo.events[e.ID] = e
	}
	return repo
}

func (f *fakeBookingRepo) Book(ctx context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	event, ok := f.events[booking.EventID]
	if !ok {
		return entity.ErrEventNotFound
	}
	if event.TicketsAvailable < booking.Tickets {
		return entity.ErrNotEnoughTickets
	}

	event.TicketsAvailable -= booking.Tickets
	event.SeatSeq++

	booking.ID = fmt.Sprintf("booking-%d", len(f.bookings)+1)
	booking.SeatNumber = fmt.Sprintf("S%d", event.SeatSeq)
	booking.TotalAmount = float64(booking.Tickets) * event.Price

	stored := *booking
	f.bookings = append(f.bookings, &stored)
	return nil
}

func (f *fakeBookingRepo) GetByUserID(ctx context.Context, userID string) ([]*entity.BookingWithEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*entity.BookingWithEvent
	for _, b := range f.bookings {
		if b.UserID != userID {
			continue
		}
		event := f.events[b.EventID]
		result = append(result, &entity.BookingWithEvent{
			EventID:       b.EventID,
			Title:         event.Title,
			Date:          event.Date,
			Price:         event.Price,
			BookedTickets: b.Tickets,
			SeatNumber:    b.SeatNumber,
			TotalAmount:   b.TotalAmount,
			BookingDate:   b.CreatedAt,
		})
	}
	return result, nil
}

func (f *fakeBookingRepo) SumTicketsByUserAndEvent(ctx context.Context, userID, eventID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := 0
	for _, b := range f.bookings {
		if b.UserID == userID && b.EventID == eventID {
			total += b.Tickets
		}
	}
	return total, nil
}

func testEvent(id string, tickets int, price float64) *entity.Event {
	return &entity.Event{
		ID:               id,
		Title:            "Test Concert",
		TicketsAvailable: tickets,
		Price:            price,
	}
}

func TestBookTickets(t *testing.T) {
	ctx := context.Background()

	t.Run("successful booking decrements inventory", func(t *testing.T) {
		repo := newFakeBookingRepo(testEvent("ev1", 5, 100))
		svc := NewBookingService(repo, nil, nil, 50)

		result, err := svc.BookTickets(ctx, &BookTicketsRequest{
			UserID:  "user1",
			EventID: "ev1",
			Tickets: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, 3, result.BookedTickets)
		assert.Equal(t, "S1", result.SeatNumber)
		assert.Equal(t, 300.0, result.TotalAmount)
		assert.Equal(t, 2, repo.events["ev1"].TicketsAvailable)
	})

	t.Run("overbooking is rejected and inventory unchanged", func(t *testing.T) {
		repo := newFakeBookingRepo(testEvent("ev1", 5, 100))
		svc := NewBookingService(repo, nil, nil, 50)

		_, err := svc.BookTickets(ctx, &BookTicketsRequest{UserID: "user1", EventID: "ev1", Tickets: 3})
		require.NoError(t, err)

		_, err = svc.BookTickets(ctx, &BookTicketsRequest{UserID: "user2", EventID: "ev1", Tickets: 3})
		require.ErrorIs(t, err, entity.ErrNotEnoughTickets)
		assert.Equal(t, 2, repo.events["ev1"].TicketsAvailable)
	})

	t.Run("unknown event", func(t *testing.T) {
		repo := newFakeBookingRepo()
		svc := NewBookingService(repo, nil, nil, 50)

		_, err := svc.BookTickets(ctx, &BookTicketsRequest{UserID: "user1", EventID: "missing", Tickets: 1})
		require.ErrorIs(t, err, entity.ErrEventNotFound)
	})

	t.Run("invalid ticket counts", func(t *testing.T) {
		repo := newFakeBookingRepo(testEvent("ev1", 5, 100))
		svc := NewBookingService(repo, nil, nil, 50)

		for _, tickets := range []int{0, -1, -100} {
			_, err := svc.BookTickets(ctx, &BookTicketsRequest{UserID: "user1", EventID: "ev1", Tickets: tickets})
			assert.ErrorIs(t, err, entity.ErrInvalidInput, "tickets=%d", tickets)
		}
		assert.Equal(t, 5, repo.events["ev1"].TicketsAvailable)
	})

	t.Run("any amount within availability succeeds by default", func(t *testing.T) {
		repo := newFakeBookingRepo(testEvent("ev1", 100, 10))
		svc := NewBookingService(repo, nil, nil, 0)

		result, err := svc.BookTickets(ctx, &BookTicketsRequest{UserID: "user1", EventID: "ev1", Tickets: 60})

		require.NoError(t, err)
		assert.Equal(t, 60, result.BookedTickets)
		assert.Equal(t, 40, repo.events["ev1"].TicketsAvailable)
	})

	t.Run("opt-in per-request cap rejects counts above it", func(t *testing.T) {
		repo := newFakeBookingRepo(testEvent("ev1", 1000, 100))
		svc := NewBookingService(repo, nil, nil, 50)

		_, err := svc.BookTickets(ctx, &BookTicketsRequest{UserID: "user1", EventID: "ev1", Tickets: 51})
		require.ErrorIs(t, err, entity.ErrInvalidInput)

		_, err = svc.BookTickets(ctx, &BookTicketsRequest{UserID: "user1", EventID: "ev1", Tickets: 50})
		require.NoError(t, err)
	})

	t.Run("sequential bookings get strictly increasing seat labels", func(t *testing.T) {
		repo := newFakeBookingRepo(testEvent("ev1", 10, 50))
		svc := NewBookingService(repo, nil, nil, 50)

		for i, want := range []string{"S1", "S2", "S3"} {
			result, err := svc.BookTickets(ctx, &BookTicketsRequest{
				UserID:  fmt.Sprintf("user%d", i),
				EventID: "ev1",
				Tickets: 1,
			})
			require.NoError(t, err)
			assert.Equal(t, want, result.SeatNumber)
		}
	})

	t.Run("total amount is frozen at booking time", func(t *testing.T) {
		repo := newFakeBookingRepo(testEvent("ev1", 10, 100))
		svc := NewBookingService(repo, nil, nil, 50)

		first, err := svc.BookTickets(ctx, &BookTicketsRequest{UserID: "user1", EventID: "ev1", Tickets: 2})
		require.NoError(t, err)
		assert.Equal(t, 200.0, first.TotalAmount)

		// Administrative price edit after the first booking.
		repo.events["ev1"].Price = 500

		second, err := svc.BookTickets(ctx, &BookTicketsRequest{UserID: "user1", EventID: "ev1", Tickets: 2})
		require.NoError(t, err)
		assert.Equal(t, 1000.0, second.TotalAmount)

		// The listing still shows the amount persisted for each booking.
		bookings, err := svc.GetUserBookings(ctx, "user1")
		require.NoError(t, err)
		require.Len(t, bookings, 2)
		assert.Equal(t, 200.0, bookings[0].TotalAmount)
		assert.Equal(t, 1000.0, bookings[1].TotalAmount)
	})
}

// TestBookTicketsConcurrent races many bookings for a single remaining
// ticket. The atomic reservation must let exactly one through.
func TestBookTicketsConcurrent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo(testEvent("ev1", 1, 100))
	svc := NewBookingService(repo, nil, nil, 50)

	const attempts = 16

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.BookTickets(ctx, &BookTicketsRequest{
				UserID:  fmt.Sprintf("user%d", i),
				EventID: "ev1",
				Tickets: 1,
			})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, entity.ErrNotEnoughTickets)
		}
	}

	assert.Equal(t, 1, successes, "exactly one concurrent booking must win the last ticket")
	assert.Equal(t, 0, repo.events["ev1"].TicketsAvailable)
	assert.Len(t, repo.bookings, 1)
}

func TestGetUserBookings(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo(testEvent("ev1", 10, 100), testEvent("ev2", 10, 75))
	svc := NewBookingService(repo, nil, nil, 50)

	_, err := svc.BookTickets(ctx, &BookTicketsRequest{UserID: "user1", EventID: "ev1", Tickets: 2})
	require.NoError(t, err)
	_, err = svc.BookTickets(ctx, &BookTicketsRequest{UserID: "user1", EventID: "ev2", Tickets: 1})
	require.NoError(t, err)
	_, err = svc.BookTickets(ctx, &BookTicketsRequest{UserID: "user2", EventID: "ev1", Tickets: 3})
	require.NoError(t, err)

	first, err := svc.GetUserBookings(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "ev1", first[0].EventID)
	assert.Equal(t, 2, first[0].BookedTickets)

	// Idempotent: a second call without intervening bookings returns
	// the same set.
	second, err := svc.GetUserBookings(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	_, err = svc.GetUserBookings(ctx, "")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}

func TestTicketsHeldBy(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBookingRepo(testEvent("ev1", 10, 100))
	svc := NewBookingService(repo, nil, nil, 50)

	held, err := svc.TicketsHeldBy(ctx, "user1", "ev1")
	require.NoError(t, err)
	assert.Equal(t, 0, held, "no bookings yet")

	_, err = svc.BookTickets(ctx, &BookTicketsRequest{UserID: "user1", EventID: "ev1", Tickets: 2})
	require.NoError(t, err)
	_, err = svc.BookTickets(ctx, &BookTicketsRequest{UserID: "user1", EventID: "ev1", Tickets: 3})
	require.NoError(t, err)

	held, err = svc.TicketsHeldBy(ctx, "user1", "ev1")
	require.NoError(t, err)
	assert.Equal(t, 5, held, "counts are summed across bookings")

	_, err = svc.TicketsHeldBy(ctx, "", "ev1")
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
}
