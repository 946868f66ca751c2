package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Shrvnsthr/Event-Booking/internal/entity"
	"github.com/google/uuid"
)

type eventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (id, title, description, date, location, tickets_available, price, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	event.ID = uuid.New().String()
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Date,
		event.Location,
		event.TicketsAvailable,
		event.Price,
		event.ImageURL,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	query := `
		SELECT id, title, description, date, location, tickets_available, price, image_url, seat_seq, created_at, updated_at
		FROM events
		WHERE id = $1
	`

	var event entity.Event
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Location,
		&event.TicketsAvailable,
		&event.Price,
		&event.ImageURL,
		&event.SeatSeq,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &event, nil
}

func (r *eventRepository) GetAll(ctx context.Context) ([]*entity.Event, error) {
	query := `
		SELECT id, title, description, date, location, tickets_available, price, image_url, seat_seq, created_at, updated_at
		FROM events
		ORDER BY date ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		var event entity.Event
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Date,
			&event.Location,
			&event.TicketsAvailable,
			&event.Price,
			&event.ImageURL,
			&event.SeatSeq,
			&event.CreatedAt,
			&event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	return events, rows.Err()
}

// Update builds the SET list from the non-nil fields only. Omitted
// columns, tickets_available above all, keep whatever value concurrent
// bookings have committed.
func (r *eventRepository) Update(ctx context.Context, id string, upd *EventUpdate) (*entity.Event, error) {
	var set []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Date != nil {
		add("date", *upd.Date)
	}
	if upd.Location != nil {
		add("location", *upd.Location)
	}
	if upd.TicketsAvailable != nil {
		add("tickets_available", *upd.TicketsAvailable)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.ImageURL != nil {
		add("image_url", *upd.ImageURL)
	}
	add("updated_at", time.Now())

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING id, title, description, date, location, tickets_available, price, image_url, seat_seq, created_at, updated_at
	`, strings.Join(set, ", "), len(args))

	var event entity.Event
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Date,
		&event.Location,
		&event.TicketsAvailable,
		&event.Price,
		&event.ImageURL,
		&event.SeatSeq,
		&event.CreatedAt,
		&event.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, entity.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return &event, nil
}

// Delete removes the event together with every booking that references
// it, in one transaction.
func (r *eventRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE event_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete event bookings: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrEventNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
