package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Shrvnsthr/Event-Booking/internal/entity"
	"github.com/google/uuid"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Book reserves tickets and records the booking as a single transaction.
//
// The decrement is conditional: the UPDATE matches only while enough
// tickets remain, so two requests racing for the last ticket cannot both
// succeed. The seat sequence is bumped by the same statement, which makes
// duplicate seat labels impossible. Both writes commit together; a
// failure at any step rolls back the whole booking.
func (r *bookingRepository) Book(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seatSeq int
	var price float64
	query := `
		UPDATE events
		SET tickets_available = tickets_available - $1,
		    seat_seq = seat_seq + 1,
		    updated_at = $2
		WHERE id = $3 AND tickets_available >= $1
		RETURNING seat_seq, price
	`
	err = tx.QueryRowContext(ctx, query, booking.Tickets, time.Now(), booking.EventID).Scan(&seatSeq, &price)
	if err == sql.ErrNoRows {
		// The event is either missing or short on tickets; re-read
		// inside the transaction to tell the two apart.
		var available int
		err = tx.QueryRowContext(ctx, `SELECT tickets_available FROM events WHERE id = $1`, booking.EventID).Scan(&available)
		if err == sql.ErrNoRows {
			return entity.ErrEventNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check event availability: %w", err)
		}
		return entity.ErrNotEnoughTickets
	}
	if err != nil {
		return fmt.Errorf("failed to reserve tickets: %w", err)
	}

	booking.ID = uuid.New().String()
	booking.SeatNumber = fmt.Sprintf("S%d", seatSeq)
	booking.TotalAmount = float64(booking.Tickets) * price
	booking.CreatedAt = time.Now()

	query = `
		INSERT INTO bookings (id, user_id, event_id, tickets, seat_number, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, query,
		booking.ID,
		booking.UserID,
		booking.EventID,
		booking.Tickets,
		booking.SeatNumber,
		booking.TotalAmount,
		booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByUserID returns the user's bookings joined with event details,
// in insertion order.
func (r *bookingRepository) GetByUserID(ctx context.Context, userID string) ([]*entity.BookingWithEvent, error) {
	query := `
		SELECT b.event_id, e.title, e.date, e.price, b.tickets, b.seat_number, b.total_amount, b.created_at
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = $1
		ORDER BY b.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings by user: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.BookingWithEvent
	for rows.Next() {
		var b entity.BookingWithEvent
		err := rows.Scan(
			&b.EventID,
			&b.Title,
			&b.Date,
			&b.Price,
			&b.BookedTickets,
			&b.SeatNumber,
			&b.TotalAmount,
			&b.BookingDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) SumTicketsByUserAndEvent(ctx context.Context, userID, eventID string) (int, error) {
	query := `SELECT COALESCE(SUM(tickets), 0) FROM bookings WHERE user_id = $1 AND event_id = $2`

	var total int
	if err := r.db.QueryRowContext(ctx, query, userID, eventID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum user tickets: %w", err)
	}

	return total, nil
}
