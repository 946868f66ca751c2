package entity

import (
	"time"
)

type Booking struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	EventID     string    `json:"event_id" db:"event_id"`
	Tickets     int       `json:"tickets" db:"tickets"`
	SeatNumber  string    `json:"seat_number" db:"seat_number"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// BookingWithEvent is a booking joined with the fields of its event
// that the booking history listing exposes. TotalAmount is the amount
// persisted at booking time, not a recomputation from the current price.
type BookingWithEvent struct {
	EventID       string    `json:"event_id"`
	Title         string    `json:"title"`
	Date          time.Time `json:"date"`
	Price         float64   `json:"price"`
	BookedTickets int       `json:"booked_tickets"`
	SeatNumber    string    `json:"seat_number"`
	TotalAmount   float64   `json:"total_amount"`
	BookingDate   time.Time `json:"booking_date"`
}
