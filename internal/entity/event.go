package entity

import (
	"time"
)

type Event struct {
	ID               string    `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	Date             time.Time `json:"date" db:"date"`
	Location         string    `json:"location" db:"location"`
	TicketsAvailable int       `json:"ticketsAvailable" db:"tickets_available"`
	Price            float64   `json:"price" db:"price"`
	ImageURL         string    `json:"imageUrl" db:"image_url"`
	SeatSeq          int       `json:"-" db:"seat_seq"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}
