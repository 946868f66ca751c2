package service

import (
	"context"
	"time"

	"github.com/Shrvnsthr/Event-Booking/internal/entity"
)

type EventService interface {
	CreateEvent(ctx context.Context, req *CreateEventRequest) (*entity.Event, error)
	GetEvent(ctx context.Context, id string) (*entity.Event, error)
	GetAllEvents(ctx context.Context) ([]*entity.Event, error)
	UpdateEvent(ctx context.Context, id string, req *UpdateEventRequest) (*entity.Event, error)
	DeleteEvent(ctx context.Context, id string) error

	// RefreshCache re-primes the event caches from the database.
	RefreshCache(ctx context.Context) error
}

type UserService interface {
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	Login(ctx context.Context, req *LoginRequest) (string, *entity.User, error)
	GetUser(ctx context.Context, id string) (*entity.User, error)
}

type BookingService interface {
	BookTickets(ctx context.Context, req *BookTicketsRequest) (*BookingResult, error)
	GetUserBookings(ctx context.Context, userID string) ([]*entity.BookingWithEvent, error)
	TicketsHeldBy(ctx context.Context, userID, eventID string) (int, error)
}

// CreateEventRequest represents the data needed to create an event
type CreateEventRequest struct {
	Title            string    `json:"title" binding:"required,min=1,max=255"`
	Description      string    `json:"description" binding:"max=2000"`
	Date             time.Time `json:"date" binding:"required"`
	Location         string    `json:"location" binding:"max=255"`
	TicketsAvailable int       `json:"ticketsAvailable" binding:"min=0"`
	Price            float64   `json:"price" binding:"min=0"`
	ImageURL         string    `json:"imageUrl"`
}

// UpdateEventRequest represents a partial event edit
type UpdateEventRequest struct {
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	Date             *time.Time `json:"date,omitempty"`
	Location         *string    `json:"location,omitempty"`
	TicketsAvailable *int       `json:"ticketsAvailable,omitempty"`
	Price            *float64   `json:"price,omitempty"`
	ImageURL         *string    `json:"imageUrl,omitempty"`
}

// RegisterRequest represents the data needed to register an account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// BookTicketsRequest represents a booking attempt for an event
type BookTicketsRequest struct {
	UserID  string `json:"userId"`
	EventID string `json:"eventId" binding:"required"`
	Tickets int    `json:"tickets" binding:"required"`
}

// BookingResult is what a successful booking returns to the caller:
// the persisted ticket count, the assigned seat label and the amount
// computed from the event price at booking time.
type BookingResult struct {
	BookedTickets int     `json:"bookedTickets"`
	SeatNumber    string  `json:"seatNumber"`
	TotalAmount   float64 `json:"totalAmount"`
}
