package repository

import (
	"context"
	"time"

	"github.com/Shrvnsthr/Event-Booking/internal/entity"
)

// EventUpdate lists the columns an edit may touch; nil fields are left
// untouched in the database. In particular, an edit that does not name
// TicketsAvailable never writes that column, so it cannot overwrite a
// booking decrement that committed in between.
type EventUpdate struct {
	Title            *string
	Description      *string
	Date             *time.Time
	Location         *string
	TicketsAvailable *int
	Price            *float64
	ImageURL         *string
}

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	GetAll(ctx context.Context) ([]*entity.Event, error)

	// Update applies only the non-nil fields of upd and returns the
	// resulting row.
	Update(ctx context.Context, id string, upd *EventUpdate) (*entity.Event, error)

	Delete(ctx context.Context, id string) error
}

type BookingRepository interface {
	// Book performs the whole booking transaction: the conditional
	// inventory decrement, the seat sequence bump and the booking
	// insert, all inside one database transaction.
	Book(ctx context.Context, booking *entity.Booking) error

	GetByUserID(ctx context.Context, userID string) ([]*entity.BookingWithEvent, error)
	SumTicketsByUserAndEvent(ctx context.Context, userID, eventID string) (int, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
