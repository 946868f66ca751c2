package service

import (
	"context"
	"fmt"
	"time"

	repository "github.com/Shrvnsthr/Event-Booking/internal/database/postgres"
	cache "github.com/Shrvnsthr/Event-Booking/internal/database/redis"
	"github.com/Shrvnsthr/Event-Booking/internal/entity"
	"github.com/Shrvnsthr/Event-Booking/pkg/kafka"
	"github.com/sirupsen/logrus"
)

// BookingEvent is the message published to the booking stream after a
// successful booking.
type BookingEvent struct {
	BookingID   string    `json:"booking_id"`
	UserID      string    `json:"user_id"`
	EventID     string    `json:"event_id"`
	Tickets     int       `json:"tickets"`
	SeatNumber  string    `json:"seat_number"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	eventCache  *cache.EventCache
	producer    kafka.Producer
	maxTickets  int
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	eventCache *cache.EventCache,
	producer kafka.Producer,
	maxTickets int,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		eventCache:  eventCache,
		producer:    producer,
		maxTickets:  maxTickets,
	}
}

// BookTickets validates the request and runs the booking transaction.
// Availability checking, the inventory decrement, seat labelling and the
// ledger insert happen atomically in the repository; this layer never
// reads availability first, so there is no stale-read window to race.
func (s *bookingService) BookTickets(ctx context.Context, req *BookTicketsRequest) (*BookingResult, error) {
	if req.Tickets <= 0 {
		return nil, fmt.Errorf("%w: tickets must be a positive integer", entity.ErrInvalidInput)
	}
	// The cap is opt-in; zero (the default) allows any amount within
	// availability.
	if s.maxTickets > 0 && req.Tickets > s.maxTickets {
		return nil, fmt.Errorf("%w: cannot book more than %d tickets at once", entity.ErrInvalidInput, s.maxTickets)
	}

	booking := &entity.Booking{
		UserID:  req.UserID,
		EventID: req.EventID,
		Tickets: req.Tickets,
	}

	if err := s.bookingRepo.Book(ctx, booking); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"event_id":   booking.EventID,
		"user_id":    booking.UserID,
		"tickets":    booking.Tickets,
		"seat":       booking.SeatNumber,
	}).Info("Booking created")

	// The cached event copy now carries a stale availability count.
	if err := s.eventCache.Invalidate(ctx, booking.EventID); err != nil {
		logrus.Warnf("Failed to invalidate event cache: %v", err)
	}

	if s.producer != nil {
		go s.publishBookingEvent(booking)
	}

	return &BookingResult{
		BookedTickets: booking.Tickets,
		SeatNumber:    booking.SeatNumber,
		TotalAmount:   booking.TotalAmount,
	}, nil
}

// publishBookingEvent pushes the booking onto the Kafka feed. Best
// effort: a broker failure is logged and never surfaces to the caller.
func (s *bookingService) publishBookingEvent(booking *entity.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	event := BookingEvent{
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		EventID:     booking.EventID,
		Tickets:     booking.Tickets,
		SeatNumber:  booking.SeatNumber,
		TotalAmount: booking.TotalAmount,
		CreatedAt:   booking.CreatedAt,
	}

	if err := s.producer.SendMessage(ctx, booking.EventID, event); err != nil {
		logrus.Errorf("Failed to publish booking event for booking %s: %v", booking.ID, err)
	}
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string) ([]*entity.BookingWithEvent, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", entity.ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user bookings: %w", err)
	}

	return bookings, nil
}

func (s *bookingService) TicketsHeldBy(ctx context.Context, userID, eventID string) (int, error) {
	if userID == "" || eventID == "" {
		return 0, fmt.Errorf("%w: user id and event id are required", entity.ErrInvalidInput)
	}

	return s.bookingRepo.SumTicketsByUserAndEvent(ctx, userID, eventID)
}
