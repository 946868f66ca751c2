package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/Shrvnsthr/Event-Booking/internal/database/postgres"
	cache "github.com/Shrvnsthr/Event-Booking/internal/database/redis"
	"github.com/Shrvnsthr/Event-Booking/internal/entity"
	"github.com/sirupsen/logrus"
)

type eventService struct {
	eventRepo  repository.EventRepository
	eventCache *cache.EventCache
}

func NewEventService(eventRepo repository.EventRepository, eventCache *cache.EventCache) EventService {
	return &eventService{
		eventRepo:  eventRepo,
		eventCache: eventCache,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, req *CreateEventRequest) (*entity.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", entity.ErrInvalidInput)
	}
	if req.Date.Before(time.Now()) {
		return nil, entity.ErrEventDatePast
	}
	if req.TicketsAvailable < 0 {
		return nil, fmt.Errorf("%w: ticketsAvailable cannot be negative", entity.ErrInvalidInput)
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", entity.ErrInvalidInput)
	}

	event := &entity.Event{
		Title:            req.Title,
		Description:      req.Description,
		Date:             req.Date,
		Location:         req.Location,
		TicketsAvailable: req.TicketsAvailable,
		Price:            req.Price,
		ImageURL:         req.ImageURL,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if err := s.eventCache.Invalidate(ctx, event.ID); err != nil {
		logrus.Warnf("Failed to invalidate event cache: %v", err)
	}

	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*entity.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: event id is required", entity.ErrInvalidInput)
	}

	if event, err := s.eventCache.GetEvent(ctx, id); err == nil {
		return event, nil
	} else if !cache.IsMiss(err) {
		logrus.Warnf("Event cache read failed: %v", err)
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.eventCache.SetEvent(ctx, event); err != nil {
		logrus.Warnf("Failed to cache event %s: %v", id, err)
	}

	return event, nil
}

func (s *eventService) GetAllEvents(ctx context.Context) ([]*entity.Event, error) {
	if events, err := s.eventCache.GetEventList(ctx); err == nil {
		return events, nil
	} else if !cache.IsMiss(err) {
		logrus.Warnf("Event list cache read failed: %v", err)
	}

	events, err := s.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	if err := s.eventCache.SetEventList(ctx, events); err != nil {
		logrus.Warnf("Failed to cache event list: %v", err)
	}

	return events, nil
}

// UpdateEvent validates the provided fields and hands the repository a
// partial update. There is no read-modify-write here: fields the request
// omits never reach the database, so an edit cannot clobber inventory
// that concurrent bookings changed in the meantime.
func (s *eventService) UpdateEvent(ctx context.Context, id string, req *UpdateEventRequest) (*entity.Event, error) {
	upd := &repository.EventUpdate{
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", entity.ErrInvalidInput)
		}
		upd.Title = &title
	}
	if req.TicketsAvailable != nil {
		if *req.TicketsAvailable < 0 {
			return nil, fmt.Errorf("%w: ticketsAvailable cannot be negative", entity.ErrInvalidInput)
		}
		upd.TicketsAvailable = req.TicketsAvailable
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, fmt.Errorf("%w: price cannot be negative", entity.ErrInvalidInput)
		}
		upd.Price = req.Price
	}

	event, err := s.eventRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	if err := s.eventCache.Invalidate(ctx, id); err != nil {
		logrus.Warnf("Failed to invalidate event cache: %v", err)
	}

	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.eventCache.Invalidate(ctx, id); err != nil {
		logrus.Warnf("Failed to invalidate event cache: %v", err)
	}

	logrus.WithField("event_id", id).Info("Event and related bookings deleted")
	return nil
}

// RefreshCache re-reads the full event list from the database and
// replaces the cached copy. Called periodically by the cache worker.
func (s *eventService) RefreshCache(ctx context.Context) error {
	events, err := s.eventRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh event cache: %w", err)
	}

	return s.eventCache.SetEventList(ctx, events)
}
