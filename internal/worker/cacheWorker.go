package worker

import (
	"context"
	"time"

	"github.com/Shrvnsthr/Event-Booking/internal/service"

	"github.com/sirupsen/logrus"
)

// EventCacheWorker periodically re-primes the event listing cache so the
// hot listing path rarely hits the database cold after an invalidation.
type EventCacheWorker struct {
	eventService service.EventService
	interval     time.Duration
}

func NewEventCacheWorker(eventService service.EventService, interval time.Duration) *EventCacheWorker {
	return &EventCacheWorker{
		eventService: eventService,
		interval:     interval,
	}
}

func (w *EventCacheWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logrus.Info("Event cache worker started")

	for {
		select {
		case <-ctx.Done():
			logrus.Info("Event cache worker stopped")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *EventCacheWorker) refresh(ctx context.Context) {
	if err := w.eventService.RefreshCache(ctx); err != nil {
		logrus.Errorf("Failed to refresh event cache: %v", err)
		return
	}
	logrus.Debug("Event cache refreshed")
}
