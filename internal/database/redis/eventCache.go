package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Shrvnsthr/Event-Booking/internal/entity"
	"github.com/redis/go-redis/v9"
)

const (
	eventKeyPrefix = "event:"
	eventListKey   = "events:all"
)

// EventCache is a read-through JSON cache for event records. A nil
// *EventCache is valid and behaves as a permanent cache miss.
type EventCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEventCache(client *redis.Client, ttl time.Duration) *EventCache {
	return &EventCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *EventCache) GetEvent(ctx context.Context, id string) (*entity.Event, error) {
	if c == nil {
		return nil, redis.Nil
	}

	data, err := c.client.Get(ctx, eventKeyPrefix+id).Result()
	if err != nil {
		return nil, err
	}

	var event entity.Event
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, err
	}

	return &event, nil
}

func (c *EventCache) SetEvent(ctx context.Context, event *entity.Event) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, eventKeyPrefix+event.ID, data, c.ttl).Err()
}

func (c *EventCache) GetEventList(ctx context.Context) ([]*entity.Event, error) {
	if c == nil {
		return nil, redis.Nil
	}

	data, err := c.client.Get(ctx, eventListKey).Result()
	if err != nil {
		return nil, err
	}

	var events []*entity.Event
	if err := json.Unmarshal([]byte(data), &events); err != nil {
		return nil, err
	}

	return events, nil
}

func (c *EventCache) SetEventList(ctx context.Context, events []*entity.Event) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(events)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, eventListKey, data, c.ttl).Err()
}

// Invalidate drops the cached event and the cached listing. Called after
// every write that changes event state, bookings included.
func (c *EventCache) Invalidate(ctx context.Context, id string) error {
	if c == nil {
		return nil
	}

	return c.client.Del(ctx, eventKeyPrefix+id, eventListKey).Err()
}

// IsMiss reports whether err is a cache miss rather than a real failure.
func IsMiss(err error) bool {
	return err == redis.Nil
}
