package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

// DefaultEventsChannel is the pub/sub channel job lifecycle events go to.
const DefaultEventsChannel = "fizzyjuice.jobs"

// EventPublisher publishes job events as JSON.
type EventPublisher struct {
	rdb     goredis.UniversalClient
	channel string
}

func NewEventPublisher(rdb goredis.UniversalClient, channel string) *EventPublisher {
	if channel == "" {
		channel = DefaultEventsChannel
	}
	return &EventPublisher{rdb: rdb, channel: channel}
}

func (p *EventPublisher) Publish(ctx context.Context, event domain.JobEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal job event: %w", err)
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", p.channel, err)
	}
	return nil
}

// NoopPublisher is used when REDIS_URL is not set.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.JobEvent) error { return nil }
