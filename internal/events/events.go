// FilePath: internal/events/events.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"

	"github.com/vivaria/terrahub/internal/config"
)

const readingChannel = "terrahub.readings"

// Reading is the payload published for every effective reading write.
type Reading struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher broadcasts reading events over Redis pub/sub. Publishing is
// best effort: failures are logged and never block the write path. A nil
// Publisher is safe to call and does nothing, so the event channel can be
// disabled by leaving the Redis host unconfigured.
type Publisher struct {
	client *redis.Client
}

// NewPublisher connects a reading publisher. Returns nil when no Redis
// host is configured.
func NewPublisher(cfg config.RedisConfig) *Publisher {
	if cfg.Host == "" {
		nuts.L.Infof("[Events] Redis host not configured, reading events disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	nuts.L.Infof("[Events] Publishing reading events to %s:%d", cfg.Host, cfg.Port)
	return &Publisher{client: client}
}

// PublishReading sends one reading event. Safe on a nil receiver.
func (p *Publisher) PublishReading(ctx context.Context, kind, id string, value float64, ts time.Time) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(Reading{Kind: kind, ID: id, Value: value, Timestamp: ts})
	if err != nil {
		nuts.L.Errorf("[Events] Failed to marshal reading event: %v", err)
		return
	}
	if err := p.client.Publish(ctx, readingChannel, payload).Err(); err != nil {
		nuts.L.Warnf("[Events] Failed to publish reading event: %v", err)
	}
}

// Close releases the Redis connection. Safe on a nil receiver.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.client.Close()
}
