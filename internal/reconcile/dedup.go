package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduper reports whether a webhook event id has already been processed.
// Dedup only suppresses duplicate side effects such as counter increments;
// the record store transitions are idempotent without it. An event is marked
// only after it has been fully applied, so a store failure leaves the id
// unmarked and the processor's redelivery is processed again.
type Deduper interface {
	Seen(ctx context.Context, eventID string) bool
	Mark(ctx context.Context, eventID string)
}

// RedisDeduper tracks processed event ids under a TTL. A Redis outage
// degrades to processing every delivery, which is safe.
type RedisDeduper struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisDeduper(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *RedisDeduper {
	return &RedisDeduper{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func dedupKey(eventID string) string {
	return "webhook:event:" + eventID
}

func (d *RedisDeduper) Seen(ctx context.Context, eventID string) bool {
	n, err := d.client.Exists(ctx, dedupKey(eventID)).Result()
	if err != nil {
		d.logger.Warn("webhook dedup unavailable", "error", err)
		return false
	}

	return n > 0
}

func (d *RedisDeduper) Mark(ctx context.Context, eventID string) {
	err := d.client.Set(ctx, dedupKey(eventID), 1, d.ttl).Err()
	if err != nil {
		d.logger.Warn("failed to mark webhook event as processed", "event_id", eventID, "error", err)
	}
}
