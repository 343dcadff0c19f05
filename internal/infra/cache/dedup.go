package cache

import (
	"context"
	"time"

	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
)

const dedupKeyPrefix = "payment-event:"

// RedisDeduper remembers applied processor event ids for a bounded window.
// It only shortcuts replays; correctness never depends on it.
type RedisDeduper struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ commands.EventDeduper = (*RedisDeduper)(nil)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisDeduper(client redis.Cmdable, ttl time.Duration) *RedisDeduper {
	return &RedisDeduper{client: client, ttl: ttl}
}

func (d *RedisDeduper) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKeyPrefix+eventID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *RedisDeduper) Remember(ctx context.Context, eventID string) error {
	return d.client.Set(ctx, dedupKeyPrefix+eventID, "1", d.ttl).Err()
}

// NoopDeduper is used when Redis is not configured.
type NoopDeduper struct{}

var _ commands.EventDeduper = NoopDeduper{}

func (NoopDeduper) Seen(context.Context, string) (bool, error) { return false, nil }
func (NoopDeduper) Remember(context.Context, string) error     { return nil }
