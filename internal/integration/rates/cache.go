package rates

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/application/adapter"
)

// cachedProvider wraps a RateProvider with a Redis read-through cache.
// Cache misses and Redis outages both fall through to the provider.
type cachedProvider struct {
	next  adapter.RateProvider
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedProvider creates a rate provider backed by a Redis cache.
func NewCachedProvider(next adapter.RateProvider, redisClient *redis.Client, ttl time.Duration) adapter.RateProvider {
	return &cachedProvider{
		next:  next,
		redis: redisClient,
		ttl:   ttl,
	}
}

func cacheKey(source, target string) string {
	return "rates:" + source + target
}

// Quote returns the cached rate when fresh, otherwise asks the provider and
// caches the answer.
func (c *cachedProvider) Quote(ctx context.Context, source, target string) (decimal.Decimal, error) {
	key := cacheKey(source, target)

	cached, err := c.redis.Get(ctx, key).Result()
	if err == nil {
		rate, parseErr := decimal.NewFromString(cached)
		if parseErr == nil {
			return rate, nil
		}
		slog.Warn("Discarding malformed cached rate", "key", key, "value", cached)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("Rate cache read failed", "key", key, "error", err)
	}

	rate, err := c.next.Quote(ctx, source, target)
	if err != nil {
		return decimal.Zero, err
	}

	if err := c.redis.Set(ctx, key, rate.String(), c.ttl).Err(); err != nil {
		slog.Warn("Rate cache write failed", "key", key, "error", err)
	}
	return rate, nil
}
