package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devmatch/devmatch/internal/config"
)

// PendingCountTTL bounds how long a cached pending-request count lives without
// activity. Reads and writes both refresh it.
const PendingCountTTL = time.Hour

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return c.Client.Get(ctx, key).Result()
}

func (c *RedisCache) Del(ctx context.Context, key string) error {
	return c.Client.Del(ctx, key).Err()
}

// KeyForPendingCount generates the Redis key for a user's count of pending
// received connection requests.
func (c *RedisCache) KeyForPendingCount(userID uint64) string {
	return fmt.Sprintf("requests:pending:%d", userID)
}

// IncrPendingCount bumps the cached pending count for a recipient. The key is
// only touched when it already exists; a miss stays a miss until the next DB
// fallback primes it, so the counter can never drift from an unprimed zero.
func (c *RedisCache) IncrPendingCount(ctx context.Context, userID uint64) error {
	key := c.KeyForPendingCount(userID)
	ok, err := c.Client.Expire(ctx, key, PendingCountTTL).Result()
	if err != nil || !ok {
		return err
	}
	return c.Client.Incr(ctx, key).Err()
}

// DecrPendingCount lowers the cached pending count after a review.
func (c *RedisCache) DecrPendingCount(ctx context.Context, userID uint64) error {
	key := c.KeyForPendingCount(userID)
	ok, err := c.Client.Expire(ctx, key, PendingCountTTL).Result()
	if err != nil || !ok {
		return err
	}
	return c.Client.Decr(ctx, key).Err()
}

// GetPendingCount returns the cached count, a miss flag, and refreshes the TTL
// on hit since the user is active.
func (c *RedisCache) GetPendingCount(ctx context.Context, userID uint64) (int64, bool, error) {
	key := c.KeyForPendingCount(userID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	_ = c.Client.Expire(ctx, key, PendingCountTTL).Err()
	return n, true, nil
}

// SetPendingCount primes the cache after a DB fallback.
func (c *RedisCache) SetPendingCount(ctx context.Context, userID uint64, count int64) error {
	return c.Client.Set(ctx, c.KeyForPendingCount(userID), count, PendingCountTTL).Err()
}
