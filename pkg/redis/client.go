package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned when a key does not exist.
var ErrCacheMiss = errors.New("cache miss")

// Client is the caching surface the rest of the service depends on.
// A disabled client satisfies it with no-ops so handlers never branch
// on whether redis is deployed.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeleteByPattern(ctx context.Context, pattern string) error
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Ping(ctx context.Context) error
	IsEnabled() bool
	Close() error
}

// Config holds redis connection settings
type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	Enabled      bool
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type client struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewClient creates a redis-backed client, or a disabled no-op client
// when cfg.Enabled is false.
func NewClient(cfg Config, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !cfg.Enabled {
		logger.Info("Redis cache disabled by configuration")
		return &disabledClient{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	return &client{rdb: rdb, logger: logger}
}

func (c *client) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache key %q: %w", key, err)
	}
	return data, nil
}

func (c *client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache key %q: %w", key, err)
	}
	return nil
}

func (c *client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}

// DeleteByPattern removes every key matching pattern. Uses SCAN so large
// keyspaces do not block redis the way KEYS would.
func (c *client) DeleteByPattern(ctx context.Context, pattern string) error {
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys for %q: %w", pattern, err)
	}

	return c.Delete(ctx, keys...)
}

// Incr increments a counter key, setting the expiry window on first use.
func (c *client) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %q: %w", key, err)
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return count, fmt.Errorf("failed to set expiry for counter %q: %w", key, err)
		}
	}
	return count, nil
}

func (c *client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *client) IsEnabled() bool {
	return true
}

func (c *client) Close() error {
	return c.rdb.Close()
}

// disabledClient is the no-op implementation used when redis is turned off
type disabledClient struct{}

func (d *disabledClient) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, ErrCacheMiss
}

func (d *disabledClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (d *disabledClient) Delete(ctx context.Context, keys ...string) error {
	return nil
}

func (d *disabledClient) DeleteByPattern(ctx context.Context, pattern string) error {
	return nil
}

func (d *disabledClient) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	return 0, nil
}

func (d *disabledClient) Ping(ctx context.Context) error {
	return nil
}

func (d *disabledClient) IsEnabled() bool {
	return false
}

func (d *disabledClient) Close() error {
	return nil
}
