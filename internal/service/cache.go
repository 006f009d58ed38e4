package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Payphone-Digital/catalog-api/pkg/circuit"
	"github.com/Payphone-Digital/catalog-api/pkg/logger"
	"github.com/Payphone-Digital/catalog-api/pkg/redis"
)

// CacheService wraps the redis client with JSON encoding and a circuit
// breaker. Cache trouble is never allowed to fail a request: every miss,
// error or open circuit degrades to "not cached".
type CacheService struct {
	client  redis.Client
	breaker *circuit.Breaker
	ttl     time.Duration
}

func NewCacheService(client redis.Client, ttl time.Duration) *CacheService {
	return &CacheService{
		client:  client,
		breaker: circuit.NewBreaker("cache", circuit.DefaultConfig(), logger.GetLogger()),
		ttl:     ttl,
	}
}

// GetJSON loads key into dest. Returns false on miss, cache error or
// open circuit.
func (s *CacheService) GetJSON(ctx context.Context, key string, dest any) bool {
	if !s.client.IsEnabled() {
		return false
	}

	var data []byte
	err := s.breaker.Execute(func() error {
		var getErr error
		data, getErr = s.client.Get(ctx, key)
		if errors.Is(getErr, redis.ErrCacheMiss) {
			// a miss is healthy, don't trip the breaker
			data = nil
			return nil
		}
		return getErr
	})
	if err != nil {
		logger.WarnWithContext(ctx, "Cache read skipped").
			String("key", key).
			Err(err).
			Log()
		return false
	}
	if data == nil {
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.WarnWithContext(ctx, "Failed to decode cached value").
			String("key", key).
			Err(err).
			Log()
		return false
	}

	return true
}

// SetJSON stores value under key with the configured TTL. Best effort.
func (s *CacheService) SetJSON(ctx context.Context, key string, value any) {
	if !s.client.IsEnabled() {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		logger.WarnWithContext(ctx, "Failed to encode value for cache").
			String("key", key).
			Err(err).
			Log()
		return
	}

	if err := s.breaker.Execute(func() error {
		return s.client.Set(ctx, key, data, s.ttl)
	}); err != nil {
		logger.WarnWithContext(ctx, "Cache write skipped").
			String("key", key).
			Err(err).
			Log()
	}
}

// InvalidatePrefix drops every cached entry under prefix. Best effort.
func (s *CacheService) InvalidatePrefix(ctx context.Context, prefix string) {
	if !s.client.IsEnabled() {
		return
	}

	if err := s.breaker.Execute(func() error {
		return s.client.DeleteByPattern(ctx, prefix+"*")
	}); err != nil {
		logger.WarnWithContext(ctx, "Cache invalidation skipped").
			String("prefix", prefix).
			Err(err).
			Log()
	}
}
