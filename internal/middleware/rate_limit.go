package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Payphone-Digital/catalog-api/internal/constants"
	"github.com/Payphone-Digital/catalog-api/pkg/logger"
	"github.com/Payphone-Digital/catalog-api/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// memoryLimiter is a per-IP sliding window used when redis is disabled.
type memoryLimiter struct {
	tokens     map[string][]time.Time
	maxRequest int
	duration   time.Duration
	mu         sync.Mutex
}

func newMemoryLimiter(maxRequest int, duration time.Duration) *memoryLimiter {
	return &memoryLimiter{
		tokens:     make(map[string][]time.Time),
		maxRequest: maxRequest,
		duration:   duration,
	}
}

func (rl *memoryLimiter) cleanup(now time.Time) {
	for ip, tokens := range rl.tokens {
		var valid []time.Time
		for _, t := range tokens {
			if now.Sub(t) <= rl.duration {
				valid = append(valid, t)
			}
		}
		if len(valid) > 0 {
			rl.tokens[ip] = valid
		} else {
			delete(rl.tokens, ip)
		}
	}
}

// allow reports whether the request fits in the window and how many
// requests remain.
func (rl *memoryLimiter) allow(ip string, now time.Time) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.cleanup(now)

	tokens := rl.tokens[ip]
	if len(tokens) >= rl.maxRequest {
		return false, 0
	}

	rl.tokens[ip] = append(tokens, now)
	return true, rl.maxRequest - len(tokens) - 1
}

// RateLimit enforces a per-client request budget. When redis is enabled
// the window is shared across instances via a fixed-window counter;
// otherwise an in-process sliding window is used.
func RateLimit(cache redis.Client, maxRequest int, duration time.Duration) gin.HandlerFunc {
	limiter := newMemoryLimiter(maxRequest, duration)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		allowed := true
		remaining := 0

		if cache.IsEnabled() {
			key := constants.CacheKeyRateLimit + ip
			count, err := cache.Incr(c.Request.Context(), key, duration)
			if err != nil {
				// Fall open rather than rejecting traffic on a cache outage.
				logger.GetLogger().Warn("Rate limit counter unavailable",
					zap.String("client_ip", ip),
					zap.Error(err))
			} else {
				allowed = count <= int64(maxRequest)
				remaining = maxRequest - int(count)
				if remaining < 0 {
					remaining = 0
				}
			}
		} else {
			allowed, remaining = limiter.allow(ip, now)
		}

		if !allowed {
			logger.GetLogger().Warn("Rate limit exceeded",
				zap.String("client_ip", ip),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Int("max_requests", maxRequest),
				zap.Duration("duration", duration),
			)

			c.JSON(http.StatusTooManyRequests, constants.BuildErrorResponse(
				constants.MsgTooManyRequests,
				gin.H{"retry_after": duration.Seconds()},
			))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", maxRequest))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", now.Add(duration).Unix()))

		c.Next()
	}
}
