package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"codetogether-api/internal/metrics"
	"codetogether-api/internal/response"
)

const (
	rateLimitBackendRedis = "redis"
	rateLimitBackendLocal = "local"

	maxLocalLimiters = 10000
)

// RateLimiter limits requests per client IP.
// With redis it is a fixed window shared by all replicas; without redis, or when
// redis fails, it falls back to an in-process token bucket per IP.
type RateLimiter struct {
	redis    *redis.Client
	requests int
	window   time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRateLimiter creates a RateLimiter. redisClient may be nil.
func NewRateLimiter(redisClient *redis.Client, requests int, window time.Duration, m *metrics.Metrics, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		redis:    redisClient,
		requests: requests,
		window:   window,
		metrics:  m,
		logger:   logger,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Handler returns the gin middleware
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + c.FullPath() + ":" + c.ClientIP()

		allowed, backend := rl.allow(c.Request.Context(), key)
		if !allowed {
			rl.metrics.RecordRateLimited(backend)
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			response.SendError(c, http.StatusTooManyRequests, response.ErrCodeTooManyRequests, "Too many requests")
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) (bool, string) {
	if rl.redis != nil {
		allowed, err := rl.allowRedis(ctx, key)
		if err == nil {
			return allowed, rateLimitBackendRedis
		}
		rl.logger.Warn("Rate limit redis pipeline failed, using local limiter", zap.Error(err))
	}
	return rl.getLimiter(key).Allow(), rateLimitBackendLocal
}

// allowRedis counts hits in a fixed window. The window starts with the first hit;
// later hits only increment, so a client that keeps retrying is released on time.
func (rl *RateLimiter) allowRedis(ctx context.Context, key string) (bool, error) {
	pipe := rl.redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if needsExpiry(incr.Val(), ttl.Val()) {
		if err := rl.redis.Expire(ctx, key, rl.window).Err(); err != nil {
			return false, err
		}
	}
	return incr.Val() <= int64(rl.requests), nil
}

// needsExpiry is true for the first hit of a window, and for a counter left
// without a TTL by an earlier failed EXPIRE.
func needsExpiry(count int64, ttl time.Duration) bool {
	return count == 1 || ttl < 0
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		if len(rl.limiters) >= maxLocalLimiters {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(rate.Every(rl.window/time.Duration(rl.requests)), rl.requests)
		rl.limiters[key] = limiter
	}
	return limiter
}
