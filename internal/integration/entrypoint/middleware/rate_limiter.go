// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxRequests is the default number of allowed requests per window.
	defaultMaxRequests = 60
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
	// redisKeyPrefix namespaces limiter counters in a shared Redis.
	redisKeyPrefix = "expense-tracker:ratelimit:"
)

// counterStore increments the request counter of a key within a fixed window
// and returns the new count.
type counterStore interface {
	increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter provides IP-based fixed-window rate limiting. Counters live in
// Redis when a client is configured and in process memory otherwise.
type RateLimiter struct {
	store       counterStore
	maxRequests int
	window      time.Duration
}

// NewRateLimiter creates a new in-memory rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(nil, defaultMaxRequests, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a rate limiter with custom settings. A nil
// client keeps counters in memory.
func NewRateLimiterWithConfig(client *redis.Client, maxRequests int, window time.Duration) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = defaultMaxRequests
	}
	if window <= 0 {
		window = defaultWindowDuration
	}

	var store counterStore = newMemoryStore(time.Now)
	if client != nil {
		store = &redisStore{client: client}
	}

	return &RateLimiter{
		store:       store,
		maxRequests: maxRequests,
		window:      window,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		count, err := rl.store.increment(c.Request.Context(), redisKeyPrefix+clientIP, rl.window)
		if err != nil {
			// Fail open when the counter store is unreachable.
			slog.Warn("Rate limiter store unavailable, allowing request",
				"client_ip", clientIP,
				"error", err,
			)
			c.Next()
			return
		}

		remaining := int64(rl.maxRequests) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rl.maxRequests) {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

// redisStore keeps counters in Redis so limits hold across API replicas.
type redisStore struct {
	client *redis.Client
}

func (s *redisStore) increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	// The first hit of a window starts its expiry.
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	count     int64
	resetTime time.Time
}

// memoryStore keeps counters in process memory. Expired entries are swept
// from increment at most once per window.
type memoryStore struct {
	mu        sync.Mutex
	entries   map[string]*rateLimitEntry
	now       func() time.Time
	lastSweep time.Time
}

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{
		entries:   make(map[string]*rateLimitEntry),
		now:       now,
		lastSweep: now(),
	}
}

func (s *memoryStore) increment(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= window {
		s.sweep(now)
	}

	entry, exists := s.entries[key]
	if !exists || now.After(entry.resetTime) {
		s.entries[key] = &rateLimitEntry{
			count:     1,
			resetTime: now.Add(window),
		}
		return 1, nil
	}

	entry.count++
	return entry.count, nil
}

// sweep removes expired entries. The caller holds mu.
func (s *memoryStore) sweep(now time.Time) {
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
		}
	}
	s.lastSweep = now
}
