package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/kbukum/errkit/errors"
)

// RateLimitConfig configures the rate limiting middleware.
type RateLimitConfig struct {
	// RequestsPerMinute is the sustained number of requests allowed per minute per key.
	RequestsPerMinute int
	// Burst is the number of requests allowed at once. Defaults to RequestsPerMinute.
	Burst int
	// KeyFunc extracts the rate limit key from a request. Defaults to client IP.
	KeyFunc func(*gin.Context) string
	// IdleTTL is how long an unused key is kept. Defaults to 10 minutes.
	IdleTTL time.Duration
}

// RateLimit returns a Gin middleware that applies a per-key token bucket.
// Rejected requests get a throttled error carrying the wait time. Idle keys
// are evicted in the background until ctx is done.
func RateLimit(ctx context.Context, cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerMinute
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = IPBasedKey
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 10 * time.Minute
	}

	rl := newRateLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60), cfg.Burst, cfg.IdleTTL)
	go rl.cleanup(ctx)

	return func(c *gin.Context) {
		if wait := rl.reserve(cfg.KeyFunc(c), time.Now()); wait > 0 {
			_ = c.Error(errors.Throttled(wait))
			c.Abort()
			return
		}
		c.Next()
	}
}

// IPBasedKey extracts the client IP for use as a rate limit key.
func IPBasedKey(c *gin.Context) string {
	return c.ClientIP()
}

// UserBasedKey extracts the user_id from the context, falling back to client IP.
func UserBasedKey(c *gin.Context) string {
	if uid := c.GetString(KeyUserID); uid != "" {
		return uid
	}
	return c.ClientIP()
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	limit   rate.Limit
	burst   int
	ttl     time.Duration
}

func newRateLimiter(limit rate.Limit, burst int, ttl time.Duration) *rateLimiter {
	return &rateLimiter{
		entries: make(map[string]*limiterEntry),
		limit:   limit,
		burst:   burst,
		ttl:     ttl,
	}
}

// reserve takes a token for key. It returns zero when the request may proceed,
// otherwise how long until a token is available.
func (rl *rateLimiter) reserve(key string, now time.Time) time.Duration {
	rl.mu.Lock()
	entry, ok := rl.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.entries[key] = entry
	}
	entry.lastSeen = now
	rl.mu.Unlock()

	r := entry.limiter.ReserveN(now, 1)
	if !r.OK() {
		return time.Minute
	}
	delay := r.DelayFrom(now)
	if delay > 0 {
		r.CancelAt(now)
	}
	return delay
}

func (rl *rateLimiter) cleanup(ctx context.Context) {
	ticker := time.NewTicker(rl.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.evict(now)
		}
	}
}

func (rl *rateLimiter) evict(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, entry := range rl.entries {
		if now.Sub(entry.lastSeen) > rl.ttl {
			delete(rl.entries, key)
		}
	}
}
