// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/bookkeeping/backend/internal/domain/error"
	"github.com/bookkeeping/backend/internal/integration/entrypoint/dto"
)

// defaultWindowDuration is the window used when none is configured.
const defaultWindowDuration = 1 * time.Minute

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// RateLimiter limits requests per company, or per client IP for unauthenticated requests.
// A limit of zero or less disables it.
type RateLimiter struct {
	mu             sync.Mutex
	entries        map[string]*rateLimitEntry
	maxAttempts    int
	windowDuration time.Duration
	now            func() time.Time
}

// NewRateLimiterWithConfig creates a new rate limiter with custom settings.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration) *RateLimiter {
	if windowDuration <= 0 {
		windowDuration = defaultWindowDuration
	}
	return &RateLimiter{
		entries:        make(map[string]*rateLimitEntry),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
		now:            time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
// It must run after Authenticate so the company is known.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.maxAttempts <= 0 {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if companyID, ok := GetCompanyIDFromContext(c); ok {
			key = "company:" + companyID.String()
		}

		if !rl.allow(key) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow checks if a request from the given key should be allowed.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	entry, exists := rl.entries[key]
	if !exists {
		// First request from this key
		rl.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(rl.windowDuration),
		}
		return true
	}

	// Check if the window has expired
	if now.After(entry.resetTime) {
		entry.attempts = 1
		entry.resetTime = now.Add(rl.windowDuration)
		return true
	}

	if entry.attempts < rl.maxAttempts {
		entry.attempts++
		return true
	}

	return false
}

// Cleanup removes expired entries.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, entry := range rl.entries {
		if now.After(entry.resetTime) {
			delete(rl.entries, key)
		}
	}
}

// RunCleanup removes expired entries every interval until stop is closed.
func (rl *RateLimiter) RunCleanup(interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = defaultWindowDuration
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.Cleanup()
		case <-stop:
			return
		}
	}
}
