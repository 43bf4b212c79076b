package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per authenticated user.
type RateLimiter struct {
	limiters map[uint]*limiterEntry
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(rps int) *RateLimiter {
	if rps < 1 {
		rps = 1
	}
	return &RateLimiter{
		limiters: make(map[uint]*limiterEntry),
		rate:     rate.Limit(rps),
		burst:    rps * 2,
	}
}

func (rl *RateLimiter) getLimiter(userID uint) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.limiters[userID]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[userID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// Allow reports whether userID may perform one more request now.
func (rl *RateLimiter) Allow(userID uint) bool {
	return rl.getLimiter(userID).Allow()
}

// Prune drops limiters idle for longer than maxIdle.
func (rl *RateLimiter) Prune(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-maxIdle)
	for id, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, id)
			removed++
		}
	}
	return removed
}

// Cleanup prunes idle limiters every interval until ctx is done.
func (rl *RateLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rl.Prune(interval)
			}
		}
	}()
}

// RateLimitMiddleware limits requests per user. Anonymous requests pass.
func RateLimitMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.Next()
			return
		}

		if !rl.Allow(user.ID) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			return
		}

		c.Next()
	}
}
