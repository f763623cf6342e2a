package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is an in-memory fixed-window limiter. Each key gets a
// bucket of tokens that refills when its window elapses. Good enough for
// a single instance; a multi-node deployment would move this to Redis.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
}

type bucket struct {
	tokens   int
	windowAt time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
	}
	go rl.evictStale()
	return rl
}

// evictStale drops buckets idle for two windows so one-off clients do not
// accumulate forever.
func (rl *RateLimiter) evictStale() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-2 * rl.window)
		rl.mu.Lock()
		for key, b := range rl.buckets {
			if b.windowAt.Before(cutoff) {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow spends one token for key, reporting whether the request may
// proceed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[key]
	if !ok || now.Sub(b.windowAt) >= rl.window {
		rl.buckets[key] = &bucket{tokens: rl.limit - 1, windowAt: now}
		return true
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// Remaining reports the tokens left for key without spending one.
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.buckets[key]
	if !ok || time.Since(b.windowAt) >= rl.window {
		return rl.limit
	}
	return b.tokens
}

func rejectRateLimited(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "RATE_LIMIT_EXCEEDED",
			"message": "Too many requests. Please try again later.",
		},
	})
}

// RateLimit limits by client IP, or by user id plus IP once the JWT
// middleware has identified the caller.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if userID := GetJWTUserID(c); userID != "" {
			key = userID + ":" + key
		}

		if !limiter.Allow(key) {
			rejectRateLimited(c)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}

// AuthRateLimit is the stricter limiter for login and token endpoints.
// It keys by IP under an "auth:" prefix so the login budget is separate
// from any general limiter sharing the same RateLimiter values, and it
// tells blocked clients when to retry.
func AuthRateLimit(limiter *RateLimiter) gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(limiter.window.Seconds()))

	return func(c *gin.Context) {
		key := "auth:" + c.ClientIP()

		if !limiter.Allow(key) {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "AUTH_RATE_LIMIT_EXCEEDED",
					"message": "Too many authentication attempts. Please try again later.",
				},
			})
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}

// RateLimitByKey limits using a caller-supplied key extractor.
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(keyFunc(c)) {
			rejectRateLimited(c)
			return
		}
		c.Next()
	}
}
