package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func rateLimitedRequest(router *gin.Engine, method, path, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterTokenBucket(t *testing.T) {
	t.Run("spends and exhausts tokens per key", func(t *testing.T) {
		limiter := NewRateLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("alice"), "request %d", i+1)
		}
		assert.False(t, limiter.Allow("alice"))

		// A fresh key has its own bucket.
		assert.True(t, limiter.Allow("bob"))
	})

	t.Run("refills after the window", func(t *testing.T) {
		limiter := NewRateLimiter(2, 50*time.Millisecond)

		assert.True(t, limiter.Allow("carol"))
		assert.True(t, limiter.Allow("carol"))
		assert.False(t, limiter.Allow("carol"))

		time.Sleep(60 * time.Millisecond)
		assert.True(t, limiter.Allow("carol"))
	})

	t.Run("reports remaining tokens", func(t *testing.T) {
		limiter := NewRateLimiter(5, time.Minute)

		assert.Equal(t, 5, limiter.Remaining("dave"))
		limiter.Allow("dave")
		limiter.Allow("dave")
		assert.Equal(t, 3, limiter.Remaining("dave"))
	})

	t.Run("admits exactly the limit under contention", func(t *testing.T) {
		limiter := NewRateLimiter(100, time.Minute)
		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0

		for i := 0; i < 150; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow("shared") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, 100, allowed)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("returns 429 once the limit is spent", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimit(NewRateLimiter(2, time.Minute)))
		router.GET("/projects", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		for i := 0; i < 2; i++ {
			w := rateLimitedRequest(router, "GET", "/projects", "")
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := rateLimitedRequest(router, "GET", "/projects", "")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "RATE_LIMIT_EXCEEDED")
	})

	t.Run("scopes the key to the authenticated user", func(t *testing.T) {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if userID := c.GetHeader("X-Test-User"); userID != "" {
				c.Set(JWTUserIDKey, userID)
			}
			c.Next()
		})
		router.Use(RateLimit(NewRateLimiter(1, time.Minute)))
		router.GET("/projects", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		send := func(userID string) int {
			req := httptest.NewRequest("GET", "/projects", nil)
			req.Header.Set("X-Test-User", userID)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w.Code
		}

		assert.Equal(t, http.StatusOK, send("user-1"))
		assert.Equal(t, http.StatusTooManyRequests, send("user-1"))
		assert.Equal(t, http.StatusOK, send("user-2"))
	})

	t.Run("exposes limit headers", func(t *testing.T) {
		router := gin.New()
		router.Use(RateLimit(NewRateLimiter(5, time.Minute)))
		router.GET("/projects", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		w := rateLimitedRequest(router, "GET", "/projects", "")
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
	})
}

func TestRateLimitByKey(t *testing.T) {
	router := gin.New()
	router.Use(RateLimitByKey(NewRateLimiter(1, time.Minute), func(c *gin.Context) string {
		return c.GetHeader("X-API-Key")
	}))
	router.GET("/projects", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	send := func(apiKey string) int {
		req := httptest.NewRequest("GET", "/projects", nil)
		req.Header.Set("X-API-Key", apiKey)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("key-1"))
	assert.Equal(t, http.StatusTooManyRequests, send("key-1"))
	assert.Equal(t, http.StatusOK, send("key-2"))
}

func TestAuthRateLimit(t *testing.T) {
	newLoginRouter := func(limit int) *gin.Engine {
		router := gin.New()
		router.Use(AuthRateLimit(NewRateLimiter(limit, time.Minute)))
		router.POST("/login", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
		return router
	}

	t.Run("blocks with an auth-specific error", func(t *testing.T) {
		router := newLoginRouter(3)

		for i := 0; i < 3; i++ {
			w := rateLimitedRequest(router, "POST", "/login", "192.168.1.100:12345")
			assert.Equal(t, http.StatusOK, w.Code, "attempt %d", i+1)
		}

		w := rateLimitedRequest(router, "POST", "/login", "192.168.1.100:12345")
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "AUTH_RATE_LIMIT_EXCEEDED")
		assert.Contains(t, w.Body.String(), "Too many authentication attempts")
	})

	t.Run("sets Retry-After when blocked", func(t *testing.T) {
		router := newLoginRouter(1)

		rateLimitedRequest(router, "POST", "/login", "192.168.1.100:12345")
		w := rateLimitedRequest(router, "POST", "/login", "192.168.1.100:12345")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})

	t.Run("limits each client IP separately", func(t *testing.T) {
		router := newLoginRouter(2)

		for i := 0; i < 2; i++ {
			w := rateLimitedRequest(router, "POST", "/login", "192.168.1.1:12345")
			assert.Equal(t, http.StatusOK, w.Code)
		}

		blocked := rateLimitedRequest(router, "POST", "/login", "192.168.1.1:12345")
		assert.Equal(t, http.StatusTooManyRequests, blocked.Code)

		other := rateLimitedRequest(router, "POST", "/login", "192.168.1.2:12345")
		assert.Equal(t, http.StatusOK, other.Code)
	})

	t.Run("isolates the login budget from the general limiter", func(t *testing.T) {
		router := gin.New()

		authGroup := router.Group("/auth")
		authGroup.Use(AuthRateLimit(NewRateLimiter(2, time.Minute)))
		authGroup.POST("/login", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})

		router.Use(RateLimit(NewRateLimiter(100, time.Minute)))
		router.GET("/api/projects", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"data": []string{}})
		})

		for i := 0; i < 2; i++ {
			w := rateLimitedRequest(router, "POST", "/auth/login", "192.168.1.100:12345")
			assert.Equal(t, http.StatusOK, w.Code)
		}

		blocked := rateLimitedRequest(router, "POST", "/auth/login", "192.168.1.100:12345")
		assert.Equal(t, http.StatusTooManyRequests, blocked.Code)

		// The general API budget for the same IP is untouched.
		api := rateLimitedRequest(router, "GET", "/api/projects", "192.168.1.100:12345")
		assert.Equal(t, http.StatusOK, api.Code)
	})
}
