package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func findEntry(logs []observer.LoggedEntry, msg string) *observer.LoggedEntry {
	for i := range logs {
		if logs[i].Message == msg {
			return &logs[i]
		}
	}
	return nil
}

func fieldByKey(entry *observer.LoggedEntry, key string) (zapcore.Field, bool) {
	for _, f := range entry.Context {
		if f.Key == key {
			return f, true
		}
	}
	return zapcore.Field{}, false
}

func TestGinMiddlewareLogLevels(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"2xx logs info", http.StatusOK, zapcore.InfoLevel},
		{"4xx logs warn", http.StatusNotFound, zapcore.WarnLevel},
		{"5xx logs error", http.StatusBadGateway, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.InfoLevel)

			router := gin.New()
			router.Use(GinMiddleware(zap.New(core)))
			router.GET("/projects", func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/projects", nil))

			entry := findEntry(recorded.All(), "HTTP Request")
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry.Level)
		})
	}
}

func TestGinMiddlewareRequestFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-123")
		c.Set("jwt_user_id", "user-456")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/tasks", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tasks?project=p1&page=2", nil)
	req.Header.Set("User-Agent", "projecthub-cli/1.0")
	router.ServeHTTP(w, req)

	entry := findEntry(recorded.All(), "HTTP Request")
	require.NotNil(t, entry)

	reqID, ok := fieldByKey(entry, "request_id")
	require.True(t, ok)
	assert.Equal(t, "req-123", reqID.String)

	userID, ok := fieldByKey(entry, "user_id")
	require.True(t, ok)
	assert.Equal(t, "user-456", userID.String)

	query, ok := fieldByKey(entry, "query")
	require.True(t, ok)
	assert.Contains(t, query.String, "project=p1")

	for _, key := range []string{"status", "latency", "client_ip", "user_agent", "method", "path"} {
		_, ok := fieldByKey(entry, key)
		assert.True(t, ok, "missing field %s", key)
	}
}

func TestGinMiddlewareAnonymousRequestOmitsUserID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))

	entry := findEntry(recorded.All(), "HTTP Request")
	require.NotNil(t, entry)
	_, ok := fieldByKey(entry, "user_id")
	assert.False(t, ok)
}

func TestRecovery(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest("GET", "/panic", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	logs := recorded.All()
	require.NotEmpty(t, logs)
	assert.Equal(t, "Panic recovered", logs[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)

	var got *zap.Logger
	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/test", func(c *gin.Context) {
		got = GetGinLogger(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
	assert.NotNil(t, got)
}

func TestGetGinLoggerWithoutMiddleware(t *testing.T) {
	var got *zap.Logger
	router := gin.New()
	router.GET("/test", func(c *gin.Context) {
		got = GetGinLogger(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

	require.NotNil(t, got)
	assert.NotPanics(t, func() { got.Info("noop") })
}
