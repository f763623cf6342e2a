package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newBodyLimitRouter(maxBytes int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(BodyLimit(maxBytes))
	router.POST("/documents", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusBadRequest, "body too large")
			return
		}
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestBodyLimitAcceptsSmallBody(t *testing.T) {
	router := newBodyLimitRouter(1024)

	req := httptest.NewRequest("POST", "/documents", strings.NewReader("small payload"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBodyLimitRejectsDeclaredOversize(t *testing.T) {
	router := newBodyLimitRouter(100)

	req := httptest.NewRequest("POST", "/documents", strings.NewReader(strings.Repeat("x", 200)))
	req.ContentLength = 200
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "REQUEST_TOO_LARGE")
}

func TestBodyLimitCapsStreamingBody(t *testing.T) {
	router := newBodyLimitRouter(50)

	// No declared length, so the pre-check passes and MaxBytesReader has
	// to stop the read.
	req := httptest.NewRequest("POST", "/documents", strings.NewReader(strings.Repeat("x", 100)))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBodyLimitIgnoresBodylessRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(BodyLimit(10))
	router.GET("/projects", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/projects", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
