package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func echo(body string, status int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(status, body)
	}
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouterDefaults(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterMountsUnderVersionedPrefix(t *testing.T) {
	engine := gin.New()

	group := NewDomainGroup("health", "/health")
	group.GET("/ping", echo("pong", http.StatusOK))

	NewRouter(engine).Register(group).Setup()

	w := serve(engine, "GET", "/api/v1/health/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterAppliesGroupMiddleware(t *testing.T) {
	engine := gin.New()

	group := NewDomainGroup("projects", "/projects")
	group.GET("", echo("list", http.StatusOK))

	NewRouter(engine).
		Use(func(c *gin.Context) {
			c.Header("X-API-Scope", "versioned")
			c.Next()
		}).
		Register(group).
		Setup()

	w := serve(engine, "GET", "/api/v1/projects")
	assert.Equal(t, "versioned", w.Header().Get("X-API-Scope"))
}

func TestDomainGroupMethods(t *testing.T) {
	methods := []string{"GET", "POST", "PUT", "PATCH", "DELETE"}

	engine := gin.New()
	group := NewDomainGroup("tasks", "/tasks")
	group.GET("/:id", echo("get", http.StatusOK))
	group.POST("", echo("post", http.StatusCreated))
	group.PUT("/:id", echo("put", http.StatusOK))
	group.PATCH("/:id/status", echo("patch", http.StatusOK))
	group.DELETE("/:id", echo("", http.StatusNoContent))

	api := engine.Group("/api/v1")
	group.RegisterRoutes(api)

	paths := map[string]string{
		"GET":    "/api/v1/tasks/42",
		"POST":   "/api/v1/tasks",
		"PUT":    "/api/v1/tasks/42",
		"PATCH":  "/api/v1/tasks/42/status",
		"DELETE": "/api/v1/tasks/42",
	}

	for _, method := range methods {
		w := serve(engine, method, paths[method])
		assert.Less(t, w.Code, 300, "%s %s", method, paths[method])
		assert.NotEqual(t, http.StatusNotFound, w.Code)
	}
}

func TestDomainGroupMiddleware(t *testing.T) {
	engine := gin.New()

	group := NewDomainGroup("documents", "/documents")
	group.Use(func(c *gin.Context) {
		c.Header("X-Scoped", "documents")
		c.Next()
	})
	group.GET("", echo("ok", http.StatusOK))

	other := NewDomainGroup("comments", "/comments")
	other.GET("", echo("ok", http.StatusOK))

	api := engine.Group("/api/v1")
	group.RegisterRoutes(api)
	other.RegisterRoutes(api)

	w := serve(engine, "GET", "/api/v1/documents")
	assert.Equal(t, "documents", w.Header().Get("X-Scoped"))

	// Middleware stays scoped to its own group.
	w = serve(engine, "GET", "/api/v1/comments")
	assert.Empty(t, w.Header().Get("X-Scoped"))
}

func TestDomainGroupSubgroups(t *testing.T) {
	engine := gin.New()

	projects := NewDomainGroup("projects", "/projects")
	tasks := projects.Group("tasks", "/:id/tasks")
	tasks.GET("", echo("task list", http.StatusOK))

	api := engine.Group("/api/v1")
	projects.RegisterRoutes(api)

	w := serve(engine, "GET", "/api/v1/projects/p1/tasks")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "task list", w.Body.String())

	assert.Equal(t, "projects", projects.Name())
	assert.Equal(t, "tasks", tasks.Name())
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()

	projects := NewDomainGroup("projects", "/projects")
	projects.GET("", echo("projects", http.StatusOK))

	notifications := NewDomainGroup("notifications", "/notifications")
	notifications.GET("", echo("notifications", http.StatusOK))

	NewRouter(engine).Register(projects).Register(notifications).Setup()

	w := serve(engine, "GET", "/api/v1/projects")
	assert.Equal(t, "projects", w.Body.String())

	w = serve(engine, "GET", "/api/v1/notifications")
	assert.Equal(t, "notifications", w.Body.String())
}

func TestDomainGroupChaining(t *testing.T) {
	engine := gin.New()

	group := NewDomainGroup("timeline", "/timeline").
		GET("/a", echo("a", http.StatusOK)).
		POST("/b", echo("b", http.StatusOK)).
		PUT("/c", echo("c", http.StatusOK))

	NewRouter(engine).Register(group).Setup()

	for _, tt := range []struct{ method, path string }{
		{"GET", "/api/v1/timeline/a"},
		{"POST", "/api/v1/timeline/b"},
		{"PUT", "/api/v1/timeline/c"},
	} {
		w := serve(engine, tt.method, tt.path)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
	}
}
