package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	identityapp "github.com/projecthub/backend/internal/application/identity"
	projectapp "github.com/projecthub/backend/internal/application/project"
	"github.com/projecthub/backend/internal/infrastructure/auth"
	"github.com/projecthub/backend/internal/infrastructure/config"
	"github.com/projecthub/backend/internal/infrastructure/logger"
	"github.com/projecthub/backend/internal/infrastructure/persistence"
	"github.com/projecthub/backend/internal/infrastructure/storage"
	"github.com/projecthub/backend/internal/infrastructure/telemetry"
	"github.com/projecthub/backend/internal/interfaces/http/handler"
	"github.com/projecthub/backend/internal/interfaces/http/middleware"
	"github.com/projecthub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ProjectHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing (if enabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Database query tracing (if enabled)
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(cfg.Telemetry.DBLogFullSQL); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	taskRepo := persistence.NewGormTaskRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	commentRepo := persistence.NewGormCommentRepository(db.DB)
	timelineRepo := persistence.NewGormTimelineRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	uow := persistence.NewGormUnitOfWork(db.DB)

	// Token blacklist: Redis when available, in-memory fallback for
	// single-instance deployments
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		log.Info("Redis token blacklist connected",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port),
		)
	}

	// Object storage for document payloads
	var objectStorage projectapp.ObjectStorageService
	switch cfg.Storage.Provider {
	case "s3":
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		objectStorage = s3Storage
		log.Info("Object storage initialized",
			zap.String("provider", "s3"),
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("endpoint", cfg.Storage.Endpoint),
		)
	default:
		objectStorage = storage.NewStubObjectStorage()
		log.Warn("Using stub object storage, uploads are kept in memory only")
	}

	// Identity services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)

	// Project-context services
	projectService := projectapp.NewProjectService(projectRepo, userRepo, uow, log)
	taskService := projectapp.NewTaskService(taskRepo, projectRepo, userRepo, uow, log)
	documentService := projectapp.NewDocumentService(
		documentRepo, projectRepo, userRepo, objectStorage, uow,
		cfg.Storage.KeyPrefix, cfg.Storage.PresignExpiration, log,
	)
	commentService := projectapp.NewCommentService(commentRepo, taskRepo, projectRepo, userRepo, uow, log)
	timelineService := projectapp.NewTimelineService(timelineRepo, userRepo, log)
	notificationService := projectapp.NewNotificationService(notificationRepo, log)

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService, handler.WithRefreshCookie(handler.CookieOptions{
		Domain:   cfg.Cookie.Domain,
		Path:     cfg.Cookie.Path,
		Secure:   cfg.Cookie.Secure,
		SameSite: cfg.Cookie.SameSite,
	}))
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	documentHandler := handler.NewDocumentHandler(documentService)
	commentHandler := handler.NewCommentHandler(commentService)
	timelineHandler := handler.NewTimelineHandler(timelineService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register custom request validations
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - OpenTelemetry spans (if enabled)
	// 5. Security - Add security headers
	// 6. CORS - Handle cross-origin requests
	// 7. BodyLimit - Limit request body size
	// 8. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Apply JWT authentication middleware to API routes
	// Configure skip paths for public endpoints
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/ping",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Auth routes (register/login/refresh are public via skip paths).
	// The public token endpoints get a stricter per-IP limiter to slow
	// credential stuffing.
	authRoutes := router.NewDomainGroup("auth", "/auth")
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authGuard := middleware.AuthRateLimit(authLimiter)
		authRoutes.POST("/register", authGuard, authHandler.Register)
		authRoutes.POST("/login", authGuard, authHandler.Login)
		authRoutes.POST("/refresh", authGuard, authHandler.RefreshToken)
		log.Info("Auth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	} else {
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/refresh", authHandler.RefreshToken)
	}
	authRoutes.POST("/logout", authHandler.Logout)
	authRoutes.GET("/me", authHandler.GetCurrentUser)
	authRoutes.PUT("/password", authHandler.ChangePassword)

	// Project routes
	projectRoutes := router.NewDomainGroup("projects", "/projects")
	projectRoutes.POST("", projectHandler.Create)
	projectRoutes.GET("", projectHandler.List)
	projectRoutes.GET("/:id", projectHandler.GetByID)
	projectRoutes.PUT("/:id", projectHandler.Update)
	projectRoutes.DELETE("/:id", projectHandler.Delete)

	// Task routes
	taskRoutes := router.NewDomainGroup("tasks", "/tasks")
	taskRoutes.POST("", taskHandler.Create)
	taskRoutes.GET("", taskHandler.List)
	taskRoutes.GET("/:id", taskHandler.GetByID)
	taskRoutes.PUT("/:id", taskHandler.Update)
	taskRoutes.POST("/:id/assign", taskHandler.Assign)
	taskRoutes.DELETE("/:id", taskHandler.Delete)

	// Document routes
	documentRoutes := router.NewDomainGroup("documents", "/documents")
	documentRoutes.POST("", documentHandler.Upload)
	documentRoutes.GET("", documentHandler.List)
	documentRoutes.GET("/:id", documentHandler.GetByID)
	documentRoutes.PUT("/:id", documentHandler.Update)
	documentRoutes.DELETE("/:id", documentHandler.Delete)

	// Comment routes
	commentRoutes := router.NewDomainGroup("comments", "/comments")
	commentRoutes.POST("", commentHandler.Create)
	commentRoutes.GET("", commentHandler.List)
	commentRoutes.GET("/:id", commentHandler.GetByID)
	commentRoutes.PUT("/:id", commentHandler.Update)
	commentRoutes.DELETE("/:id", commentHandler.Delete)

	// Timeline routes (activity feed)
	timelineRoutes := router.NewDomainGroup("timeline", "/timeline")
	timelineRoutes.GET("", timelineHandler.List)

	// Notification routes
	notificationRoutes := router.NewDomainGroup("notifications", "/notifications")
	notificationRoutes.GET("", notificationHandler.List)
	notificationRoutes.GET("/unread_count", notificationHandler.UnreadCount)
	notificationRoutes.PUT("/:id/mark_read", notificationHandler.MarkRead)

	// Register all domain groups
	r.Register(authRoutes).
		Register(projectRoutes).
		Register(taskRoutes).
		Register(documentRoutes).
		Register(commentRoutes).
		Register(timelineRoutes).
		Register(notificationRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
