package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	// LoggerKey carries the request-scoped logger.
	LoggerKey contextKey = "logger"
	// RequestIDKey carries the request id assigned by the HTTP layer.
	RequestIDKey contextKey = "request_id"
	// UserIDKey carries the authenticated user's id.
	UserIDKey contextKey = "user_id"
)

// WithContext attaches a logger to the context.
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext returns the attached logger, or a nop logger so callers
// never have to nil-check.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID stores the request id and returns a logger that includes
// it on every entry. The enriched logger replaces any logger already in
// the context.
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, RequestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// WithUserID stores the authenticated user id the same way. The JWT
// middleware calls this once the token is verified.
func WithUserID(ctx context.Context, logger *zap.Logger, userID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	enriched := logger.With(zap.String("user_id", userID))
	return WithContext(ctx, enriched), enriched
}

// GetRequestID reads the request id back out; the gorm logger uses it to
// correlate SQL logs with HTTP logs.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// GetUserID reads the authenticated user id, or empty for anonymous
// contexts.
func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}
