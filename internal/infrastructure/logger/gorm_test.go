package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func TestNewGormLoggerDefaults(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Info)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	assert.Equal(t, 200*time.Millisecond, gl.slowThreshold)
	assert.True(t, gl.ignoreRecordNotFoundError)
}

func TestGormLoggerOptions(t *testing.T) {
	gl, _ := newObservedGormLogger(
		gormlogger.Info,
		WithSlowThreshold(500*time.Millisecond),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, 500*time.Millisecond, gl.slowThreshold)
	assert.False(t, gl.ignoreRecordNotFoundError)
}

func TestGormLoggerLogModeCopies(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Info)

	lowered := gl.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gl.logLevel)
	clone, ok := lowered.(*GormLogger)
	require.True(t, ok)
	assert.Equal(t, gormlogger.Warn, clone.logLevel)
}

func TestGormLoggerLevelGates(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Silent)
	gl.Info(context.Background(), "suppressed")
	gl.Warn(context.Background(), "suppressed")
	gl.Error(context.Background(), "suppressed")
	assert.Empty(t, recorded.All())

	gl, recorded = newObservedGormLogger(gormlogger.Info)
	gl.Info(context.Background(), "migrating %s", "tasks")
	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0].Message, "migrating tasks")
}

func TestGormLoggerTrace(t *testing.T) {
	query := func() (string, int64) {
		return "SELECT * FROM projects WHERE created_by = ?", 3
	}

	t.Run("error logs SQL Error", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Error)
		gl.Trace(context.Background(), time.Now(), query, errors.New("connection reset"))

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL Error", logs[0].Message)
		assert.Equal(t, zapcore.ErrorLevel, logs[0].Level)
	})

	t.Run("record not found is ignored by default", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Error)
		gl.Trace(context.Background(), time.Now(), query, gormlogger.ErrRecordNotFound)
		assert.Empty(t, recorded.All())
	})

	t.Run("record not found logged when not ignored", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Error, WithIgnoreRecordNotFoundError(false))
		gl.Trace(context.Background(), time.Now(), query, gormlogger.ErrRecordNotFound)
		assert.Len(t, recorded.All(), 1)
	})

	t.Run("slow query logs at warn", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))
		gl.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Contains(t, logs[0].Message, "SLOW SQL")
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	})

	t.Run("normal query logs at debug", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Info)
		gl.Trace(context.Background(), time.Now(), query, nil)

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SQL Query", logs[0].Message)
		assert.Equal(t, zapcore.DebugLevel, logs[0].Level)
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Silent)
		gl.Trace(context.Background(), time.Now(), query, nil)
		assert.Empty(t, recorded.All())
	})
}

func TestGormLoggerTracePropagatesRequestID(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Info)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
	gl.Trace(ctx, time.Now(), func() (string, int64) {
		return "SELECT 1", 1
	}, nil)

	logs := recorded.All()
	require.Len(t, logs, 1)

	found := false
	for _, f := range logs[0].Context {
		if f.Key == "request_id" {
			found = true
			assert.Equal(t, "req-42", f.String)
		}
	}
	assert.True(t, found)
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"bogus", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, MapGormLogLevel(tt.level), tt.level)
	}
}
