package storage

import (
	"context"
	"testing"
	"time"

	"github.com/projecthub/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func validStorageConfig() *config.StorageConfig {
	return &config.StorageConfig{
		Bucket:            "projecthub-documents",
		AccessKey:         "test-key",
		SecretKey:         "test-secret",
		Region:            "us-east-1",
		Endpoint:          "http://localhost:9000",
		UsePathStyle:      true,
		PresignExpiration: 15 * time.Minute,
	}
}

func TestNewS3ObjectStorageValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.StorageConfig)
		wantErr string
	}{
		{"missing bucket", func(c *config.StorageConfig) { c.Bucket = "" }, "bucket is required"},
		{"missing access key", func(c *config.StorageConfig) { c.AccessKey = "" }, "access key is required"},
		{"missing secret key", func(c *config.StorageConfig) { c.SecretKey = "" }, "secret key is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validStorageConfig()
			tt.mutate(cfg)
			_, err := NewS3ObjectStorage(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("nil config", func(t *testing.T) {
		_, err := NewS3ObjectStorage(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("valid config", func(t *testing.T) {
		store, err := NewS3ObjectStorage(validStorageConfig())
		require.NoError(t, err)
		assert.Equal(t, "projecthub-documents", store.GetBucket())
		assert.Equal(t, 15*time.Minute, store.presignExpiration)
	})
}

func TestNewS3ObjectStorageDefaults(t *testing.T) {
	cfg := validStorageConfig()
	cfg.Region = ""
	cfg.Endpoint = ""
	cfg.PresignExpiration = 0

	store, err := NewS3ObjectStorage(cfg)
	require.NoError(t, err)
	assert.Equal(t, defaultPresignExpiration, store.presignExpiration)
}

func TestResolveEndpointSchemes(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		useSSL   bool
		expected string
	}{
		{"explicit http kept", "http://minio:9000", true, "http://minio:9000"},
		{"bare host gets http", "minio:9000", false, "http://minio:9000"},
		{"bare host gets https with SSL", "minio:9000", true, "https://minio:9000"},
		{"empty defaults to localhost", "", false, "http://localhost:9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validStorageConfig()
			cfg.Endpoint = tt.endpoint
			cfg.UseSSL = tt.useSSL

			endpoint, err := resolveEndpoint(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, endpoint)
		})
	}
}

func TestS3ObjectStorageOptions(t *testing.T) {
	store, err := NewS3ObjectStorage(validStorageConfig(),
		WithLogger(zaptest.NewLogger(t)),
		WithPresignExpiration(time.Hour),
	)
	require.NoError(t, err)
	assert.NotNil(t, store.logger)
	assert.Equal(t, time.Hour, store.presignExpiration)
}

func TestS3ObjectStoragePresignURLs(t *testing.T) {
	store, err := NewS3ObjectStorage(validStorageConfig())
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("upload URL", func(t *testing.T) {
		url, expiresAt, err := store.GenerateUploadURL(ctx, "documents/p1/a.jpg", "image/jpeg", 15*time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "localhost:9000")
		assert.Contains(t, url, "projecthub-documents")
		assert.True(t, expiresAt.After(time.Now()))
		assert.True(t, expiresAt.Before(time.Now().Add(16*time.Minute)))
	})

	t.Run("download URL", func(t *testing.T) {
		url, expiresAt, err := store.GenerateDownloadURL(ctx, "documents/p1/a.jpg", time.Hour)
		require.NoError(t, err)
		assert.Contains(t, url, "localhost:9000")
		assert.Contains(t, url, "projecthub-documents")
		assert.True(t, expiresAt.After(time.Now()))
	})

	t.Run("zero expiry falls back to default", func(t *testing.T) {
		url, expiresAt, err := store.GenerateUploadURL(ctx, "documents/p1/a.jpg", "image/jpeg", 0)
		require.NoError(t, err)
		assert.NotEmpty(t, url)
		assert.True(t, expiresAt.After(time.Now()))
	})
}

func TestS3ObjectStorageEmptyKeyRejected(t *testing.T) {
	store, err := NewS3ObjectStorage(validStorageConfig())
	require.NoError(t, err)
	ctx := context.Background()

	_, _, err = store.GenerateUploadURL(ctx, "", "image/jpeg", time.Minute)
	assert.ErrorIs(t, err, errEmptyStorageKey)

	_, _, err = store.GenerateDownloadURL(ctx, "", time.Minute)
	assert.ErrorIs(t, err, errEmptyStorageKey)

	assert.ErrorIs(t, store.Upload(ctx, "", []byte("x"), "text/plain"), errEmptyStorageKey)
	assert.ErrorIs(t, store.DeleteObject(ctx, ""), errEmptyStorageKey)

	exists, err := store.ObjectExists(ctx, "")
	assert.ErrorIs(t, err, errEmptyStorageKey)
	assert.False(t, exists)
}
