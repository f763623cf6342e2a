package project

import (
	"context"
	"time"
)

// ObjectStorageService abstracts the blob store behind document operations.
// Implementations live in infrastructure/storage (S3-compatible backends and
// a stub for development).
type ObjectStorageService interface {
	// GenerateUploadURL returns a presigned URL the client can PUT the
	// payload to, plus its expiry.
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// GenerateDownloadURL returns a presigned URL for fetching the payload,
	// plus its expiry.
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)

	// Upload stores the payload directly, server side.
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// DeleteObject removes the payload.
	DeleteObject(ctx context.Context, storageKey string) error

	// ObjectExists reports whether the payload is present.
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}
