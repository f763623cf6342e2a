package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorageRoundTrip(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()
	key := "documents/p1/report.pdf"

	exists, err := s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Upload(ctx, key, []byte("payload"), "application/pdf"))

	exists, err = s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	data, ok := s.Object(key)
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), data)

	require.NoError(t, s.DeleteObject(ctx, key))
	exists, err = s.ObjectExists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStubObjectStorageUploadCopiesData(t *testing.T) {
	s := NewStubObjectStorage()
	buf := []byte("original")
	require.NoError(t, s.Upload(context.Background(), "k", buf, "text/plain"))

	buf[0] = 'X'
	data, ok := s.Object("k")
	require.True(t, ok)
	assert.Equal(t, []byte("original"), data)
}

func TestStubObjectStoragePresignedURLs(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()

	upURL, upExpires, err := s.GenerateUploadURL(ctx, "documents/p1/a.png", "image/png", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, upURL, "https://storage.example.com/upload/documents/p1/a.png")
	assert.True(t, upExpires.After(time.Now()))

	dlURL, dlExpires, err := s.GenerateDownloadURL(ctx, "documents/p1/a.png", time.Hour)
	require.NoError(t, err)
	assert.Contains(t, dlURL, "https://storage.example.com/download/documents/p1/a.png")
	assert.True(t, dlExpires.After(time.Now()))
}

func TestStubObjectStorageRejectsEmptyKey(t *testing.T) {
	s := NewStubObjectStorage()
	ctx := context.Background()

	_, _, err := s.GenerateUploadURL(ctx, "", "image/png", time.Minute)
	assert.ErrorIs(t, err, errEmptyStorageKey)

	_, _, err = s.GenerateDownloadURL(ctx, "", time.Minute)
	assert.ErrorIs(t, err, errEmptyStorageKey)

	assert.ErrorIs(t, s.Upload(ctx, "", nil, ""), errEmptyStorageKey)
	assert.ErrorIs(t, s.DeleteObject(ctx, ""), errEmptyStorageKey)

	_, err = s.ObjectExists(ctx, "")
	assert.ErrorIs(t, err, errEmptyStorageKey)
}
