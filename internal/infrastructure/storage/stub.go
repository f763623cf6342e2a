// Package storage provides object storage implementations for document
// payloads.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	projectapp "github.com/projecthub/backend/internal/application/project"
)

// StubObjectStorage keeps payloads in memory. It backs development setups
// without an S3 endpoint and the document service tests. Generated URLs
// point at BaseURL and are not actually servable.
type StubObjectStorage struct {
	// BaseURL prefixes generated upload/download URLs.
	BaseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// NewStubObjectStorage creates an empty in-memory store.
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

var _ projectapp.ObjectStorageService = (*StubObjectStorage)(nil)

var errEmptyStorageKey = errors.New("storage key is required")

func (s *StubObjectStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errEmptyStorageKey
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/upload/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339), expiresAt, nil
}

func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errEmptyStorageKey
	}
	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339), expiresAt, nil
}

func (s *StubObjectStorage) Upload(_ context.Context, storageKey string, data []byte, _ string) error {
	if storageKey == "" {
		return errEmptyStorageKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = append([]byte(nil), data...)
	return nil
}

func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errEmptyStorageKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

func (s *StubObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errEmptyStorageKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}

// Object returns a stored payload for test assertions.
func (s *StubObjectStorage) Object(storageKey string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[storageKey]
	return data, ok
}
