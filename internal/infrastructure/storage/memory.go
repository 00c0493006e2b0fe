package storage

import (
	"context"
	"strings"
	"sync"

	mediaapp "github.com/laiyolobaru/backend/internal/application/media"
)

// MemoryObjectStorage keeps objects in process memory.
// It is used when S3 is disabled (local development) and in tests.
type MemoryObjectStorage struct {
	// BaseURL is prepended to keys by PublicURL
	BaseURL string

	mu      sync.RWMutex
	objects map[string]StoredObject
}

// StoredObject is an object held by MemoryObjectStorage
type StoredObject struct {
	Data        []byte
	ContentType string
}

// NewMemoryObjectStorage creates an empty in-memory storage
func NewMemoryObjectStorage(baseURL string) *MemoryObjectStorage {
	if baseURL == "" {
		baseURL = "http://localhost:8080/media"
	}
	return &MemoryObjectStorage{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		objects: make(map[string]StoredObject),
	}
}

// Ensure MemoryObjectStorage implements ObjectStorage
var _ mediaapp.ObjectStorage = (*MemoryObjectStorage)(nil)

// Upload stores a copy of data
func (s *MemoryObjectStorage) Upload(_ context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = StoredObject{Data: append([]byte(nil), data...), ContentType: contentType}
	return nil
}

// DeleteObject removes key. Deleting a missing key succeeds.
func (s *MemoryObjectStorage) DeleteObject(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// ObjectExists reports whether key is stored
func (s *MemoryObjectStorage) ObjectExists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// Get returns a stored object
func (s *MemoryObjectStorage) Get(key string) (StoredObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}

// PublicURL returns BaseURL/key
func (s *MemoryObjectStorage) PublicURL(key string) string {
	return s.BaseURL + "/" + strings.TrimPrefix(key, "/")
}
