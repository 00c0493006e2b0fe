// Package cache stores rendered public statistics so anonymous page views do
// not recompute aggregates on every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrMiss is returned by GetJSON when the key is absent or expired
var ErrMiss = errors.New("cache miss")

// Cache is a byte-oriented key/value cache with TTLs
type Cache interface {
	// Get returns the cached value and whether it was found
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix removes every key starting with prefix
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// GetJSON reads key and decodes it into T
func GetJSON[T any](ctx context.Context, c Cache, key string) (*T, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrMiss
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		// Corrupted entries are dropped so the next read repopulates them
		_ = c.Delete(ctx, key)
		return nil, err
	}
	return &v, nil
}

// SetJSON encodes v and stores it under key
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
