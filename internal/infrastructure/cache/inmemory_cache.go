package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryCache implements Cache in process memory. It is used when Redis is
// disabled or unreachable, and in tests.
type InMemoryCache struct {
	entries  sync.Map // map[string]*cacheEntry
	logger   *zap.Logger
	stopCh   chan struct{}
	stopOnce sync.Once

	hits   int64
	misses int64
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e *cacheEntry) isExpired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// NewInMemoryCache creates an in-memory cache and starts its cleanup goroutine.
// Close must be called to stop it.
func NewInMemoryCache(logger *zap.Logger) *InMemoryCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &InMemoryCache{
		logger: logger,
		stopCh: make(chan struct{}),
	}
	go c.cleanupExpired()
	return c
}

// Get retrieves a value
func (c *InMemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if value, ok := c.entries.Load(key); ok {
		entry := value.(*cacheEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			return entry.value, true, nil
		}
		c.entries.Delete(key)
	}
	atomic.AddInt64(&c.misses, 1)
	return nil, false, nil
}

// Set stores a value. A zero ttl never expires.
func (c *InMemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := &cacheEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.entries.Store(key, entry)
	return nil
}

// Delete removes a key
func (c *InMemoryCache) Delete(_ context.Context, key string) error {
	c.entries.Delete(key)
	return nil
}

// DeletePrefix removes every key starting with prefix
func (c *InMemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.entries.Range(func(key, _ any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.entries.Delete(key)
		}
		return true
	})
	return nil
}

// Close stops the cleanup goroutine
func (c *InMemoryCache) Close() error {
	c.stopOnce.Do(func() { close(c.stopCh) })
	return nil
}

// Stats returns hit and miss counters
func (c *InMemoryCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

func (c *InMemoryCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			removed := 0
			c.entries.Range(func(key, value any) bool {
				if value.(*cacheEntry).isExpired() {
					c.entries.Delete(key)
					removed++
				}
				return true
			})
			if removed > 0 {
				c.logger.Debug("Cleaned up expired cache entries", zap.Int("removed", removed))
			}
		}
	}
}

// Ensure InMemoryCache implements Cache
var _ Cache = (*InMemoryCache)(nil)
