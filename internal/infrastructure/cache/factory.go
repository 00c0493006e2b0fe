package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/laiyolobaru/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient creates a Redis client and verifies the connection
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr(), err)
	}
	return client, nil
}

// Backend bundles the cache with the Redis client it may be built on
type Backend struct {
	Cache  Cache
	Client *redis.Client // nil when running in memory
}

// Close releases the cache and the Redis client
func (b *Backend) Close() error {
	if err := b.Cache.Close(); err != nil {
		return err
	}
	if b.Client != nil {
		return b.Client.Close()
	}
	return nil
}

// NewBackend connects to Redis when it is enabled and falls back to an
// in-memory cache when it is disabled or unreachable.
func NewBackend(ctx context.Context, redisCfg config.RedisConfig, cacheCfg config.CacheConfig, logger *zap.Logger) *Backend {
	if !redisCfg.Enabled {
		logger.Info("Redis disabled, using in-memory cache")
		return &Backend{Cache: NewInMemoryCache(logger)}
	}

	client, err := NewRedisClient(ctx, redisCfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory cache. "+
			"Cached statistics and token revocations will not be shared between instances.",
			zap.Error(err))
		return &Backend{Cache: NewInMemoryCache(logger)}
	}

	logger.Info("Using Redis cache", zap.String("addr", redisCfg.Addr()))
	return &Backend{
		Cache:  NewRedisCache(client, cacheCfg.KeyPrefix, logger),
		Client: client,
	}
}
