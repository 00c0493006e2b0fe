package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist revokes dashboard tokens before they expire.
// Single tokens are revoked by JTI on logout and refresh rotation. All sessions
// of an admin are revoked at once when the password changes or the account is
// deactivated or deleted.
type TokenBlacklist interface {
	// Revoke rejects the token with jti for ttl, normally its remaining lifetime
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	// IsRevoked reports whether jti was revoked
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// RevokeAdminSessions rejects every token of adminID issued before now.
	// ttl should cover the longest token lifetime.
	RevokeAdminSessions(ctx context.Context, adminID string, ttl time.Duration) error
	// IsSessionRevoked reports whether a token of adminID issued at issuedAt
	// predates a session revocation
	IsSessionRevoked(ctx context.Context, adminID string, issuedAt time.Time) (bool, error)
}

// issuedBefore compares at second precision, the precision of the iat claim.
// A token issued in the second of the revocation stays valid so that logging
// in again right after a password change works.
func issuedBefore(issuedAt time.Time, revokedAt int64) bool {
	return issuedAt.Unix() < revokedAt
}

// RedisTokenBlacklist stores revocations in Redis so they are shared by all
// instances and survive restarts
type RedisTokenBlacklist struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisTokenBlacklist creates a blacklist on client. Keys live under
// keyPrefix + "auth:".
func NewRedisTokenBlacklist(client redis.UniversalClient, keyPrefix string) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client, prefix: keyPrefix + "auth:"}
}

func (b *RedisTokenBlacklist) tokenKey(jti string) string {
	return b.prefix + "revoked:" + jti
}

func (b *RedisTokenBlacklist) adminKey(adminID string) string {
	return b.prefix + "sessions:" + adminID
}

// Revoke implements TokenBlacklist
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, b.tokenKey(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked implements TokenBlacklist
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, b.tokenKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revoked token: %w", err)
	}
	return n > 0, nil
}

// RevokeAdminSessions implements TokenBlacklist
func (b *RedisTokenBlacklist) RevokeAdminSessions(ctx context.Context, adminID string, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.adminKey(adminID), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke admin sessions: %w", err)
	}
	return nil
}

// IsSessionRevoked implements TokenBlacklist
func (b *RedisTokenBlacklist) IsSessionRevoked(ctx context.Context, adminID string, issuedAt time.Time) (bool, error) {
	raw, err := b.client.Get(ctx, b.adminKey(adminID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check admin sessions: %w", err)
	}
	revokedAt, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("invalid session revocation timestamp %q: %w", raw, err)
	}
	return issuedBefore(issuedAt, revokedAt), nil
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

type revocation struct {
	at        int64 // unix seconds, used for admin sessions
	expiresAt time.Time
}

// InMemoryTokenBlacklist is used when Redis is disabled. Revocations are
// lost on restart and are not shared between instances.
type InMemoryTokenBlacklist struct {
	mu      sync.Mutex
	tokens  map[string]revocation
	admins  map[string]revocation
	now     func() time.Time
	purgeAt time.Time
}

// NewInMemoryTokenBlacklist creates an empty in-memory blacklist
func NewInMemoryTokenBlacklist() *InMemoryTokenBlacklist {
	return &InMemoryTokenBlacklist{
		tokens: make(map[string]revocation),
		admins: make(map[string]revocation),
		now:    time.Now,
	}
}

// Revoke implements TokenBlacklist
func (b *InMemoryTokenBlacklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	b.purge(now)
	b.tokens[jti] = revocation{expiresAt: now.Add(ttl)}
	return nil
}

// IsRevoked implements TokenBlacklist
func (b *InMemoryTokenBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.tokens[jti]
	return ok && b.now().Before(r.expiresAt), nil
}

// RevokeAdminSessions implements TokenBlacklist
func (b *InMemoryTokenBlacklist) RevokeAdminSessions(_ context.Context, adminID string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.now()
	b.purge(now)
	b.admins[adminID] = revocation{at: now.Unix(), expiresAt: now.Add(ttl)}
	return nil
}

// IsSessionRevoked implements TokenBlacklist
func (b *InMemoryTokenBlacklist) IsSessionRevoked(_ context.Context, adminID string, issuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.admins[adminID]
	if !ok || !b.now().Before(r.expiresAt) {
		return false, nil
	}
	return issuedBefore(issuedAt, r.at), nil
}

// purge drops expired entries at most once a minute. Callers hold mu.
func (b *InMemoryTokenBlacklist) purge(now time.Time) {
	if now.Before(b.purgeAt) {
		return
	}
	b.purgeAt = now.Add(time.Minute)
	for k, r := range b.tokens {
		if !now.Before(r.expiresAt) {
			delete(b.tokens, k)
		}
	}
	for k, r := range b.admins {
		if !now.Before(r.expiresAt) {
			delete(b.admins, k)
		}
	}
}

// Len returns the number of live revocations
func (b *InMemoryTokenBlacklist) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.purgeAt = time.Time{}
	b.purge(b.now())
	return len(b.tokens) + len(b.admins)
}

var _ TokenBlacklist = (*InMemoryTokenBlacklist)(nil)
