package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist is a process-wide revocation set keyed by raw token
// string. Entries expire with the token's natural expiry.
type TokenBlacklist interface {
	Add(ctx context.Context, token string, expiresAt time.Time) error
	Contains(ctx context.Context, token string) (bool, error)
}

// memoryBlacklist is a mutex-guarded in-memory set. Expired entries are
// pruned lazily on writes.
type memoryBlacklist struct {
	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewMemoryBlacklist builds the default single-process blacklist.
func NewMemoryBlacklist() TokenBlacklist {
	return &memoryBlacklist{entries: make(map[string]time.Time)}
}

func (b *memoryBlacklist) Add(_ context.Context, token string, expiresAt time.Time) error {
	now := time.Now()
	b.mu.Lock()
	defer b.mu.Unlock()
	for existing, exp := range b.entries {
		if exp.Before(now) {
			delete(b.entries, existing)
		}
	}
	b.entries[token] = expiresAt
	return nil
}

func (b *memoryBlacklist) Contains(_ context.Context, token string) (bool, error) {
	b.mu.RLock()
	expiresAt, ok := b.entries[token]
	b.mu.RUnlock()
	if !ok {
		return false, nil
	}
	// Entry outlived its token; it no longer needs to be denied explicitly,
	// expiry checking rejects the token anyway.
	if expiresAt.Before(time.Now()) {
		return false, nil
	}
	return true, nil
}

// redisBlacklist stores revoked tokens as Redis keys with a TTL equal to
// the time left until the token's natural expiry.
type redisBlacklist struct {
	client *redis.Client
	prefix string
}

// NewRedisBlacklist builds a Redis-backed blacklist.
func NewRedisBlacklist(client *redis.Client) TokenBlacklist {
	return &redisBlacklist{client: client, prefix: "auth:blacklist:"}
}

func (b *redisBlacklist) Add(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, b.prefix+token, "1", ttl).Err()
}

func (b *redisBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	count, err := b.client.Exists(ctx, b.prefix+token).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
