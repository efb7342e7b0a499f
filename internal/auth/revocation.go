package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationKeyPrefix = "revoked:"

// RevocationStore tracks tokens invalidated before their natural expiry.
// Records carry a TTL equal to the token's remaining validity window, so
// they disappear exactly when the token would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type redisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore returns a Redis-backed store.
func NewRedisRevocationStore(client *redis.Client) RevocationStore {
	return &redisRevocationStore{client: client}
}

func (s *redisRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revocationKeyPrefix+token, "1", ttl).Err()
}

func (s *redisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := s.client.Get(ctx, revocationKeyPrefix+token).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type memoryRevocationStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
}

// NewMemoryRevocationStore returns a map-backed store for tests and
// redis-less development.
func NewMemoryRevocationStore() RevocationStore {
	return &memoryRevocationStore{expires: make(map[string]time.Time)}
}

func (s *memoryRevocationStore) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expires[token] = time.Now().Add(ttl)
	return nil
}

func (s *memoryRevocationStore) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline, ok := s.expires[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(s.expires, token)
		return false, nil
	}
	return true, nil
}
