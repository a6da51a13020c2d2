package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bookverse/bookverse-api/internal/domain"
)

// RevocationStore is an in-process denylist with lazy TTL eviction.
// Used in dev when Redis is unavailable, and by unit tests.
type RevocationStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time // jti -> expiry
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{entries: make(map[string]time.Time)}
}

func (s *RevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return domain.ErrMissingField("jti")
	}
	if ttl <= 0 {
		// The token is already expired; no denylist entry needed.
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[jti] = time.Now().Add(ttl)
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}

	s.mu.RLock()
	exp, ok := s.entries[jti]
	s.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		s.mu.Lock()
		delete(s.entries, jti)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}
