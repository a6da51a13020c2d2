package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bookverse/bookverse-api/internal/domain"
)

// RevocationStore implements auth.RevocationStore as a Redis denylist:
// - revoked:<jti> -> "1" with TTL equal to the token's remaining life
// Entries self-evict once the original token would have expired anyway,
// so storage stays bounded. Membership test is the sole read API; it is
// consulted on every authenticated request, which is why this sits on
// Redis and not the database.
type RevocationStore struct {
	rdb    *goredis.Client
	prefix string
}

func NewRevocationStore(c *Client) *RevocationStore {
	var rdb *goredis.Client
	if c != nil {
		rdb = c.rdb
	}
	return &RevocationStore{
		rdb:    rdb,
		prefix: "revoked:",
	}
}

func (s *RevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	jti = strings.TrimSpace(jti)
	if jti == "" {
		return domain.ErrMissingField("jti")
	}
	if ttl <= 0 {
		// The token is already expired; no denylist entry needed.
		return nil
	}
	if s.rdb == nil {
		return errors.New("redis revocation store not configured")
	}

	if err := s.rdb.Set(ctx, s.prefix+jti, "1", ttl).Err(); err != nil {
		return domain.ErrRedisUnavailable(err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	jti = strings.TrimSpace(jti)
	if jti == "" {
		// tokens without a jti cannot be on the denylist
		return false, nil
	}
	if s.rdb == nil {
		return false, errors.New("redis revocation store not configured")
	}

	n, err := s.rdb.Exists(ctx, s.prefix+jti).Result()
	if err != nil {
		return false, domain.ErrRedisUnavailable(err)
	}
	return n > 0, nil
}
