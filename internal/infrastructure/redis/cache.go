package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Cache is a small JSON cache on top of Redis, used best-effort for hot
// book reads. A cache failure is never a request failure.
type Cache struct {
	rdb *goredis.Client
}

func NewCache(c *Client) *Cache {
	var rdb *goredis.Client
	if c != nil {
		rdb = c.rdb
	}
	return &Cache{rdb: rdb}
}

// Get unmarshals the cached value into dst. Returns found=false on a miss.
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.rdb == nil {
		return false, nil
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, ttl).Err()
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if c.rdb == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}
