package redisad

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"renthub/internal/adapters/observability"
)

const cacheName = "redis"

// Cache stores search results as JSON blobs.
type Cache struct{ c *redis.Client }

func New(addr, pass string, db int) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (r *Cache) Ping(ctx context.Context) error {
	return errors.Wrap(r.c.Ping(ctx).Err(), "redis ping")
}

func (r *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveCache(cacheName, "miss")
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "redis get %s", key)
	}
	observability.ObserveCache(cacheName, "hit")
	return true, errors.Wrapf(json.Unmarshal(v, dst), "decode cached %s", key)
}

func (r *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}
	observability.ObserveCache(cacheName, "set")
	return errors.Wrapf(r.c.Set(ctx, key, b, time.Duration(ttlSec)*time.Second).Err(), "redis set %s", key)
}

func (r *Cache) Del(ctx context.Context, key string) error {
	observability.ObserveCache(cacheName, "del")
	return errors.Wrapf(r.c.Del(ctx, key).Err(), "redis del %s", key)
}

func (r *Cache) Close() error { return r.c.Close() }
