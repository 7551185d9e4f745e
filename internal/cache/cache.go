// Package cache provides the read-through view cache used by the query side.
// A cache miss or failure never fails a request; the store stays authoritative.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Cache stores projections of type T by key.
type Cache[T any] interface {
	Get(ctx context.Context, key string) (*T, bool)
	Set(ctx context.Context, key string, value *T)
	Delete(ctx context.Context, key string)
}

// Nop is a Cache that never holds anything.
type Nop[T any] struct{}

func (Nop[T]) Get(context.Context, string) (*T, bool) { return nil, false }
func (Nop[T]) Set(context.Context, string, *T)        {}
func (Nop[T]) Delete(context.Context, string)         {}

// ViewCache is a JSON-backed Redis cache bound to a view type T.
// Keys are namespaced with prefix; ttl of 0 means no expiry.
type ViewCache[T any] struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration
	log    *slog.Logger
}

// NewViewCache creates a ViewCache backed by the provided Redis client.
func NewViewCache[T any](client *goredis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *ViewCache[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewCache[T]{client: client, prefix: prefix, ttl: ttl, log: logger}
}

// Dial parses a redis:// URL and verifies connectivity.
func Dial(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (c *ViewCache[T]) key(k string) string { return c.prefix + k }

// Get retrieves and unmarshals a value. Any miss or decode error is a miss.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("view cache read failed", "key", key, "err", err)
		}
		return nil, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.log.Warn("view cache decode failed", "key", key, "err", err)
		return nil, false
	}
	return &v, true
}

// Set marshals value and stores it under key. Failures are logged only.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("view cache encode failed", "key", key, "err", err)
		return
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		c.log.Warn("view cache write failed", "key", key, "err", err)
	}
}

// Delete evicts key.
func (c *ViewCache[T]) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		c.log.Warn("view cache delete failed", "key", key, "err", err)
	}
}

// Ready pings Redis; /readyz calls it.
func (c *ViewCache[T]) Ready(ctx context.Context) error { return c.client.Ping(ctx).Err() }
