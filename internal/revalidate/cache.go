package revalidate

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/powerise/corporate-site/pkg/logger"
)

// Cache holds rendered public pages keyed by request path. Entries live
// for a fixed revalidation interval (hourly by default) and are dropped
// eagerly whenever a write touches the content they were rendered from.
// This is a staleness-tolerant policy, not a consistency guarantee.
type Cache interface {
	Get(ctx context.Context, path string) (string, bool)
	Set(ctx context.Context, path, html string)
	Invalidate(ctx context.Context, paths ...string)
}

// RedisCache stores rendered pages in Redis under "page:<path>" with a
// TTL equal to the revalidation interval.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisCache{client: client, prefix: "page:", ttl: ttl}
}

func (c *RedisCache) key(path string) string { return c.prefix + path }

func (c *RedisCache) Get(ctx context.Context, path string) (string, bool) {
	v, err := c.client.Get(ctx, c.key(path)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warnf("page cache get %s: %v", path, err)
		}
		return "", false
	}
	return v, true
}

func (c *RedisCache) Set(ctx context.Context, path, html string) {
	if err := c.client.Set(ctx, c.key(path), html, c.ttl).Err(); err != nil {
		// a failed cache write only costs a re-render on the next request
		logger.Warnf("page cache set %s: %v", path, err)
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, paths ...string) {
	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = c.key(p)
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warnf("page cache invalidate %v: %v", paths, err)
	}
}

// MemoryCache is the single-process fallback used when Redis is not
// configured.
type MemoryCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	store map[string]memoryEntry
}

type memoryEntry struct {
	html      string
	expiresAt time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryCache{ttl: ttl, store: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(ctx context.Context, path string) (string, bool) {
	c.mu.RLock()
	e, ok := c.store[path]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.store, path)
		c.mu.Unlock()
		return "", false
	}
	return e.html, true
}

func (c *MemoryCache) Set(ctx context.Context, path, html string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[path] = memoryEntry{html: html, expiresAt: time.Now().Add(c.ttl)}
}

func (c *MemoryCache) Invalidate(ctx context.Context, paths ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range paths {
		delete(c.store, p)
	}
}
