// Package cache holds the Redis-backed like-count cache with an in-memory
// twin for environments without Redis.
package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// LikeCountCache caches live like-count aggregates per cartoon. A miss is
// not an error: callers fall through to the database.
type LikeCountCache interface {
	Get(ctx context.Context, cartoonID string) (int64, bool)
	Set(ctx context.Context, cartoonID string, count int64)
	Invalidate(ctx context.Context, cartoonID string)
}

const likeCountKeyPrefix = "cartoon:likes:"

type RedisLikeCountCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLikeCountCache(redisURL string, ttl time.Duration) (*RedisLikeCountCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisLikeCountCache{client: redis.NewClient(opts), ttl: ttl}, nil
}

func (c *RedisLikeCountCache) Get(ctx context.Context, cartoonID string) (int64, bool) {
	val, err := c.client.Get(ctx, likeCountKeyPrefix+cartoonID).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *RedisLikeCountCache) Set(ctx context.Context, cartoonID string, count int64) {
	c.client.Set(ctx, likeCountKeyPrefix+cartoonID, strconv.FormatInt(count, 10), c.ttl)
}

func (c *RedisLikeCountCache) Invalidate(ctx context.Context, cartoonID string) {
	c.client.Del(ctx, likeCountKeyPrefix+cartoonID)
}

// MemoryLikeCountCache is the Redis-free twin used in development and tests.
type MemoryLikeCountCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

type memoryEntry struct {
	count     int64
	expiresAt time.Time
}

func NewMemoryLikeCountCache(ttl time.Duration) *MemoryLikeCountCache {
	return &MemoryLikeCountCache{entries: make(map[string]memoryEntry), ttl: ttl}
}

func (c *MemoryLikeCountCache) Get(ctx context.Context, cartoonID string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[cartoonID]
	if !ok || time.Now().After(entry.expiresAt) {
		return 0, false
	}
	return entry.count, true
}

func (c *MemoryLikeCountCache) Set(ctx context.Context, cartoonID string, count int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cartoonID] = memoryEntry{count: count, expiresAt: time.Now().Add(c.ttl)}
}

func (c *MemoryLikeCountCache) Invalidate(ctx context.Context, cartoonID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cartoonID)
}
