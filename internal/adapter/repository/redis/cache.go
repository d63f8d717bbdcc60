package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "fieldops:cache:"

// Cache is a thin TTL cache for derived reads such as dashboard summaries.
type Cache struct {
	client *redis.Client
}

// NewCache creates a new Cache.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, cacheKeyPrefix+key).Result()
}

func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, cacheKeyPrefix+key, value, ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, cacheKeyPrefix+key).Err()
}
