package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultFaviconTTL is the default TTL for cached favicon resolutions (7 days)
	DefaultFaviconTTL = 7 * 24 * time.Hour
)

// Cache stores favicon resolutions in Redis.
// A nil Cache is valid and turns every operation into a no-op,
// so callers do not need to branch on whether Redis is configured.
type Cache struct {
	client *redis.Client
}

// NewCache creates a new favicon resolution cache
func NewCache(client *redis.Client) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client}
}

// CacheFavicon stores a host -> favicon URL resolution in cache
func (c *Cache) CacheFavicon(ctx context.Context, host, faviconURL string, ttl time.Duration) error {
	if c == nil {
		return nil
	}
	if err := c.client.Set(ctx, FaviconKey(host), faviconURL, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache favicon resolution: %w", err)
	}
	return nil
}

// GetCachedFavicon retrieves a cached favicon resolution.
// Returns "" on cache miss.
func (c *Cache) GetCachedFavicon(ctx context.Context, host string) (string, error) {
	if c == nil {
		return "", nil
	}
	faviconURL, err := c.client.Get(ctx, FaviconKey(host)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil // Cache miss
		}
		return "", fmt.Errorf("failed to get cached favicon: %w", err)
	}
	return faviconURL, nil
}

// InvalidateFavicon removes a cached favicon resolution
func (c *Cache) InvalidateFavicon(ctx context.Context, host string) error {
	if c == nil {
		return nil
	}
	if err := c.client.Del(ctx, FaviconKey(host)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate favicon cache: %w", err)
	}
	return nil
}

// FlushFavicons removes all cached favicon resolutions
func (c *Cache) FlushFavicons(ctx context.Context) error {
	if c == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, KeyPrefixFavicon+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete favicon key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush favicon cache: %w", err)
	}
	return nil
}
