package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/sp3dr4/folio/internal/domain"
)

const (
	keyPrefix      = "folio:cache:"
	clearBatchSize = 100
)

type Cache struct {
	client *redis.Client
	logger *slog.Logger
}

func NewCache(client *redis.Client, logger *slog.Logger) *Cache {
	return &Cache{
		client: client,
		logger: logger,
	}
}

func (c *Cache) Get(ctx context.Context, key string) (*domain.CacheEntry, error) {
	redisKey := c.buildKey(key)

	val, err := c.client.Get(ctx, redisKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		c.logger.Error("Failed to get from cache", "key", redisKey, "error", err)
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	var entry domain.CacheEntry
	if err := json.Unmarshal(val, &entry); err != nil {
		c.logger.Error("Failed to unmarshal cached entry", "key", redisKey, "error", err)
		return nil, fmt.Errorf("failed to unmarshal cached entry: %w", err)
	}

	return &entry, nil
}

// Set stores the entry with a redis TTL equal to the entry lifetime, so
// expired entries disappear server side as well.
func (c *Cache) Set(ctx context.Context, key string, entry *domain.CacheEntry) error {
	if entry == nil {
		return fmt.Errorf("nil cache entry for key %s", key)
	}
	if entry.TTL <= 0 {
		return nil
	}

	redisKey := c.buildKey(key)
	data, err := json.Marshal(entry)
	if err != nil {
		c.logger.Error("Failed to marshal cache entry", "key", redisKey, "error", err)
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := c.client.Set(ctx, redisKey, data, entry.TTL).Err(); err != nil {
		c.logger.Error("Failed to set cache", "key", redisKey, "error", err)
		return fmt.Errorf("cache set failed: %w", err)
	}

	return nil
}

func (c *Cache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", clearBatchSize).Iterator()

	batch := make([]string, 0, clearBatchSize)
	deleted := 0
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == clearBatchSize {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("cache clear failed: %w", err)
			}
			deleted += len(batch)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Error("Failed to scan cache keys", "error", err)
		return fmt.Errorf("cache scan failed: %w", err)
	}

	if len(batch) > 0 {
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("cache clear failed: %w", err)
		}
		deleted += len(batch)
	}

	c.logger.Debug("Cache cleared", "deleted", deleted)
	return nil
}

func (c *Cache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		c.logger.Error("Failed to ping Redis", "error", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *Cache) buildKey(key string) string {
	return keyPrefix + key
}
