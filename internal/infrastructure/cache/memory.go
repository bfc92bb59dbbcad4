package cache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/sp3dr4/folio/internal/domain"
)

// DefaultMaxEntries bounds the memory cache when no size is configured.
const DefaultMaxEntries = 1024

// MemoryCache keeps entries in a process-local LRU. Expired entries stay
// until evicted or overwritten; the reader decides validity.
type MemoryCache struct {
	entries *lru.Cache[string, *domain.CacheEntry]
}

func NewMemoryCache(maxEntries int) (*MemoryCache, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	entries, err := lru.New[string, *domain.CacheEntry](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &MemoryCache{entries: entries}, nil
}

func (c *MemoryCache) Get(_ context.Context, key string) (*domain.CacheEntry, error) {
	entry, ok := c.entries.Get(key)
	if !ok {
		return nil, nil
	}
	return entry, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, entry *domain.CacheEntry) error {
	if entry == nil {
		return fmt.Errorf("nil cache entry for key %s", key)
	}
	c.entries.Add(key, entry)
	return nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.entries.Purge()
	return nil
}

func (c *MemoryCache) Ping(_ context.Context) error {
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	return c.entries.Len()
}
