package cache

import (
	"context"

	"github.com/sp3dr4/folio/internal/domain"
)

// NoOpCache never stores anything. Used when cache.enabled is false.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(_ context.Context, _ string) (*domain.CacheEntry, error) {
	return nil, nil
}

func (c *NoOpCache) Set(_ context.Context, _ string, _ *domain.CacheEntry) error {
	return nil
}

func (c *NoOpCache) Clear(_ context.Context) error {
	return nil
}

func (c *NoOpCache) Ping(_ context.Context) error {
	return nil
}
