package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sp3dr4/folio/internal/domain"
	"github.com/sp3dr4/folio/internal/pkg/logging"
	"github.com/sp3dr4/folio/internal/pkg/metrics"
)

// DefaultCacheTTL is used when the configured lifetime is not positive.
const DefaultCacheTTL = 60 * time.Second

// DefaultFetchTimeout bounds a shared store fetch, which outlives the
// cancellation of the request that started it.
const DefaultFetchTimeout = 10 * time.Second

// PostQuery selects published posts. Limit <= 0 means no limit.
type PostQuery struct {
	Limit int
}

// FetchError reports a post read the data store could not serve.
// It is never cached.
type FetchError struct {
	Key string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Key, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// PostReader is the read-through cache in front of published post reads.
//
// Successful results, including "no such post", are kept for ttl. Store
// failures are returned as *FetchError and leave the cache untouched.
// Cache backend failures are logged and the read falls through to the store.
type PostReader struct {
	store   domain.PostRepository
	cache   domain.Cache
	ttl     time.Duration
	timeout time.Duration
	logger  *slog.Logger
	metrics metrics.Registry

	group singleflight.Group
	// bumped by ClearCache; fetches started under an older generation are not stored
	generation atomic.Uint64

	now func() time.Time
}

func NewPostReader(store domain.PostRepository, cache domain.Cache, ttl time.Duration, logger *slog.Logger, registry metrics.Registry) *PostReader {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	if registry == nil {
		registry = metrics.NewNoOpRegistry()
	}

	return &PostReader{
		store:   store,
		cache:   cache,
		ttl:     ttl,
		timeout: DefaultFetchTimeout,
		logger:  logger,
		metrics: registry,
		now:     time.Now,
	}
}

// TTL returns the lifetime applied to new entries.
func (r *PostReader) TTL() time.Duration {
	return r.ttl
}

// GetPosts returns published posts, newest first.
func (r *PostReader) GetPosts(ctx context.Context, q PostQuery) ([]domain.Post, error) {
	key := domain.ListPostsKey(q.Limit)

	entry, err := r.read(ctx, key, func(ctx context.Context) (*domain.CacheEntry, error) {
		posts, err := r.store.ListPublishedPosts(ctx, key.Limit)
		if err != nil {
			return nil, err
		}
		if posts == nil {
			posts = []domain.Post{}
		}
		return &domain.CacheEntry{Posts: posts}, nil
	})
	if err != nil {
		return nil, err
	}
	posts := make([]domain.Post, len(entry.Posts))
	for i := range entry.Posts {
		posts[i] = *entry.Posts[i].Clone()
	}
	return posts, nil
}

// GetPostBySlug returns the published post with slug, or nil, nil when
// there is none.
func (r *PostReader) GetPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, domain.ErrInvalidSlug
	}
	key := domain.PostBySlugKey(slug)

	entry, err := r.read(ctx, key, func(ctx context.Context) (*domain.CacheEntry, error) {
		post, err := r.store.FindPublishedPostBySlug(ctx, slug)
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.CacheEntry{Absent: true}, nil
		}
		if err != nil {
			return nil, err
		}
		return &domain.CacheEntry{Post: post}, nil
	})
	if err != nil {
		return nil, err
	}
	if entry.Absent {
		return nil, nil
	}
	return entry.Post.Clone(), nil
}

// ClearCache drops every entry so the next read of any key reaches the store.
func (r *PostReader) ClearCache(ctx context.Context) error {
	r.generation.Add(1)
	if err := r.cache.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear post cache: %w", err)
	}
	logging.FromContext(ctx).Debug("Post cache cleared")
	return nil
}

func (r *PostReader) read(ctx context.Context, key domain.CacheKey, fetch func(context.Context) (*domain.CacheEntry, error)) (*domain.CacheEntry, error) {
	keyStr := key.String()
	logger := logging.FromContext(ctx)

	if entry := r.lookup(ctx, logger, keyStr); entry != nil {
		r.metrics.RecordCacheLookup(string(key.Kind), true)
		return entry, nil
	}
	r.metrics.RecordCacheLookup(string(key.Kind), false)

	// Waiters share one fetch, detached from any caller's cancellation.
	gen := r.generation.Load()
	ch := r.group.DoChan(fmt.Sprintf("%d|%s", gen, keyStr), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()

		start := time.Now()
		entry, err := fetch(fetchCtx)
		r.metrics.RecordStoreFetch(string(key.Kind), time.Since(start).Seconds(), err)
		if err != nil {
			return nil, &FetchError{Key: keyStr, Err: err}
		}

		entry.CreatedAt = r.now()
		entry.TTL = r.ttl
		if r.generation.Load() == gen {
			if err := r.cache.Set(fetchCtx, keyStr, entry); err != nil {
				logger.Warn("Failed to store post cache entry", "key", keyStr, "error", err)
			}
		}
		return entry, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			logger.Error("Post fetch failed", "key", keyStr, "error", res.Err)
			return nil, res.Err
		}
		return res.Val.(*domain.CacheEntry), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *PostReader) lookup(ctx context.Context, logger *slog.Logger, key string) *domain.CacheEntry {
	entry, err := r.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("Post cache unavailable, reading from store", "key", key, "error", err)
		return nil
	}
	if !entry.Valid(r.now()) {
		return nil
	}
	return entry
}
