package domain

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// CacheKind identifies the fetch a cache entry was produced by.
type CacheKind string

const (
	CacheKindPostList   CacheKind = "list"
	CacheKindPostBySlug CacheKind = "slug"
)

// CacheKey is the identity of a cacheable post query.
type CacheKey struct {
	Kind  CacheKind
	Limit int
	Slug  string
}

func ListPostsKey(limit int) CacheKey {
	if limit < 0 {
		limit = 0
	}
	return CacheKey{Kind: CacheKindPostList, Limit: limit}
}

func PostBySlugKey(slug string) CacheKey {
	return CacheKey{Kind: CacheKindPostBySlug, Slug: slug}
}

// String renders the key deterministically.
//
// Example:
//
//	posts:list:limit=5
//	posts:list:limit=all
//	posts:slug:hello%2Fworld
func (k CacheKey) String() string {
	switch k.Kind {
	case CacheKindPostList:
		if k.Limit <= 0 {
			return "posts:list:limit=all"
		}
		return "posts:list:limit=" + strconv.Itoa(k.Limit)
	case CacheKindPostBySlug:
		return "posts:slug:" + url.PathEscape(k.Slug)
	default:
		return fmt.Sprintf("posts:%s", k.Kind)
	}
}

// CacheEntry is one memoised query result. Absent marks a query that found nothing.
type CacheEntry struct {
	Posts     []Post        `json:"posts,omitempty"`
	Post      *Post         `json:"post,omitempty"`
	Absent    bool          `json:"absent,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	TTL       time.Duration `json:"ttl"`
}

// Valid reports whether the entry is still inside its lifetime window.
func (e *CacheEntry) Valid(now time.Time) bool {
	return e != nil && now.Sub(e.CreatedAt) < e.TTL
}

// Cache defines the storage behind the read-through post cache
type Cache interface {
	// Get returns nil, nil on a miss
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores entry under key, replacing any previous entry
	Set(ctx context.Context, key string, entry *CacheEntry) error

	// Clear removes every entry
	Clear(ctx context.Context) error

	// Ping checks if the cache is available
	Ping(ctx context.Context) error
}
