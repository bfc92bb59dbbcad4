package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrSlugExists  = errors.New("slug already exists")
	ErrInvalidSlug = errors.New("invalid slug")
	ErrValidation  = errors.New("validation failed")
)

type Post struct {
	ID          string     `db:"id" json:"id"`
	Slug        string     `db:"slug" json:"slug"`
	Title       string     `db:"title" json:"title"`
	Content     string     `db:"content" json:"content"`
	Excerpt     string     `db:"excerpt" json:"excerpt"`
	PublishedAt *time.Time `db:"published_at" json:"published_at"`
	ViewCount   int        `db:"view_count" json:"view_count"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// NewPost builds an unsaved post. A nil publishedAt keeps the post as a draft.
func NewPost(slug, title, content, excerpt string, publishedAt *time.Time) (*Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrInvalidSlug
	}
	if strings.TrimSpace(title) == "" || content == "" {
		return nil, ErrValidation
	}

	return &Post{
		ID:          uuid.NewString(),
		Slug:        slug,
		Title:       title,
		Content:     content,
		Excerpt:     excerpt,
		PublishedAt: InUTC(publishedAt),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// InUTC returns a copy of t converted to UTC, or nil when t is nil.
func InUTC(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func (p *Post) IsPublished() bool {
	return p.PublishedAt != nil
}

// Clone returns a deep copy so cached values are never mutated by callers.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}
	c := *p
	if p.PublishedAt != nil {
		t := *p.PublishedAt
		c.PublishedAt = &t
	}
	return &c
}
