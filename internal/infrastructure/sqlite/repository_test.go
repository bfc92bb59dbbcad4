package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp3dr4/folio/internal/domain"
	"github.com/sp3dr4/folio/internal/infrastructure/schema"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	// every pooled connection to :memory: would otherwise get its own database
	db.SetMaxOpenConns(1)

	require.NoError(t, schema.Migrate(db, "sqlite", "../../../migrations"))

	store := NewStore(db)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newPost(t *testing.T, slug string, publishedAt *time.Time) *domain.Post {
	t.Helper()
	post, err := domain.NewPost(slug, "Title "+slug, "content of "+slug, "", publishedAt)
	require.NoError(t, err)
	return post
}

func TestSQLiteStore_PostLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	published := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	created, err := store.CreatePost(ctx, newPost(t, "test-post", &published))
	require.NoError(t, err)
	assert.Equal(t, "test-post", created.Slug)
	require.NotNil(t, created.PublishedAt)
	assert.True(t, created.PublishedAt.Equal(published))

	_, err = store.CreatePost(ctx, newPost(t, "test-post", &published))
	assert.ErrorIs(t, err, domain.ErrSlugExists)

	found, err := store.FindPublishedPostBySlug(ctx, "test-post")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = store.FindPublishedPostBySlug(ctx, "non-existent")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.IncrementViewCount(ctx, "test-post"))
	require.NoError(t, store.IncrementViewCount(ctx, "test-post"))
	found, err = store.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.ViewCount)

	assert.ErrorIs(t, store.IncrementViewCount(ctx, "non-existent"), domain.ErrNotFound)

	found.Title = "Renamed"
	updated, err := store.UpdatePost(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	require.NoError(t, store.DeletePost(ctx, created.ID))
	assert.ErrorIs(t, store.DeletePost(ctx, created.ID), domain.ErrNotFound)
}

func TestSQLiteStore_ListPublishedPosts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	for i, slug := range []string{"old", "middle", "new"} {
		at := base.Add(time.Duration(i) * time.Hour)
		_, err := store.CreatePost(ctx, newPost(t, slug, &at))
		require.NoError(t, err)
	}
	_, err := store.CreatePost(ctx, newPost(t, "draft", nil))
	require.NoError(t, err)

	posts, err := store.ListPublishedPosts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "new", posts[0].Slug)
	assert.Equal(t, "old", posts[2].Slug)

	posts, err = store.ListPublishedPosts(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	_, err = store.FindPublishedPostBySlug(ctx, "draft")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := store.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestSQLiteStore_ListPublishedPostsMixedOffsets(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tokyo := time.FixedZone("JST", 9*60*60)
	earlier := time.Date(2026, 2, 10, 9, 0, 0, 0, tokyo)
	later := time.Date(2026, 2, 10, 1, 0, 0, 0, time.UTC)

	// Built directly so the stored value keeps its original offset.
	post := newPost(t, "earlier", nil)
	post.PublishedAt = &earlier
	_, err := store.CreatePost(ctx, post)
	require.NoError(t, err)
	_, err = store.CreatePost(ctx, newPost(t, "later", &later))
	require.NoError(t, err)

	posts, err := store.ListPublishedPosts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "later", posts[0].Slug)
	assert.Equal(t, "earlier", posts[1].Slug)

	moved := time.Date(2026, 2, 10, 9, 30, 0, 0, tokyo)
	post.PublishedAt = &moved
	_, err = store.UpdatePost(ctx, post)
	require.NoError(t, err)

	posts, err = store.ListPublishedPosts(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, "later", posts[0].Slug)
}

func TestSQLiteStore_EmptySlugRejected(t *testing.T) {
	store := newTestStore(t)
	post := newPost(t, "valid", nil)
	post.Slug = ""

	_, err := store.CreatePost(context.Background(), post)
	assert.ErrorIs(t, err, domain.ErrInvalidSlug)
}

func TestSQLiteStore_Projects(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	plain := domain.NewProject()
	plain.Title = "Plain"
	plain.TechStack = []string{"Go"}
	_, err := store.CreateProject(ctx, plain)
	require.NoError(t, err)

	featured := domain.NewProject()
	featured.Title = "Featured"
	featured.Featured = true
	featured.TechStack = []string{"Go", "PostgreSQL"}
	created, err := store.CreateProject(ctx, featured)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, created.TechStack)

	projects, err := store.ListProjects(ctx, domain.ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Featured", projects[0].Title)

	projects, err = store.ListProjects(ctx, domain.ProjectFilter{FeaturedOnly: true, Limit: 3})
	require.NoError(t, err)
	require.Len(t, projects, 1)

	created.TechStack = nil
	updated, err := store.UpdateProject(ctx, created)
	require.NoError(t, err)
	assert.Empty(t, updated.TechStack)

	require.NoError(t, store.DeleteProject(ctx, created.ID))
	_, err = store.UpdateProject(ctx, created)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_Researches(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	research := domain.NewResearch()
	research.Title = "Cache study"
	research.Category = "systems"
	research.TechStack = []string{"Go"}
	created, err := store.CreateResearch(ctx, research)
	require.NoError(t, err)
	assert.Equal(t, "systems", created.Category)

	researches, err := store.ListResearches(ctx)
	require.NoError(t, err)
	require.Len(t, researches, 1)
	assert.Equal(t, []string{"Go"}, researches[0].TechStack)

	require.NoError(t, store.DeleteResearch(ctx, created.ID))
	assert.ErrorIs(t, store.DeleteResearch(ctx, created.ID), domain.ErrNotFound)
}

func TestSQLiteStore_HealthCheck(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.HealthCheck(context.Background()))
}
