package memory

import (
	"context"
	"testing"
	"time"

	"github.com/sp3dr4/folio/internal/domain"
)

func publishedPost(t *testing.T, slug string, publishedAt time.Time) *domain.Post {
	t.Helper()
	post, err := domain.NewPost(slug, "Title "+slug, "content of "+slug, "", &publishedAt)
	if err != nil {
		t.Fatalf("failed to build post: %v", err)
	}
	return post
}

func TestMemoryStore_CreatePost(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	post := publishedPost(t, "test-post", time.Now())

	if _, err := store.CreatePost(ctx, post); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Try to create duplicate slug
	dup := publishedPost(t, "test-post", time.Now())
	if _, err := store.CreatePost(ctx, dup); err != domain.ErrSlugExists {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestMemoryStore_ListPublishedPosts(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	for i, slug := range []string{"old", "middle", "new"} {
		if _, err := store.CreatePost(ctx, publishedPost(t, slug, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("failed to create post: %v", err)
		}
	}
	draft, _ := domain.NewPost("draft", "Draft", "wip", "", nil)
	if _, err := store.CreatePost(ctx, draft); err != nil {
		t.Fatalf("failed to create draft: %v", err)
	}

	posts, err := store.ListPublishedPosts(ctx, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("expected 3 published posts, got %d", len(posts))
	}
	if posts[0].Slug != "new" || posts[2].Slug != "old" {
		t.Fatalf("expected newest first, got %s..%s", posts[0].Slug, posts[2].Slug)
	}

	limited, _ := store.ListPublishedPosts(ctx, 2)
	if len(limited) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(limited))
	}
}

func TestMemoryStore_ListPublishedPostsTieBreak(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	at := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	ids := map[string]string{"a": "00000000-a", "b": "00000000-b", "c": "00000000-c"}
	for _, slug := range []string{"c", "a", "b"} {
		post := publishedPost(t, slug, at)
		post.ID = ids[slug]
		post.CreatedAt = created
		if slug == "b" {
			post.CreatedAt = created.Add(time.Hour)
		}
		if _, err := store.CreatePost(ctx, post); err != nil {
			t.Fatalf("failed to create post: %v", err)
		}
	}

	want := []string{"b", "a", "c"}
	for i := 0; i < 20; i++ {
		posts, _ := store.ListPublishedPosts(ctx, 0)
		for j, slug := range want {
			if posts[j].Slug != slug {
				t.Fatalf("run %d: expected order %v, got %s at %d", i, want, posts[j].Slug, j)
			}
		}
		limited, _ := store.ListPublishedPosts(ctx, 1)
		if len(limited) != 1 || limited[0].Slug != "b" {
			t.Fatalf("run %d: expected limit cut to keep b, got %v", i, limited)
		}
	}
}

func TestMemoryStore_FindPublishedPostBySlug(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if _, err := store.CreatePost(ctx, publishedPost(t, "visible", time.Now())); err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	draft, _ := domain.NewPost("hidden", "Hidden", "wip", "", nil)
	if _, err := store.CreatePost(ctx, draft); err != nil {
		t.Fatalf("failed to create draft: %v", err)
	}

	found, err := store.FindPublishedPostBySlug(ctx, "visible")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Slug != "visible" {
		t.Fatalf("expected visible, got %s", found.Slug)
	}

	if _, err := store.FindPublishedPostBySlug(ctx, "hidden"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound for draft, got %v", err)
	}
	if _, err := store.FindPublishedPostBySlug(ctx, "missing"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_IncrementViewCount(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if _, err := store.CreatePost(ctx, publishedPost(t, "counted", time.Now())); err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	if err := store.IncrementViewCount(ctx, "counted"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, _ := store.FindPublishedPostBySlug(ctx, "counted")
	if found.ViewCount != 1 {
		t.Fatalf("expected view count to be 1, got %d", found.ViewCount)
	}

	if err := store.IncrementViewCount(ctx, "missing"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if _, err := store.CreatePost(ctx, publishedPost(t, "immutable", time.Now())); err != nil {
		t.Fatalf("failed to create post: %v", err)
	}

	found, _ := store.FindPublishedPostBySlug(ctx, "immutable")
	found.Title = "mutated"

	again, _ := store.FindPublishedPostBySlug(ctx, "immutable")
	if again.Title == "mutated" {
		t.Fatal("store leaked a mutable reference")
	}
}

func TestMemoryStore_UpdateAndDeletePost(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	created, _ := store.CreatePost(ctx, publishedPost(t, "first", time.Now()))
	other, _ := store.CreatePost(ctx, publishedPost(t, "second", time.Now()))

	created.Title = "Renamed"
	updated, err := store.UpdatePost(ctx, created)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("expected Renamed, got %s", updated.Title)
	}

	other.Slug = "first"
	if _, err := store.UpdatePost(ctx, other); err != domain.ErrSlugExists {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}

	if err := store.DeletePost(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.DeletePost(ctx, created.ID); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ListProjects(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, featured := range []bool{false, true, false, true} {
		p := domain.NewProject()
		p.Title = "project"
		p.Featured = featured
		p.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if _, err := store.CreateProject(ctx, p); err != nil {
			t.Fatalf("failed to create project: %v", err)
		}
	}

	all, _ := store.ListProjects(ctx, domain.ProjectFilter{})
	if len(all) != 4 {
		t.Fatalf("expected 4 projects, got %d", len(all))
	}
	if !all[0].Featured || !all[1].Featured || all[2].Featured {
		t.Fatal("expected featured projects first")
	}
	if !all[0].CreatedAt.After(all[1].CreatedAt) {
		t.Fatal("expected newest featured project first")
	}

	featured, _ := store.ListProjects(ctx, domain.ProjectFilter{FeaturedOnly: true, Limit: 1})
	if len(featured) != 1 || !featured[0].Featured {
		t.Fatalf("expected one featured project, got %v", featured)
	}
}

func TestMemoryStore_Researches(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	r := domain.NewResearch()
	r.Title = "Agents"
	r.TechStack = []string{"Go"}
	created, err := store.CreateResearch(ctx, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created.Category = "ai"
	if _, err := store.UpdateResearch(ctx, created); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, _ := store.ListResearches(ctx)
	if len(list) != 1 || list[0].Category != "ai" {
		t.Fatalf("expected updated research, got %v", list)
	}

	if err := store.DeleteResearch(ctx, "missing"); err != domain.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
