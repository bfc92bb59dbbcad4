package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp3dr4/folio/internal/application"
	"github.com/sp3dr4/folio/internal/domain"
	"github.com/sp3dr4/folio/internal/ops"
)

func publishedAt(day int) *time.Time {
	t := time.Date(2026, 2, day, 9, 0, 0, 0, time.UTC)
	return &t
}

func TestPostgresStore_PostLifecycle_Integration(t *testing.T) {
	env := SetupTestEnvironment(t)
	ctx := context.Background()

	created, err := env.Admin.CreatePost(ctx, application.PostInput{
		Slug:        "test-post",
		Title:       "Title test-post",
		Content:     "Body",
		PublishedAt: publishedAt(10),
	})
	require.NoError(t, err)
	assert.Zero(t, created.ViewCount)

	require.NoError(t, env.Store.IncrementViewCount(ctx, "test-post"))
	require.NoError(t, env.Store.IncrementViewCount(ctx, "test-post"))

	found, err := env.Store.FindPublishedPostBySlug(ctx, "test-post")
	require.NoError(t, err)
	assert.Equal(t, 2, found.ViewCount)

	err = env.Store.IncrementViewCount(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	updated, err := env.Admin.UpdatePost(ctx, created.ID, application.PostInput{
		Title:   "Renamed",
		Content: "Body",
	})
	require.NoError(t, err)
	assert.Equal(t, "test-post", updated.Slug)
	assert.Nil(t, updated.PublishedAt)

	_, err = env.Store.FindPublishedPostBySlug(ctx, "test-post")
	assert.ErrorIs(t, err, domain.ErrNotFound, "drafts are not published")

	require.NoError(t, env.Admin.DeletePost(ctx, created.ID))
	assert.ErrorIs(t, env.Admin.DeletePost(ctx, created.ID), domain.ErrNotFound)
}

func TestPostgresStore_Constraints_Integration(t *testing.T) {
	env := SetupTestEnvironment(t)
	ctx := context.Background()

	_, err := env.Admin.CreatePost(ctx, application.PostInput{Slug: "dup", Title: "A", Content: "x"})
	require.NoError(t, err)

	_, err = env.Admin.CreatePost(ctx, application.PostInput{Slug: "dup", Title: "B", Content: "y"})
	assert.ErrorIs(t, err, domain.ErrSlugExists)

	_, err = env.Store.CreatePost(ctx, &domain.Post{ID: "6f1d8f43-6d0c-4c53-9f43-3f3c7e1b8a10", Title: "T", Content: "x", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrInvalidSlug)

	_, err = env.Store.GetPost(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresStore_ListOrdering_Integration(t *testing.T) {
	env := SetupTestEnvironment(t)
	ctx := context.Background()

	for i, slug := range []string{"older", "newest", "middle"} {
		day := []int{1, 20, 10}[i]
		_, err := env.Admin.CreatePost(ctx, application.PostInput{Slug: slug, Title: slug, Content: "x", PublishedAt: publishedAt(day)})
		require.NoError(t, err)
	}
	_, err := env.Admin.CreatePost(ctx, application.PostInput{Slug: "draft", Title: "draft", Content: "x"})
	require.NoError(t, err)

	posts, err := env.Store.ListPublishedPosts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "newest", posts[0].Slug)
	assert.Equal(t, "middle", posts[1].Slug)
	assert.Equal(t, "older", posts[2].Slug)

	limited, err := env.Store.ListPublishedPosts(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestPostgresStore_ProjectsAndResearches_Integration(t *testing.T) {
	env := SetupTestEnvironment(t)
	ctx := context.Background()

	_, err := env.Admin.CreateProject(ctx, application.ProjectInput{Title: "Plain", TechStack: []string{"Go"}})
	require.NoError(t, err)
	featured, err := env.Admin.CreateProject(ctx, application.ProjectInput{
		Title:     "Featured",
		TechStack: []string{"Go", " Postgres ", ""},
		Featured:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Postgres"}, featured.TechStack)

	projects, err := env.Store.ListProjects(ctx, domain.ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Featured", projects[0].Title)

	only, err := env.Store.ListProjects(ctx, domain.ProjectFilter{FeaturedOnly: true, Limit: 3})
	require.NoError(t, err)
	require.Len(t, only, 1)

	research, err := env.Admin.CreateResearch(ctx, application.ResearchInput{Title: "Paper", Category: "ml"})
	require.NoError(t, err)
	assert.Equal(t, []string{}, research.TechStack)

	updated, err := env.Admin.UpdateResearch(ctx, research.ID, application.ResearchInput{Title: "Paper v2", Category: "ml"})
	require.NoError(t, err)
	assert.Equal(t, "Paper v2", updated.Title)

	require.NoError(t, env.Admin.DeleteProject(ctx, featured.ID))
	require.NoError(t, env.Admin.DeleteResearch(ctx, research.ID))
}

func TestOps_QAAgainstPostgres_Integration(t *testing.T) {
	env := SetupTestEnvironment(t)
	ctx := context.Background()

	report := ops.NewQA(env.Store, env.Logger).Run(ctx)
	assert.True(t, report.OK(), "failed checks: %+v", report.Details.Failed)

	posts, err := env.Store.ListPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts, "QA must clean up the rows it creates")
}

func TestOps_BackupPostgres_Integration(t *testing.T) {
	env := SetupTestEnvironment(t)
	ctx := context.Background()

	_, err := env.Admin.CreatePost(ctx, application.PostInput{Slug: "a", Title: "A", Content: "x"})
	require.NoError(t, err)

	_, meta, err := ops.NewBackup(env.Store, env.Logger).Run(ctx, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Counts["posts"])
	assert.Equal(t, 1, meta.Total())
}
