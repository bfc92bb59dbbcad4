package domain

import "context"

type PostRepository interface {
	// ListPublishedPosts returns published posts, newest first. limit <= 0 returns all of them.
	ListPublishedPosts(ctx context.Context, limit int) ([]Post, error)
	// FindPublishedPostBySlug returns ErrNotFound when no published post has the slug.
	FindPublishedPostBySlug(ctx context.Context, slug string) (*Post, error)
	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	CreatePost(ctx context.Context, post *Post) (*Post, error)
	UpdatePost(ctx context.Context, post *Post) (*Post, error)
	DeletePost(ctx context.Context, id string) error
	// IncrementViewCount atomically bumps view_count for the post with the slug.
	IncrementViewCount(ctx context.Context, slug string) error
}

type ProjectRepository interface {
	ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error)
	CreateProject(ctx context.Context, project *Project) (*Project, error)
	UpdateProject(ctx context.Context, project *Project) (*Project, error)
	DeleteProject(ctx context.Context, id string) error
}

type ResearchRepository interface {
	ListResearches(ctx context.Context) ([]Research, error)
	CreateResearch(ctx context.Context, research *Research) (*Research, error)
	UpdateResearch(ctx context.Context, research *Research) (*Research, error)
	DeleteResearch(ctx context.Context, id string) error
}

// Store is the remote data store backing every page and the admin surface.
type Store interface {
	PostRepository
	ProjectRepository
	ResearchRepository

	Close() error
	HealthCheck(ctx context.Context) error
}
