package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sp3dr4/folio/internal/domain"
)

const (
	HomePostLimit    = 5
	HomeProjectLimit = 3
	FeedPostLimit    = 20
)

// HomeContent is what the landing page shows.
type HomeContent struct {
	Posts    []domain.Post
	Projects []domain.Project
}

// ContentService serves the public pages. Post reads go through the
// read-through cache; projects and research are read from the store directly.
type ContentService struct {
	posts *PostReader
	store domain.Store
}

func NewContentService(posts *PostReader, store domain.Store) *ContentService {
	return &ContentService{
		posts: posts,
		store: store,
	}
}

// Home loads the latest posts and the featured projects concurrently. On
// error the returned content still holds whatever succeeded.
func (s *ContentService) Home(ctx context.Context) (*HomeContent, error) {
	home := &HomeContent{
		Posts:    []domain.Post{},
		Projects: []domain.Project{},
	}

	var g errgroup.Group
	g.Go(func() error {
		posts, err := s.posts.GetPosts(ctx, PostQuery{Limit: HomePostLimit})
		if err != nil {
			return err
		}
		home.Posts = posts
		return nil
	})
	g.Go(func() error {
		projects, err := s.store.ListProjects(ctx, domain.ProjectFilter{FeaturedOnly: true, Limit: HomeProjectLimit})
		if err != nil {
			return err
		}
		home.Projects = projects
		return nil
	})

	return home, g.Wait()
}

func (s *ContentService) Posts(ctx context.Context) ([]domain.Post, error) {
	return s.posts.GetPosts(ctx, PostQuery{})
}

func (s *ContentService) FeedPosts(ctx context.Context) ([]domain.Post, error) {
	return s.posts.GetPosts(ctx, PostQuery{Limit: FeedPostLimit})
}

func (s *ContentService) Post(ctx context.Context, slug string) (*domain.Post, error) {
	return s.posts.GetPostBySlug(ctx, slug)
}

func (s *ContentService) Projects(ctx context.Context) ([]domain.Project, error) {
	return s.store.ListProjects(ctx, domain.ProjectFilter{})
}

func (s *ContentService) Researches(ctx context.Context) ([]domain.Research, error) {
	return s.store.ListResearches(ctx)
}

// Ready reports whether the store and the post cache are reachable.
func (s *ContentService) Ready(ctx context.Context) error {
	if err := s.store.HealthCheck(ctx); err != nil {
		return err
	}
	return s.posts.cache.Ping(ctx)
}
