package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sp3dr4/folio/internal/domain"
)

// Store keeps every table in process memory. Returned records are copies.
type Store struct {
	mu         sync.RWMutex
	posts      map[string]*domain.Post
	projects   map[string]*domain.Project
	researches map[string]*domain.Research
}

func NewStore() *Store {
	return &Store{
		posts:      make(map[string]*domain.Post),
		projects:   make(map[string]*domain.Project),
		researches: make(map[string]*domain.Research),
	}
}

func (s *Store) ListPublishedPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if p.IsPublished() {
			posts = append(posts, *p.Clone())
		}
	}

	sort.Slice(posts, func(i, j int) bool {
		a, b := &posts[i], &posts[j]
		if !a.PublishedAt.Equal(*b.PublishedAt) {
			return a.PublishedAt.After(*b.PublishedAt)
		}
		return newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})

	if limit > 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (s *Store) FindPublishedPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post := s.findBySlug(slug)
	if post == nil || !post.IsPublished() {
		return nil, domain.ErrNotFound
	}
	return post.Clone(), nil
}

func (s *Store) ListPosts(ctx context.Context) ([]domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, *p.Clone())
	}
	sort.Slice(posts, func(i, j int) bool {
		return newerFirst(posts[i].CreatedAt, posts[j].CreatedAt, posts[i].ID, posts[j].ID)
	})
	return posts, nil
}

func (s *Store) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return post.Clone(), nil
}

func (s *Store) CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if post.Slug == "" {
		return nil, domain.ErrInvalidSlug
	}
	if s.findBySlug(post.Slug) != nil {
		return nil, domain.ErrSlugExists
	}

	stored := post.Clone()
	s.posts[stored.ID] = stored
	return stored.Clone(), nil
}

func (s *Store) UpdatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.posts[post.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if other := s.findBySlug(post.Slug); other != nil && other.ID != post.ID {
		return nil, domain.ErrSlugExists
	}

	updated := post.Clone()
	updated.ViewCount = existing.ViewCount
	updated.CreatedAt = existing.CreatedAt
	s.posts[updated.ID] = updated
	return updated.Clone(), nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *Store) IncrementViewCount(ctx context.Context, slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.findBySlug(slug)
	if post == nil {
		return domain.ErrNotFound
	}
	post.ViewCount++
	return nil
}

// findBySlug expects the caller to hold the lock.
func (s *Store) findBySlug(slug string) *domain.Post {
	for _, p := range s.posts {
		if p.Slug == slug {
			return p
		}
	}
	return nil
}

func (s *Store) ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		if filter.FeaturedOnly && !p.Featured {
			continue
		}
		projects = append(projects, copyProject(p))
	}

	sort.Slice(projects, func(i, j int) bool {
		if projects[i].Featured != projects[j].Featured {
			return projects[i].Featured
		}
		return newerFirst(projects[i].CreatedAt, projects[j].CreatedAt, projects[i].ID, projects[j].ID)
	})

	if filter.Limit > 0 && len(projects) > filter.Limit {
		projects = projects[:filter.Limit]
	}
	return projects, nil
}

func (s *Store) CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyProject(project)
	s.projects[stored.ID] = &stored
	out := copyProject(&stored)
	return &out, nil
}

func (s *Store) UpdateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.projects[project.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	updated := copyProject(project)
	updated.CreatedAt = existing.CreatedAt
	s.projects[updated.ID] = &updated
	out := copyProject(&updated)
	return &out, nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *Store) ListResearches(ctx context.Context) ([]domain.Research, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	researches := make([]domain.Research, 0, len(s.researches))
	for _, r := range s.researches {
		researches = append(researches, copyResearch(r))
	}
	sort.Slice(researches, func(i, j int) bool {
		return newerFirst(researches[i].CreatedAt, researches[j].CreatedAt, researches[i].ID, researches[j].ID)
	})
	return researches, nil
}

func (s *Store) CreateResearch(ctx context.Context, research *domain.Research) (*domain.Research, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyResearch(research)
	s.researches[stored.ID] = &stored
	out := copyResearch(&stored)
	return &out, nil
}

func (s *Store) UpdateResearch(ctx context.Context, research *domain.Research) (*domain.Research, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.researches[research.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	updated := copyResearch(research)
	updated.CreatedAt = existing.CreatedAt
	s.researches[updated.ID] = &updated
	out := copyResearch(&updated)
	return &out, nil
}

func (s *Store) DeleteResearch(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.researches[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.researches, id)
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) HealthCheck(ctx context.Context) error {
	return nil
}

func copyProject(p *domain.Project) domain.Project {
	c := *p
	c.TechStack = append([]string{}, p.TechStack...)
	return c
}

func copyResearch(r *domain.Research) domain.Research {
	c := *r
	c.TechStack = append([]string{}, r.TechStack...)
	return c
}

// newerFirst orders by creation time descending, then by ID so ties are
// deterministic.
func newerFirst(a, b time.Time, idA, idB string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA < idB
}
