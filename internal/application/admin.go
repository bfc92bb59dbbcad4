package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/sp3dr4/folio/internal/domain"
	"github.com/sp3dr4/folio/internal/pkg/metrics"
)

type PostInput struct {
	Slug        string     `json:"slug" validate:"max=200"`
	Title       string     `json:"title" validate:"required"`
	Content     string     `json:"content" validate:"required"`
	Excerpt     string     `json:"excerpt"`
	PublishedAt *time.Time `json:"published_at"`
}

type ProjectInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack"`
	GithubURL   string   `json:"github_url"`
	DemoURL     string   `json:"demo_url"`
	ImageURL    string   `json:"image_url"`
	Featured    bool     `json:"featured"`
}

type ResearchInput struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack"`
	GithubURL   string   `json:"github_url"`
	Category    string   `json:"category"`
}

// Dashboard is every row the admin page lists.
type Dashboard struct {
	Posts      []domain.Post
	Projects   []domain.Project
	Researches []domain.Research
}

// AdminService backs the password-gated admin surface. Every successful
// write clears the post cache.
type AdminService struct {
	store    domain.Store
	reader   *PostReader
	validate *validator.Validate
	logger   *slog.Logger
	metrics  metrics.Registry
	now      func() time.Time
}

func NewAdminService(store domain.Store, reader *PostReader, logger *slog.Logger, registry metrics.Registry) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	if registry == nil {
		registry = metrics.NewNoOpRegistry()
	}
	return &AdminService{
		store:    store,
		reader:   reader,
		validate: validator.New(),
		logger:   logger,
		metrics:  registry,
		now:      time.Now,
	}
}

func (s *AdminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	d := &Dashboard{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Posts, err = s.store.ListPosts(ctx)
		return err
	})
	g.Go(func() (err error) {
		d.Projects, err = s.store.ListProjects(ctx, domain.ProjectFilter{})
		return err
	})
	g.Go(func() (err error) {
		d.Researches, err = s.store.ListResearches(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *AdminService) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.store.ListPosts(ctx)
}

func (s *AdminService) CreatePost(ctx context.Context, in PostInput) (*domain.Post, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = fmt.Sprintf("post-%d", s.now().UnixMilli())
	}

	post, err := domain.NewPost(slug, in.Title, in.Content, in.Excerpt, in.PublishedAt)
	if err != nil {
		return nil, err
	}

	created, err := s.store.CreatePost(ctx, post)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "post", "create")
	return created, nil
}

func (s *AdminService) UpdatePost(ctx context.Context, id string, in PostInput) (*domain.Post, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	if slug := strings.TrimSpace(in.Slug); slug != "" {
		post.Slug = slug
	}
	post.Title = in.Title
	post.Content = in.Content
	post.Excerpt = in.Excerpt
	post.PublishedAt = domain.InUTC(in.PublishedAt)

	updated, err := s.store.UpdatePost(ctx, post)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "post", "update")
	return updated, nil
}

func (s *AdminService) DeletePost(ctx context.Context, id string) error {
	if err := s.store.DeletePost(ctx, id); err != nil {
		return err
	}
	s.afterWrite(ctx, "post", "delete")
	return nil
}

func (s *AdminService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return s.store.ListProjects(ctx, domain.ProjectFilter{})
}

func (s *AdminService) CreateProject(ctx context.Context, in ProjectInput) (*domain.Project, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	project := domain.NewProject()
	applyProjectInput(project, in)

	created, err := s.store.CreateProject(ctx, project)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "project", "create")
	return created, nil
}

func (s *AdminService) UpdateProject(ctx context.Context, id string, in ProjectInput) (*domain.Project, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	project := &domain.Project{ID: id}
	applyProjectInput(project, in)

	updated, err := s.store.UpdateProject(ctx, project)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "project", "update")
	return updated, nil
}

func (s *AdminService) DeleteProject(ctx context.Context, id string) error {
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.afterWrite(ctx, "project", "delete")
	return nil
}

func (s *AdminService) ListResearches(ctx context.Context) ([]domain.Research, error) {
	return s.store.ListResearches(ctx)
}

func (s *AdminService) CreateResearch(ctx context.Context, in ResearchInput) (*domain.Research, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	research := domain.NewResearch()
	applyResearchInput(research, in)

	created, err := s.store.CreateResearch(ctx, research)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "research", "create")
	return created, nil
}

func (s *AdminService) UpdateResearch(ctx context.Context, id string, in ResearchInput) (*domain.Research, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	research := &domain.Research{ID: id}
	applyResearchInput(research, in)

	updated, err := s.store.UpdateResearch(ctx, research)
	if err != nil {
		return nil, err
	}
	s.afterWrite(ctx, "research", "update")
	return updated, nil
}

func (s *AdminService) DeleteResearch(ctx context.Context, id string) error {
	if err := s.store.DeleteResearch(ctx, id); err != nil {
		return err
	}
	s.afterWrite(ctx, "research", "delete")
	return nil
}

func (s *AdminService) ClearCache(ctx context.Context) error {
	return s.reader.ClearCache(ctx)
}

// afterWrite makes the change visible to readers right away. A failed clear
// is logged; stale entries still expire after the TTL.
func (s *AdminService) afterWrite(ctx context.Context, entity, operation string) {
	s.metrics.IncAdminWrites(entity, operation)
	if err := s.reader.ClearCache(ctx); err != nil {
		s.logger.Warn("Failed to clear post cache after admin write",
			"entity", entity, "operation", operation, "error", err)
	}
}

func applyProjectInput(p *domain.Project, in ProjectInput) {
	p.Title = in.Title
	p.Description = in.Description
	p.TechStack = cleanStack(in.TechStack)
	p.GithubURL = in.GithubURL
	p.DemoURL = in.DemoURL
	p.ImageURL = in.ImageURL
	p.Featured = in.Featured
}

func applyResearchInput(r *domain.Research, in ResearchInput) {
	r.Title = in.Title
	r.Description = in.Description
	r.TechStack = cleanStack(in.TechStack)
	r.GithubURL = in.GithubURL
	r.Category = in.Category
}

func cleanStack(stack []string) []string {
	out := make([]string, 0, len(stack))
	for _, s := range stack {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
