package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/sp3dr4/folio/internal/domain"
)

const postColumns = `id, slug, title, content, excerpt, published_at, view_count, created_at`

type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListPublishedPosts(ctx context.Context, limit int) ([]domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
		WHERE published_at IS NOT NULL
		ORDER BY published_at DESC, created_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	posts := []domain.Post{}
	if err := s.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, translateError(err)
	}
	return posts, nil
}

func (s *Store) FindPublishedPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	var post domain.Post
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = ? AND published_at IS NOT NULL`

	if err := s.db.GetContext(ctx, &post, query, slug); err != nil {
		return nil, translateError(err)
	}
	return &post, nil
}

func (s *Store) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts := []domain.Post{}
	if err := s.db.SelectContext(ctx, &posts, `SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id`); err != nil {
		return nil, translateError(err)
	}
	return posts, nil
}

func (s *Store) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	if err := s.db.GetContext(ctx, &post, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id); err != nil {
		return nil, translateError(err)
	}
	return &post, nil
}

func (s *Store) CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	query := `
		INSERT INTO posts (id, slug, title, content, excerpt, published_at, view_count, created_at)
		VALUES (:id, :slug, :title, :content, :excerpt, :published_at, :view_count, :created_at)
	`

	if _, err := s.db.NamedExecContext(ctx, query, utcPost(post)); err != nil {
		return nil, translateError(err)
	}
	return s.GetPost(ctx, post.ID)
}

func (s *Store) UpdatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	query := `UPDATE posts SET slug = ?, title = ?, content = ?, excerpt = ?, published_at = ? WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, post.Slug, post.Title, post.Content, post.Excerpt, domain.InUTC(post.PublishedAt), post.ID)
	if err != nil {
		return nil, translateError(err)
	}
	if err := requireRow(result); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, post.ID)
}

// utcPost stores timestamps in UTC. SQLite orders them as text, so mixed
// offsets would sort out of time order.
func utcPost(post *domain.Post) *domain.Post {
	c := post.Clone()
	c.PublishedAt = domain.InUTC(c.PublishedAt)
	c.CreatedAt = c.CreatedAt.UTC()
	return c
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "posts", id)
}

func (s *Store) IncrementViewCount(ctx context.Context, slug string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE posts SET view_count = view_count + 1 WHERE slug = ?`, slug)
	if err != nil {
		return translateError(err)
	}
	return requireRow(result)
}

type projectRow struct {
	domain.Project
	TechStack string `db:"tech_stack"`
}

type researchRow struct {
	domain.Research
	TechStack string `db:"tech_stack"`
}

func (s *Store) ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	query := `SELECT id, title, description, tech_stack, github_url, demo_url, image_url, featured, created_at FROM projects`
	if filter.FeaturedOnly {
		query += ` WHERE featured = 1`
	}
	query += ` ORDER BY featured DESC, created_at DESC`

	args := []any{}
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	var rows []projectRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, translateError(err)
	}

	projects := make([]domain.Project, 0, len(rows))
	for _, r := range rows {
		p := r.Project
		p.TechStack = decodeStack(r.TechStack)
		projects = append(projects, p)
	}
	return projects, nil
}

func (s *Store) getProject(ctx context.Context, id string) (*domain.Project, error) {
	var row projectRow
	query := `SELECT id, title, description, tech_stack, github_url, demo_url, image_url, featured, created_at FROM projects WHERE id = ?`
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, translateError(err)
	}
	p := row.Project
	p.TechStack = decodeStack(row.TechStack)
	return &p, nil
}

func (s *Store) CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	stack, err := encodeStack(project.TechStack)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO projects (id, title, description, tech_stack, github_url, demo_url, image_url, featured, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		project.ID, project.Title, project.Description, stack,
		project.GithubURL, project.DemoURL, project.ImageURL, project.Featured, project.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return s.getProject(ctx, project.ID)
}

func (s *Store) UpdateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	stack, err := encodeStack(project.TechStack)
	if err != nil {
		return nil, err
	}

	query := `UPDATE projects SET title = ?, description = ?, tech_stack = ?, github_url = ?, demo_url = ?, image_url = ?, featured = ?
		WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query,
		project.Title, project.Description, stack,
		project.GithubURL, project.DemoURL, project.ImageURL, project.Featured, project.ID,
	)
	if err != nil {
		return nil, translateError(err)
	}
	if err := requireRow(result); err != nil {
		return nil, err
	}
	return s.getProject(ctx, project.ID)
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "projects", id)
}

func (s *Store) ListResearches(ctx context.Context) ([]domain.Research, error) {
	var rows []researchRow
	query := `SELECT id, title, description, tech_stack, github_url, category, created_at FROM researches ORDER BY created_at DESC`
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, translateError(err)
	}

	researches := make([]domain.Research, 0, len(rows))
	for _, r := range rows {
		out := r.Research
		out.TechStack = decodeStack(r.TechStack)
		researches = append(researches, out)
	}
	return researches, nil
}

func (s *Store) getResearch(ctx context.Context, id string) (*domain.Research, error) {
	var row researchRow
	query := `SELECT id, title, description, tech_stack, github_url, category, created_at FROM researches WHERE id = ?`
	if err := s.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, translateError(err)
	}
	out := row.Research
	out.TechStack = decodeStack(row.TechStack)
	return &out, nil
}

func (s *Store) CreateResearch(ctx context.Context, research *domain.Research) (*domain.Research, error) {
	stack, err := encodeStack(research.TechStack)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO researches (id, title, description, tech_stack, github_url, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		research.ID, research.Title, research.Description, stack,
		research.GithubURL, research.Category, research.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return s.getResearch(ctx, research.ID)
}

func (s *Store) UpdateResearch(ctx context.Context, research *domain.Research) (*domain.Research, error) {
	stack, err := encodeStack(research.TechStack)
	if err != nil {
		return nil, err
	}

	query := `UPDATE researches SET title = ?, description = ?, tech_stack = ?, github_url = ?, category = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query,
		research.Title, research.Description, stack, research.GithubURL, research.Category, research.ID,
	)
	if err != nil {
		return nil, translateError(err)
	}
	if err := requireRow(result); err != nil {
		return nil, err
	}
	return s.getResearch(ctx, research.ID)
}

func (s *Store) DeleteResearch(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "researches", id)
}

func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return translateError(err)
	}
	return requireRow(result)
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) HealthCheck(ctx context.Context) error {
	if s.db == nil {
		return errors.New("database connection is nil")
	}
	return s.db.PingContext(ctx)
}

func requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func translateError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		msg := sqliteErr.Error()
		switch {
		case sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique && strings.Contains(msg, "posts.slug"):
			return domain.ErrSlugExists
		case strings.Contains(msg, "slug <> ''"):
			return domain.ErrInvalidSlug
		default:
			return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
		}
	}

	return err
}

func encodeStack(stack []string) (string, error) {
	if stack == nil {
		stack = []string{}
	}
	b, err := json.Marshal(stack)
	if err != nil {
		return "", fmt.Errorf("encode tech stack: %w", err)
	}
	return string(b), nil
}

func decodeStack(raw string) []string {
	stack := []string{}
	if raw == "" {
		return stack
	}
	if err := json.Unmarshal([]byte(raw), &stack); err != nil {
		return []string{}
	}
	return stack
}
