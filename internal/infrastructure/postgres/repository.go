package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

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
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	posts := []domain.Post{}
	if err := s.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, s.handlePostgreSQLError(err, "list published posts")
	}
	return posts, nil
}

func (s *Store) FindPublishedPostBySlug(ctx context.Context, slug string) (*domain.Post, error) {
	var post domain.Post
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1 AND published_at IS NOT NULL`

	if err := s.db.GetContext(ctx, &post, query, slug); err != nil {
		return nil, s.handlePostgreSQLError(err, "find post by slug")
	}
	return &post, nil
}

func (s *Store) ListPosts(ctx context.Context) ([]domain.Post, error) {
	posts := []domain.Post{}
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at DESC, id`

	if err := s.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, s.handlePostgreSQLError(err, "list posts")
	}
	return posts, nil
}

func (s *Store) GetPost(ctx context.Context, id string) (*domain.Post, error) {
	var post domain.Post
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	if err := s.db.GetContext(ctx, &post, query, id); err != nil {
		return nil, s.handlePostgreSQLError(err, "get post")
	}
	return &post, nil
}

func (s *Store) CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	query := `
		INSERT INTO posts (id, slug, title, content, excerpt, published_at, view_count, created_at)
		VALUES (:id, :slug, :title, :content, :excerpt, :published_at, :view_count, :created_at)
		RETURNING ` + postColumns

	var result domain.Post
	rows, err := s.db.NamedQueryContext(ctx, query, post)
	if err != nil {
		return nil, s.handlePostgreSQLError(err, "create post")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, s.handlePostgreSQLError(err, "create post")
		}
		return nil, fmt.Errorf("create post: no row returned")
	}
	if err := rows.StructScan(&result); err != nil {
		return nil, s.handlePostgreSQLError(err, "create post")
	}

	slog.Debug("Post created", "slug", result.Slug, "id", result.ID)
	return &result, nil
}

func (s *Store) UpdatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	query := `
		UPDATE posts
		SET slug = $2, title = $3, content = $4, excerpt = $5, published_at = $6
		WHERE id = $1
		RETURNING ` + postColumns

	var result domain.Post
	err := s.db.QueryRowxContext(ctx, query, post.ID, post.Slug, post.Title, post.Content, post.Excerpt, post.PublishedAt).
		StructScan(&result)
	if err != nil {
		return nil, s.handlePostgreSQLError(err, "update post")
	}
	return &result, nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "posts", id)
}

// IncrementViewCount calls the increment_view_count procedure, which reports the rows it touched.
func (s *Store) IncrementViewCount(ctx context.Context, slug string) error {
	var affected int
	if err := s.db.GetContext(ctx, &affected, `SELECT increment_view_count($1)`, slug); err != nil {
		return s.handlePostgreSQLError(err, "increment view count")
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	slog.Debug("View count incremented", "slug", slug)
	return nil
}

type projectRow struct {
	domain.Project
	TechStack pq.StringArray `db:"tech_stack"`
}

func (r projectRow) toDomain() domain.Project {
	p := r.Project
	p.TechStack = []string(r.TechStack)
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	return p
}

func (s *Store) ListProjects(ctx context.Context, filter domain.ProjectFilter) ([]domain.Project, error) {
	query := `SELECT id, title, description, tech_stack, github_url, demo_url, image_url, featured, created_at
		FROM projects`
	if filter.FeaturedOnly {
		query += ` WHERE featured = TRUE`
	}
	query += ` ORDER BY featured DESC, created_at DESC`

	args := []any{}
	if filter.Limit > 0 {
		query += ` LIMIT $1`
		args = append(args, filter.Limit)
	}

	var rows []projectRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, s.handlePostgreSQLError(err, "list projects")
	}

	projects := make([]domain.Project, 0, len(rows))
	for _, r := range rows {
		projects = append(projects, r.toDomain())
	}
	return projects, nil
}

func (s *Store) CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	query := `
		INSERT INTO projects (id, title, description, tech_stack, github_url, demo_url, image_url, featured, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, title, description, tech_stack, github_url, demo_url, image_url, featured, created_at`

	var row projectRow
	err := s.db.QueryRowxContext(ctx, query,
		project.ID, project.Title, project.Description, pq.Array(project.TechStack),
		project.GithubURL, project.DemoURL, project.ImageURL, project.Featured, project.CreatedAt,
	).StructScan(&row)
	if err != nil {
		return nil, s.handlePostgreSQLError(err, "create project")
	}

	out := row.toDomain()
	return &out, nil
}

func (s *Store) UpdateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	query := `
		UPDATE projects
		SET title = $2, description = $3, tech_stack = $4, github_url = $5, demo_url = $6, image_url = $7, featured = $8
		WHERE id = $1
		RETURNING id, title, description, tech_stack, github_url, demo_url, image_url, featured, created_at`

	var row projectRow
	err := s.db.QueryRowxContext(ctx, query,
		project.ID, project.Title, project.Description, pq.Array(project.TechStack),
		project.GithubURL, project.DemoURL, project.ImageURL, project.Featured,
	).StructScan(&row)
	if err != nil {
		return nil, s.handlePostgreSQLError(err, "update project")
	}

	out := row.toDomain()
	return &out, nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "projects", id)
}

type researchRow struct {
	domain.Research
	TechStack pq.StringArray `db:"tech_stack"`
}

func (r researchRow) toDomain() domain.Research {
	out := r.Research
	out.TechStack = []string(r.TechStack)
	if out.TechStack == nil {
		out.TechStack = []string{}
	}
	return out
}

func (s *Store) ListResearches(ctx context.Context) ([]domain.Research, error) {
	query := `SELECT id, title, description, tech_stack, github_url, category, created_at
		FROM researches ORDER BY created_at DESC`

	var rows []researchRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, s.handlePostgreSQLError(err, "list researches")
	}

	researches := make([]domain.Research, 0, len(rows))
	for _, r := range rows {
		researches = append(researches, r.toDomain())
	}
	return researches, nil
}

func (s *Store) CreateResearch(ctx context.Context, research *domain.Research) (*domain.Research, error) {
	query := `
		INSERT INTO researches (id, title, description, tech_stack, github_url, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, title, description, tech_stack, github_url, category, created_at`

	var row researchRow
	err := s.db.QueryRowxContext(ctx, query,
		research.ID, research.Title, research.Description, pq.Array(research.TechStack),
		research.GithubURL, research.Category, research.CreatedAt,
	).StructScan(&row)
	if err != nil {
		return nil, s.handlePostgreSQLError(err, "create research")
	}

	out := row.toDomain()
	return &out, nil
}

func (s *Store) UpdateResearch(ctx context.Context, research *domain.Research) (*domain.Research, error) {
	query := `
		UPDATE researches
		SET title = $2, description = $3, tech_stack = $4, github_url = $5, category = $6
		WHERE id = $1
		RETURNING id, title, description, tech_stack, github_url, category, created_at`

	var row researchRow
	err := s.db.QueryRowxContext(ctx, query,
		research.ID, research.Title, research.Description, pq.Array(research.TechStack),
		research.GithubURL, research.Category,
	).StructScan(&row)
	if err != nil {
		return nil, s.handlePostgreSQLError(err, "update research")
	}

	out := row.toDomain()
	return &out, nil
}

func (s *Store) DeleteResearch(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "researches", id)
}

// deleteByID is only called with the fixed table names above.
func (s *Store) deleteByID(ctx context.Context, table, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return s.handlePostgreSQLError(err, "delete from "+table)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// handlePostgreSQLError converts PostgreSQL-specific errors to domain errors
func (s *Store) handlePostgreSQLError(err error, operation string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		slog.Error("PostgreSQL error",
			"operation", operation,
			"code", pqErr.Code,
			"message", pqErr.Message,
			"detail", pqErr.Detail,
		)

		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "posts_slug_key" {
				return domain.ErrSlugExists
			}
			return fmt.Errorf("%w: unique constraint violation: %s", domain.ErrValidation, pqErr.Detail)
		case "23502": // not_null_violation
			return fmt.Errorf("%w: required field missing: %s", domain.ErrValidation, pqErr.Column)
		case "23514": // check_violation
			if pqErr.Constraint == "posts_slug_not_empty" {
				return domain.ErrInvalidSlug
			}
			return fmt.Errorf("%w: check constraint violation: %s", domain.ErrValidation, pqErr.Constraint)
		case "22P02": // invalid_text_representation, e.g. a malformed uuid
			return domain.ErrNotFound
		case "08000", "08003", "08006": // connection errors
			return fmt.Errorf("database connection error: %s", pqErr.Message)
		default:
			return fmt.Errorf("database error [%s]: %s", pqErr.Code, pqErr.Message)
		}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	return fmt.Errorf("%s: %w", operation, err)
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
