package ops

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sp3dr4/folio/internal/application"
	"github.com/sp3dr4/folio/internal/domain"
	"github.com/sp3dr4/folio/internal/render"
)

const frontmatterFence = "---"

type frontmatter struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	PostTitle   string `yaml:"[Post Title]"`
	Excerpt     string `yaml:"excerpt"`
	Summary     string `yaml:"Summary (Excerpt)"`
	Published   string `yaml:"published"`
	PublishedAt string `yaml:"published_at"`
}

// ParsePost reads an optional YAML frontmatter block and the markdown body.
// A missing slug is derived from the title; a missing publish date keeps the post a draft.
func ParsePost(raw []byte) (application.PostInput, error) {
	var meta frontmatter
	body := string(bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n")))

	if rest, ok := strings.CutPrefix(body, frontmatterFence+"\n"); ok {
		head, tail, found := strings.Cut("\n"+rest, "\n"+frontmatterFence)
		if !found {
			return application.PostInput{}, fmt.Errorf("%w: unterminated frontmatter", domain.ErrValidation)
		}
		if err := yaml.Unmarshal([]byte(head), &meta); err != nil {
			return application.PostInput{}, fmt.Errorf("%w: invalid frontmatter: %v", domain.ErrValidation, err)
		}
		_, body, _ = strings.Cut(tail, "\n")
	}

	in := application.PostInput{
		Slug:    meta.Slug,
		Title:   firstNonEmpty(meta.Title, meta.PostTitle),
		Excerpt: firstNonEmpty(meta.Excerpt, meta.Summary),
		Content: strings.TrimLeft(body, "\n \t"),
	}
	if in.Slug == "" && in.Title != "" {
		in.Slug = render.Slugify(in.Title)
	}

	if published := firstNonEmpty(meta.Published, meta.PublishedAt); published != "" {
		at, err := parsePublished(published)
		if err != nil {
			return application.PostInput{}, err
		}
		in.PublishedAt = &at
	}
	return in, nil
}

// InsertPostFile parses path and creates the post through the admin service.
func InsertPostFile(ctx context.Context, admin *application.AdminService, path string) (*domain.Post, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read post file: %w", err)
	}

	in, err := ParsePost(raw)
	if err != nil {
		return nil, err
	}
	return admin.CreatePost(ctx, in)
}

func parsePublished(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised publish date %q", domain.ErrValidation, value)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
