package ops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// PostTemplates maps template names to files under the templates directory.
var PostTemplates = map[string]string{
	"blog-post":           "blog-post.md",
	"tutorial":            "tutorial.md",
	"postmortem":          "postmortem.md",
	"library-review":      "library-review.md",
	"technical-deep-dive": "technical-deep-dive.md",
	"quick-tips":          "quick-tips.md",
	"project-showcase":    "project-showcase.md",
	"api-tutorial":        "api-tutorial.md",
}

var (
	ErrUnknownTemplate = errors.New("template not found")
	ErrPostFileExists  = errors.New("post file already exists")
	ErrInvalidFileSlug = errors.New("slug must be a plain file name")
)

var titlePlaceholders = []string{"[Post Title]", "[Title]", "[Project Name]", "[API Tutorial Title]"}

// TemplateNames returns the available template names sorted.
func TemplateNames() []string {
	names := make([]string, 0, len(PostTemplates))
	for name := range PostTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewPostFile instantiates a template as <outputDir>/<slug>.md. Existing files are never overwritten.
func NewPostFile(templatesDir, outputDir, template, slug, title string, today time.Time) (string, error) {
	if slug == "" || slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileSlug, slug)
	}

	file, ok := PostTemplates[template]
	if !ok {
		return "", fmt.Errorf("%w: %q (available: %s)", ErrUnknownTemplate, template, strings.Join(TemplateNames(), ", "))
	}

	raw, err := os.ReadFile(filepath.Join(templatesDir, file))
	if err != nil {
		return "", fmt.Errorf("failed to read template: %w", err)
	}

	content := string(raw)
	for _, placeholder := range titlePlaceholders {
		content = strings.ReplaceAll(content, placeholder, title)
	}
	content = strings.ReplaceAll(content, "YYYY-MM-DD", today.Format("2006-01-02"))

	out := filepath.Join(outputDir, slug+".md")
	f, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, os.ErrExist) {
		return "", fmt.Errorf("%w: %s", ErrPostFileExists, out)
	}
	if err != nil {
		return "", fmt.Errorf("failed to create post file: %w", err)
	}

	_, werr := f.WriteString(content)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		_ = os.Remove(out)
		return "", fmt.Errorf("failed to write post file: %w", werr)
	}
	return out, nil
}
