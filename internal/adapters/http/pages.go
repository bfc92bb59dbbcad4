package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sp3dr4/folio/config"
	"github.com/sp3dr4/folio/internal/domain"
	"github.com/sp3dr4/folio/internal/render"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "blog", "post", "portfolio", "research", "about", "notfound", "admin"}

// baseKeywords prefix the extracted keywords of every post page.
var baseKeywords = []string{"기술 블로그", "Agentic Engineer", "AI", "개발"}

// Site is the identity shared by every page.
type Site struct {
	BaseURL string
	Name    string
	Tagline string
	Author  string
}

func NewSite(cfg config.AppConfig) Site {
	return Site{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		Name:    cfg.SiteName,
		Tagline: cfg.Tagline,
		Author:  cfg.AuthorName,
	}
}

// URL joins path onto the site base URL.
func (s Site) URL(path string) string {
	return s.BaseURL + path
}

// OGImage is the generated social card for title.
func (s Site) OGImage(title string) string {
	return s.URL("/api/og?title=" + url.QueryEscape(title))
}

type pageData struct {
	Site          Site
	Title         string
	Description   string
	Keywords      string
	Canonical     string
	OGType        string
	OGImage       string
	PublishedTime string
	JSONLD        map[string]any
	Year          int
	Body          any
}

type postView struct {
	Post   *domain.Post
	Blocks []render.Block
	Views  string
}

// Pages renders the embedded HTML templates.
type Pages struct {
	templates map[string]*template.Template
	site      Site
}

func NewPages(site Site) (*Pages, error) {
	funcs := template.FuncMap{
		"date": render.Date,
		"isoDate": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.UTC().Format(time.RFC3339)
		},
		"join": strings.Join,
	}

	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &Pages{templates: templates, site: site}, nil
}

func (p *Pages) newData(title, description string, body any) *pageData {
	if description == "" {
		description = p.site.Tagline
	}
	return &pageData{
		Site:        p.site,
		Title:       title,
		Description: description,
		Year:        time.Now().Year(),
		Body:        body,
	}
}

func (p *Pages) postData(post *domain.Post) *pageData {
	description := render.Description(post)
	canonical := p.site.URL("/blog/" + url.PathEscape(post.Slug))
	ogImage := p.site.OGImage(post.Title)

	data := p.newData(post.Title, description, postView{
		Post:   post,
		Blocks: render.SplitParagraphs(post.Content),
		Views:  render.ViewsLabel(post.ViewCount),
	})
	data.Keywords = strings.Join(append(append([]string{}, baseKeywords...), render.ExtractKeywords(post.Content, render.KeywordCount)...), ", ")
	data.Canonical = canonical
	data.OGType = "article"
	data.OGImage = ogImage

	ld := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    post.Title,
		"description": description,
		"url":         canonical,
		"image":       ogImage,
		"author":      map[string]any{"@type": "Person", "name": p.site.Author},
	}
	if post.PublishedAt != nil {
		published := post.PublishedAt.UTC().Format(time.RFC3339)
		data.PublishedTime = published
		ld["datePublished"] = published
		ld["dateModified"] = published
	}
	data.JSONLD = ld

	return data
}

// render buffers the page so a template error never leaves a half-written response.
func (p *Pages) render(w http.ResponseWriter, logger *slog.Logger, status int, name string, data *pageData) {
	tmpl, ok := p.templates[name]
	if !ok {
		logger.Error("Unknown page template", "template", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error("Failed to render page", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
