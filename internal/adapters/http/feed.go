package http

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/feeds"

	"github.com/sp3dr4/folio/internal/domain"
	"github.com/sp3dr4/folio/internal/pkg/logging"
	"github.com/sp3dr4/folio/internal/render"
)

// HandleFeed serves the RSS 2.0 feed of the latest posts.
//
//	@Summary	RSS feed
//	@Tags		feed
//	@Produce	xml
//	@Success	200	{string}	string	"RSS 2.0 document"
//	@Router		/rss.xml [get]
func (h *Handlers) HandleFeed(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	posts, err := h.content.FeedPosts(r.Context())
	if err != nil {
		logger.Error("Failed to load feed posts", "error", err)
		posts = []domain.Post{}
	}

	rss, err := buildFeed(h.site, posts).ToRss()
	if err != nil {
		logger.Error("Failed to render feed", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to render feed")
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(rss))
}

func buildFeed(site Site, posts []domain.Post) *feeds.Feed {
	feed := &feeds.Feed{
		Title:       site.Name,
		Link:        &feeds.Link{Href: site.URL("/blog")},
		Description: site.Tagline,
		Author:      &feeds.Author{Name: site.Author},
		Created:     time.Now().UTC(),
	}
	if len(posts) > 0 && posts[0].PublishedAt != nil {
		feed.Updated = posts[0].PublishedAt.UTC()
	}

	feed.Items = make([]*feeds.Item, 0, len(posts))
	for i := range posts {
		post := &posts[i]
		link := site.URL("/blog/" + url.PathEscape(post.Slug))

		item := &feeds.Item{
			Id:          link,
			Title:       post.Title,
			Link:        &feeds.Link{Href: link},
			Description: render.Description(post),
			Author:      &feeds.Author{Name: site.Author},
		}
		if post.PublishedAt != nil {
			item.Created = post.PublishedAt.UTC()
		}
		if html, err := render.MarkdownToHTML(post.Content); err == nil {
			item.Content = html
		}
		feed.Items = append(feed.Items, item)
	}

	return feed
}
