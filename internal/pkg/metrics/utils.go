package metrics

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// GetRoutePath extracts the route pattern from the request context
// so metrics are grouped by route rather than by slug
func GetRoutePath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}

	return NormalizePath(r.URL.Path)
}

// NormalizePath collapses dynamic path segments to keep label cardinality low
func NormalizePath(path string) string {
	if path == "" || path == "/" {
		return "/"
	}

	switch path {
	case "/health", "/ready", "/metrics", "/rss.xml",
		"/blog", "/portfolio", "/research", "/about", "/admin":
		return path
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case segments[0] == "swagger":
		return "/swagger/*"
	case segments[0] == "blog" && len(segments) == 2:
		return "/blog/{slug}"
	case segments[0] == "admin" && len(segments) >= 3 && segments[1] == "api":
		if len(segments) == 4 {
			return "/admin/api/{kind}/{id}"
		}
		return "/admin/api/" + segments[2]
	}

	return "/other"
}

// GetStatusCodeClass returns the HTTP status code class (2xx, 3xx, 4xx, 5xx)
func GetStatusCodeClass(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}

func FormatStatusCode(statusCode int) string {
	return strconv.Itoa(statusCode)
}

// SanitizeLabel strips characters that break the exposition format and
// caps the length
func SanitizeLabel(value string) string {
	value = strings.NewReplacer("\"", "", "\\", "", "\n", "", "\r", "").Replace(value)

	if len(value) > 100 {
		value = value[:100]
	}

	return value
}
