package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry defines the interface for metrics collection
type Registry interface {
	// HTTP
	RecordHTTPRequest(method, path, statusCode string, duration float64)
	IncHTTPRequestsInFlight()
	DecHTTPRequestsInFlight()

	// Read-through cache, labelled by fetch kind ("list", "slug")
	RecordCacheLookup(kind string, hit bool)
	RecordStoreFetch(kind string, duration float64, err error)

	// Posts and admin
	IncPostViews()
	IncPostViewFailures()
	IncAdminWrites(entity, operation string)

	GetRegistry() *prometheus.Registry
	GetHandler() http.Handler
}

// NoOpRegistry is used when metrics are disabled
type NoOpRegistry struct{}

func NewNoOpRegistry() Registry {
	return &NoOpRegistry{}
}

func (n *NoOpRegistry) RecordHTTPRequest(method, path, statusCode string, duration float64) {}
func (n *NoOpRegistry) IncHTTPRequestsInFlight()                                            {}
func (n *NoOpRegistry) DecHTTPRequestsInFlight()                                            {}
func (n *NoOpRegistry) RecordCacheLookup(kind string, hit bool)                             {}
func (n *NoOpRegistry) RecordStoreFetch(kind string, duration float64, err error)           {}
func (n *NoOpRegistry) IncPostViews()                                                       {}
func (n *NoOpRegistry) IncPostViewFailures()                                                {}
func (n *NoOpRegistry) IncAdminWrites(entity, operation string)                             {}
func (n *NoOpRegistry) GetRegistry() *prometheus.Registry                                   { return nil }
func (n *NoOpRegistry) GetHandler() http.Handler                                            { return nil }

const (
	LabelMethod      = "method"
	LabelPath        = "path"
	LabelStatusCode  = "status_code"
	LabelKind        = "kind"
	LabelResult      = "result"
	LabelEntity      = "entity"
	LabelOperation   = "operation"
	LabelCacheStatus = "cache_status"
)

const (
	CacheHit  = "hit"
	CacheMiss = "miss"

	ResultSuccess = "success"
	ResultError   = "error"
)
