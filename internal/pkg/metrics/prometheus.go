package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sp3dr4/folio/config"
)

// PrometheusRegistry implements the Registry interface using Prometheus metrics
type PrometheusRegistry struct {
	registry *prometheus.Registry
	config   config.MetricsConfig

	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	cacheLookupsTotal  *prometheus.CounterVec
	storeFetchDuration *prometheus.HistogramVec

	postViewsTotal        prometheus.Counter
	postViewFailuresTotal prometheus.Counter
	adminWritesTotal      *prometheus.CounterVec
}

// NewPrometheusRegistry creates a new Prometheus metrics registry
func NewPrometheusRegistry(cfg config.MetricsConfig) (Registry, error) {
	registry := prometheus.NewRegistry()

	httpRequestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelPath, LabelStatusCode},
	)

	httpRequestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelPath, LabelStatusCode},
	)

	httpRequestsInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	cacheLookupsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "post_cache_lookups_total",
			Help:      "Read-through post cache lookups by fetch kind and outcome",
		},
		[]string{LabelKind, LabelCacheStatus},
	)

	storeFetchDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "store_fetch_duration_seconds",
			Help:      "Duration of post reads that reached the data store",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{LabelKind, LabelResult},
	)

	postViewsTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "post_views_total",
			Help:      "Total number of recorded post views",
		},
	)

	postViewFailuresTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "post_view_failures_total",
			Help:      "View-count increments that failed and were dropped",
		},
	)

	adminWritesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "admin_writes_total",
			Help:      "Successful admin writes by entity and operation",
		},
		[]string{LabelEntity, LabelOperation},
	)

	metricsCollectors := []prometheus.Collector{
		httpRequestsTotal,
		httpRequestDuration,
		httpRequestsInFlight,
		cacheLookupsTotal,
		storeFetchDuration,
		postViewsTotal,
		postViewFailuresTotal,
		adminWritesTotal,
	}

	for _, collector := range metricsCollectors {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}

	if cfg.CollectRuntime {
		registry.MustRegister(collectors.NewGoCollector())
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	return &PrometheusRegistry{
		registry:              registry,
		config:                cfg,
		httpRequestsTotal:     httpRequestsTotal,
		httpRequestDuration:   httpRequestDuration,
		httpRequestsInFlight:  httpRequestsInFlight,
		cacheLookupsTotal:     cacheLookupsTotal,
		storeFetchDuration:    storeFetchDuration,
		postViewsTotal:        postViewsTotal,
		postViewFailuresTotal: postViewFailuresTotal,
		adminWritesTotal:      adminWritesTotal,
	}, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration
func (p *PrometheusRegistry) RecordHTTPRequest(method, path, statusCode string, duration float64) {
	labels := prometheus.Labels{
		LabelMethod:     method,
		LabelPath:       path,
		LabelStatusCode: statusCode,
	}
	p.httpRequestsTotal.With(labels).Inc()
	p.httpRequestDuration.With(labels).Observe(duration)
}

func (p *PrometheusRegistry) IncHTTPRequestsInFlight() {
	p.httpRequestsInFlight.Inc()
}

func (p *PrometheusRegistry) DecHTTPRequestsInFlight() {
	p.httpRequestsInFlight.Dec()
}

// RecordCacheLookup counts one read-through lookup as a hit or a miss
func (p *PrometheusRegistry) RecordCacheLookup(kind string, hit bool) {
	status := CacheMiss
	if hit {
		status = CacheHit
	}
	p.cacheLookupsTotal.WithLabelValues(kind, status).Inc()
}

func (p *PrometheusRegistry) RecordStoreFetch(kind string, duration float64, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	p.storeFetchDuration.WithLabelValues(kind, result).Observe(duration)
}

func (p *PrometheusRegistry) IncPostViews() {
	p.postViewsTotal.Inc()
}

func (p *PrometheusRegistry) IncPostViewFailures() {
	p.postViewFailuresTotal.Inc()
}

func (p *PrometheusRegistry) IncAdminWrites(entity, operation string) {
	p.adminWritesTotal.WithLabelValues(SanitizeLabel(entity), SanitizeLabel(operation)).Inc()
}

// GetRegistry returns the underlying Prometheus registry
func (p *PrometheusRegistry) GetRegistry() *prometheus.Registry {
	return p.registry
}

// GetHandler returns an HTTP handler for the metrics endpoint
func (p *PrometheusRegistry) GetHandler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
