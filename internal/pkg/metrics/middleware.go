package metrics

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// MetricsPath is the default path for the metrics endpoint
const MetricsPath = "/metrics"

// PrometheusMiddleware records request count, duration and in-flight
// requests. Requests to skipPath are not recorded.
func PrometheusMiddleware(registry Registry, skipPath string) func(http.Handler) http.Handler {
	if skipPath == "" {
		skipPath = MetricsPath
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == skipPath {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			registry.IncHTTPRequestsInFlight()
			defer registry.DecHTTPRequestsInFlight()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			registry.RecordHTTPRequest(r.Method, GetRoutePath(r), FormatStatusCode(status), time.Since(start).Seconds())
		})
	}
}
