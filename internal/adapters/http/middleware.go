package http

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/sp3dr4/folio/internal/pkg/logging"
)

// LoggingMiddleware injects a request-scoped logger carrying the request and
// trace IDs, and logs the start and end of every request.
func LoggingMiddleware(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			if reqID := middleware.GetReqID(ctx); reqID != "" {
				ctx = logging.WithRequestID(ctx, reqID)
			}

			traceID := r.Header.Get("X-Trace-Id")
			if traceID == "" {
				traceID = logging.GenerateTraceID()
			}
			ctx = logging.WithTraceID(ctx, traceID)

			w.Header().Set("X-Trace-Id", traceID)

			requestLogger := logging.NewRequestLogger(ctx, baseLogger)
			ctx = logging.WithLogger(ctx, requestLogger)

			requestLogger.Debug("Request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			requestLogger.Info("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status_code", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", float64(time.Since(start).Nanoseconds())/1e6,
			)
		})
	}
}

const maxTrackedClients = 4096

// ipLimiter hands out one token bucket per client IP. The least recently
// seen clients are forgotten past maxTrackedClients.
type ipLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters.Add(ip, limiter)
	}
	return limiter
}

// RateLimitMiddleware answers 429 once a client IP exceeds perMinute
// requests with the given burst.
func RateLimitMiddleware(perMinute, burst int) func(http.Handler) http.Handler {
	limiters, _ := lru.New[string, *rate.Limiter](maxTrackedClients)
	limiter := &ipLimiter{
		limiters: limiters,
		limit:    rate.Every(time.Minute / time.Duration(max(perMinute, 1))),
		burst:    max(burst, 1),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				ip = host
			}

			if !limiter.get(ip).Allow() {
				logging.FromContext(r.Context()).Warn("Admin rate limit exceeded", "ip", ip)
				w.Header().Set("Retry-After", "60")
				respondWithError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
