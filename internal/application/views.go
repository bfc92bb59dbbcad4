package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sp3dr4/folio/internal/domain"
	"github.com/sp3dr4/folio/internal/pkg/metrics"
)

// DefaultViewTimeout bounds a single detached view-count increment.
const DefaultViewTimeout = 5 * time.Second

// ViewCounter records post views in the background. Errors are logged and
// counted, never returned to the caller.
type ViewCounter struct {
	store   domain.PostRepository
	logger  *slog.Logger
	metrics metrics.Registry
	timeout time.Duration

	mu       sync.Mutex
	draining bool
	wg       sync.WaitGroup
}

func NewViewCounter(store domain.PostRepository, logger *slog.Logger, registry metrics.Registry) *ViewCounter {
	if logger == nil {
		logger = slog.Default()
	}
	if registry == nil {
		registry = metrics.NewNoOpRegistry()
	}
	return &ViewCounter{
		store:   store,
		logger:  logger,
		metrics: registry,
		timeout: DefaultViewTimeout,
	}
}

// Record starts the increment for slug and returns immediately.
func (v *ViewCounter) Record(slug string) {
	v.mu.Lock()
	if v.draining {
		v.mu.Unlock()
		v.logger.Debug("View dropped during shutdown", "slug", slug)
		return
	}
	v.wg.Add(1)
	v.mu.Unlock()

	go func() {
		defer v.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), v.timeout)
		defer cancel()

		if err := v.store.IncrementViewCount(ctx, slug); err != nil {
			v.metrics.IncPostViewFailures()
			v.logger.Warn("Failed to increment view count", "slug", slug, "error", err)
			return
		}
		v.metrics.IncPostViews()
	}()
}

// Drain stops accepting views and waits for in-flight increments or ctx.
func (v *ViewCounter) Drain(ctx context.Context) error {
	v.mu.Lock()
	v.draining = true
	v.mu.Unlock()

	done := make(chan struct{})
	go func() {
		v.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
