package ops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/sync/errgroup"

	"github.com/sp3dr4/folio/internal/domain"
)

const (
	slowConnection  = time.Second
	slowQuery       = 500 * time.Millisecond
	verySlowQuery   = time.Second
	performanceRows = 100
	missingSlug     = "non-existent-post-xyz-123"
)

// QAResult is one named check outcome.
type QAResult struct {
	Name    string `json:"name"`
	Details string `json:"details"`
}

type QADetails struct {
	Passed   []QAResult `json:"passed"`
	Failed   []QAResult `json:"failed"`
	Warnings []QAResult `json:"warnings"`
}

// QAReport is the JSON document produced by a QA run.
type QAReport struct {
	Timestamp  time.Time `json:"timestamp"`
	TotalTests int       `json:"totalTests"`
	Passed     int       `json:"passed"`
	Failed     int       `json:"failed"`
	Warnings   int       `json:"warnings"`
	Details    QADetails `json:"details"`
}

// OK reports whether no check failed. Warnings do not count.
func (r *QAReport) OK() bool {
	return r.Failed == 0
}

// QA probes a live store: connectivity, queries, constraints and the view
// counter. Rows it creates are removed before it returns.
type QA struct {
	store  domain.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewQA(store domain.Store, logger *slog.Logger) *QA {
	if logger == nil {
		logger = slog.Default()
	}
	return &QA{store: store, logger: logger, now: time.Now}
}

func (q *QA) Run(ctx context.Context) *QAReport {
	report := &QAReport{
		Timestamp: q.now().UTC(),
		Details: QADetails{
			Passed:   []QAResult{},
			Failed:   []QAResult{},
			Warnings: []QAResult{},
		},
	}

	q.checkConnection(ctx, report)
	q.checkTables(ctx, report)
	q.checkMissingPost(ctx, report)
	q.checkEmptySlug(ctx, report)
	q.checkPublishedRead(ctx, report)
	q.checkIncrement(ctx, report)
	q.checkPerformance(ctx, report)
	q.checkDuplicateSlug(ctx, report)
	q.checkConcurrent(ctx, report)

	report.Passed = len(report.Details.Passed)
	report.Failed = len(report.Details.Failed)
	report.Warnings = len(report.Details.Warnings)
	report.TotalTests = report.Passed + report.Failed
	return report
}

func (q *QA) record(report *QAReport, name string, passed bool, details string) {
	result := QAResult{Name: name, Details: details}
	if passed {
		q.logger.Info("QA check passed", "check", name, "details", details)
		report.Details.Passed = append(report.Details.Passed, result)
		return
	}
	q.logger.Error("QA check failed", "check", name, "details", details)
	report.Details.Failed = append(report.Details.Failed, result)
}

func (q *QA) warn(report *QAReport, name, details string) {
	q.logger.Warn("QA warning", "check", name, "details", details)
	report.Details.Warnings = append(report.Details.Warnings, QAResult{Name: name, Details: details})
}

func (q *QA) checkConnection(ctx context.Context, report *QAReport) {
	start := time.Now()
	err := q.store.HealthCheck(ctx)
	elapsed := time.Since(start)
	if err != nil {
		q.record(report, "Connection established", false, err.Error())
		return
	}
	q.record(report, "Connection established", true, elapsed.Round(time.Millisecond).String())
	if elapsed > slowConnection {
		q.warn(report, "Slow connection", "Connection took > 1s")
	}
}

func (q *QA) checkTables(ctx context.Context, report *QAReport) {
	queries := []struct {
		table string
		run   func() error
	}{
		{"posts", func() error { _, err := q.store.ListPublishedPosts(ctx, 1); return err }},
		{"projects", func() error { _, err := q.store.ListProjects(ctx, domain.ProjectFilter{Limit: 1}); return err }},
		{"researches", func() error { _, err := q.store.ListResearches(ctx); return err }},
	}
	for _, query := range queries {
		name := "Query " + query.table
		if err := query.run(); err != nil {
			q.record(report, name, false, err.Error())
			continue
		}
		q.record(report, name, true, "Data fetched successfully")
	}
}

func (q *QA) checkMissingPost(ctx context.Context, report *QAReport) {
	const name = "Non-existent post handling"
	post, err := q.store.FindPublishedPostBySlug(ctx, missingSlug)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		q.record(report, name, true, "Returns not found")
	case err != nil:
		q.record(report, name, false, err.Error())
	default:
		q.warn(report, name, fmt.Sprintf("Expected no post but got %q", post.Slug))
	}
}

func (q *QA) checkEmptySlug(ctx context.Context, report *QAReport) {
	const name = "Empty slug validation"
	post := &domain.Post{
		ID:        uuid.NewString(),
		Slug:      "",
		Title:     "Test",
		Content:   "Test content",
		CreatedAt: q.now().UTC(),
	}
	created, err := q.store.CreatePost(ctx, post)
	if err != nil {
		q.record(report, name, true, "Correctly rejected")
		return
	}
	q.record(report, name, false, "Should have rejected empty slug")
	q.cleanup(ctx, created.ID)
}

func (q *QA) checkPublishedRead(ctx context.Context, report *QAReport) {
	const name = "Read published posts"
	if _, err := q.store.ListPublishedPosts(ctx, 5); err != nil {
		q.record(report, name, false, err.Error())
		return
	}
	q.record(report, name, true, "Published posts are readable")
}

func (q *QA) checkIncrement(ctx context.Context, report *QAReport) {
	post, err := q.store.CreatePost(ctx, q.testPost("test-qa-"))
	if err != nil {
		q.record(report, "Create test post", false, err.Error())
		return
	}
	defer q.cleanup(ctx, post.ID)

	const name = "View count increment"
	initial := post.ViewCount
	if err := q.store.IncrementViewCount(ctx, post.Slug); err != nil {
		q.record(report, name, false, err.Error())
		return
	}

	updated, err := q.store.GetPost(ctx, post.ID)
	if err != nil {
		q.record(report, name, false, err.Error())
		return
	}
	if updated.ViewCount != initial+1 {
		q.record(report, name, false, fmt.Sprintf("Expected %d, got %d", initial+1, updated.ViewCount))
		return
	}
	q.record(report, name, true, fmt.Sprintf("Incremented from %d to %d", initial, updated.ViewCount))
}

func (q *QA) checkPerformance(ctx context.Context, report *QAReport) {
	start := time.Now()
	if _, err := q.store.ListPublishedPosts(ctx, performanceRows); err != nil {
		q.record(report, "Large query", false, err.Error())
		return
	}
	elapsed := time.Since(start)

	perRow := float64(elapsed.Microseconds()) / 1000 / performanceRows
	q.record(report, "Large query performance", true,
		fmt.Sprintf("%d posts in %dms (%.2fms/post)", performanceRows, elapsed.Milliseconds(), perRow))

	switch {
	case elapsed > verySlowQuery:
		q.warn(report, "Query performance", "100 post query took > 1s")
	case elapsed > slowQuery:
		q.warn(report, "Query performance", "100 post query took > 500ms")
	}
}

func (q *QA) checkDuplicateSlug(ctx context.Context, report *QAReport) {
	const name = "Duplicate key handling"
	first, err := q.store.CreatePost(ctx, q.testPost("test-qa-dup-"))
	if err != nil {
		q.record(report, name, false, err.Error())
		return
	}
	defer q.cleanup(ctx, first.ID)

	dup := q.testPost("")
	dup.Slug = first.Slug
	second, err := q.store.CreatePost(ctx, dup)
	switch {
	case errors.Is(err, domain.ErrSlugExists):
		q.record(report, name, true, "Correctly enforces UNIQUE constraint")
	case err != nil:
		q.record(report, name, false, "Unexpected error response: "+err.Error())
	default:
		q.record(report, name, false, "Duplicate slug was accepted")
		q.cleanup(ctx, second.ID)
	}
}

func (q *QA) checkConcurrent(ctx context.Context, report *QAReport) {
	const name = "Concurrent requests"
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { _, err := q.store.ListPublishedPosts(gctx, 1); return err })
	g.Go(func() error { _, err := q.store.ListProjects(gctx, domain.ProjectFilter{Limit: 1}); return err })
	g.Go(func() error { _, err := q.store.ListResearches(gctx); return err })
	if err := g.Wait(); err != nil {
		q.record(report, name, false, err.Error())
		return
	}
	q.record(report, name, true, "All 3 queries completed")
}

func (q *QA) testPost(prefix string) *domain.Post {
	return &domain.Post{
		ID:        uuid.NewString(),
		Slug:      prefix + strings.ToLower(shortuuid.New()),
		Title:     "QA Test Post",
		Content:   "This is a test post for QA purposes.",
		CreatedAt: q.now().UTC(),
	}
}

func (q *QA) cleanup(ctx context.Context, id string) {
	if err := q.store.DeletePost(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		q.logger.Warn("Failed to remove QA post", "id", id, "error", err)
	}
}

// WriteReport saves the report as indented JSON, creating parent directories.
func WriteReport(path string, report *QAReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	return writeJSON(path, report)
}
