package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sp3dr4/folio/internal/domain"
)

// BackupTables lists the dumped tables in output order.
var BackupTables = []string{"posts", "projects", "researches"}

const backupDirLayout = "2006-01-02_15-04-05"

// BackupMetadata is written next to the table dumps as metadata.json.
type BackupMetadata struct {
	Timestamp time.Time      `json:"timestamp"`
	Tables    []string       `json:"tables"`
	Counts    map[string]int `json:"counts"`
}

// Total returns the number of rows across every table.
func (m *BackupMetadata) Total() int {
	total := 0
	for _, n := range m.Counts {
		total += n
	}
	return total
}

// Backup dumps every content table into a timestamped directory.
type Backup struct {
	store  domain.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewBackup(store domain.Store, logger *slog.Logger) *Backup {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backup{store: store, logger: logger, now: time.Now}
}

// Run writes backup-<timestamp>/<table>.json for each non-empty table plus
// metadata.json and returns the created directory.
func (b *Backup) Run(ctx context.Context, outputDir string) (string, *BackupMetadata, error) {
	now := b.now()
	dir := filepath.Join(outputDir, "backup-"+now.Format(backupDirLayout))
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	var (
		posts      []domain.Post
		projects   []domain.Project
		researches []domain.Research
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		posts, err = b.store.ListPosts(gctx)
		return err
	})
	g.Go(func() (err error) {
		projects, err = b.store.ListProjects(gctx, domain.ProjectFilter{})
		return err
	})
	g.Go(func() (err error) {
		researches, err = b.store.ListResearches(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", nil, fmt.Errorf("failed to fetch tables: %w", err)
	}

	rows := map[string]any{
		"posts":      posts,
		"projects":   projects,
		"researches": researches,
	}
	meta := &BackupMetadata{
		Timestamp: now.UTC(),
		Tables:    BackupTables,
		Counts: map[string]int{
			"posts":      len(posts),
			"projects":   len(projects),
			"researches": len(researches),
		},
	}

	for _, table := range BackupTables {
		count := meta.Counts[table]
		b.logger.Info("Fetched table", "table", table, "records", count)
		if count == 0 {
			continue
		}
		if err := writeJSON(filepath.Join(dir, table+".json"), rows[table]); err != nil {
			return "", nil, err
		}
	}

	if err := writeJSON(filepath.Join(dir, "metadata.json"), meta); err != nil {
		return "", nil, err
	}

	b.logger.Info("Backup completed", "dir", dir, "records", meta.Total())
	return dir, meta, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
