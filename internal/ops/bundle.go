package ops

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
)

const (
	// DefaultBundleLimitKB flags chunks larger than this many kilobytes.
	DefaultBundleLimitKB = 200
	topChunks            = 20
)

// ErrChunksDirMissing means the frontend has not been built yet.
var ErrChunksDirMissing = errors.New("chunks directory not found")

// Chunk is one analysed JavaScript bundle file.
type Chunk struct {
	File     string
	Size     int64
	GzipSize int64
	Large    bool
}

// BundleReport summarises every chunk and keeps the largest ones.
type BundleReport struct {
	Chunks        []Chunk
	TotalChunks   int
	TotalSize     int64
	TotalGzipSize int64
	LargeChunks   int
	LimitKB       int
}

// AnalyzeBundles measures the raw and gzip size of each .js file in dir.
func AnalyzeBundles(dir string, limitKB int) (*BundleReport, error) {
	if limitKB <= 0 {
		limitKB = DefaultBundleLimitKB
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrChunksDirMissing, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read chunks directory: %w", err)
	}

	report := &BundleReport{LimitKB: limitKB}
	limit := int64(limitKB) * 1024

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".js") || strings.Contains(name, "node_modules") {
			continue
		}

		chunk, err := measureChunk(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		chunk.Large = chunk.Size > limit

		report.TotalChunks++
		report.TotalSize += chunk.Size
		report.TotalGzipSize += chunk.GzipSize
		if chunk.Large {
			report.LargeChunks++
		}
		report.Chunks = append(report.Chunks, chunk)
	}

	sort.SliceStable(report.Chunks, func(i, j int) bool {
		return report.Chunks[i].Size > report.Chunks[j].Size
	})
	if len(report.Chunks) > topChunks {
		report.Chunks = report.Chunks[:topChunks]
	}
	return report, nil
}

type countingWriter struct{ n int64 }

func (c *countingWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}

func measureChunk(path string) (Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return Chunk{}, fmt.Errorf("failed to open chunk: %w", err)
	}
	defer f.Close()

	counter := &countingWriter{}
	zw, err := gzip.NewWriterLevel(counter, gzip.DefaultCompression)
	if err != nil {
		return Chunk{}, err
	}
	size, err := io.Copy(zw, f)
	if err != nil {
		return Chunk{}, fmt.Errorf("failed to compress %s: %w", filepath.Base(path), err)
	}
	if err := zw.Close(); err != nil {
		return Chunk{}, err
	}

	return Chunk{File: filepath.Base(path), Size: size, GzipSize: counter.n}, nil
}

// Print writes the human readable report.
func (r *BundleReport) Print(w io.Writer) {
	fmt.Fprintln(w, "Bundle Size Analysis")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, c := range r.Chunks {
		status := "ok  "
		if c.Large {
			status = "LARGE"
		}
		fmt.Fprintf(w, "%-5s %-30s %-12s (gzip: %s)\n", status, c.File, humanize.IBytes(uint64(c.Size)), humanize.IBytes(uint64(c.GzipSize)))
	}
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintf(w, "Total chunks analyzed: %d\n", r.TotalChunks)
	fmt.Fprintf(w, "Total bundle size: %s\n", humanize.IBytes(uint64(r.TotalSize)))
	fmt.Fprintf(w, "Total gzipped: %s\n", humanize.IBytes(uint64(r.TotalGzipSize)))
	fmt.Fprintf(w, "Large bundles (>%dKB): %d\n", r.LimitKB, r.LargeChunks)

	if r.LargeChunks == 0 {
		fmt.Fprintln(w, "Bundle sizes are within acceptable limits.")
		return
	}
	fmt.Fprintln(w, "Consider code splitting or dynamic imports for the large bundles.")
}
