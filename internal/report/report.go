// Package report analyzes every document under a directory concurrently.
package report

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/mementor/mementor/internal/health"
	"github.com/mementor/mementor/internal/log"
)

// Entry is the analysis result of one document.
type Entry struct {
	Path    string                `json:"path" yaml:"path"`
	Metrics *health.HealthMetrics `json:"metrics,omitempty" yaml:"metrics,omitempty"`
	Error   string                `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary aggregates a report.
type Summary struct {
	Documents      int     `json:"documents" yaml:"documents"`
	Unavailable    int     `json:"unavailable" yaml:"unavailable"`
	Words          int     `json:"words" yaml:"words"`
	BrokenLinks    int     `json:"broken_links" yaml:"broken_links"`
	Todos          int     `json:"todos" yaml:"todos"`
	MeanCompletion float64 `json:"mean_completion" yaml:"mean_completion"`
}

// Report is the result of Run.
type Report struct {
	Root    string  `json:"root" yaml:"root"`
	Entries []Entry `json:"entries" yaml:"entries"`
	Summary Summary `json:"summary" yaml:"summary"`
}

// Options controls Run.
type Options struct {
	Ext         string                // document extension, default ".md"
	Exclude     []string              // directories skipped during discovery
	SnapshotDir string                // prior snapshots for last_snapshot_delta
	Concurrency int                   // max parallel analyses, default GOMAXPROCS
	Progress    func(done, total int) // called after each document; may be nil
}

// Discover returns the files under root with extension ext, sorted.
// Hidden directories and excluded directories are skipped. Subdirectories
// that cannot be read are skipped and logged; only an unreadable root fails.
func Discover(ctx context.Context, root, ext string, exclude []string) ([]string, error) {
	l := log.FromContext(ctx)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			l.Debug("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || slices.Contains(exclude, path)) {
				return fs.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// Run analyzes every document under root. Unavailable documents are recorded
// with their error and don't stop the batch; only discovery errors and
// cancellation fail the run. Entries are sorted by path.
func Run(ctx context.Context, root string, opts Options) (*Report, error) {
	ext := opts.Ext
	if ext == "" {
		ext = health.DefaultSnapshotExt
	}

	files, err := Discover(ctx, root, ext, opts.Exclude)
	if err != nil {
		return nil, err
	}
	log.FromContext(ctx).Debug("discovered documents", "root", root, "count", len(files))

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	var (
		mu      sync.Mutex
		entries = make([]Entry, 0, len(files))
		done    atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			entry := Entry{Path: path}
			metrics, err := health.AnalyzeFile(path, health.Options{SnapshotDir: opts.SnapshotDir, SnapshotExt: ext})
			if err != nil {
				entry.Error = err.Error()
			} else {
				entry.Metrics = &metrics
			}

			mu.Lock()
			entries = append(entries, entry)
			mu.Unlock()

			n := done.Add(1)
			if opts.Progress != nil {
				opts.Progress(int(n), len(files))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Path, b.Path)
	})

	return &Report{Root: root, Entries: entries, Summary: summarize(entries)}, nil
}

func summarize(entries []Entry) Summary {
	var (
		s          Summary
		completion float64
	)
	for _, e := range entries {
		if e.Metrics == nil {
			s.Unavailable++
			continue
		}
		s.Documents++
		s.Words += e.Metrics.WordCount
		s.BrokenLinks += len(e.Metrics.BrokenLinks)
		s.Todos += e.Metrics.TodoCount
		completion += e.Metrics.CompletionPercentage
	}
	if s.Documents > 0 {
		s.MeanCompletion = completion / float64(s.Documents)
	}
	return s
}
