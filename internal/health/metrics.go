package health

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// WordsPerMinute is the reading speed used for ReadingTime.
const WordsPerMinute = 200.0

// DefaultSnapshotExt is the extension of prior snapshot files.
const DefaultSnapshotExt = ".md"

// codeFencePattern matches one fenced region: a triple-backtick marker up to
// the next marker, whatever lies between.
var codeFencePattern = regexp.MustCompile("(?s)```.*?```")

// HealthMetrics is the computed health of one document. Values are built by
// Compute and never modified afterwards.
type HealthMetrics struct {
	LastUpdated          time.Time `json:"last_updated" yaml:"last_updated"`
	WordCount            int       `json:"word_count" yaml:"word_count"`
	ReadingTime          float64   `json:"reading_time" yaml:"reading_time"`
	HasTodos             bool      `json:"has_todos" yaml:"has_todos"`
	TodoCount            int       `json:"todo_count" yaml:"todo_count"`
	LinkedFiles          []string  `json:"linked_files" yaml:"linked_files"`
	BrokenLinks          []string  `json:"broken_links" yaml:"broken_links"`
	CompletionPercentage float64   `json:"completion_percentage" yaml:"completion_percentage"`
	SectionCount         int       `json:"section_count" yaml:"section_count"`
	SectionDepth         int       `json:"section_depth" yaml:"section_depth"`
	CodeBlocks           int       `json:"code_blocks" yaml:"code_blocks"`
	AvgSectionLength     float64   `json:"avg_section_length" yaml:"avg_section_length"`
	ReadabilityScore     float64   `json:"readability_score" yaml:"readability_score"`
	LastSnapshotDelta    float64   `json:"last_snapshot_delta" yaml:"last_snapshot_delta"`
}

// Document is the raw text of one document and its modification time.
type Document struct {
	Path    string
	Text    string
	ModTime time.Time
}

// Options controls the filesystem-dependent parts of the analysis.
type Options struct {
	// SnapshotDir is searched recursively for prior snapshots. Empty disables
	// the lookup.
	SnapshotDir string
	// SnapshotExt selects snapshot files by extension (default ".md").
	SnapshotExt string
}

func (o Options) snapshotExt() string {
	if o.SnapshotExt == "" {
		return DefaultSnapshotExt
	}
	return o.SnapshotExt
}

// LoadDocument reads the document at path together with its mtime.
// Any failure is reported as a *DocumentUnavailableError.
func LoadDocument(path string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, &DocumentUnavailableError{Path: path, Err: err}
	}
	if info.IsDir() {
		return Document{}, &DocumentUnavailableError{Path: path, Err: fs.ErrInvalid}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, &DocumentUnavailableError{Path: path, Err: err}
	}

	return Document{Path: path, Text: string(data), ModTime: info.ModTime()}, nil
}

// AnalyzeFile loads the document at path and computes its metrics.
func AnalyzeFile(path string, opts Options) (HealthMetrics, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return HealthMetrics{}, err
	}
	return Compute(doc, opts), nil
}

// Compute derives the health metrics of doc. Only the snapshot lookup touches
// the filesystem; scan errors count as "no prior snapshot".
func Compute(doc Document, opts Options) HealthMetrics {
	text := doc.Text
	words := len(strings.Fields(text))
	links := ClassifyLinks(text)
	progress := CountProgress(text)

	sectionCount, depth := 0, 0
	for s := range Sections(text) {
		sectionCount++
		depth = max(depth, s.Level)
	}

	var avgSection float64
	if sectionCount > 0 {
		// Whole-document words over section count, not a per-section mean.
		avgSection = float64(words) / float64(sectionCount)
	}

	var delta float64
	if latest, ok := LatestSnapshot(opts.SnapshotDir, opts.snapshotExt()); ok {
		delta = daysBetween(latest, doc.ModTime)
	}

	return HealthMetrics{
		LastUpdated:          doc.ModTime,
		WordCount:            words,
		ReadingTime:          float64(words) / WordsPerMinute,
		HasTodos:             progress.HasTodos,
		TodoCount:            progress.TodoCount,
		LinkedFiles:          links.Valid,
		BrokenLinks:          links.Broken,
		CompletionPercentage: progress.CompletionPercentage,
		SectionCount:         sectionCount,
		SectionDepth:         depth,
		CodeBlocks:           CountCodeBlocks(text),
		AvgSectionLength:     avgSection,
		ReadabilityScore:     Readability(text),
		LastSnapshotDelta:    delta,
	}
}

// CountCodeBlocks counts non-overlapping fenced regions. Fences are paired
// first-come, so a marker inside a region closes it.
func CountCodeBlocks(text string) int {
	return len(codeFencePattern.FindAllStringIndex(text, -1))
}

// LatestSnapshot walks dir recursively and returns the newest modification
// time among regular files with extension ext. It reports false when dir is
// empty, missing, unreadable or holds no matching files.
func LatestSnapshot(dir, ext string) (time.Time, bool) {
	_, latest, ok := LatestSnapshotFile(dir, ext)
	return latest, ok
}

// LatestSnapshotFile is LatestSnapshot that also returns the newest file's path.
func LatestSnapshotFile(dir, ext string) (string, time.Time, bool) {
	if dir == "" {
		return "", time.Time{}, false
	}

	var (
		newest string
		latest time.Time
		found  bool
	)
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped; a missing root ends the walk.
			if d != nil && d.IsDir() && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ext) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if !found || info.ModTime().After(latest) {
			newest, latest, found = path, info.ModTime(), true
		}
		return nil
	})

	return newest, latest, found
}

// daysBetween returns the fractional days from then to now, never negative.
func daysBetween(then, now time.Time) float64 {
	days := now.Sub(then).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}
