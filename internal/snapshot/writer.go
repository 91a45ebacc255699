package snapshot

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mementor/mementor/internal/format"
	"github.com/mementor/mementor/internal/storage"
)

// maxNameAttempts bounds the numeric suffixes tried when a name is taken.
const maxNameAttempts = 100

// Writer places snapshots under Dir/<year>/.
type Writer struct {
	Dir     string // archive root
	Format  string // snapshot_format
	Ext     string // snapshot_ext, including the dot
	DocPath string // active document, for {doc}
}

// Path returns the preferred path for a snapshot created at now.
func (w Writer) Path(now time.Time) string {
	return w.path(now, 0)
}

func (w Writer) path(now time.Time, attempt int) string {
	name := format.FormatSnapshotName(w.Format, format.FormatParams{Time: now, DocPath: w.DocPath})
	if attempt > 0 {
		name += "_" + strconv.Itoa(attempt+1)
	}
	return filepath.Join(w.Dir, now.Format(format.YearLayout), name+w.Ext)
}

// Write stores content without replacing existing snapshots. When the
// formatted name is taken, "_2", "_3" and so on are appended.
// Returns the path written.
func (w Writer) Write(now time.Time, content []byte) (string, error) {
	for attempt := range maxNameAttempts {
		path := w.path(now, attempt)
		err := storage.WriteNew(path, content, 0o644)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, storage.ErrExists) {
			return "", fmt.Errorf("failed to write snapshot: %w", err)
		}
	}
	return "", fmt.Errorf("failed to write snapshot: %w: %s", storage.ErrExists, w.Path(now))
}
