package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Path(t *testing.T) {
	t.Parallel()

	w := Writer{Dir: "/archive", Format: "snapshot_{timestamp}", Ext: ".md"}
	now := time.Date(2025, 3, 7, 14, 30, 15, 0, time.UTC)

	assert.Equal(t, filepath.Join("/archive", "2025", "snapshot_20250307_143015.md"), w.Path(now))
}

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := Writer{Dir: dir, Format: "{doc}_{date}", Ext: ".md", DocPath: "docs/activeContext.md"}
	now := time.Date(2025, 3, 7, 14, 30, 15, 0, time.UTC)

	first, err := w.Write(now, []byte("one"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2025", "activeContext_2025-03-07.md"), first)

	second, err := w.Write(now, []byte("two"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2025", "activeContext_2025-03-07_2.md"), second)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data), "existing snapshots are never replaced")
}
