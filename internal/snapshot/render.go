package snapshot

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mementor/mementor/internal/log"
	"github.com/mementor/mementor/internal/storage"
)

// CurrentDateKey is set in render contexts that don't define it.
const CurrentDateKey = "current_date"

// LoadContext reads template data from a TOML, YAML or JSON file.
func LoadContext(path string) (map[string]any, error) {
	data := map[string]any{}

	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err = toml.DecodeFile(path, &data)
	} else {
		err = storage.Load(path, &data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load context %s: %w", path, err)
	}
	return data, nil
}

// RenderOptions controls RenderDocument.
type RenderOptions struct {
	Template Template
	Data     map[string]any // may be nil
	Output   string         // destination path
	Now      time.Time      // zero means time.Now()
	DryRun   bool           // render without writing
}

// RenderDocument renders a template into a document such as the active
// context and writes it atomically. Returns the rendered content.
func RenderDocument(ctx context.Context, opts RenderOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	data := make(map[string]any, len(opts.Data)+1)
	for k, v := range opts.Data {
		data[k] = v
	}
	if _, ok := data[CurrentDateKey]; !ok {
		data[CurrentDateKey] = now.Format(time.DateOnly)
	}

	content, err := opts.Template.Render(data)
	if err != nil {
		return "", err
	}

	if opts.DryRun {
		return content, nil
	}

	if err := storage.WriteFile(opts.Output, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", opts.Output, err)
	}
	log.FromContext(ctx).Debug("rendered document", "template", opts.Template.Name, "output", opts.Output)
	return content, nil
}
