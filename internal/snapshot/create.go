package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/mementor/mementor/internal/config"
	"github.com/mementor/mementor/internal/health"
	"github.com/mementor/mementor/internal/log"
)

// Options controls snapshot creation.
type Options struct {
	Root   string         // repository root; relative config paths resolve against it
	Config *config.Config // effective configuration
	Now    time.Time      // creation time; zero means time.Now()
	DryRun bool           // render without writing

	// Templates resolves config template names. Nil means NewRegistry().
	Templates Registry
}

// Result describes a created snapshot.
type Result struct {
	Path     string   // written path, or the path that would be written on dry run
	Metadata Metadata // front-matter header
	Content  []byte   // full file content
}

// Create analyzes the active document, renders a snapshot of it and writes
// it to the archive directory.
func Create(ctx context.Context, opts Options) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	cfg := opts.Config
	l := log.FromContext(ctx)

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	docPath := cfg.DocPath(opts.Root)
	archive := cfg.ArchivePath(opts.Root)

	doc, err := health.LoadDocument(docPath)
	if err != nil {
		return Result{}, err
	}
	metrics := health.Compute(doc, health.Options{SnapshotDir: archive, SnapshotExt: cfg.SnapshotExt})
	l.Debug("analyzed document", "doc", docPath, "words", metrics.WordCount, "delta", metrics.LastSnapshotDelta)

	templates := opts.Templates
	if templates == nil {
		templates = NewRegistry()
	}
	tmpl, err := SelectTemplate(templates, cfg, opts.Root)
	if err != nil {
		return Result{}, err
	}

	meta := NewMetadata(cfg.Snapshot.Version, cfg.ActiveDoc, now, metrics)
	meta.Dependencies = cfg.Snapshot.Dependencies
	meta.Tags = cfg.Snapshot.Tags

	body, err := tmpl.Render(Context{
		Title:        cfg.Snapshot.Title,
		Description:  cfg.Snapshot.Description,
		Changes:      cfg.Snapshot.Changes,
		StateItems:   StateFromDocument(doc.Text),
		Dependencies: cfg.Snapshot.Dependencies,
		NextActions:  cfg.Snapshot.NextActions,
		Metadata:     meta,
	})
	if err != nil {
		return Result{}, err
	}

	content, err := Build(meta, body)
	if err != nil {
		return Result{}, err
	}

	w := Writer{Dir: archive, Format: cfg.SnapshotFormat, Ext: cfg.SnapshotExt, DocPath: docPath}
	res := Result{Metadata: meta, Content: content}

	if opts.DryRun {
		res.Path = w.Path(now)
		return res, nil
	}

	if res.Path, err = w.Write(now, content); err != nil {
		return Result{}, fmt.Errorf("%s: %w", archive, err)
	}
	l.Debug("wrote snapshot", "path", res.Path, "id", meta.ID)
	return res, nil
}

// SelectTemplate returns the template named by cfg.Template. A registered
// name wins over a file of the same name; an empty name selects the builtin.
func SelectTemplate(r Registry, cfg *config.Config, root string) (Template, error) {
	if t, ok := r.Get(cfg.Template); ok {
		return t, nil
	}
	path := cfg.TemplatePath(root)
	if path == "" {
		return Builtin(), nil
	}
	return LoadTemplate(path)
}
