package log

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"
)

func TestPrintf_Println(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		quiet bool
		log   func(l *Logger)
		want  string
	}{
		{
			name: "rendered notice",
			log:  func(l *Logger) { l.Printf("Rendered %s\n", "docs/activeContext.md") },
			want: "Rendered docs/activeContext.md\n",
		},
		{
			name: "warning line",
			log:  func(l *Logger) { l.Println("Warning:", "docs/gone.md", "unavailable") },
			want: "Warning: docs/gone.md unavailable\n",
		},
		{
			name:  "quiet drops printf",
			quiet: true,
			log:   func(l *Logger) { l.Printf("Saved metrics to %s\n", "health.json") },
		},
		{
			name:  "quiet drops println",
			quiet: true,
			log:   func(l *Logger) { l.Println("Would write", "archives/2025/snapshot.md") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			tt.log(New(&buf, false, tt.quiet))
			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		dir     string
		cmd     string
		args    []string
		took    time.Duration
		want    string
	}{
		{
			name:    "staged files in repo",
			verbose: true,
			dir:     "/src/notes",
			cmd:     "git",
			args:    []string{"diff", "--cached", "--name-only", "--diff-filter=ACMR"},
			took:    1234 * time.Microsecond,
			want:    "[/src/notes] $ git diff --cached --name-only --diff-filter=ACMR (1ms)\n",
		},
		{
			name:    "configured hook without dir",
			verbose: true,
			cmd:     "sh",
			args:    []string{"-c", "cp docs/activeContext.md /backup"},
			took:    40 * time.Millisecond,
			want:    "$ sh -c cp docs/activeContext.md /backup (40ms)\n",
		},
		{
			name: "silent without verbose",
			dir:  "/src/notes",
			cmd:  "git",
			args: []string{"add", "archives/2025/snapshot.md"},
			took: time.Millisecond,
		},
		{
			name:    "quiet overrides verbose",
			verbose: true,
			quiet:   true,
			cmd:     "git",
			args:    []string{"rev-parse", "--show-toplevel"},
			took:    time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			l := New(&buf, tt.verbose, tt.quiet)
			done := l.Command(tt.dir, tt.cmd, tt.args...)
			done(tt.took)
			if got := buf.String(); got != tt.want {
				t.Errorf("Command output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDebug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		msg     string
		keyvals []any
		want    string
	}{
		{
			name:    "analysis fields",
			verbose: true,
			msg:     "analyzed document",
			keyvals: []any{"doc", "docs/activeContext.md", "words", 120, "delta", 1.5},
			want:    "analyzed document doc=docs/activeContext.md words=120 delta=1.5\n",
		},
		{
			name:    "slice value",
			verbose: true,
			msg:     "documentation changes staged",
			keyvals: []any{"files", []string{"docs/a.md", "README.md"}},
			want:    "documentation changes staged files=[docs/a.md README.md]\n",
		},
		{
			name:    "trailing key dropped",
			verbose: true,
			msg:     "wrote snapshot",
			keyvals: []any{"path", "archives/2025/snapshot_20250101_120000.md", "id"},
			want:    "wrote snapshot path=archives/2025/snapshot_20250101_120000.md\n",
		},
		{
			name:    "message only",
			verbose: true,
			msg:     "no prior snapshot",
			want:    "no prior snapshot\n",
		},
		{
			name:    "silent without verbose",
			msg:     "discovered documents",
			keyvals: []any{"count", 3},
		},
		{
			name:    "quiet overrides verbose",
			verbose: true,
			quiet:   true,
			msg:     "discovered documents",
			keyvals: []any{"count", 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			New(&buf, tt.verbose, tt.quiet).Debug(tt.msg, tt.keyvals...)
			if got := buf.String(); got != tt.want {
				t.Errorf("Debug output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    bool
	}{
		{"verbose only", true, false, true},
		{"quiet only", false, true, false},
		{"both", true, true, false},
		{"neither", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := New(io.Discard, tt.verbose, tt.quiet).IsVerbose(); got != tt.want {
				t.Errorf("IsVerbose() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("logger attached by the root command", func(t *testing.T) {
		t.Parallel()
		var stderr bytes.Buffer
		ctx := WithLogger(context.Background(), New(&stderr, true, false))

		l := FromContext(ctx)
		if l.Writer() != &stderr {
			t.Error("Writer() did not return the attached writer")
		}
		l.Debug("resolved repository", "root", "/src/notes")
		if got, want := stderr.String(), "resolved repository root=/src/notes\n"; got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("library call without logger", func(t *testing.T) {
		t.Parallel()
		l := FromContext(context.Background())
		if l == nil {
			t.Fatal("FromContext returned nil for empty context")
		}
		if l.Writer() != io.Discard {
			t.Error("fallback logger should write to io.Discard")
		}
		if l.IsVerbose() {
			t.Error("fallback logger should not be verbose")
		}
		l.Printf("Created snapshot %s\n", "archives/2025/snapshot.md")
	})
}
