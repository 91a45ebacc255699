package output

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
)

func TestWithPrinter_FromContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		p := FromContext(WithPrinter(context.Background(), &buf))
		if p.Writer() != &buf {
			t.Error("Writer() should return the buffer passed to WithPrinter")
		}
	})

	t.Run("default to stdout when not set", func(t *testing.T) {
		t.Parallel()
		p := FromContext(context.Background())
		if p.Writer() != os.Stdout {
			t.Error("Writer() should default to os.Stdout")
		}
	})
}

func TestPrinter_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := New(&buf)
	p.Print("a", "b")
	p.Printf(" %d", 42)
	p.Println()
	p.Println("line")

	want := "ab 42\nline\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrinter_PrintStructured(t *testing.T) {
	t.Parallel()

	v := struct {
		Words int    `json:"word_count" yaml:"word_count"`
		Title string `json:"title" yaml:"title"`
	}{Words: 12, Title: "ctx"}

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := New(&buf).PrintStructured(FormatJSON, v); err != nil {
			t.Fatalf("PrintStructured: %v", err)
		}
		want := "{\n  \"word_count\": 12,\n  \"title\": \"ctx\"\n}\n"
		if got := buf.String(); got != want {
			t.Errorf("json = %q, want %q", got, want)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		if err := New(&buf).PrintStructured(FormatYAML, v); err != nil {
			t.Fatalf("PrintStructured: %v", err)
		}
		if got := buf.String(); !strings.Contains(got, "word_count: 12") || !strings.Contains(got, "title: ctx") {
			t.Errorf("yaml = %q, want word_count and title keys", got)
		}
	})

	t.Run("table rejected", func(t *testing.T) {
		t.Parallel()
		if err := New(&bytes.Buffer{}).PrintStructured(FormatTable, v); err == nil {
			t.Error("PrintStructured(table) = nil, want error")
		}
	})
}
