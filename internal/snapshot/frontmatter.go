package snapshot

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---\n"

// ErrNoFrontMatter is returned by Parse for content without a metadata header.
var ErrNoFrontMatter = errors.New("snapshot has no front matter")

// Build prepends a YAML front-matter header carrying meta to body.
func Build(meta Metadata, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(frontMatterDelim)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode metadata: %w", err)
	}

	buf.WriteString(frontMatterDelim)
	buf.WriteString("\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}

// Parse splits snapshot content into its metadata and body.
func Parse(content []byte) (Metadata, string, error) {
	rest, ok := bytes.CutPrefix(content, []byte(frontMatterDelim))
	if !ok {
		return Metadata{}, "", ErrNoFrontMatter
	}
	header, body, ok := bytes.Cut(rest, []byte("\n"+frontMatterDelim))
	if !ok {
		return Metadata{}, "", ErrNoFrontMatter
	}

	var meta Metadata
	if err := yaml.Unmarshal(header, &meta); err != nil {
		return Metadata{}, "", fmt.Errorf("failed to decode metadata: %w", err)
	}
	return meta, string(bytes.TrimPrefix(body, []byte("\n"))), nil
}
