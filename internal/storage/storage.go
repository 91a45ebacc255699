// Package storage provides atomic file writes for snapshots, rendered
// documents and exported metrics.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrExists is returned by WriteNew when the target path is already taken.
var ErrExists = errors.New("file already exists")

// WriteFile atomically writes data to path. It ensures the parent directory
// exists, writes to a temp file, then renames to the final path.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, perm); err != nil {
		return err
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return err
	}
	return nil
}

// WriteNew is WriteFile that refuses to replace an existing file.
func WriteNew(path string, data []byte, perm os.FileMode) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	return WriteFile(path, data, perm)
}

// SaveJSON atomically writes data as indented JSON to path.
func SaveJSON(path string, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return WriteFile(path, append(jsonData, '\n'), 0o644)
}

// SaveYAML atomically writes data as YAML to path.
func SaveYAML(path string, data any) error {
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	return WriteFile(path, yamlData, 0o644)
}

// Save writes data as JSON or YAML depending on the extension of path
// (.json, .yaml or .yml).
func Save(path string, data any) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SaveJSON(path, data)
	case ".yaml", ".yml":
		return SaveYAML(path, data)
	}
	return fmt.Errorf("unsupported export format for %s: use .json, .yaml or .yml", path)
}

// Load reads JSON or YAML from path into dest based on its extension.
// Returns an error matching os.ErrNotExist if the file doesn't exist.
func Load(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal(data, dest)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, dest)
	}
	return fmt.Errorf("unsupported format for %s: use .json, .yaml or .yml", path)
}
