package snapshot

import (
	"time"

	"github.com/google/uuid"

	"github.com/mementor/mementor/internal/config"
	"github.com/mementor/mementor/internal/health"
)

// Dependency is a named, versioned dependency listed in the metadata.
type Dependency = config.Dependency

// Metadata is the front-matter header of a snapshot.
type Metadata struct {
	ID           string               `json:"id" yaml:"id"`
	Version      string               `json:"version" yaml:"version"`
	Document     string               `json:"document" yaml:"document"`
	CreatedAt    time.Time            `json:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at" yaml:"updated_at"`
	Dependencies []Dependency         `json:"dependencies" yaml:"dependencies"`
	Health       health.HealthMetrics `json:"health" yaml:"health"`
	Tags         []string             `json:"tags" yaml:"tags"`
}

// NewMetadata returns metadata with a fresh ID, created and updated at now.
func NewMetadata(version, document string, now time.Time, metrics health.HealthMetrics) Metadata {
	return Metadata{
		ID:        uuid.NewString(),
		Version:   version,
		Document:  document,
		CreatedAt: now,
		UpdatedAt: now,
		Health:    metrics,
	}
}
