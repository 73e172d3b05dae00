package domain

import (
	"time"

	"github.com/google/uuid"
)

// Model is a named, versioned artifact lineage. Name holds the verbatim
// display name; StorageKey holds its normalized form and is the unique key
// both in the metadata store and in artifact paths. StorageKey never changes
// after registration, so renames do not orphan stored artifacts.
type Model struct {
	ID          uuid.UUID      `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Name        string         `json:"name"`
	StorageKey  string         `json:"storage_key"`
	Description string         `json:"description"`
	CreatedBy   string         `json:"created_by"`
	Tags        map[string]any `json:"tags"`

	// LatestVersion counts versions ever created under this model. It is
	// the source of the next version number and never decreases, so it is
	// not the number of currently live versions.
	LatestVersion int `json:"latest_version"`

	// Populated by the engine on reads, not persisted on the model row.
	Versions []*Version `json:"versions,omitempty"`
}

// Version is one immutable artifact generation within a Model. VersionNumber
// is unique per model and monotonically increasing, but not necessarily
// contiguous once versions have been deleted.
type Version struct {
	ID            uuid.UUID          `json:"id"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	ModelID       uuid.UUID          `json:"model_id"`
	VersionNumber int                `json:"version_number"`
	Description   string             `json:"description"`
	CreatedBy     string             `json:"created_by"`
	Tags          map[string]any     `json:"tags"`
	Metrics       map[string]float64 `json:"metrics"`
	Parameters    map[string]any     `json:"parameters"`
	FileName      string             `json:"file_name"`

	// Alias is the version's alias if one exists (at most one).
	Alias *Alias `json:"alias,omitempty"`
}

// Alias is a globally unique human-readable pointer to exactly one Version.
// It is removed automatically when its version is deleted.
type Alias struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	VersionID uuid.UUID `json:"version_id"`
}
