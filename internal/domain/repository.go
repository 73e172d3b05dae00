package domain

import (
	"context"

	"github.com/google/uuid"
)

// ModelRepository is the metadata-store port for model rows. Implementations
// must enforce storage-key uniqueness at commit time; the engine's read-then-
// write checks rely on that constraint as the second line of defense.
type ModelRepository interface {
	Create(ctx context.Context, model *Model) error
	GetByID(ctx context.Context, id uuid.UUID) (*Model, error)
	GetByStorageKey(ctx context.Context, key string) (*Model, error)
	List(ctx context.Context) ([]*Model, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, model *Model) error
	// Delete removes the model row; version and alias rows cascade.
	Delete(ctx context.Context, id uuid.UUID) error
}

// VersionRepository is the metadata-store port for version rows. Reads attach
// the version's alias when one exists.
type VersionRepository interface {
	Create(ctx context.Context, version *Version) error
	GetByModelAndNumber(ctx context.Context, modelID uuid.UUID, versionNumber int) (*Version, error)
	ListByModel(ctx context.Context, modelID uuid.UUID) ([]*Version, error)
	// Delete removes the version row; its alias cascades.
	Delete(ctx context.Context, modelID uuid.UUID, versionNumber int) error
}

// AliasRepository is the metadata-store port for the flat, registry-wide
// alias namespace.
type AliasRepository interface {
	Create(ctx context.Context, alias *Alias) error
	GetByName(ctx context.Context, name string) (*Alias, error)
}
