package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"model-artifact-registry/internal/domain"
	"model-artifact-registry/internal/storage"
)

// VersionUseCase implements the version-level registry operations.
type VersionUseCase struct {
	versions domain.VersionRepository
	models   domain.ModelRepository
	aliases  domain.AliasRepository
	store    storage.Store
}

func NewVersionUseCase(versions domain.VersionRepository, models domain.ModelRepository, aliases domain.AliasRepository, store storage.Store) *VersionUseCase {
	return &VersionUseCase{versions: versions, models: models, aliases: aliases, store: store}
}

type RegisterVersionInput struct {
	Description string
	CreatedBy   string
	Tags        map[string]any
	Metrics     map[string]float64
	Parameters  map[string]any
	Alias       string
	FileName    string
	File        io.Reader
}

// DownloadResult locates the artifact bytes for a version.
type DownloadResult struct {
	Path      string
	FileName  string
	ModelName string
}

// Register assigns the next version number from the model's monotonic
// counter, commits the version (and alias) rows, bumps the counter, then
// writes the artifact. The alias check runs before any insert so a
// conflicting alias leaves no orphaned version row.
func (uc *VersionUseCase) Register(ctx context.Context, modelID uuid.UUID, in RegisterVersionInput) (*domain.Version, error) {
	if in.Description == "" || in.CreatedBy == "" || in.FileName == "" {
		return nil, domain.ErrInvalidMetadata
	}

	model, err := uc.models.GetByID(ctx, modelID)
	if err != nil {
		return nil, err
	}

	if in.Alias != "" {
		if _, err := uc.aliases.GetByName(ctx, in.Alias); err == nil {
			return nil, domain.ErrAliasConflict
		} else if !errors.Is(err, domain.ErrAliasNotFound) {
			return nil, err
		}
	}

	now := time.Now().UTC()
	next := model.LatestVersion + 1

	version := newVersion(modelID, next, in.Description, in.CreatedBy,
		in.Tags, in.Metrics, in.Parameters,
		domain.NormalizeName(in.FileName), now)

	if err := uc.versions.Create(ctx, version); err != nil {
		return nil, err
	}

	if in.Alias != "" {
		alias := &domain.Alias{ID: uuid.New(), CreatedAt: now, Name: in.Alias, VersionID: version.ID}
		if err := uc.aliases.Create(ctx, alias); err != nil {
			return nil, err
		}
		version.Alias = alias
	}

	model.LatestVersion = next
	model.UpdatedAt = now
	if err := uc.models.Update(ctx, model); err != nil {
		return nil, err
	}

	if err := uc.store.Save(ctx, version.FileName, model.StorageKey, next, in.File); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"model_id": modelID,
			"version":  next,
		}).Error("artifact save failed after metadata commit, version left without bytes")
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}

	return version, nil
}

func (uc *VersionUseCase) Get(ctx context.Context, modelID uuid.UUID, versionNumber int) (*domain.Version, error) {
	return uc.versions.GetByModelAndNumber(ctx, modelID, versionNumber)
}

// Delete removes the version row (its alias cascades), then the artifact.
// A missing artifact is a no-op. The model's version counter is untouched:
// it counts versions ever created, not versions still live.
func (uc *VersionUseCase) Delete(ctx context.Context, modelID uuid.UUID, versionNumber int) error {
	version, err := uc.versions.GetByModelAndNumber(ctx, modelID, versionNumber)
	if err != nil {
		return err
	}
	model, err := uc.models.GetByID(ctx, modelID)
	if err != nil {
		return err
	}

	if err := uc.versions.Delete(ctx, modelID, versionNumber); err != nil {
		return err
	}

	wasPresent, err := uc.store.Delete(ctx, version.FileName, model.StorageKey, versionNumber)
	if err != nil {
		// The row is already gone; surface the failure instead of hiding it.
		return fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}
	if !wasPresent {
		log.WithFields(log.Fields{
			"model_id": modelID,
			"version":  versionNumber,
		}).Warn("artifact already absent during version delete")
	}
	return nil
}

// Download resolves the artifact location for a version. A version row with
// no backing bytes yields ErrArtifactMissing, which is a different failure
// from the version row itself being absent.
func (uc *VersionUseCase) Download(ctx context.Context, modelID uuid.UUID, versionNumber int) (*DownloadResult, error) {
	version, err := uc.versions.GetByModelAndNumber(ctx, modelID, versionNumber)
	if err != nil {
		return nil, err
	}
	model, err := uc.models.GetByID(ctx, modelID)
	if err != nil {
		return nil, err
	}

	path, err := uc.store.Resolve(ctx, version.FileName, model.StorageKey, versionNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}
	if path == "" {
		return nil, domain.ErrArtifactMissing
	}

	return &DownloadResult{Path: path, FileName: version.FileName, ModelName: model.Name}, nil
}
