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

// ModelUseCase implements the model-level registry operations. It is the only
// component that talks to both the metadata store and the artifact store;
// metadata commits always precede artifact writes, and a storage failure
// after commit leaves the rows in an artifact-missing state that is surfaced,
// never rolled back.
type ModelUseCase struct {
	models   domain.ModelRepository
	versions domain.VersionRepository
	aliases  domain.AliasRepository
	store    storage.Store
}

func NewModelUseCase(models domain.ModelRepository, versions domain.VersionRepository, aliases domain.AliasRepository, store storage.Store) *ModelUseCase {
	return &ModelUseCase{models: models, versions: versions, aliases: aliases, store: store}
}

type RegisterModelInput struct {
	Name               string
	Description        string
	CreatedBy          string
	Tags               map[string]any
	VersionDescription string
	VersionMetrics     map[string]float64
	VersionParameters  map[string]any
	VersionTags        map[string]any
	VersionAlias       string
	FileName           string
	File               io.Reader
}

type UpdateModelInput struct {
	Name        *string
	Description *string
	CreatedBy   *string
	Tags        map[string]any
}

// List returns every model with its versions (and their aliases) attached.
func (uc *ModelUseCase) List(ctx context.Context) ([]*domain.Model, error) {
	models, err := uc.models.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range models {
		if err := uc.attachVersions(ctx, m); err != nil {
			return nil, err
		}
	}
	return models, nil
}

func (uc *ModelUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.Model, error) {
	model, err := uc.models.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.attachVersions(ctx, model); err != nil {
		return nil, err
	}
	return model, nil
}

func (uc *ModelUseCase) Count(ctx context.Context) (int, error) {
	return uc.models.Count(ctx)
}

// Register creates a model together with its first version (number 1),
// optionally an alias, and finally the artifact bytes. Name and alias
// conflicts are rejected before any row is written.
func (uc *ModelUseCase) Register(ctx context.Context, in RegisterModelInput) (*domain.Model, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidModelName
	}
	if in.Description == "" || in.CreatedBy == "" || in.VersionDescription == "" || in.FileName == "" {
		return nil, domain.ErrInvalidMetadata
	}

	key := domain.NormalizeName(in.Name)

	// Uniqueness is normalization-aware: "Resnet 50" and "resnet 50" share
	// a storage key and therefore collide.
	if _, err := uc.models.GetByStorageKey(ctx, key); err == nil {
		return nil, domain.ErrModelNameConflict
	} else if !errors.Is(err, domain.ErrModelNotFound) {
		return nil, err
	}

	if in.VersionAlias != "" {
		if err := uc.checkAliasFree(ctx, in.VersionAlias); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	model := &domain.Model{
		ID:            uuid.New(),
		CreatedAt:     now,
		UpdatedAt:     now,
		Name:          in.Name,
		StorageKey:    key,
		Description:   in.Description,
		CreatedBy:     in.CreatedBy,
		Tags:          in.Tags,
		LatestVersion: 1,
	}
	if model.Tags == nil {
		model.Tags = map[string]any{}
	}

	version := newVersion(model.ID, 1, in.VersionDescription, in.CreatedBy,
		in.VersionTags, in.VersionMetrics, in.VersionParameters,
		domain.NormalizeName(in.FileName), now)

	if err := uc.models.Create(ctx, model); err != nil {
		return nil, err
	}
	if err := uc.versions.Create(ctx, version); err != nil {
		return nil, err
	}
	if in.VersionAlias != "" {
		alias := &domain.Alias{ID: uuid.New(), CreatedAt: now, Name: in.VersionAlias, VersionID: version.ID}
		if err := uc.aliases.Create(ctx, alias); err != nil {
			return nil, err
		}
		version.Alias = alias
	}

	if err := uc.store.Save(ctx, version.FileName, model.StorageKey, 1, in.File); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"model_id": model.ID,
			"version":  1,
		}).Error("artifact save failed after metadata commit, version left without bytes")
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}

	model.Versions = []*domain.Version{version}
	return model, nil
}

// Update applies a partial update: only the supplied fields change. The
// storage key is never touched, so a rename does not move stored artifacts.
func (uc *ModelUseCase) Update(ctx context.Context, id uuid.UUID, in UpdateModelInput) (*domain.Model, error) {
	model, err := uc.models.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidModelName
		}
		model.Name = *in.Name
	}
	if in.Description != nil {
		if *in.Description == "" {
			return nil, domain.ErrInvalidMetadata
		}
		model.Description = *in.Description
	}
	if in.CreatedBy != nil {
		if *in.CreatedBy == "" {
			return nil, domain.ErrInvalidMetadata
		}
		model.CreatedBy = *in.CreatedBy
	}
	if in.Tags != nil {
		model.Tags = in.Tags
	}
	model.UpdatedAt = time.Now().UTC()

	if err := uc.models.Update(ctx, model); err != nil {
		return nil, err
	}
	return model, nil
}

// Delete removes a model, its versions, and their aliases. Artifacts are
// removed per existing version row, keyed by the row's real version number,
// so the walk survives gaps left by individual version deletions. An absent
// artifact is fine; a store I/O failure aborts before any row is deleted.
func (uc *ModelUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	model, err := uc.models.GetByID(ctx, id)
	if err != nil {
		return err
	}

	versions, err := uc.versions.ListByModel(ctx, id)
	if err != nil {
		return err
	}

	for _, v := range versions {
		wasPresent, err := uc.store.Delete(ctx, v.FileName, model.StorageKey, v.VersionNumber)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
		}
		if !wasPresent {
			log.WithFields(log.Fields{
				"model_id": model.ID,
				"version":  v.VersionNumber,
			}).Warn("artifact already absent during model delete")
		}
	}

	return uc.models.Delete(ctx, id)
}

func (uc *ModelUseCase) attachVersions(ctx context.Context, model *domain.Model) error {
	versions, err := uc.versions.ListByModel(ctx, model.ID)
	if err != nil {
		return err
	}
	model.Versions = versions
	return nil
}

// checkAliasFree rejects alias names that are taken anywhere in the registry;
// the alias namespace is flat, not scoped per model.
func (uc *ModelUseCase) checkAliasFree(ctx context.Context, name string) error {
	if _, err := uc.aliases.GetByName(ctx, name); err == nil {
		return domain.ErrAliasConflict
	} else if !errors.Is(err, domain.ErrAliasNotFound) {
		return err
	}
	return nil
}

func newVersion(modelID uuid.UUID, number int, description, createdBy string, tags map[string]any, metrics map[string]float64, parameters map[string]any, fileName string, now time.Time) *domain.Version {
	if tags == nil {
		tags = map[string]any{}
	}
	if metrics == nil {
		metrics = map[string]float64{}
	}
	if parameters == nil {
		parameters = map[string]any{}
	}
	return &domain.Version{
		ID:            uuid.New(),
		CreatedAt:     now,
		UpdatedAt:     now,
		ModelID:       modelID,
		VersionNumber: number,
		Description:   description,
		CreatedBy:     createdBy,
		Tags:          tags,
		Metrics:       metrics,
		Parameters:    parameters,
		FileName:      fileName,
	}
}
