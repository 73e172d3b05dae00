package testutil

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"model-artifact-registry/internal/domain"
)

// FakeMetadataStore is an in-memory stand-in for the relational metadata
// store with the same uniqueness and cascade semantics as the real schema:
// unique model storage keys, a flat unique alias namespace, unique
// (model, version number) pairs, and cascading deletes. It backs multi-step
// flow tests where expectation-based mocks get unwieldy.
type FakeMetadataStore struct {
	mu       sync.Mutex
	models   map[uuid.UUID]domain.Model
	versions map[uuid.UUID]domain.Version
	aliases  map[uuid.UUID]domain.Alias
}

func NewFakeMetadataStore() *FakeMetadataStore {
	return &FakeMetadataStore{
		models:   make(map[uuid.UUID]domain.Model),
		versions: make(map[uuid.UUID]domain.Version),
		aliases:  make(map[uuid.UUID]domain.Alias),
	}
}

func (s *FakeMetadataStore) Models() domain.ModelRepository     { return &fakeModelRepo{s} }
func (s *FakeMetadataStore) Versions() domain.VersionRepository { return &fakeVersionRepo{s} }
func (s *FakeMetadataStore) Aliases() domain.AliasRepository    { return &fakeAliasRepo{s} }

type fakeModelRepo struct{ s *FakeMetadataStore }

func (r *fakeModelRepo) Create(_ context.Context, model *domain.Model) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.models {
		if m.StorageKey == model.StorageKey {
			return domain.ErrModelNameConflict
		}
	}
	stored := *model
	stored.Versions = nil
	r.s.models[model.ID] = stored
	return nil
}

func (r *fakeModelRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Model, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.models[id]
	if !ok {
		return nil, domain.ErrModelNotFound
	}
	copied := m
	return &copied, nil
}

func (r *fakeModelRepo) GetByStorageKey(_ context.Context, key string) (*domain.Model, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.models {
		if m.StorageKey == key {
			copied := m
			return &copied, nil
		}
	}
	return nil, domain.ErrModelNotFound
}

func (r *fakeModelRepo) List(_ context.Context) ([]*domain.Model, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	models := make([]*domain.Model, 0, len(r.s.models))
	for _, m := range r.s.models {
		copied := m
		models = append(models, &copied)
	}
	return models, nil
}

func (r *fakeModelRepo) Count(_ context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.models), nil
}

func (r *fakeModelRepo) Update(_ context.Context, model *domain.Model) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.models[model.ID]; !ok {
		return domain.ErrModelNotFound
	}
	stored := *model
	stored.Versions = nil
	r.s.models[model.ID] = stored
	return nil
}

func (r *fakeModelRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.models[id]; !ok {
		return domain.ErrModelNotFound
	}
	delete(r.s.models, id)
	for vid, v := range r.s.versions {
		if v.ModelID == id {
			delete(r.s.versions, vid)
			r.s.deleteAliasOf(vid)
		}
	}
	return nil
}

type fakeVersionRepo struct{ s *FakeMetadataStore }

func (r *fakeVersionRepo) Create(_ context.Context, version *domain.Version) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.versions {
		if v.ModelID == version.ModelID && v.VersionNumber == version.VersionNumber {
			return domain.ErrVersionNumberConflict
		}
	}
	stored := *version
	stored.Alias = nil
	r.s.versions[version.ID] = stored
	return nil
}

func (r *fakeVersionRepo) GetByModelAndNumber(_ context.Context, modelID uuid.UUID, versionNumber int) (*domain.Version, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.versions {
		if v.ModelID == modelID && v.VersionNumber == versionNumber {
			copied := v
			copied.Alias = r.s.aliasOf(v.ID)
			return &copied, nil
		}
	}
	return nil, domain.ErrVersionNotFound
}

func (r *fakeVersionRepo) ListByModel(_ context.Context, modelID uuid.UUID) ([]*domain.Version, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	versions := make([]*domain.Version, 0)
	for _, v := range r.s.versions {
		if v.ModelID == modelID {
			copied := v
			copied.Alias = r.s.aliasOf(v.ID)
			versions = append(versions, &copied)
		}
	}
	return versions, nil
}

func (r *fakeVersionRepo) Delete(_ context.Context, modelID uuid.UUID, versionNumber int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, v := range r.s.versions {
		if v.ModelID == modelID && v.VersionNumber == versionNumber {
			delete(r.s.versions, id)
			r.s.deleteAliasOf(id)
			return nil
		}
	}
	return domain.ErrVersionNotFound
}

type fakeAliasRepo struct{ s *FakeMetadataStore }

func (r *fakeAliasRepo) Create(_ context.Context, alias *domain.Alias) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.aliases {
		if a.Name == alias.Name || a.VersionID == alias.VersionID {
			return domain.ErrAliasConflict
		}
	}
	r.s.aliases[alias.ID] = *alias
	return nil
}

func (r *fakeAliasRepo) GetByName(_ context.Context, name string) (*domain.Alias, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.aliases {
		if a.Name == name {
			copied := a
			return &copied, nil
		}
	}
	return nil, domain.ErrAliasNotFound
}

// callers hold s.mu

func (s *FakeMetadataStore) aliasOf(versionID uuid.UUID) *domain.Alias {
	for _, a := range s.aliases {
		if a.VersionID == versionID {
			copied := a
			return &copied
		}
	}
	return nil
}

func (s *FakeMetadataStore) deleteAliasOf(versionID uuid.UUID) {
	for id, a := range s.aliases {
		if a.VersionID == versionID {
			delete(s.aliases, id)
		}
	}
}
