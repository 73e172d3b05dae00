package usecase

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-artifact-registry/internal/domain"
	"model-artifact-registry/internal/storage"
	"model-artifact-registry/internal/testutil"
)

// Flow tests run both use cases against the in-memory metadata fake and an
// in-memory artifact store, exercising the cross-store behavior end to end.

type registryFixture struct {
	models   *ModelUseCase
	versions *VersionUseCase
	fs       afero.Fs
}

func newRegistry() *registryFixture {
	meta := testutil.NewFakeMetadataStore()
	fs := afero.NewMemMapFs()
	store := storage.NewLocalStoreWithFs(fs, "/data/models")
	return &registryFixture{
		models:   NewModelUseCase(meta.Models(), meta.Versions(), meta.Aliases(), store),
		versions: NewVersionUseCase(meta.Versions(), meta.Models(), meta.Aliases(), store),
		fs:       fs,
	}
}

func (f *registryFixture) registerModel(t *testing.T, name, alias string, content []byte) *domain.Model {
	t.Helper()
	model, err := f.models.Register(context.Background(), RegisterModelInput{
		Name:               name,
		Description:        "a model",
		CreatedBy:          "alice",
		VersionDescription: "initial",
		VersionAlias:       alias,
		FileName:           "Model File.skops",
		File:               bytes.NewReader(content),
	})
	require.NoError(t, err)
	return model
}

func (f *registryFixture) registerVersion(t *testing.T, model *domain.Model, alias string, content []byte) *domain.Version {
	t.Helper()
	version, err := f.versions.Register(context.Background(), model.ID, RegisterVersionInput{
		Description: "next",
		CreatedBy:   "bob",
		Alias:       alias,
		FileName:    "Model File.skops",
		File:        bytes.NewReader(content),
	})
	require.NoError(t, err)
	return version
}

func TestRegisterModelRoundTrip(t *testing.T) {
	f := newRegistry()
	ctx := context.Background()
	content := []byte("the model bytes")

	model := f.registerModel(t, "Resnet 50", "", content)

	// Display name stays verbatim; the storage key is normalized.
	assert.Equal(t, "Resnet 50", model.Name)
	assert.Equal(t, "resnet_50", model.StorageKey)
	assert.Equal(t, 1, model.LatestVersion)

	result, err := f.versions.Download(ctx, model.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Resnet 50", result.ModelName)

	stored, err := afero.ReadFile(f.fs, result.Path)
	require.NoError(t, err)
	assert.Equal(t, content, stored)
	assert.Equal(t, filepath.Join("/data/models", "resnet_50", "1", "model_file.skops"), result.Path)
}

func TestRegisterModel_NormalizedNameCollision(t *testing.T) {
	f := newRegistry()
	ctx := context.Background()

	f.registerModel(t, "Resnet 50", "", []byte("a"))

	// Same storage key after normalization, so this is a conflict even
	// though the raw display names differ.
	_, err := f.models.Register(ctx, RegisterModelInput{
		Name:               "resnet 50",
		Description:        "a model",
		CreatedBy:          "mallory",
		VersionDescription: "initial",
		FileName:           "other.skops",
		File:               bytes.NewReader([]byte("b")),
	})
	assert.ErrorIs(t, err, domain.ErrModelNameConflict)

	models, err := f.models.List(ctx)
	require.NoError(t, err)
	assert.Len(t, models, 1)
}

func TestVersionNumbersNeverRepeatAcrossDeletes(t *testing.T) {
	f := newRegistry()
	ctx := context.Background()

	model := f.registerModel(t, "m", "", []byte("v1"))
	v2 := f.registerVersion(t, model, "", []byte("v2"))
	assert.Equal(t, 2, v2.VersionNumber)

	require.NoError(t, f.versions.Delete(ctx, model.ID, 2))

	// The counter keeps counting versions ever created.
	v3 := f.registerVersion(t, model, "", []byte("v3"))
	assert.Equal(t, 3, v3.VersionNumber)

	got, err := f.models.Get(ctx, model.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.LatestVersion)
}

func TestDeleteVersionThenGetIsNotFound(t *testing.T) {
	f := newRegistry()
	ctx := context.Background()

	model := f.registerModel(t, "m", "", []byte("v1"))
	f.registerVersion(t, model, "", []byte("v2"))

	require.NoError(t, f.versions.Delete(ctx, model.ID, 1))

	_, err := f.versions.Get(ctx, model.ID, 1)
	assert.ErrorIs(t, err, domain.ErrVersionNotFound)

	// The other version is untouched.
	v2, err := f.versions.Get(ctx, model.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, v2.VersionNumber)
}

func TestDeleteFirstVersionKeepsAliasOnSecond(t *testing.T) {
	f := newRegistry()
	ctx := context.Background()

	model := f.registerModel(t, "m", "", []byte("v1"))
	f.registerVersion(t, model, "prod", []byte("v2"))

	require.NoError(t, f.versions.Delete(ctx, model.ID, 1))

	got, err := f.models.Get(ctx, model.ID)
	require.NoError(t, err)
	require.Len(t, got.Versions, 1)
	assert.Equal(t, 2, got.Versions[0].VersionNumber)
	require.NotNil(t, got.Versions[0].Alias)
	assert.Equal(t, "prod", got.Versions[0].Alias.Name)
	assert.Equal(t, 2, got.LatestVersion)
}

func TestDeleteVersionCascadesItsAlias(t *testing.T) {
	f := newRegistry()
	ctx := context.Background()

	model := f.registerModel(t, "m", "champion", []byte("v1"))

	require.NoError(t, f.versions.Delete(ctx, model.ID, 1))

	// The alias name is free again once its version is gone.
	v2, err := f.versions.Register(ctx, model.ID, RegisterVersionInput{
		Description: "next",
		CreatedBy:   "bob",
		Alias:       "champion",
		FileName:    "f.bin",
		File:        bytes.NewReader([]byte("v2")),
	})
	require.NoError(t, err)
	assert.Equal(t, "champion", v2.Alias.Name)
}

func TestDeleteModelCascades(t *testing.T) {
	f := newRegistry()
	ctx := context.Background()

	model := f.registerModel(t, "Resnet 50", "prod", []byte("v1"))
	f.registerVersion(t, model, "", []byte("v2"))

	require.NoError(t, f.models.Delete(ctx, model.ID))

	_, err := f.models.Get(ctx, model.ID)
	assert.ErrorIs(t, err, domain.ErrModelNotFound)

	_, err = f.versions.Get(ctx, model.ID, 1)
	assert.ErrorIs(t, err, domain.ErrVersionNotFound)

	// Artifacts are gone from the store.
	for _, version := range []string{"1", "2"} {
		present, statErr := afero.Exists(f.fs, filepath.Join("/data/models", "resnet_50", version, "model_file.skops"))
		require.NoError(t, statErr)
		assert.False(t, present)
	}

	// Alias namespace is freed, so the name is reusable.
	other := f.registerModel(t, "Other", "prod", []byte("x"))
	require.NotNil(t, other.Versions[0].Alias)
}

func TestDeleteModelSurvivesVersionGaps(t *testing.T) {
	f := newRegistry()
	ctx := context.Background()

	model := f.registerModel(t, "m", "", []byte("v1"))
	f.registerVersion(t, model, "", []byte("v2"))
	f.registerVersion(t, model, "", []byte("v3"))

	// Delete the middle version first: numbers 1 and 3 remain.
	require.NoError(t, f.versions.Delete(ctx, model.ID, 2))
	require.NoError(t, f.models.Delete(ctx, model.ID))

	_, err := f.models.Get(ctx, model.ID)
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestAliasGloballyUnique(t *testing.T) {
	f := newRegistry()
	ctx := context.Background()

	first := f.registerModel(t, "model a", "champion", []byte("a"))

	// The same alias on another model's version is a conflict.
	other := f.registerModel(t, "model b", "", []byte("b"))
	_, err := f.versions.Register(ctx, other.ID, RegisterVersionInput{
		Description: "next",
		CreatedBy:   "bob",
		Alias:       "champion",
		FileName:    "f.bin",
		File:        bytes.NewReader([]byte("b2")),
	})
	assert.ErrorIs(t, err, domain.ErrAliasConflict)

	// The existing alias still points where it did.
	v1, err := f.versions.Get(ctx, first.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, v1.Alias)
	assert.Equal(t, "champion", v1.Alias.Name)
}

func TestDownload_ArtifactMissingAfterMetadataCommit(t *testing.T) {
	f := newRegistry()
	ctx := context.Background()

	model := f.registerModel(t, "m", "", []byte("v1"))

	// Simulate the partial-failure state: bytes vanish, metadata stays.
	require.NoError(t, f.fs.Remove(filepath.Join("/data/models", "m", "1", "model_file.skops")))

	_, err := f.versions.Download(ctx, model.ID, 1)
	assert.ErrorIs(t, err, domain.ErrArtifactMissing)

	// The version row is still queryable.
	_, err = f.versions.Get(ctx, model.ID, 1)
	assert.NoError(t, err)
}

func TestRenameKeepsArtifactsReachable(t *testing.T) {
	f := newRegistry()
	ctx := context.Background()

	model := f.registerModel(t, "Old Name", "", []byte("v1"))

	newName := "New Name"
	_, err := f.models.Update(ctx, model.ID, UpdateModelInput{Name: &newName})
	require.NoError(t, err)

	// The storage key is immutable, so downloads still resolve.
	result, err := f.versions.Download(ctx, model.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "New Name", result.ModelName)
	assert.Contains(t, result.Path, "old_name")
}
