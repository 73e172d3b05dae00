package storage

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStore() (*LocalStore, afero.Fs) {
	fs := afero.NewMemMapFs()
	return NewLocalStoreWithFs(fs, "/data/models"), fs
}

func TestLocalStoreSaveAndExists(t *testing.T) {
	store, fs := newMemStore()
	ctx := context.Background()

	content := []byte("model bytes")
	require.NoError(t, store.Save(ctx, "model.skops", "resnet_50", 1, bytes.NewReader(content)))

	present, err := store.Exists(ctx, "model.skops", "resnet_50", 1)
	require.NoError(t, err)
	assert.True(t, present)

	stored, err := afero.ReadFile(fs, filepath.Join("/data/models", "resnet_50", "1", "model.skops"))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestLocalStoreSaveOverwrites(t *testing.T) {
	store, fs := newMemStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "m.bin", "m", 1, bytes.NewReader([]byte("old"))))
	require.NoError(t, store.Save(ctx, "m.bin", "m", 1, bytes.NewReader([]byte("new"))))

	stored, err := afero.ReadFile(fs, filepath.Join("/data/models", "m", "1", "m.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), stored)
}

func TestLocalStoreResolve(t *testing.T) {
	store, _ := newMemStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "m.bin", "m", 2, bytes.NewReader([]byte("x"))))

	path, err := store.Resolve(ctx, "m.bin", "m", 2)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/data/models", "m", "2", "m.bin"), path)
}

func TestLocalStoreResolveAbsent(t *testing.T) {
	store, _ := newMemStore()

	path, err := store.Resolve(context.Background(), "missing.bin", "m", 1)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLocalStoreDelete(t *testing.T) {
	store, _ := newMemStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "m.bin", "m", 1, bytes.NewReader([]byte("x"))))

	wasPresent, err := store.Delete(ctx, "m.bin", "m", 1)
	require.NoError(t, err)
	assert.True(t, wasPresent)

	present, err := store.Exists(ctx, "m.bin", "m", 1)
	require.NoError(t, err)
	assert.False(t, present)
}

func TestLocalStoreDeleteAbsentIsNoop(t *testing.T) {
	store, _ := newMemStore()

	wasPresent, err := store.Delete(context.Background(), "nothing.bin", "m", 9)
	require.NoError(t, err)
	assert.False(t, wasPresent)
}

func TestLocalStoreListFiles(t *testing.T) {
	store, _ := newMemStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a.bin", "m", 1, bytes.NewReader([]byte("a"))))
	require.NoError(t, store.Save(ctx, "b.bin", "m", 1, bytes.NewReader([]byte("b"))))

	names, err := store.ListFiles(ctx, "m", 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.bin", "b.bin"}, names)
}

func TestLocalStoreListFilesAbsentDir(t *testing.T) {
	store, _ := newMemStore()

	names, err := store.ListFiles(context.Background(), "nope", 3)
	require.NoError(t, err)
	assert.Empty(t, names)
}
