package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
)

// LocalStore keeps artifacts on a filesystem under
// basePath/<modelKey>/<version>/<fileName>. Directories are created lazily on
// first save. The filesystem is abstracted behind afero so tests run against
// an in-memory backend.
type LocalStore struct {
	fs       afero.Fs
	basePath string
}

func NewLocalStore(basePath string) *LocalStore {
	return &LocalStore{fs: afero.NewOsFs(), basePath: basePath}
}

// NewLocalStoreWithFs is the constructor used by tests.
func NewLocalStoreWithFs(fs afero.Fs, basePath string) *LocalStore {
	return &LocalStore{fs: fs, basePath: basePath}
}

func (s *LocalStore) dir(modelKey string, version int) string {
	return filepath.Join(s.basePath, modelKey, strconv.Itoa(version))
}

func (s *LocalStore) path(fileName, modelKey string, version int) string {
	return filepath.Join(s.dir(modelKey, version), fileName)
}

func (s *LocalStore) Save(_ context.Context, fileName, modelKey string, version int, src io.Reader) error {
	dir := s.dir(modelKey, version)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir %s: %w", dir, err)
	}

	path := s.path(fileName, modelKey, version)
	f, err := s.fs.Create(path)
	if err != nil {
		return fmt.Errorf("create artifact %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		return fmt.Errorf("write artifact %s: %w", path, err)
	}
	return nil
}

func (s *LocalStore) Delete(ctx context.Context, fileName, modelKey string, version int) (bool, error) {
	present, err := s.Exists(ctx, fileName, modelKey, version)
	if err != nil {
		return false, err
	}
	if !present {
		return false, nil
	}

	path := s.path(fileName, modelKey, version)
	if err := s.fs.Remove(path); err != nil {
		return false, fmt.Errorf("delete artifact %s: %w", path, err)
	}
	return true, nil
}

func (s *LocalStore) Resolve(ctx context.Context, fileName, modelKey string, version int) (string, error) {
	present, err := s.Exists(ctx, fileName, modelKey, version)
	if err != nil {
		return "", err
	}
	if !present {
		return "", nil
	}
	return s.path(fileName, modelKey, version), nil
}

func (s *LocalStore) Exists(_ context.Context, fileName, modelKey string, version int) (bool, error) {
	path := s.path(fileName, modelKey, version)
	present, err := afero.Exists(s.fs, path)
	if err != nil {
		return false, fmt.Errorf("stat artifact %s: %w", path, err)
	}
	return present, nil
}

func (s *LocalStore) ListFiles(_ context.Context, modelKey string, version int) ([]string, error) {
	dir := s.dir(modelKey, version)
	present, err := afero.DirExists(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("stat artifact dir %s: %w", dir, err)
	}
	if !present {
		return []string{}, nil
	}

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("list artifact dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
