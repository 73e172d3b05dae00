package storage

import (
	"context"
	"io"
)

// Store is the artifact backend holding raw model binaries, addressed by
// (model key, version number, file name). Backends are not transactional
// with the metadata store: every call can fail independently of committed
// rows, and callers order their writes accordingly.
type Store interface {
	// Save writes the artifact bytes, creating the (modelKey, version)
	// location if needed.
	Save(ctx context.Context, fileName, modelKey string, version int, src io.Reader) error

	// Delete removes the artifact and reports whether it was present.
	// Deleting an absent artifact is a no-op, not an error.
	Delete(ctx context.Context, fileName, modelKey string, version int) (bool, error)

	// Resolve returns a path the artifact can be read from, or "" when the
	// backend holds no bytes for the key.
	Resolve(ctx context.Context, fileName, modelKey string, version int) (string, error)

	// Exists reports whether the artifact is present.
	Exists(ctx context.Context, fileName, modelKey string, version int) (bool, error)

	// ListFiles returns the file names stored under (modelKey, version),
	// empty when the location does not exist.
	ListFiles(ctx context.Context, modelKey string, version int) ([]string, error)
}
