package domain

import "errors"

var (
	ErrModelNotFound         = errors.New("model not found")
	ErrModelNameConflict     = errors.New("model with this name already exists")
	ErrVersionNotFound       = errors.New("model version not found")
	ErrVersionNumberConflict = errors.New("version with this number already exists for this model")
	ErrAliasConflict         = errors.New("alias with this name already exists")
	ErrAliasNotFound         = errors.New("alias not found")
	ErrInvalidModelName      = errors.New("model name is required")
	ErrInvalidMetadata       = errors.New("required metadata field is empty")

	// ErrArtifactMissing marks the metadata-without-bytes state: the version
	// row exists but the artifact store holds nothing for it.
	ErrArtifactMissing = errors.New("artifact missing for this version")

	// ErrStorageFailed wraps artifact store I/O failures.
	ErrStorageFailed = errors.New("artifact store operation failed")
)
