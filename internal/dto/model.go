package dto

import (
	"fmt"

	"github.com/google/uuid"
)

// RegisterModelMetadata is the JSON carried in the `metadata` form field of
// a model upload. Required fields are validated here; violations map to 422.
type RegisterModelMetadata struct {
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	CreatedBy          string             `json:"created_by"`
	Tags               map[string]any     `json:"tags"`
	VersionDescription string             `json:"version_description"`
	VersionMetrics     map[string]float64 `json:"version_metrics"`
	VersionParameters  map[string]any     `json:"version_parameters"`
	VersionTags        map[string]any     `json:"version_tags"`
	VersionAlias       string             `json:"version_alias"`
}

func (m *RegisterModelMetadata) Validate() error {
	for field, value := range map[string]string{
		"name":                m.Name,
		"description":         m.Description,
		"created_by":          m.CreatedBy,
		"version_description": m.VersionDescription,
	} {
		if value == "" {
			return fmt.Errorf("field %q is required", field)
		}
	}
	return nil
}

type UpdateModelRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	CreatedBy   *string        `json:"created_by"`
	Tags        map[string]any `json:"tags"`
}

type AliasResponse struct {
	Name string `json:"name"`
}

type VersionResponse struct {
	ID            uuid.UUID          `json:"id"`
	CreatedAt     string             `json:"created_at"`
	UpdatedAt     string             `json:"updated_at"`
	ModelID       uuid.UUID          `json:"model_id"`
	VersionNumber int                `json:"version_number"`
	Description   string             `json:"description"`
	CreatedBy     string             `json:"created_by"`
	Tags          map[string]any     `json:"tags"`
	Metrics       map[string]float64 `json:"metrics"`
	Parameters    map[string]any     `json:"parameters"`
	FileName      string             `json:"file_name"`
	Alias         *AliasResponse     `json:"alias,omitempty"`
}

type ModelResponse struct {
	ID            uuid.UUID         `json:"id"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at"`
	Name          string            `json:"name"`
	StorageKey    string            `json:"storage_key"`
	Description   string            `json:"description"`
	CreatedBy     string            `json:"created_by"`
	Tags          map[string]any    `json:"tags"`
	LatestVersion int               `json:"latest_version"`
	Versions      []VersionResponse `json:"versions"`
}

type RegisterModelResponse struct {
	Message string    `json:"message"`
	ModelID uuid.UUID `json:"model_id"`
	Name    string    `json:"name"`
}
