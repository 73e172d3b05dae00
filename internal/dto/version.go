package dto

import (
	"fmt"

	"github.com/google/uuid"
)

// RegisterVersionMetadata is the JSON carried in the `metadata` form field of
// a version upload.
type RegisterVersionMetadata struct {
	Description string             `json:"description"`
	CreatedBy   string             `json:"created_by"`
	Tags        map[string]any     `json:"tags"`
	Metrics     map[string]float64 `json:"metrics"`
	Parameters  map[string]any     `json:"parameters"`
	Alias       string             `json:"alias"`
}

func (m *RegisterVersionMetadata) Validate() error {
	for field, value := range map[string]string{
		"description": m.Description,
		"created_by":  m.CreatedBy,
	} {
		if value == "" {
			return fmt.Errorf("field %q is required", field)
		}
	}
	return nil
}

type RegisterVersionResponse struct {
	Message       string    `json:"message"`
	ModelID       uuid.UUID `json:"model_id"`
	VersionNumber int       `json:"version_number"`
	VersionID     uuid.UUID `json:"version_id"`
}
