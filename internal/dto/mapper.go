package dto

import (
	"time"

	"model-artifact-registry/internal/domain"
)

const timeFormat = time.RFC3339

func ToModelResponse(m *domain.Model) ModelResponse {
	versions := make([]VersionResponse, 0, len(m.Versions))
	for _, v := range m.Versions {
		versions = append(versions, ToVersionResponse(v))
	}

	return ModelResponse{
		ID:            m.ID,
		CreatedAt:     m.CreatedAt.Format(timeFormat),
		UpdatedAt:     m.UpdatedAt.Format(timeFormat),
		Name:          m.Name,
		StorageKey:    m.StorageKey,
		Description:   m.Description,
		CreatedBy:     m.CreatedBy,
		Tags:          m.Tags,
		LatestVersion: m.LatestVersion,
		Versions:      versions,
	}
}

func ToVersionResponse(v *domain.Version) VersionResponse {
	resp := VersionResponse{
		ID:            v.ID,
		CreatedAt:     v.CreatedAt.Format(timeFormat),
		UpdatedAt:     v.UpdatedAt.Format(timeFormat),
		ModelID:       v.ModelID,
		VersionNumber: v.VersionNumber,
		Description:   v.Description,
		CreatedBy:     v.CreatedBy,
		Tags:          v.Tags,
		Metrics:       v.Metrics,
		Parameters:    v.Parameters,
		FileName:      v.FileName,
	}
	if v.Alias != nil {
		resp.Alias = &AliasResponse{Name: v.Alias.Name}
	}
	return resp
}
