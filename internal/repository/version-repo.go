package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"model-artifact-registry/internal/domain"
)

// versionColumns joins each version with its alias (LEFT JOIN, at most one).
const versionColumns = `v.id, v.created_at, v.updated_at, v.model_id,
	v.version_number, v.description, v.created_by, v.tags, v.metrics,
	v.parameters, v.file_name,
	a.id, a.created_at, a.name, a.version_id`

type versionRepo struct {
	pool *pgxpool.Pool
}

func NewVersionRepository(pool *pgxpool.Pool) domain.VersionRepository {
	return &versionRepo{pool: pool}
}

func (r *versionRepo) Create(ctx context.Context, version *domain.Version) error {
	tagsJSON, err := json.Marshal(version.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}
	metricsJSON, err := json.Marshal(version.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	parametersJSON, err := json.Marshal(version.Parameters)
	if err != nil {
		return fmt.Errorf("marshal parameters: %w", err)
	}

	query := `
		INSERT INTO versions
			(id, created_at, updated_at, model_id, version_number,
			 description, created_by, tags, metrics, parameters, file_name)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`

	_, err = r.pool.Exec(ctx, query,
		version.ID, version.CreatedAt, version.UpdatedAt,
		version.ModelID, version.VersionNumber, version.Description,
		version.CreatedBy, tagsJSON, metricsJSON, parametersJSON,
		version.FileName,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrVersionNumberConflict
		}
		return fmt.Errorf("create version: %w", err)
	}
	return nil
}

func (r *versionRepo) GetByModelAndNumber(ctx context.Context, modelID uuid.UUID, versionNumber int) (*domain.Version, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM versions v
		LEFT JOIN aliases a ON a.version_id = v.id
		WHERE v.model_id = $1 AND v.version_number = $2
	`, versionColumns)

	version, err := scanVersion(r.pool.QueryRow(ctx, query, modelID, versionNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVersionNotFound
		}
		return nil, fmt.Errorf("get version by model and number: %w", err)
	}
	return version, nil
}

func (r *versionRepo) ListByModel(ctx context.Context, modelID uuid.UUID) ([]*domain.Version, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM versions v
		LEFT JOIN aliases a ON a.version_id = v.id
		WHERE v.model_id = $1
		ORDER BY v.version_number
	`, versionColumns)

	rows, err := r.pool.Query(ctx, query, modelID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	versions := make([]*domain.Version, 0)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan version row: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate version rows: %w", err)
	}
	return versions, nil
}

func (r *versionRepo) Delete(ctx context.Context, modelID uuid.UUID, versionNumber int) error {
	query := `DELETE FROM versions WHERE model_id = $1 AND version_number = $2`
	result, err := r.pool.Exec(ctx, query, modelID, versionNumber)
	if err != nil {
		return fmt.Errorf("delete version: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrVersionNotFound
	}
	return nil
}

func scanVersion(row pgx.Row) (*domain.Version, error) {
	v := &domain.Version{}
	var tagsJSON, metricsJSON, parametersJSON []byte
	var aliasID *uuid.UUID
	var aliasCreatedAt *time.Time
	var aliasName *string
	var aliasVersionID *uuid.UUID

	err := row.Scan(
		&v.ID, &v.CreatedAt, &v.UpdatedAt, &v.ModelID,
		&v.VersionNumber, &v.Description, &v.CreatedBy,
		&tagsJSON, &metricsJSON, &parametersJSON, &v.FileName,
		&aliasID, &aliasCreatedAt, &aliasName, &aliasVersionID,
	)
	if err != nil {
		return nil, err
	}

	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &v.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	if len(metricsJSON) > 0 {
		if err := json.Unmarshal(metricsJSON, &v.Metrics); err != nil {
			return nil, fmt.Errorf("unmarshal metrics: %w", err)
		}
	}
	if len(parametersJSON) > 0 {
		if err := json.Unmarshal(parametersJSON, &v.Parameters); err != nil {
			return nil, fmt.Errorf("unmarshal parameters: %w", err)
		}
	}

	if aliasID != nil {
		v.Alias = &domain.Alias{
			ID:        *aliasID,
			CreatedAt: *aliasCreatedAt,
			Name:      *aliasName,
			VersionID: *aliasVersionID,
		}
	}
	return v, nil
}
