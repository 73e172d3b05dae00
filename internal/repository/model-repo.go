package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"model-artifact-registry/internal/domain"
)

const modelColumns = `id, created_at, updated_at, name, storage_key,
	description, created_by, tags, latest_version`

type modelRepo struct {
	pool *pgxpool.Pool
}

func NewModelRepository(pool *pgxpool.Pool) domain.ModelRepository {
	return &modelRepo{pool: pool}
}

func (r *modelRepo) Create(ctx context.Context, model *domain.Model) error {
	tagsJSON, err := json.Marshal(model.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	query := `
		INSERT INTO models
			(id, created_at, updated_at, name, storage_key,
			 description, created_by, tags, latest_version)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`

	_, err = r.pool.Exec(ctx, query,
		model.ID, model.CreatedAt, model.UpdatedAt,
		model.Name, model.StorageKey, model.Description,
		model.CreatedBy, tagsJSON, model.LatestVersion,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrModelNameConflict
		}
		return fmt.Errorf("create model: %w", err)
	}
	return nil
}

func (r *modelRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Model, error) {
	query := fmt.Sprintf(`SELECT %s FROM models WHERE id = $1`, modelColumns)

	model, err := scanModel(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrModelNotFound
		}
		return nil, fmt.Errorf("get model by id: %w", err)
	}
	return model, nil
}

func (r *modelRepo) GetByStorageKey(ctx context.Context, key string) (*domain.Model, error) {
	query := fmt.Sprintf(`SELECT %s FROM models WHERE storage_key = $1`, modelColumns)

	model, err := scanModel(r.pool.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrModelNotFound
		}
		return nil, fmt.Errorf("get model by storage key: %w", err)
	}
	return model, nil
}

func (r *modelRepo) List(ctx context.Context) ([]*domain.Model, error) {
	query := fmt.Sprintf(`SELECT %s FROM models ORDER BY created_at`, modelColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	models := make([]*domain.Model, 0)
	for rows.Next() {
		m, err := scanModel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan model row: %w", err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate model rows: %w", err)
	}
	return models, nil
}

func (r *modelRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM models`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count models: %w", err)
	}
	return count, nil
}

func (r *modelRepo) Update(ctx context.Context, model *domain.Model) error {
	tagsJSON, err := json.Marshal(model.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	// storage_key is immutable: renames change the display name only, so
	// artifacts stay reachable under their original key.
	query := `
		UPDATE models
		SET name=$1, description=$2, created_by=$3, tags=$4,
			latest_version=$5, updated_at=$6
		WHERE id=$7
	`
	result, err := r.pool.Exec(ctx, query,
		model.Name, model.Description, model.CreatedBy,
		tagsJSON, model.LatestVersion, model.UpdatedAt, model.ID,
	)
	if err != nil {
		return fmt.Errorf("update model: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrModelNotFound
	}
	return nil
}

func (r *modelRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM models WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete model: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrModelNotFound
	}
	return nil
}

func scanModel(row pgx.Row) (*domain.Model, error) {
	m := &domain.Model{}
	var tagsJSON []byte

	err := row.Scan(
		&m.ID, &m.CreatedAt, &m.UpdatedAt, &m.Name, &m.StorageKey,
		&m.Description, &m.CreatedBy, &tagsJSON, &m.LatestVersion,
	)
	if err != nil {
		return nil, err
	}

	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &m.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal tags: %w", err)
		}
	}
	return m, nil
}
