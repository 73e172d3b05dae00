package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"model-artifact-registry/internal/domain"
)

type aliasRepo struct {
	pool *pgxpool.Pool
}

func NewAliasRepository(pool *pgxpool.Pool) domain.AliasRepository {
	return &aliasRepo{pool: pool}
}

func (r *aliasRepo) Create(ctx context.Context, alias *domain.Alias) error {
	query := `
		INSERT INTO aliases (id, created_at, name, version_id)
		VALUES ($1,$2,$3,$4)
	`

	_, err := r.pool.Exec(ctx, query, alias.ID, alias.CreatedAt, alias.Name, alias.VersionID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAliasConflict
		}
		return fmt.Errorf("create alias: %w", err)
	}
	return nil
}

func (r *aliasRepo) GetByName(ctx context.Context, name string) (*domain.Alias, error) {
	query := `SELECT id, created_at, name, version_id FROM aliases WHERE name = $1`

	a := &domain.Alias{}
	err := r.pool.QueryRow(ctx, query, name).Scan(&a.ID, &a.CreatedAt, &a.Name, &a.VersionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAliasNotFound
		}
		return nil, fmt.Errorf("get alias by name: %w", err)
	}
	return a, nil
}
