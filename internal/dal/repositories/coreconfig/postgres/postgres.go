package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/dal/postgres"
	"github.com/workhub/workplace-backend/internal/service/models/coreconfig"
)

type PostgresCoreConfigRepository struct {
	conn postgres.Querier
}

func NewPostgresCoreConfigRepository(conn postgres.Querier) *PostgresCoreConfigRepository {
	return &PostgresCoreConfigRepository{
		conn: conn,
	}
}

// Get returns one configuration entry by key.
func (r *PostgresCoreConfigRepository) Get(ctx context.Context, key string) (*coreconfig.Setting, error) {
	query, args, err := sq.Select("key", "value", "updated_by", "updated_at").
		From("core_configuration").
		Where(sq.Eq{"key": key}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var s coreconfig.Setting
	err = r.conn.QueryRow(ctx, query, args...).Scan(&s.Key, &s.Value, &s.UpdatedBy, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}

		return nil, fmt.Errorf("failed to scan configuration entry: %w", err)
	}

	return &s, nil
}

// Upsert writes a configuration entry, replacing an existing value.
func (r *PostgresCoreConfigRepository) Upsert(ctx context.Context, s coreconfig.Setting) (*coreconfig.Setting, error) {
	query, args, err := sq.Insert("core_configuration").
		Columns("key", "value", "updated_by", "updated_at").
		Values(s.Key, s.Value, s.UpdatedBy, time.Now()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at").
		Suffix("RETURNING key, value, updated_by, updated_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build upsert query: %w", err)
	}

	var out coreconfig.Setting
	err = r.conn.QueryRow(ctx, query, args...).Scan(&out.Key, &out.Value, &out.UpdatedBy, &out.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert configuration entry: %w", err)
	}

	return &out, nil
}

// List returns all configuration entries.
func (r *PostgresCoreConfigRepository) List(ctx context.Context) ([]coreconfig.Setting, error) {
	query, args, err := sq.Select("key", "value", "updated_by", "updated_at").
		From("core_configuration").
		OrderBy("key").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query configuration: %w", err)
	}
	defer rows.Close()

	var result []coreconfig.Setting
	for rows.Next() {
		var s coreconfig.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedBy, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan configuration entry: %w", err)
		}
		result = append(result, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
