package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/dal/postgres"
	"github.com/workhub/workplace-backend/internal/service/models/favorite"
)

// FavoriteDal represents the favorite attendee list data access layer model.
type FavoriteDal struct {
	Id        int64     `db:"id"`
	UserId    string    `db:"user_id"`
	Name      string    `db:"name"`
	Attendees []string  `db:"attendees"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts FavoriteDal to the service layer Favorite model.
func (f *FavoriteDal) ToModel() *favorite.Favorite {
	attendees := f.Attendees
	if attendees == nil {
		attendees = []string{}
	}

	return &favorite.Favorite{
		ID:        f.Id,
		UserID:    f.UserId,
		Name:      f.Name,
		Attendees: attendees,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

var favoriteColumns = []string{
	"id",
	"user_id",
	"name",
	"attendees",
	"created_at",
	"updated_at",
}

type PostgresFavoriteRepository struct {
	conn postgres.Querier
}

func NewPostgresFavoriteRepository(conn postgres.Querier) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{
		conn: conn,
	}
}

// Insert creates a new favorite list and returns it with its assigned id.
func (r *PostgresFavoriteRepository) Insert(ctx context.Context, f favorite.Favorite) (*favorite.Favorite, error) {
	now := time.Now()
	query, args, err := sq.Insert("favorites").
		Columns("user_id", "name", "attendees", "created_at", "updated_at").
		Values(f.UserID, f.Name, f.Attendees, now, now).
		Suffix("RETURNING " + strings.Join(favoriteColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	return r.scanRow(r.conn.QueryRow(ctx, query, args...))
}

// Update rewrites the name and attendees of a favorite list.
func (r *PostgresFavoriteRepository) Update(ctx context.Context, f favorite.Favorite) (*favorite.Favorite, error) {
	query, args, err := sq.Update("favorites").
		Set("name", f.Name).
		Set("attendees", f.Attendees).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": f.ID}).
		Suffix("RETURNING " + strings.Join(favoriteColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	return r.scanRow(r.conn.QueryRow(ctx, query, args...))
}

// GetByID returns one favorite list.
func (r *PostgresFavoriteRepository) GetByID(ctx context.Context, id int64) (*favorite.Favorite, error) {
	query, args, err := sq.Select(favoriteColumns...).
		From("favorites").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.scanRow(r.conn.QueryRow(ctx, query, args...))
}

// ListByUser returns all favorite lists owned by a user.
func (r *PostgresFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]favorite.Favorite, error) {
	query, args, err := sq.Select(favoriteColumns...).
		From("favorites").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("name").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var result []favorite.Favorite
	for rows.Next() {
		var dal FavoriteDal
		err := rows.Scan(
			&dal.Id,
			&dal.UserId,
			&dal.Name,
			&dal.Attendees,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Delete removes a favorite list.
func (r *PostgresFavoriteRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := sq.Delete("favorites").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *PostgresFavoriteRepository) scanRow(row pgx.Row) (*favorite.Favorite, error) {
	var dal FavoriteDal
	err := row.Scan(
		&dal.Id,
		&dal.UserId,
		&dal.Name,
		&dal.Attendees,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}

		return nil, fmt.Errorf("failed to scan favorite: %w", err)
	}

	return dal.ToModel(), nil
}
