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
	"github.com/workhub/workplace-backend/internal/service/models/menuitem"
)

// MenuItemDal represents the menu item data access layer model.
type MenuItemDal struct {
	Id                int64     `db:"id"`
	Name              string    `db:"name"`
	Description       string    `db:"description"`
	PriceCents        int64     `db:"price_cents"`
	ImageURL          string    `db:"image_url"`
	Category          string    `db:"category"`
	IsActive          bool      `db:"is_active"`
	SupportsSweetness bool      `db:"supports_sweetness"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// ToModel converts MenuItemDal to the service layer MenuItem model.
func (m *MenuItemDal) ToModel() *menuitem.MenuItem {
	return &menuitem.MenuItem{
		ID:                m.Id,
		Name:              m.Name,
		Description:       m.Description,
		PriceCents:        m.PriceCents,
		ImageURL:          m.ImageURL,
		Category:          m.Category,
		IsActive:          m.IsActive,
		SupportsSweetness: m.SupportsSweetness,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

var menuItemColumns = []string{
	"id",
	"name",
	"description",
	"price_cents",
	"image_url",
	"category",
	"is_active",
	"supports_sweetness",
	"created_at",
	"updated_at",
}

type PostgresMenuItemRepository struct {
	conn postgres.Querier
}

func NewPostgresMenuItemRepository(conn postgres.Querier) *PostgresMenuItemRepository {
	return &PostgresMenuItemRepository{
		conn: conn,
	}
}

func (r *PostgresMenuItemRepository) scanRow(row pgx.Row) (*menuitem.MenuItem, error) {
	var dal MenuItemDal
	err := row.Scan(
		&dal.Id,
		&dal.Name,
		&dal.Description,
		&dal.PriceCents,
		&dal.ImageURL,
		&dal.Category,
		&dal.IsActive,
		&dal.SupportsSweetness,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}

		return nil, fmt.Errorf("failed to scan menu item: %w", err)
	}

	return dal.ToModel(), nil
}

// Insert creates a new menu item and returns it with its assigned id.
func (r *PostgresMenuItemRepository) Insert(ctx context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error) {
	now := time.Now()
	query, args, err := sq.Insert("menu_items").
		Columns("name", "description", "price_cents", "image_url", "category", "is_active", "supports_sweetness", "created_at", "updated_at").
		Values(item.Name, item.Description, item.PriceCents, item.ImageURL, item.Category, item.IsActive, item.SupportsSweetness, now, now).
		Suffix("RETURNING " + strings.Join(menuItemColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	return r.scanRow(r.conn.QueryRow(ctx, query, args...))
}

// Update rewrites the mutable fields of a menu item.
func (r *PostgresMenuItemRepository) Update(ctx context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error) {
	query, args, err := sq.Update("menu_items").
		Set("name", item.Name).
		Set("description", item.Description).
		Set("price_cents", item.PriceCents).
		Set("image_url", item.ImageURL).
		Set("category", item.Category).
		Set("is_active", item.IsActive).
		Set("supports_sweetness", item.SupportsSweetness).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": item.ID}).
		Suffix("RETURNING " + strings.Join(menuItemColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	return r.scanRow(r.conn.QueryRow(ctx, query, args...))
}

// SetActive flips the availability flag. Items referenced by historical
// orders are never hard-deleted, only deactivated.
func (r *PostgresMenuItemRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query, args, err := sq.Update("menu_items").
		Set("is_active", active).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// GetByID returns one menu item. Inside a placement transaction this read
// shares the transaction's snapshot with the order insert.
func (r *PostgresMenuItemRepository) GetByID(ctx context.Context, id int64) (*menuitem.MenuItem, error) {
	query, args, err := sq.Select(menuItemColumns...).
		From("menu_items").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.scanRow(r.conn.QueryRow(ctx, query, args...))
}

// List returns menu items, optionally only active ones.
func (r *PostgresMenuItemRepository) List(ctx context.Context, activeOnly bool) ([]menuitem.MenuItem, error) {
	builder := sq.Select(menuItemColumns...).
		From("menu_items").
		OrderBy("category", "id").
		PlaceholderFormat(sq.Dollar)
	if activeOnly {
		builder = builder.Where(sq.Eq{"is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var result []menuitem.MenuItem
	for rows.Next() {
		var dal MenuItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.Name,
			&dal.Description,
			&dal.PriceCents,
			&dal.ImageURL,
			&dal.Category,
			&dal.IsActive,
			&dal.SupportsSweetness,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
