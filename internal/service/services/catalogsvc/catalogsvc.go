package catalogsvc

import (
	"context"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/imenuitem"
	"github.com/workhub/workplace-backend/internal/dal/postgres"
	menuitemrepo "github.com/workhub/workplace-backend/internal/dal/repositories/menuitem/postgres"
	"github.com/workhub/workplace-backend/internal/service/models/menuitem"
)

// CatalogService manages the cafeteria menu. Writes are staff-only,
// enforced at the transport layer.
type CatalogService struct {
	repo imenuitem.PostgresRepository
}

func NewCatalogService(pgClient *postgres.Client) *CatalogService {
	return &CatalogService{
		repo: menuitemrepo.NewPostgresMenuItemRepository(pgClient.Pool()),
	}
}

// NewCatalogServiceWithRepository wires an explicit repository, used in tests.
func NewCatalogServiceWithRepository(repo imenuitem.PostgresRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// List returns the menu. Non-staff callers only see active items.
func (s *CatalogService) List(ctx context.Context, includeInactive bool) ([]menuitem.MenuItem, error) {
	return s.repo.List(ctx, !includeInactive)
}

// Get returns one menu item.
func (s *CatalogService) Get(ctx context.Context, id int64) (*menuitem.MenuItem, error) {
	return s.repo.GetByID(ctx, id)
}

// Create adds a new menu item.
func (s *CatalogService) Create(ctx context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error) {
	if err := validate(item); err != nil {
		return nil, err
	}

	return s.repo.Insert(ctx, item)
}

// Update rewrites an existing menu item.
func (s *CatalogService) Update(ctx context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error) {
	if err := validate(item); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, item)
}

// Deactivate soft-deletes a menu item. The row is kept so historical order
// lines still resolve; the item simply stops being orderable.
func (s *CatalogService) Deactivate(ctx context.Context, id int64) error {
	return s.repo.SetActive(ctx, id, false)
}

func validate(item menuitem.MenuItem) error {
	if item.Name == "" {
		return apperrors.NewValidation("name", "must not be empty")
	}
	if item.PriceCents < 0 {
		return apperrors.NewValidation("priceCents", "must be non-negative")
	}

	return nil
}
