package imenuitem

import (
	"context"

	"github.com/workhub/workplace-backend/internal/service/models/menuitem"
)

// PostgresRepository is an interface for the menu item postgres repository.
type PostgresRepository interface {
	Insert(ctx context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error)
	Update(ctx context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error)
	SetActive(ctx context.Context, id int64, active bool) error
	GetByID(ctx context.Context, id int64) (*menuitem.MenuItem, error)
	List(ctx context.Context, activeOnly bool) ([]menuitem.MenuItem, error)
}
