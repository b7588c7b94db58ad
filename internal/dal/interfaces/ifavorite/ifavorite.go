package ifavorite

import (
	"context"

	"github.com/workhub/workplace-backend/internal/service/models/favorite"
)

// PostgresRepository is an interface for the favorite postgres repository.
type PostgresRepository interface {
	Insert(ctx context.Context, f favorite.Favorite) (*favorite.Favorite, error)
	Update(ctx context.Context, f favorite.Favorite) (*favorite.Favorite, error)
	GetByID(ctx context.Context, id int64) (*favorite.Favorite, error)
	ListByUser(ctx context.Context, userID string) ([]favorite.Favorite, error)
	Delete(ctx context.Context, id int64) error
}
