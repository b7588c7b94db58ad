package favoritesvc

import (
	"context"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/ifavorite"
	"github.com/workhub/workplace-backend/internal/dal/postgres"
	favoriterepo "github.com/workhub/workplace-backend/internal/dal/repositories/favorite/postgres"
	"github.com/workhub/workplace-backend/internal/service/models/favorite"
	"github.com/workhub/workplace-backend/internal/service/models/identity"
)

// FavoriteService manages saved attendee lists. Every operation is scoped
// to the acting user.
type FavoriteService struct {
	repo ifavorite.PostgresRepository
}

func NewFavoriteService(pgClient *postgres.Client) *FavoriteService {
	return &FavoriteService{
		repo: favoriterepo.NewPostgresFavoriteRepository(pgClient.Pool()),
	}
}

func (s *FavoriteService) List(ctx context.Context, actor identity.Actor) ([]favorite.Favorite, error) {
	return s.repo.ListByUser(ctx, actor.ID)
}

func (s *FavoriteService) Create(ctx context.Context, actor identity.Actor, f favorite.Favorite) (*favorite.Favorite, error) {
	if f.Name == "" {
		return nil, apperrors.NewValidation("name", "must not be empty")
	}
	f.UserID = actor.ID

	return s.repo.Insert(ctx, f)
}

func (s *FavoriteService) Update(ctx context.Context, actor identity.Actor, f favorite.Favorite) (*favorite.Favorite, error) {
	if f.Name == "" {
		return nil, apperrors.NewValidation("name", "must not be empty")
	}

	existing, err := s.repo.GetByID(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != actor.ID {
		return nil, apperrors.ErrForbidden
	}

	return s.repo.Update(ctx, f)
}

func (s *FavoriteService) Delete(ctx context.Context, actor identity.Actor, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != actor.ID {
		return apperrors.ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}
