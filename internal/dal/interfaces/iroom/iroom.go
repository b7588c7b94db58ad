package iroom

import (
	"context"

	"github.com/workhub/workplace-backend/internal/service/models/room"
)

// PostgresRepository is an interface for the room postgres repository.
type PostgresRepository interface {
	Insert(ctx context.Context, r room.Room) (*room.Room, error)
	Update(ctx context.Context, r room.Room) (*room.Room, error)
	SetActive(ctx context.Context, id int64, active bool) error
	GetByID(ctx context.Context, id int64) (*room.Room, error)
	Query(ctx context.Context, filter *room.QueryRoomsModel) ([]room.Room, error)
}
