package ibooking

import (
	"context"
	"time"

	"github.com/workhub/workplace-backend/internal/service/models/booking"
)

// PostgresRepository is an interface for the booking postgres repository.
type PostgresRepository interface {
	Insert(ctx context.Context, b booking.Booking) (*booking.Booking, error)
	LockRoom(ctx context.Context, roomID int64) error
	FindOverlapping(ctx context.Context, roomID int64, from, to time.Time) ([]booking.Booking, error)
	ListEndingAfter(ctx context.Context, t time.Time) ([]booking.Booking, error)
	GetByID(ctx context.Context, id int64) (*booking.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]booking.Booking, error)
	Delete(ctx context.Context, id int64) error
}
