package bookingsvc

import (
	"context"
	"fmt"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/ibooking"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/imenuitem"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/iorder"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/iroom"
	"github.com/workhub/workplace-backend/internal/dal/postgres"
	roomrepo "github.com/workhub/workplace-backend/internal/dal/repositories/room/postgres"
	"github.com/workhub/workplace-backend/internal/dal/uow"
	"github.com/workhub/workplace-backend/internal/service/models/booking"
	"github.com/workhub/workplace-backend/internal/service/models/identity"
	"github.com/workhub/workplace-backend/internal/service/models/room"
)

// BookingService manages rooms and their reservations.
type BookingService struct {
	pgClient *postgres.Client
	roomRepo iroom.PostgresRepository
	newUOW   func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	MenuItemRepository() imenuitem.PostgresRepository
	OrderRepository() iorder.PostgresRepository
	BookingRepository() ibooking.PostgresRepository
}

func NewBookingService(pgClient *postgres.Client) *BookingService {
	s := &BookingService{
		pgClient: pgClient,
		roomRepo: roomrepo.NewPostgresRoomRepository(pgClient.Pool()),
	}
	s.newUOW = func() unitOfWork {
		return uow.NewUnitOfWork(s.pgClient)
	}

	return s
}

// Rooms.

// SearchRooms filters rooms by capacity and features, then, when a free
// window is requested, drops rooms with a booking overlapping it.
func (s *BookingService) SearchRooms(ctx context.Context, filter room.QueryRoomsModel) ([]room.Room, error) {
	windowed := !filter.FreeFrom.IsZero() || !filter.FreeTo.IsZero()
	if windowed {
		if filter.FreeFrom.IsZero() || filter.FreeTo.IsZero() {
			return nil, apperrors.NewValidation("from", "free window needs both from and to")
		}
		if !filter.FreeFrom.Before(filter.FreeTo) {
			return nil, apperrors.NewValidation("from", "free window start must be before end")
		}
	}

	rooms, err := s.roomRepo.Query(ctx, &filter)
	if err != nil || !windowed {
		return rooms, err
	}

	work := s.newUOW()
	candidates, err := work.BookingRepository().ListEndingAfter(ctx, filter.FreeFrom)
	if err != nil {
		return nil, err
	}

	busy := make(map[int64]struct{})
	for _, b := range candidates {
		if booking.Overlaps(b.StartsAt, b.EndsAt, filter.FreeFrom, filter.FreeTo) {
			busy[b.RoomID] = struct{}{}
		}
	}

	free := make([]room.Room, 0, len(rooms))
	for _, rm := range rooms {
		if _, taken := busy[rm.ID]; !taken {
			free = append(free, rm)
		}
	}

	return free, nil
}

func (s *BookingService) GetRoom(ctx context.Context, id int64) (*room.Room, error) {
	return s.roomRepo.GetByID(ctx, id)
}

func (s *BookingService) CreateRoom(ctx context.Context, r room.Room) (*room.Room, error) {
	if err := validateRoom(r); err != nil {
		return nil, err
	}

	return s.roomRepo.Insert(ctx, r)
}

func (s *BookingService) UpdateRoom(ctx context.Context, r room.Room) (*room.Room, error) {
	if err := validateRoom(r); err != nil {
		return nil, err
	}

	return s.roomRepo.Update(ctx, r)
}

func (s *BookingService) DeactivateRoom(ctx context.Context, id int64) error {
	return s.roomRepo.SetActive(ctx, id, false)
}

func validateRoom(r room.Room) error {
	if r.Name == "" {
		return apperrors.NewValidation("name", "must not be empty")
	}
	if r.Capacity < 1 {
		return apperrors.NewValidation("capacity", "must be at least 1")
	}

	return nil
}

// Book reserves a room for the acting user. The transaction takes the
// room's row lock before the overlap check, so concurrent bookings of
// the same room serialize and the second one sees the first's insert.
func (s *BookingService) Book(ctx context.Context, actor identity.Actor, b booking.Booking) (*booking.Booking, error) {
	if !b.StartsAt.Before(b.EndsAt) {
		return nil, apperrors.NewValidation("startsAt", "start must be before end")
	}

	rm, err := s.roomRepo.GetByID(ctx, b.RoomID)
	if err != nil {
		return nil, fmt.Errorf("room %d: %w", b.RoomID, err)
	}
	if !rm.IsActive {
		return nil, apperrors.NewValidation("roomId", "room %q is not bookable", rm.Name)
	}

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = work.Rollback(ctx)
	}()

	if err := work.BookingRepository().LockRoom(ctx, b.RoomID); err != nil {
		return nil, fmt.Errorf("room %d: %w", b.RoomID, err)
	}

	conflicts, err := work.BookingRepository().FindOverlapping(ctx, b.RoomID, b.StartsAt, b.EndsAt)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, fmt.Errorf("room %q already booked in that window: %w", rm.Name, apperrors.ErrBookingConflict)
	}

	b.UserID = actor.ID
	created, err := work.BookingRepository().Insert(ctx, b)
	if err != nil {
		return nil, err
	}

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	return created, nil
}

// ListBookings returns the acting user's bookings.
func (s *BookingService) ListBookings(ctx context.Context, actor identity.Actor) ([]booking.Booking, error) {
	work := s.newUOW()

	return work.BookingRepository().ListByUser(ctx, actor.ID)
}

// Cancel removes a booking owned by the acting user. Admins may cancel any.
func (s *BookingService) Cancel(ctx context.Context, actor identity.Actor, id int64) error {
	work := s.newUOW()

	b, err := work.BookingRepository().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.UserID != actor.ID && !actor.HasRole(identity.RoleAdmin) {
		return apperrors.ErrForbidden
	}

	return work.BookingRepository().Delete(ctx, id)
}
