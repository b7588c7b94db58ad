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
	"github.com/workhub/workplace-backend/internal/service/models/booking"
)

// BookingDal represents the booking data access layer model.
type BookingDal struct {
	Id        int64     `db:"id"`
	RoomId    int64     `db:"room_id"`
	UserId    string    `db:"user_id"`
	Title     string    `db:"title"`
	StartsAt  time.Time `db:"starts_at"`
	EndsAt    time.Time `db:"ends_at"`
	Attendees []string  `db:"attendees"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts BookingDal to the service layer Booking model.
func (b *BookingDal) ToModel() *booking.Booking {
	attendees := b.Attendees
	if attendees == nil {
		attendees = []string{}
	}

	return &booking.Booking{
		ID:        b.Id,
		RoomID:    b.RoomId,
		UserID:    b.UserId,
		Title:     b.Title,
		StartsAt:  b.StartsAt,
		EndsAt:    b.EndsAt,
		Attendees: attendees,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

var bookingColumns = []string{
	"id",
	"room_id",
	"user_id",
	"title",
	"starts_at",
	"ends_at",
	"attendees",
	"created_at",
	"updated_at",
}

type PostgresBookingRepository struct {
	conn postgres.Querier
}

func NewPostgresBookingRepository(conn postgres.Querier) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		conn: conn,
	}
}

// Insert creates a new booking and returns it with its assigned id.
func (r *PostgresBookingRepository) Insert(ctx context.Context, b booking.Booking) (*booking.Booking, error) {
	now := time.Now()
	query, args, err := sq.Insert("bookings").
		Columns("room_id", "user_id", "title", "starts_at", "ends_at", "attendees", "created_at", "updated_at").
		Values(b.RoomID, b.UserID, b.Title, b.StartsAt, b.EndsAt, b.Attendees, now, now).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	return r.scanRow(r.conn.QueryRow(ctx, query, args...))
}

// LockRoom takes the room's row lock for the rest of the transaction.
// Concurrent bookings of the same room serialize on it, so the overlap
// check that follows sees every committed booking of the room.
func (r *PostgresBookingRepository) LockRoom(ctx context.Context, roomID int64) error {
	var id int64
	err := r.conn.QueryRow(ctx, "SELECT id FROM rooms WHERE id = $1 FOR UPDATE", roomID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}

		return fmt.Errorf("failed to lock room: %w", err)
	}

	return nil
}

// FindOverlapping returns bookings of a room intersecting [from, to).
// Called inside the booking transaction after LockRoom.
func (r *PostgresBookingRepository) FindOverlapping(ctx context.Context, roomID int64, from, to time.Time) ([]booking.Booking, error) {
	query, args, err := sq.Select(bookingColumns...).
		From("bookings").
		Where(sq.Eq{"room_id": roomID}).
		Where(sq.Lt{"starts_at": to}).
		Where(sq.Gt{"ends_at": from}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.queryMany(ctx, query, args...)
}

// ListEndingAfter returns every booking still running or starting after t.
// Bookings that ended before t can never overlap a window starting at t,
// so this is the candidate set for availability filtering.
func (r *PostgresBookingRepository) ListEndingAfter(ctx context.Context, t time.Time) ([]booking.Booking, error) {
	query, args, err := sq.Select(bookingColumns...).
		From("bookings").
		Where(sq.Gt{"ends_at": t}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.queryMany(ctx, query, args...)
}

// GetByID returns one booking.
func (r *PostgresBookingRepository) GetByID(ctx context.Context, id int64) (*booking.Booking, error) {
	query, args, err := sq.Select(bookingColumns...).
		From("bookings").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.scanRow(r.conn.QueryRow(ctx, query, args...))
}

// ListByUser returns all bookings owned by a user, soonest first.
func (r *PostgresBookingRepository) ListByUser(ctx context.Context, userID string) ([]booking.Booking, error) {
	query, args, err := sq.Select(bookingColumns...).
		From("bookings").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("starts_at").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.queryMany(ctx, query, args...)
}

// Delete removes a booking.
func (r *PostgresBookingRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := sq.Delete("bookings").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *PostgresBookingRepository) scanRow(row pgx.Row) (*booking.Booking, error) {
	var dal BookingDal
	err := row.Scan(
		&dal.Id,
		&dal.RoomId,
		&dal.UserId,
		&dal.Title,
		&dal.StartsAt,
		&dal.EndsAt,
		&dal.Attendees,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}

		return nil, fmt.Errorf("failed to scan booking: %w", err)
	}

	return dal.ToModel(), nil
}

func (r *PostgresBookingRepository) queryMany(ctx context.Context, query string, args ...any) ([]booking.Booking, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var result []booking.Booking
	for rows.Next() {
		var dal BookingDal
		err := rows.Scan(
			&dal.Id,
			&dal.RoomId,
			&dal.UserId,
			&dal.Title,
			&dal.StartsAt,
			&dal.EndsAt,
			&dal.Attendees,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
