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
	"github.com/workhub/workplace-backend/internal/service/models/room"
)

// RoomDal represents the room data access layer model. Features are stored
// as a text array.
type RoomDal struct {
	Id        int64     `db:"id"`
	Name      string    `db:"name"`
	Location  string    `db:"location"`
	Capacity  int       `db:"capacity"`
	Features  []string  `db:"features"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts RoomDal to the service layer Room model.
func (r *RoomDal) ToModel() *room.Room {
	features := r.Features
	if features == nil {
		features = []string{}
	}

	return &room.Room{
		ID:        r.Id,
		Name:      r.Name,
		Location:  r.Location,
		Capacity:  r.Capacity,
		Features:  features,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

var roomColumns = []string{
	"id",
	"name",
	"location",
	"capacity",
	"features",
	"is_active",
	"created_at",
	"updated_at",
}

type PostgresRoomRepository struct {
	conn postgres.Querier
}

func NewPostgresRoomRepository(conn postgres.Querier) *PostgresRoomRepository {
	return &PostgresRoomRepository{
		conn: conn,
	}
}

func (r *PostgresRoomRepository) scanRow(row pgx.Row) (*room.Room, error) {
	var dal RoomDal
	err := row.Scan(
		&dal.Id,
		&dal.Name,
		&dal.Location,
		&dal.Capacity,
		&dal.Features,
		&dal.IsActive,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}

		return nil, fmt.Errorf("failed to scan room: %w", err)
	}

	return dal.ToModel(), nil
}

// Insert creates a new room and returns it with its assigned id.
func (r *PostgresRoomRepository) Insert(ctx context.Context, rm room.Room) (*room.Room, error) {
	now := time.Now()
	query, args, err := sq.Insert("rooms").
		Columns("name", "location", "capacity", "features", "is_active", "created_at", "updated_at").
		Values(rm.Name, rm.Location, rm.Capacity, rm.Features, rm.IsActive, now, now).
		Suffix("RETURNING " + strings.Join(roomColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	return r.scanRow(r.conn.QueryRow(ctx, query, args...))
}

// Update rewrites the mutable fields of a room.
func (r *PostgresRoomRepository) Update(ctx context.Context, rm room.Room) (*room.Room, error) {
	query, args, err := sq.Update("rooms").
		Set("name", rm.Name).
		Set("location", rm.Location).
		Set("capacity", rm.Capacity).
		Set("features", rm.Features).
		Set("is_active", rm.IsActive).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": rm.ID}).
		Suffix("RETURNING " + strings.Join(roomColumns, ", ")).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	return r.scanRow(r.conn.QueryRow(ctx, query, args...))
}

// SetActive flips whether a room can be booked.
func (r *PostgresRoomRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query, args, err := sq.Update("rooms").
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
		return fmt.Errorf("failed to update room: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// GetByID returns one room.
func (r *PostgresRoomRepository) GetByID(ctx context.Context, id int64) (*room.Room, error) {
	query, args, err := sq.Select(roomColumns...).
		From("rooms").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.scanRow(r.conn.QueryRow(ctx, query, args...))
}

// Query searches rooms by capacity and required features.
func (r *PostgresRoomRepository) Query(ctx context.Context, filter *room.QueryRoomsModel) ([]room.Room, error) {
	builder := sq.Select(roomColumns...).
		From("rooms").
		OrderBy("name").
		PlaceholderFormat(sq.Dollar)

	if filter.MinCapacity > 0 {
		builder = builder.Where(sq.GtOrEq{"capacity": filter.MinCapacity})
	}
	for _, f := range filter.Features {
		builder = builder.Where(sq.Expr("features @> ARRAY[?]::text[]", f))
	}
	if filter.ActiveOnly {
		builder = builder.Where(sq.Eq{"is_active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var result []room.Room
	for rows.Next() {
		var dal RoomDal
		err := rows.Scan(
			&dal.Id,
			&dal.Name,
			&dal.Location,
			&dal.Capacity,
			&dal.Features,
			&dal.IsActive,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
