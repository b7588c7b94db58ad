package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/dal/postgres"
	"github.com/workhub/workplace-backend/internal/service/models/deliverytype"
	"github.com/workhub/workplace-backend/internal/service/models/order"
	"github.com/workhub/workplace-backend/internal/service/models/orderline"
	"github.com/workhub/workplace-backend/internal/service/models/orderstatus"
	"github.com/workhub/workplace-backend/internal/service/models/sweetness"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id                      int64     `db:"id"`
	UserId                  string    `db:"user_id"`
	UserName                string    `db:"user_name"`
	TotalPriceCents         int64     `db:"total_price_cents"`
	DeliveryLocationType    string    `db:"delivery_location_type"`
	DeliveryLocationDetails string    `db:"delivery_location_details"`
	Status                  string    `db:"status"`
	CreatedAt               time.Time `db:"created_at"`
	UpdatedAt               time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	locType, err := deliverytype.ParseDeliveryType(o.DeliveryLocationType)
	if err != nil {
		return nil, err
	}
	status, err := orderstatus.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:                      o.Id,
		UserID:                  o.UserId,
		UserName:                o.UserName,
		TotalPriceCents:         o.TotalPriceCents,
		DeliveryLocationType:    locType,
		DeliveryLocationDetails: o.DeliveryLocationDetails,
		Status:                  status,
		CreatedAt:               o.CreatedAt,
		UpdatedAt:               o.UpdatedAt,
		Lines:                   []orderline.OrderLine{},
	}, nil
}

// OrderLineDal represents the order line data access layer model.
type OrderLineDal struct {
	Id                int64     `db:"id"`
	OrderId           int64     `db:"order_id"`
	MenuItemId        int64     `db:"menu_item_id"`
	ItemName          string    `db:"item_name"`
	Quantity          int       `db:"quantity"`
	PriceAtOrderCents int64     `db:"price_at_order_cents"`
	Sweetness         *string   `db:"sweetness"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// ToModel converts OrderLineDal to the service layer OrderLine model.
func (l *OrderLineDal) ToModel() (*orderline.OrderLine, error) {
	var sw *sweetness.Sweetness
	if l.Sweetness != nil {
		parsed, err := sweetness.ParseSweetness(*l.Sweetness)
		if err != nil {
			return nil, err
		}
		sw = &parsed
	}

	return &orderline.OrderLine{
		ID:                l.Id,
		OrderID:           l.OrderId,
		MenuItemID:        l.MenuItemId,
		ItemName:          l.ItemName,
		Quantity:          l.Quantity,
		PriceAtOrderCents: l.PriceAtOrderCents,
		Sweetness:         sw,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}, nil
}

type PostgresOrderRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderRepository(conn postgres.Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
	}
}

// Insert persists one order row and returns it with its assigned id.
// Lines are inserted separately within the same transaction.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (*order.Order, error) {
	sql := `
		INSERT INTO orders (
			user_id,
			user_name,
			total_price_cents,
			delivery_location_type,
			delivery_location_details,
			status,
			created_at,
			updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING
			id,
			user_id,
			user_name,
			total_price_cents,
			delivery_location_type,
			delivery_location_details,
			status,
			created_at,
			updated_at
	`

	var dal OrderDal
	err := r.conn.QueryRow(ctx, sql,
		o.UserID,
		o.UserName,
		o.TotalPriceCents,
		o.DeliveryLocationType.String(),
		o.DeliveryLocationDetails,
		o.Status.String(),
		o.CreatedAt,
		o.UpdatedAt,
	).Scan(
		&dal.Id,
		&dal.UserId,
		&dal.UserName,
		&dal.TotalPriceCents,
		&dal.DeliveryLocationType,
		&dal.DeliveryLocationDetails,
		&dal.Status,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	model, err := dal.ToModel()
	if err != nil {
		return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
	}
	model.Lines = append(model.Lines, o.Lines...)

	return model, nil
}

// InsertLines persists all lines of an order in one statement.
func (r *PostgresOrderRepository) InsertLines(ctx context.Context, lines []orderline.OrderLine) ([]orderline.OrderLine, error) {
	if len(lines) == 0 {
		return []orderline.OrderLine{}, nil
	}

	builder := sq.Insert("order_lines").
		Columns("order_id", "menu_item_id", "item_name", "quantity", "price_at_order_cents", "sweetness", "created_at", "updated_at").
		Suffix(`RETURNING id, order_id, menu_item_id, item_name, quantity, price_at_order_cents, sweetness, created_at, updated_at`).
		PlaceholderFormat(sq.Dollar)

	for _, l := range lines {
		var sw *string
		if l.Sweetness != nil {
			s := l.Sweetness.String()
			sw = &s
		}
		builder = builder.Values(l.OrderID, l.MenuItemID, l.ItemName, l.Quantity, l.PriceAtOrderCents, sw, l.CreatedAt, l.UpdatedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order lines: %w", err)
	}
	defer rows.Close()

	result, err := scanLines(rows)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Query retrieves orders based on filter criteria, newest first.
func (r *PostgresOrderRepository) Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	builder := sq.Select(
		"id",
		"user_id",
		"user_name",
		"total_price_cents",
		"delivery_location_type",
		"delivery_location_details",
		"status",
		"created_at",
		"updated_at",
	).
		From("orders").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if len(filter.UserIds) > 0 {
		builder = builder.Where(sq.Eq{"user_id": filter.UserIds})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.UserId,
			&dal.UserName,
			&dal.TotalPriceCents,
			&dal.DeliveryLocationType,
			&dal.DeliveryLocationDetails,
			&dal.Status,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// QueryLines retrieves all lines belonging to the given orders.
func (r *PostgresOrderRepository) QueryLines(ctx context.Context, orderIds []int64) ([]orderline.OrderLine, error) {
	if len(orderIds) == 0 {
		return []orderline.OrderLine{}, nil
	}

	query, args, err := sq.Select(
		"id",
		"order_id",
		"menu_item_id",
		"item_name",
		"quantity",
		"price_at_order_cents",
		"sweetness",
		"created_at",
		"updated_at",
	).
		From("order_lines").
		Where(sq.Eq{"order_id": orderIds}).
		OrderBy("id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	return scanLines(rows)
}

// UpdateStatus moves an order from one status to another. The conditional
// WHERE keeps concurrent advancement from skipping states.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id int64, from, to orderstatus.Status) error {
	query, args, err := sq.Update("orders").
		Set("status", to.String()).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id, "status": from.String()}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidTransition
	}

	return nil
}

// GetByID returns one order without its lines.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	orders, err := r.Query(ctx, &order.QueryOrdersModel{Ids: []int64{id}})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperrors.ErrNotFound
	}

	return &orders[0], nil
}

func scanLines(rows pgx.Rows) ([]orderline.OrderLine, error) {
	var result []orderline.OrderLine
	for rows.Next() {
		var dal OrderLineDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.MenuItemId,
			&dal.ItemName,
			&dal.Quantity,
			&dal.PriceAtOrderCents,
			&dal.Sweetness,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order line dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
