package iorder

import (
	"context"

	"github.com/workhub/workplace-backend/internal/service/models/order"
	"github.com/workhub/workplace-backend/internal/service/models/orderline"
	"github.com/workhub/workplace-backend/internal/service/models/orderstatus"
)

// PostgresRepository is an interface for the order postgres repository.
type PostgresRepository interface {
	Insert(ctx context.Context, o order.Order) (*order.Order, error)
	InsertLines(ctx context.Context, lines []orderline.OrderLine) ([]orderline.OrderLine, error)
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	QueryLines(ctx context.Context, orderIds []int64) ([]orderline.OrderLine, error)
	UpdateStatus(ctx context.Context, id int64, from, to orderstatus.Status) error
}
