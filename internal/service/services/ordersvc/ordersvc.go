package ordersvc

import (
	"context"
	"fmt"
	"time"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/imenuitem"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/iorder"
	"github.com/workhub/workplace-backend/internal/dal/postgres"
	"github.com/workhub/workplace-backend/internal/dal/uow"
	"github.com/workhub/workplace-backend/internal/service/models/deliverytype"
	"github.com/workhub/workplace-backend/internal/service/models/identity"
	"github.com/workhub/workplace-backend/internal/service/models/order"
	"github.com/workhub/workplace-backend/internal/service/models/orderline"
	"github.com/workhub/workplace-backend/internal/service/models/orderstatus"
	"github.com/workhub/workplace-backend/internal/service/models/sweetness"
)

// OrderService coordinates order placement: it validates every cart line
// against the catalog inside one transaction, snapshots prices, persists the
// order atomically and hands the committed order to the notifier.
type OrderService struct {
	pgClient *postgres.Client
	notifier notifier
	newUOW   func() unitOfWork
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	MenuItemRepository() imenuitem.PostgresRepository
	OrderRepository() iorder.PostgresRepository
}

// notifier receives the fully resolved order after commit. It must never
// fail the placement: dispatch is fire and forget.
type notifier interface {
	Dispatch(o order.Order, actor identity.Actor)
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.newUOW == nil {
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient)
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithNotifier sets the post-commit notification dispatcher.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotifier(n notifier) option {
	return func(s *OrderService) {
		s.notifier = n
	}
}

// WithUnitOfWorkFactory overrides transaction creation.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(f func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = f
	}
}

// PlaceOrder atomically validates and persists one order for the acting
// user, or persists nothing. Prices and item names are snapshotted from the
// catalog state observed inside the transaction. After commit the resolved
// order is dispatched to the notifier; the caller never waits on it.
func (s *OrderService) PlaceOrder(
	ctx context.Context,
	actor identity.Actor,
	cartLines []order.CartLine,
	deliveryInfo order.DeliveryInfo,
) (*order.Order, error) {
	locType, err := validateRequest(cartLines, deliveryInfo)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	work := s.newUOW()
	if err := work.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = work.Rollback(ctx)
	}()

	lines := make([]orderline.OrderLine, 0, len(cartLines))
	var totalCents int64
	for i, cl := range cartLines {
		item, err := work.MenuItemRepository().GetByID(ctx, cl.MenuItemID)
		if err != nil {
			return nil, fmt.Errorf("menu item %d: %w", cl.MenuItemID, err)
		}
		if !item.IsActive {
			return nil, fmt.Errorf("menu item %q: %w", item.Name, apperrors.ErrItemUnavailable)
		}

		var selected *sweetness.Sweetness
		if sw := cl.Sweetness(); sw != nil {
			if !item.SupportsSweetness {
				return nil, apperrors.NewValidation(
					fmt.Sprintf("cartItems[%d].selectedOptions.sweetness", i),
					"item %q does not support sweetness selection", item.Name,
				)
			}
			parsed, err := sweetness.ParseSweetness(*sw)
			if err != nil {
				return nil, apperrors.NewValidation(
					fmt.Sprintf("cartItems[%d].selectedOptions.sweetness", i),
					"unknown sweetness %q for item %q", *sw, item.Name,
				)
			}
			selected = &parsed
		}

		lines = append(lines, orderline.OrderLine{
			MenuItemID:        item.ID,
			ItemName:          item.Name,
			Quantity:          cl.Quantity,
			PriceAtOrderCents: item.PriceCents,
			Sweetness:         selected,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
		totalCents += item.PriceCents * int64(cl.Quantity)
	}

	placed, err := work.OrderRepository().Insert(ctx, order.Order{
		UserID:                  actor.ID,
		UserName:                actor.DisplayName,
		TotalPriceCents:         totalCents,
		DeliveryLocationType:    locType,
		DeliveryLocationDetails: deliveryInfo.LocationDetails,
		Status:                  orderstatus.StatusPending,
		CreatedAt:               now,
		UpdatedAt:               now,
	})
	if err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i].OrderID = placed.ID
	}
	inserted, err := work.OrderRepository().InsertLines(ctx, lines)
	if err != nil {
		return nil, err
	}
	placed.Lines = inserted

	if err := work.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	if s.notifier != nil {
		s.notifier.Dispatch(*placed, actor)
	}

	return placed, nil
}

func validateRequest(cartLines []order.CartLine, deliveryInfo order.DeliveryInfo) (deliverytype.DeliveryType, error) {
	if len(cartLines) == 0 {
		return "", apperrors.NewValidation("cartItems", "cart must not be empty")
	}
	for i, cl := range cartLines {
		if cl.Quantity < 1 {
			return "", apperrors.NewValidation(
				fmt.Sprintf("cartItems[%d].quantity", i),
				"quantity must be at least 1",
			)
		}
	}

	locType, err := deliverytype.ParseDeliveryType(deliveryInfo.LocationType)
	if err != nil {
		return "", apperrors.NewValidation("deliveryInfo.deliveryLocationType", "must be one of meeting_room, canteen")
	}
	if deliveryInfo.LocationDetails == "" {
		return "", apperrors.NewValidation("deliveryInfo.deliveryLocationDetails", "must not be empty")
	}

	return locType, nil
}

// GetOrders retrieves orders with their lines. Non-admin callers only ever
// see their own orders.
func (s *OrderService) GetOrders(
	ctx context.Context,
	actor identity.Actor,
	filter order.QueryOrdersModel,
) ([]order.Order, error) {
	if !actor.HasRole(identity.RoleAdmin) {
		filter.UserIds = []string{actor.ID}
	}

	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderIds := make([]int64, 0, len(orders))
	for _, o := range orders {
		orderIds = append(orderIds, o.ID)
	}
	lines, err := work.OrderRepository().QueryLines(ctx, orderIds)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, line := range lines {
			if line.OrderID == orders[i].ID {
				orders[i].Lines = append(orders[i].Lines, line)
			}
		}
	}

	return orders, nil
}

// GetOrder returns one order with its lines. Only the owner or an admin may
// read it.
func (s *OrderService) GetOrder(ctx context.Context, actor identity.Actor, id int64) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != actor.ID && !actor.HasRole(identity.RoleAdmin) {
		return nil, apperrors.ErrForbidden
	}

	lines, err := work.OrderRepository().QueryLines(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Lines = lines

	return o, nil
}

// AdvanceStatus moves an order along its lifecycle. Transitions are
// restricted to the state machine: pending, confirmed, preparing, delivered,
// with cancellation allowed from any non-terminal state. Delivered and
// cancelled are terminal.
func (s *OrderService) AdvanceStatus(ctx context.Context, id int64, next orderstatus.Status) (*order.Order, error) {
	work := s.newUOW()

	o, err := work.OrderRepository().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !orderstatus.ValidTransition(o.Status, next) {
		return nil, fmt.Errorf("%s -> %s: %w", o.Status, next, apperrors.ErrInvalidTransition)
	}

	if err := work.OrderRepository().UpdateStatus(ctx, id, o.Status, next); err != nil {
		return nil, err
	}

	o.Status = next

	return o, nil
}
