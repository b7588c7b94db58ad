package ordersvc

import (
	"context"
	"errors"
	"testing"

	"github.com/workhub/workplace-backend/internal/apperrors"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/imenuitem"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/iorder"
	"github.com/workhub/workplace-backend/internal/service/models/identity"
	"github.com/workhub/workplace-backend/internal/service/models/menuitem"
	"github.com/workhub/workplace-backend/internal/service/models/order"
	"github.com/workhub/workplace-backend/internal/service/models/orderline"
	"github.com/workhub/workplace-backend/internal/service/models/orderstatus"
)

type fakeMenuItemRepo struct {
	items map[int64]menuitem.MenuItem
}

func (f *fakeMenuItemRepo) Insert(_ context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error) {
	return &item, nil
}

func (f *fakeMenuItemRepo) Update(_ context.Context, item menuitem.MenuItem) (*menuitem.MenuItem, error) {
	return &item, nil
}

func (f *fakeMenuItemRepo) SetActive(_ context.Context, _ int64, _ bool) error {
	return nil
}

func (f *fakeMenuItemRepo) GetByID(_ context.Context, id int64) (*menuitem.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	return &item, nil
}

func (f *fakeMenuItemRepo) List(_ context.Context, _ bool) ([]menuitem.MenuItem, error) {
	items := make([]menuitem.MenuItem, 0, len(f.items))
	for _, item := range f.items {
		items = append(items, item)
	}

	return items, nil
}

type fakeOrderRepo struct {
	nextID int64
	orders map[int64]order.Order
	lines  []orderline.OrderLine
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{nextID: 1, orders: map[int64]order.Order{}}
}

func (f *fakeOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	o.ID = f.nextID
	f.nextID++
	f.orders[o.ID] = o

	return &o, nil
}

func (f *fakeOrderRepo) InsertLines(_ context.Context, lines []orderline.OrderLine) ([]orderline.OrderLine, error) {
	for i := range lines {
		lines[i].ID = int64(len(f.lines) + 1)
		f.lines = append(f.lines, lines[i])
	}

	return lines, nil
}

func (f *fakeOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	var out []order.Order
	for _, o := range f.orders {
		if len(filter.UserIds) > 0 {
			found := false
			for _, uid := range filter.UserIds {
				if o.UserID == uid {
					found = true
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, o)
	}

	return out, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	return &o, nil
}

func (f *fakeOrderRepo) QueryLines(_ context.Context, orderIds []int64) ([]orderline.OrderLine, error) {
	var out []orderline.OrderLine
	for _, line := range f.lines {
		for _, id := range orderIds {
			if line.OrderID == id {
				out = append(out, line)
			}
		}
	}

	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, from, to orderstatus.Status) error {
	o, ok := f.orders[id]
	if !ok || o.Status != from {
		return apperrors.ErrInvalidTransition
	}
	o.Status = to
	f.orders[id] = o

	return nil
}

type fakeUOW struct {
	menuRepo  *fakeMenuItemRepo
	orderRepo *fakeOrderRepo

	began      bool
	committed  bool
	rolledBack bool
}

func (f *fakeUOW) Begin(_ context.Context) error {
	f.began = true

	return nil
}

func (f *fakeUOW) Commit(_ context.Context) error {
	f.committed = true

	return nil
}

func (f *fakeUOW) Rollback(_ context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}

	return nil
}

func (f *fakeUOW) MenuItemRepository() imenuitem.PostgresRepository {
	return f.menuRepo
}

func (f *fakeUOW) OrderRepository() iorder.PostgresRepository {
	return f.orderRepo
}

type fakeNotifier struct {
	orders []order.Order
	actors []identity.Actor
}

func (f *fakeNotifier) Dispatch(o order.Order, actor identity.Actor) {
	f.orders = append(f.orders, o)
	f.actors = append(f.actors, actor)
}

func sweetnessOpt(s string) *order.SelectedOptions {
	return &order.SelectedOptions{Sweetness: &s}
}

func newTestService(uow *fakeUOW, n notifier) *OrderService {
	return MustNewOrderService(
		WithUnitOfWorkFactory(func() unitOfWork { return uow }),
		WithNotifier(n),
	)
}

func catalogFixture() *fakeMenuItemRepo {
	return &fakeMenuItemRepo{items: map[int64]menuitem.MenuItem{
		1: {ID: 1, Name: "Coffee", PriceCents: 5000, IsActive: true, SupportsSweetness: true},
		2: {ID: 2, Name: "Sandwich", PriceCents: 1250, IsActive: true},
		3: {ID: 3, Name: "Seasonal Salad", PriceCents: 900, IsActive: false},
	}}
}

var coffeeActor = identity.Actor{ID: "u-123", DisplayName: "Dana"}

func TestPlaceOrderSnapshotsPricesAndTotals(t *testing.T) {
	uow := &fakeUOW{menuRepo: catalogFixture(), orderRepo: newFakeOrderRepo()}
	n := &fakeNotifier{}
	svc := newTestService(uow, n)

	placed, err := svc.PlaceOrder(context.Background(), coffeeActor,
		[]order.CartLine{{MenuItemID: 1, Quantity: 2, SelectedOptions: sweetnessOpt("low_sweet")}},
		order.DeliveryInfo{LocationType: "meeting_room", LocationDetails: "Room 401"},
	)
	if err != nil {
		t.Fatalf("PlaceOrder: %v", err)
	}

	if placed.TotalPriceCents != 10000 {
		t.Errorf("total = %d, want 10000", placed.TotalPriceCents)
	}
	if placed.Status != orderstatus.StatusPending {
		t.Errorf("status = %s, want pending", placed.Status)
	}
	if len(placed.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(placed.Lines))
	}
	line := placed.Lines[0]
	if line.ItemName != "Coffee" || line.PriceAtOrderCents != 5000 {
		t.Errorf("line snapshot = %q/%d, want Coffee/5000", line.ItemName, line.PriceAtOrderCents)
	}
	if line.Sweetness == nil || line.Sweetness.String() != "low_sweet" {
		t.Errorf("line sweetness = %v, want low_sweet", line.Sweetness)
	}
	if !uow.committed {
		t.Error("transaction was not committed")
	}
	if len(n.orders) != 1 || n.orders[0].ID != placed.ID {
		t.Errorf("notifier got %d orders, want the placed one", len(n.orders))
	}
}

func TestPlaceOrderInactiveItemRejectsWholeCart(t *testing.T) {
	uow := &fakeUOW{menuRepo: catalogFixture(), orderRepo: newFakeOrderRepo()}
	n := &fakeNotifier{}
	svc := newTestService(uow, n)

	_, err := svc.PlaceOrder(context.Background(), coffeeActor,
		[]order.CartLine{
			{MenuItemID: 2, Quantity: 1},
			{MenuItemID: 3, Quantity: 1},
		},
		order.DeliveryInfo{LocationType: "canteen", LocationDetails: "table 5"},
	)
	if !errors.Is(err, apperrors.ErrItemUnavailable) {
		t.Fatalf("err = %v, want ErrItemUnavailable", err)
	}

	if uow.committed {
		t.Error("transaction must not commit on an unavailable item")
	}
	if !uow.rolledBack {
		t.Error("transaction was not rolled back")
	}
	if len(uow.orderRepo.orders) != 0 {
		t.Errorf("persisted %d orders, want 0", len(uow.orderRepo.orders))
	}
	if len(n.orders) != 0 {
		t.Error("no notification may be sent for a rejected order")
	}
}

func TestPlaceOrderUnknownItem(t *testing.T) {
	uow := &fakeUOW{menuRepo: catalogFixture(), orderRepo: newFakeOrderRepo()}
	svc := newTestService(uow, &fakeNotifier{})

	_, err := svc.PlaceOrder(context.Background(), coffeeActor,
		[]order.CartLine{{MenuItemID: 42, Quantity: 1}},
		order.DeliveryInfo{LocationType: "canteen", LocationDetails: "table 5"},
	)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if uow.committed {
		t.Error("transaction must not commit on a missing item")
	}
}

func TestPlaceOrderSweetnessValidation(t *testing.T) {
	tests := []struct {
		name string
		line order.CartLine
		ok   bool
	}{
		{"nil selection on supporting item", order.CartLine{MenuItemID: 1, Quantity: 1}, true},
		{"valid selection", order.CartLine{MenuItemID: 1, Quantity: 1, SelectedOptions: sweetnessOpt("no_sugar")}, true},
		{"unknown level", order.CartLine{MenuItemID: 1, Quantity: 1, SelectedOptions: sweetnessOpt("extra_sweet")}, false},
		{"selection on non-supporting item", order.CartLine{MenuItemID: 2, Quantity: 1, SelectedOptions: sweetnessOpt("no_sugar")}, false},
		{"nil selection on non-supporting item", order.CartLine{MenuItemID: 2, Quantity: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := &fakeUOW{menuRepo: catalogFixture(), orderRepo: newFakeOrderRepo()}
			svc := newTestService(uow, &fakeNotifier{})

			_, err := svc.PlaceOrder(context.Background(), coffeeActor,
				[]order.CartLine{tt.line},
				order.DeliveryInfo{LocationType: "canteen", LocationDetails: "table 5"},
			)
			if tt.ok && err != nil {
				t.Fatalf("PlaceOrder: %v", err)
			}
			if !tt.ok {
				if !apperrors.IsValidation(err) {
					t.Fatalf("err = %v, want validation error", err)
				}
				if uow.committed {
					t.Error("transaction must not commit on invalid sweetness")
				}
			}
		})
	}
}

func TestPlaceOrderRequestValidation(t *testing.T) {
	tests := []struct {
		name     string
		lines    []order.CartLine
		delivery order.DeliveryInfo
	}{
		{"empty cart", nil, order.DeliveryInfo{LocationType: "canteen", LocationDetails: "table 5"}},
		{"zero quantity", []order.CartLine{{MenuItemID: 1, Quantity: 0}}, order.DeliveryInfo{LocationType: "canteen", LocationDetails: "table 5"}},
		{"negative quantity", []order.CartLine{{MenuItemID: 1, Quantity: -2}}, order.DeliveryInfo{LocationType: "canteen", LocationDetails: "table 5"}},
		{"bad location type", []order.CartLine{{MenuItemID: 1, Quantity: 1}}, order.DeliveryInfo{LocationType: "drone", LocationDetails: "roof"}},
		{"empty location details", []order.CartLine{{MenuItemID: 1, Quantity: 1}}, order.DeliveryInfo{LocationType: "canteen"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := &fakeUOW{menuRepo: catalogFixture(), orderRepo: newFakeOrderRepo()}
			svc := newTestService(uow, &fakeNotifier{})

			_, err := svc.PlaceOrder(context.Background(), coffeeActor, tt.lines, tt.delivery)
			if !apperrors.IsValidation(err) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if uow.began {
				t.Error("request validation must happen before the transaction begins")
			}
		})
	}
}

func TestPlaceOrderDoubleSubmissionCreatesTwoOrders(t *testing.T) {
	uow := &fakeUOW{menuRepo: catalogFixture(), orderRepo: newFakeOrderRepo()}
	svc := newTestService(uow, &fakeNotifier{})

	for i := 0; i < 2; i++ {
		if _, err := svc.PlaceOrder(context.Background(), coffeeActor,
			[]order.CartLine{{MenuItemID: 2, Quantity: 1}},
			order.DeliveryInfo{LocationType: "canteen", LocationDetails: "table 5"},
		); err != nil {
			t.Fatalf("PlaceOrder #%d: %v", i+1, err)
		}
	}

	if len(uow.orderRepo.orders) != 2 {
		t.Errorf("persisted %d orders, want 2 distinct orders", len(uow.orderRepo.orders))
	}
}

func TestGetOrdersScopesNonAdminToOwnOrders(t *testing.T) {
	uow := &fakeUOW{menuRepo: catalogFixture(), orderRepo: newFakeOrderRepo()}
	svc := newTestService(uow, &fakeNotifier{})

	ctx := context.Background()
	delivery := order.DeliveryInfo{LocationType: "canteen", LocationDetails: "table 5"}
	cart := []order.CartLine{{MenuItemID: 2, Quantity: 1}}

	if _, err := svc.PlaceOrder(ctx, coffeeActor, cart, delivery); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.PlaceOrder(ctx, identity.Actor{ID: "u-other"}, cart, delivery); err != nil {
		t.Fatal(err)
	}

	mine, err := svc.GetOrders(ctx, coffeeActor, order.QueryOrdersModel{})
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].UserID != coffeeActor.ID {
		t.Errorf("non-admin sees %d orders, want only their own", len(mine))
	}

	all, err := svc.GetOrders(ctx, identity.Actor{ID: "staff-1", Roles: []string{identity.RoleAdmin}}, order.QueryOrdersModel{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("admin sees %d orders, want 2", len(all))
	}
}

func TestGetOrderForbiddenForStranger(t *testing.T) {
	uow := &fakeUOW{menuRepo: catalogFixture(), orderRepo: newFakeOrderRepo()}
	svc := newTestService(uow, &fakeNotifier{})

	placed, err := svc.PlaceOrder(context.Background(), coffeeActor,
		[]order.CartLine{{MenuItemID: 2, Quantity: 1}},
		order.DeliveryInfo{LocationType: "canteen", LocationDetails: "table 5"},
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetOrder(context.Background(), identity.Actor{ID: "u-other"}, placed.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("stranger read err = %v, want ErrForbidden", err)
	}
	if _, err := svc.GetOrder(context.Background(), identity.Actor{ID: "u-other", Roles: []string{identity.RoleAdmin}}, placed.ID); err != nil {
		t.Errorf("admin read err = %v, want nil", err)
	}
}

func TestAdvanceStatus(t *testing.T) {
	uow := &fakeUOW{menuRepo: catalogFixture(), orderRepo: newFakeOrderRepo()}
	svc := newTestService(uow, &fakeNotifier{})

	placed, err := svc.PlaceOrder(context.Background(), coffeeActor,
		[]order.CartLine{{MenuItemID: 2, Quantity: 1}},
		order.DeliveryInfo{LocationType: "canteen", LocationDetails: "table 5"},
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AdvanceStatus(context.Background(), placed.ID, orderstatus.StatusPreparing); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Errorf("pending -> preparing err = %v, want ErrInvalidTransition", err)
	}

	o, err := svc.AdvanceStatus(context.Background(), placed.ID, orderstatus.StatusConfirmed)
	if err != nil {
		t.Fatalf("pending -> confirmed: %v", err)
	}
	if o.Status != orderstatus.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", o.Status)
	}

	if _, err := svc.AdvanceStatus(context.Background(), placed.ID, orderstatus.StatusCancelled); err != nil {
		t.Fatalf("confirmed -> cancelled: %v", err)
	}
	if _, err := svc.AdvanceStatus(context.Background(), placed.ID, orderstatus.StatusConfirmed); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Errorf("transition out of cancelled err = %v, want ErrInvalidTransition", err)
	}
}
