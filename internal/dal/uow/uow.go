package uow

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/workhub/workplace-backend/internal/dal/interfaces/ibooking"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/imenuitem"
	"github.com/workhub/workplace-backend/internal/dal/interfaces/iorder"
	"github.com/workhub/workplace-backend/internal/dal/postgres"
	bookingrepo "github.com/workhub/workplace-backend/internal/dal/repositories/booking/postgres"
	menuitemrepo "github.com/workhub/workplace-backend/internal/dal/repositories/menuitem/postgres"
	orderrepo "github.com/workhub/workplace-backend/internal/dal/repositories/order/postgres"
)

// UnitOfWork scopes repository access to one database transaction. Before
// Begin the repositories run directly against the pool; after Begin every
// read and write shares the transaction's snapshot until Commit or Rollback.
type UnitOfWork struct {
	client *postgres.Client
	tx     pgx.Tx

	menuItemRepo imenuitem.PostgresRepository
	orderRepo    iorder.PostgresRepository
	bookingRepo  ibooking.PostgresRepository
}

func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	return &UnitOfWork{
		client:       client,
		menuItemRepo: menuitemrepo.NewPostgresMenuItemRepository(client.Pool()),
		orderRepo:    orderrepo.NewPostgresOrderRepository(client.Pool()),
		bookingRepo:  bookingrepo.NewPostgresBookingRepository(client.Pool()),
	}
}

func (u *UnitOfWork) MenuItemRepository() imenuitem.PostgresRepository {
	return u.menuItemRepo
}

func (u *UnitOfWork) OrderRepository() iorder.PostgresRepository {
	return u.orderRepo
}

func (u *UnitOfWork) BookingRepository() ibooking.PostgresRepository {
	return u.bookingRepo
}

// Begin opens a transaction and rebinds the repositories to it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	tx, err := u.client.Pool().Begin(ctx)
	if err != nil {
		return err
	}

	u.tx = tx
	u.menuItemRepo = menuitemrepo.NewPostgresMenuItemRepository(tx)
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.bookingRepo = bookingrepo.NewPostgresBookingRepository(tx)

	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	return u.tx.Commit(ctx)
}

// Rollback is safe to defer: after a successful Commit it is a no-op.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	if err := u.tx.Rollback(ctx); err != nil && err != pgx.ErrTxClosed {
		return err
	}

	return nil
}
