package notify

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/workhub/workplace-backend/internal/service/models/identity"
	"github.com/workhub/workplace-backend/internal/service/models/order"
)

const dispatchTimeout = 30 * time.Second

// Channel is one notification target. Channels are best-effort: a failing
// channel is logged and never affects the committed order.
type Channel interface {
	Name() string
	Send(ctx context.Context, summary string, o order.Order) error
}

// Dispatcher fans a placed order out to the configured channels after the
// placement transaction has committed.
type Dispatcher struct {
	channels []Channel
}

// NewDispatcher builds a dispatcher from the configured channels. Nil
// entries (unconfigured channels) are skipped.
func NewDispatcher(channels ...Channel) *Dispatcher {
	d := &Dispatcher{}
	for _, ch := range channels {
		if ch != nil {
			d.channels = append(d.channels, ch)
		}
	}

	return d
}

// Dispatch sends the order summary to every channel on a detached context.
// It returns immediately; the request path never waits on notification
// delivery and never observes its failures.
func (d *Dispatcher) Dispatch(o order.Order, actor identity.Actor) {
	if len(d.channels) == 0 {
		slog.Info("No notification channels configured, skipping dispatch", "order_id", o.ID)

		return
	}

	go d.dispatch(o, actor)
}

func (d *Dispatcher) dispatch(o order.Order, actor identity.Actor) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Notification dispatch panicked", "order_id", o.ID, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	summary := FormatOrderSummary(o, actor)

	g, ctx := errgroup.WithContext(ctx)
	for _, ch := range d.channels {
		g.Go(func() error {
			if err := ch.Send(ctx, summary, o); err != nil {
				slog.Error("Notification channel failed",
					"channel", ch.Name(),
					"order_id", o.ID,
					"error", err,
				)
			}

			// Channel errors are already logged; one failing channel must
			// not cancel the others.
			return nil
		})
	}
	_ = g.Wait()

	slog.Info("Order notification dispatched", "order_id", o.ID, "channels", len(d.channels))
}
