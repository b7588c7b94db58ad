package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/workhub/workplace-backend/internal/dal/rabbitmq"
	"github.com/workhub/workplace-backend/internal/service/models/order"
)

const orderCreatedQueue = "workplace.orders.created"

// EventsChannel publishes the full order document to the staff event queue.
type EventsChannel struct {
	client *rabbitmq.Client
	queue  amqp.Queue
}

// NewEventsChannel returns nil when the broker is not configured.
func NewEventsChannel(client *rabbitmq.Client) (*EventsChannel, error) {
	if client == nil {
		return nil, nil
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    orderCreatedQueue,
		Durable: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	return &EventsChannel{
		client: client,
		queue:  queue,
	}, nil
}

func (c *EventsChannel) Name() string {
	return "events"
}

func (c *EventsChannel) Send(_ context.Context, _ string, o order.Order) error {
	body, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	return c.client.Channel().Publish(
		"",
		c.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
