package port

import (
	"context"

	"storeAdmin/internal/modules/dashboard/domain"
	orders "storeAdmin/internal/modules/orders/domain"
)

// PubSubPort consumes external change events (Kafka).
type PubSubPort interface {
	Consume(ctx context.Context, handler func(*domain.Message) error) error
}

// Broadcaster delivers messages to the connected websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler handles the events of one topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}

// InvoiceRenderer renders a printable invoice for an order.
type InvoiceRenderer interface {
	Render(order orders.Order, currency string) ([]byte, error)
}
