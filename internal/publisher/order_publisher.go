package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/minicommerce/order-service/internal/models"
)

const (
	OrdersExchange  = "orders"
	OrderCreatedKey = "created_order"
)

// MessageSender is satisfied by messaging.Broker.
type MessageSender interface {
	Publish(ctx context.Context, exchange, routingKey string, body []byte) error
}

type OrderPublisher struct {
	sender   MessageSender
	producer string
}

func NewOrderPublisher(sender MessageSender, producer string) *OrderPublisher {
	return &OrderPublisher{
		sender:   sender,
		producer: producer,
	}
}

// PublishOrderCreated emits one created_order event for a persisted order.
func (p *OrderPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	event := models.NewOrderCreatedEvent(p.producer, order)

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.sender.Publish(ctx, OrdersExchange, OrderCreatedKey, data); err != nil {
		return err
	}

	log.Printf("📤 Published %s event for Order #%d", models.EventTypeOrderCreated, order.ID)
	return nil
}
