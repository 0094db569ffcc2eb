package consumer

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/minicommerce/order-service/internal/models"
)

// EventMonitor tails created_order events and logs them, giving operators
// a view of what was actually emitted for each persisted order.
type EventMonitor struct{}

func NewEventMonitor() *EventMonitor {
	return &EventMonitor{}
}

// ProcessOrderCreated handles created_order events
func (m *EventMonitor) ProcessOrderCreated(messages <-chan amqp.Delivery) {
	for msg := range messages {
		var event models.OrderCreatedEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			log.Printf("❌ Failed to parse event: %v", err)
			msg.Nack(false, false) // Don't requeue bad messages
			continue
		}

		order := event.Payload.Order
		log.Printf("📥 %s from %s: Order #%d for %q — %q $%.2f (created %s)",
			event.Type, event.Producer, order.OrderID, order.CustomerFullname,
			order.ProductName, order.TotalAmount, order.CreatedAt)

		msg.Ack(false)
	}
}
