package models

import "time"

// EventTypeOrderCreated tags order-creation events on the wire.
const EventTypeOrderCreated = "created_order"

// OrderCreatedEvent is published when a new order is created.
type OrderCreatedEvent struct {
	Producer string            `json:"producer"`
	SentAt   time.Time         `json:"sent_at"`
	Type     string            `json:"type"`
	Payload  OrderEventPayload `json:"payload"`
}

type OrderEventPayload struct {
	Order OrderEventBody `json:"order"`
}

type OrderEventBody struct {
	OrderID          int       `json:"order_id"`
	CustomerFullname string    `json:"customer_fullname"`
	ProductName      string    `json:"product_name"`
	TotalAmount      float64   `json:"total_amount"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewOrderCreatedEvent builds the event envelope for a persisted order.
func NewOrderCreatedEvent(producer string, order *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		Producer: producer,
		SentAt:   time.Now().UTC(),
		Type:     EventTypeOrderCreated,
		Payload: OrderEventPayload{
			Order: OrderEventBody{
				OrderID:          order.ID,
				CustomerFullname: order.CustomerFullname,
				ProductName:      order.ProductName,
				TotalAmount:      order.TotalAmount,
				CreatedAt:        order.CreatedAt,
			},
		},
	}
}
