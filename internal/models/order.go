package models

import "time"

type Order struct {
	ID               int       `json:"id"`
	UserID           string    `json:"user_id"`
	ProductCode      string    `json:"product_code"`
	CustomerFullname string    `json:"customer_fullname"`
	ProductName      string    `json:"product_name"`
	TotalAmount      float64   `json:"total_amount"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateOrderRequest is the inbound order payload. The optional fields are
// accepted for compatibility but successful enrichment always overwrites them.
type CreateOrderRequest struct {
	UserID           string   `json:"user_id"`
	ProductCode      string   `json:"product_code"`
	CustomerFullname string   `json:"customer_fullname"`
	ProductName      string   `json:"product_name"`
	TotalAmount      *float64 `json:"total_amount"`
}
