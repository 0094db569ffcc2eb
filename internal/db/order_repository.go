package db

import (
	"context"
	"database/sql"

	"github.com/minicommerce/order-service/internal/models"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(database *PostgresDB) *OrderRepository {
	return &OrderRepository{db: database.Conn}
}

// Create inserts a new order, letting the database assign id and created_at.
// The assigned values are written back into the order.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (user_id, product_code, customer_fullname, product_name, total_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		order.UserID,
		order.ProductCode,
		order.CustomerFullname,
		order.ProductName,
		order.TotalAmount,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return &StoreError{Op: "create", Err: err}
	}

	return nil
}

// GetAll returns all orders, newest first
func (r *OrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	query := `
		SELECT id, user_id, product_code, customer_fullname, product_name, total_amount, created_at
		FROM orders ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		err := rows.Scan(&o.ID, &o.UserID, &o.ProductCode, &o.CustomerFullname,
			&o.ProductName, &o.TotalAmount, &o.CreatedAt)
		if err != nil {
			return nil, &StoreError{Op: "list", Err: err}
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}

	return orders, nil
}

// GetByID returns a single order, or nil when not found
func (r *OrderRepository) GetByID(ctx context.Context, id int) (*models.Order, error) {
	query := `
		SELECT id, user_id, product_code, customer_fullname, product_name, total_amount, created_at
		FROM orders WHERE id = $1
	`

	var o models.Order
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.UserID, &o.ProductCode,
		&o.CustomerFullname, &o.ProductName, &o.TotalAmount, &o.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, &StoreError{Op: "get", Err: err}
	}

	return &o, nil
}
