package orchestrator

import (
	"context"

	"github.com/minicommerce/order-service/internal/models"
)

type UserLookup interface {
	GetUser(ctx context.Context, userID string) (*models.UserProfile, error)
}

type ProductLookup interface {
	GetProduct(ctx context.Context, productCode string) (*models.ProductInfo, error)
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
}
