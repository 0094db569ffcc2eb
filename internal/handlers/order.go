package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/minicommerce/order-service/internal/client"
	"github.com/minicommerce/order-service/internal/db"
	"github.com/minicommerce/order-service/internal/messaging"
	"github.com/minicommerce/order-service/internal/models"
	"github.com/minicommerce/order-service/internal/validation"
)

// OrderCreator runs the create-order orchestration.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error)
}

// OrderReader serves persisted orders.
type OrderReader interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id int) (*models.Order, error)
}

type OrderHandler struct {
	creator OrderCreator
	reader  OrderReader
}

func NewOrderHandler(creator OrderCreator, reader OrderReader) *OrderHandler {
	return &OrderHandler{
		creator: creator,
		reader:  reader,
	}
}

// HealthCheck returns server status
func (h *OrderHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "order-service"})
}

// CreateOrder creates a new enriched order
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.creator.CreateOrder(c.Request.Context(), req)
	if err != nil {
		h.renderCreateError(c, order, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

// renderCreateError maps each failure domain to a response. Internal causes
// are logged, not returned to the caller.
func (h *OrderHandler) renderCreateError(c *gin.Context, order *models.Order, err error) {
	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": validationErr.Fields,
		})
		return
	}

	var enrichmentErr *client.EnrichmentError
	if errors.As(err, &enrichmentErr) {
		log.Printf("❌ Enrichment failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "order enrichment failed",
			"stage": "enrichment",
		})
		return
	}

	var storeErr *db.StoreError
	if errors.As(err, &storeErr) {
		log.Printf("❌ Persistence failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "order could not be persisted",
			"stage": "store",
		})
		return
	}

	var publishErr *messaging.PublishError
	if errors.As(err, &publishErr) {
		// The order exists at this point; only its event is missing.
		resp := gin.H{
			"error": "order created but event publish failed",
			"stage": "publish",
		}
		if order != nil {
			resp["order_id"] = order.ID
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	log.Printf("❌ Order creation failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "order creation failed"})
}

// ListOrders returns all orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.reader.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("❌ Failed to list orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder returns a single order
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	order, err := h.reader.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to get order %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get order"})
		return
	}

	if order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}
