package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/minicommerce/order-service/internal/models"
	"github.com/minicommerce/order-service/internal/validation"
)

const defaultLookupTimeout = 10 * time.Second

// Orchestrator runs the create-order flow: validate, enrich from the user
// and product services concurrently, persist once, publish once.
type Orchestrator struct {
	users         UserLookup
	products      ProductLookup
	store         OrderStore
	publisher     EventPublisher
	lookupTimeout time.Duration
}

func New(users UserLookup, products ProductLookup, store OrderStore, publisher EventPublisher, lookupTimeout time.Duration) *Orchestrator {
	if lookupTimeout <= 0 {
		lookupTimeout = defaultLookupTimeout
	}

	return &Orchestrator{
		users:         users,
		products:      products,
		store:         store,
		publisher:     publisher,
		lookupTimeout: lookupTimeout,
	}
}

// CreateOrder executes one orchestration run. If the event publish fails
// after the order was persisted, the persisted order is returned together
// with the error; the write is never rolled back.
func (o *Orchestrator) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	if err := validation.ValidateCreateOrder(req); err != nil {
		return nil, err
	}

	profile, product, err := o.enrich(ctx, req.UserID, req.ProductCode)
	if err != nil {
		return nil, err
	}

	// Enrichment results always win over caller-supplied values.
	order := &models.Order{
		UserID:           req.UserID,
		ProductCode:      req.ProductCode,
		CustomerFullname: profile.FullName(),
		ProductName:      product.Name,
		TotalAmount:      product.Price,
	}

	// Upstream prices pass through the same invariant as caller input.
	if order.TotalAmount < 0 {
		return nil, validation.NegativeAmount(order.TotalAmount)
	}

	if err := o.store.Create(ctx, order); err != nil {
		return nil, err
	}
	log.Printf("✅ Order #%d created with total $%.2f", order.ID, order.TotalAmount)

	if err := o.publisher.PublishOrderCreated(ctx, order); err != nil {
		// Recognized partial-failure mode: the order exists, the event is
		// missing. Surfaced to the caller, not compensated.
		log.Printf("⚠️ Order #%d persisted but event publish failed: %v", order.ID, err)
		return order, err
	}

	return order, nil
}

// enrich fans out both lookups and joins on both results. Each goroutine
// writes only its own slot; the first error wins and fails the run.
func (o *Orchestrator) enrich(ctx context.Context, userID, productCode string) (*models.UserProfile, *models.ProductInfo, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, o.lookupTimeout)
	defer cancel()

	var (
		profile *models.UserProfile
		product *models.ProductInfo
	)

	g, gctx := errgroup.WithContext(lookupCtx)

	g.Go(func() error {
		p, err := o.users.GetUser(gctx, userID)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})

	g.Go(func() error {
		p, err := o.products.GetProduct(gctx, productCode)
		if err != nil {
			return err
		}
		product = p
		return nil
	})

	// Wait waits for both tasks even when one already failed.
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("order enrichment failed: %w", err)
	}

	return profile, product, nil
}
