package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minicommerce/order-service/internal/client"
	"github.com/minicommerce/order-service/internal/db"
	"github.com/minicommerce/order-service/internal/messaging"
	"github.com/minicommerce/order-service/internal/models"
	"github.com/minicommerce/order-service/internal/validation"
)

type fakeUsers struct {
	profile *models.UserProfile
	err     error
	calls   atomic.Int32
	barrier *sync.WaitGroup
}

func (f *fakeUsers) GetUser(ctx context.Context, userID string) (*models.UserProfile, error) {
	f.calls.Add(1)
	if f.barrier != nil {
		if err := awaitBarrier(f.barrier); err != nil {
			return nil, err
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type fakeProducts struct {
	product *models.ProductInfo
	err     error
	calls   atomic.Int32
	barrier *sync.WaitGroup
}

func (f *fakeProducts) GetProduct(ctx context.Context, productCode string) (*models.ProductInfo, error) {
	f.calls.Add(1)
	if f.barrier != nil {
		if err := awaitBarrier(f.barrier); err != nil {
			return nil, err
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

// awaitBarrier releases once both lookups have entered. A serialized
// implementation never gets the second arrival and fails the test instead
// of hanging.
func awaitBarrier(wg *sync.WaitGroup) error {
	wg.Done()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-time.After(2 * time.Second):
		return fmt.Errorf("lookup never ran concurrently with its sibling")
	}
}

type fakeStore struct {
	err    error
	calls  atomic.Int32
	orders []models.Order
	mu     sync.Mutex
}

func (f *fakeStore) Create(ctx context.Context, order *models.Order) error {
	f.calls.Add(1)
	if f.err != nil {
		return f.err
	}
	order.ID = 42
	order.CreatedAt = time.Now().UTC()

	f.mu.Lock()
	f.orders = append(f.orders, *order)
	f.mu.Unlock()
	return nil
}

type fakePublisher struct {
	err       error
	calls     atomic.Int32
	published []models.Order
	mu        sync.Mutex
}

func (f *fakePublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	f.calls.Add(1)
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	f.published = append(f.published, *order)
	f.mu.Unlock()
	return nil
}

func floatPtr(f float64) *float64 {
	return &f
}

func testOrchestrator(users *fakeUsers, products *fakeProducts, store *fakeStore, pub *fakePublisher) *Orchestrator {
	return New(users, products, store, pub, 5*time.Second)
}

func TestCreateOrder_Success(t *testing.T) {
	users := &fakeUsers{profile: &models.UserProfile{FirstName: "Test", LastName: "User"}}
	products := &fakeProducts{product: &models.ProductInfo{Name: "Widget", Price: 50.0}}
	store := &fakeStore{}
	pub := &fakePublisher{}

	o := testOrchestrator(users, products, store, pub)
	order, err := o.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID:      "u1",
		ProductCode: "p1",
	})

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "u1", order.UserID)
	assert.Equal(t, "p1", order.ProductCode)
	assert.Equal(t, "Test User", order.CustomerFullname)
	assert.Equal(t, "Widget", order.ProductName)
	assert.Equal(t, 50.0, order.TotalAmount)
	assert.NotZero(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())

	assert.Equal(t, int32(1), store.calls.Load())
	require.Equal(t, int32(1), pub.calls.Load())
	assert.Equal(t, order.ID, pub.published[0].ID)
	assert.Equal(t, "Test User", pub.published[0].CustomerFullname)
}

func TestCreateOrder_OverwritesCallerSuppliedFields(t *testing.T) {
	users := &fakeUsers{profile: &models.UserProfile{FirstName: "Test", LastName: "User"}}
	products := &fakeProducts{product: &models.ProductInfo{Name: "Widget", Price: 50.0}}
	store := &fakeStore{}
	pub := &fakePublisher{}

	o := testOrchestrator(users, products, store, pub)
	order, err := o.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID:           "u1",
		ProductCode:      "p1",
		CustomerFullname: "Someone Else",
		ProductName:      "Other Thing",
		TotalAmount:      floatPtr(999.99),
	})

	require.NoError(t, err)
	assert.Equal(t, "Test User", order.CustomerFullname)
	assert.Equal(t, "Widget", order.ProductName)
	assert.Equal(t, 50.0, order.TotalAmount)
}

func TestCreateOrder_LookupsRunConcurrently(t *testing.T) {
	var barrier sync.WaitGroup
	barrier.Add(2)

	users := &fakeUsers{
		profile: &models.UserProfile{FirstName: "Test", LastName: "User"},
		barrier: &barrier,
	}
	products := &fakeProducts{
		product: &models.ProductInfo{Name: "Widget", Price: 50.0},
		barrier: &barrier,
	}
	store := &fakeStore{}
	pub := &fakePublisher{}

	o := testOrchestrator(users, products, store, pub)
	order, err := o.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID:      "u1",
		ProductCode: "p1",
	})

	require.NoError(t, err)
	assert.NotNil(t, order)
}

func TestCreateOrder_InvalidRequest_NoCallsMade(t *testing.T) {
	users := &fakeUsers{}
	products := &fakeProducts{}
	store := &fakeStore{}
	pub := &fakePublisher{}

	o := testOrchestrator(users, products, store, pub)
	order, err := o.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID:      "7c11ee2741",
		ProductCode: "test_product",
		TotalAmount: floatPtr(-10.0),
	})

	require.Error(t, err)
	assert.Nil(t, order)

	var validationErr *validation.ValidationError
	require.True(t, errors.As(err, &validationErr))

	assert.Zero(t, users.calls.Load())
	assert.Zero(t, products.calls.Load())
	assert.Zero(t, store.calls.Load())
	assert.Zero(t, pub.calls.Load())
}

func TestCreateOrder_UserLookupFails_NothingPersisted(t *testing.T) {
	lookupErr := &client.EnrichmentError{
		Service: "user-lookup",
		Kind:    client.KindUnreachable,
		Err:     errors.New("connection refused"),
	}
	users := &fakeUsers{err: lookupErr}
	products := &fakeProducts{product: &models.ProductInfo{Name: "Widget", Price: 50.0}}
	store := &fakeStore{}
	pub := &fakePublisher{}

	o := testOrchestrator(users, products, store, pub)
	order, err := o.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID:      "u1",
		ProductCode: "p1",
	})

	require.Error(t, err)
	assert.Nil(t, order)

	var enrichmentErr *client.EnrichmentError
	require.True(t, errors.As(err, &enrichmentErr))
	assert.Equal(t, client.KindUnreachable, enrichmentErr.Kind)

	assert.Zero(t, store.calls.Load())
	assert.Zero(t, pub.calls.Load())
	assert.Empty(t, store.orders)
}

func TestCreateOrder_ProductLookupFails_NothingPersisted(t *testing.T) {
	lookupErr := &client.EnrichmentError{
		Service: "product-lookup",
		Kind:    client.KindNotFound,
		Err:     errors.New("product p1 not found"),
	}
	users := &fakeUsers{profile: &models.UserProfile{FirstName: "Test", LastName: "User"}}
	products := &fakeProducts{err: lookupErr}
	store := &fakeStore{}
	pub := &fakePublisher{}

	o := testOrchestrator(users, products, store, pub)
	order, err := o.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID:      "u1",
		ProductCode: "p1",
	})

	require.Error(t, err)
	assert.Nil(t, order)
	assert.Zero(t, store.calls.Load())
	assert.Zero(t, pub.calls.Load())
}

func TestCreateOrder_BothLookupsFail_EitherErrorSurfaces(t *testing.T) {
	userErr := &client.EnrichmentError{Service: "user-lookup", Kind: client.KindUnreachable, Err: errors.New("down")}
	productErr := &client.EnrichmentError{Service: "product-lookup", Kind: client.KindUnreachable, Err: errors.New("down")}
	users := &fakeUsers{err: userErr}
	products := &fakeProducts{err: productErr}
	store := &fakeStore{}
	pub := &fakePublisher{}

	o := testOrchestrator(users, products, store, pub)
	order, err := o.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID:      "u1",
		ProductCode: "p1",
	})

	require.Error(t, err)
	assert.Nil(t, order)

	// Order of encounter across concurrent lookups is a don't-care.
	var enrichmentErr *client.EnrichmentError
	require.True(t, errors.As(err, &enrichmentErr))
	assert.Contains(t, []string{"user-lookup", "product-lookup"}, enrichmentErr.Service)
	assert.Zero(t, store.calls.Load())
}

func TestCreateOrder_NegativeEnrichedAmount_FailsBeforePersistence(t *testing.T) {
	users := &fakeUsers{profile: &models.UserProfile{FirstName: "Test", LastName: "User"}}
	products := &fakeProducts{product: &models.ProductInfo{Name: "Widget", Price: -5.0}}
	store := &fakeStore{}
	pub := &fakePublisher{}

	o := testOrchestrator(users, products, store, pub)
	order, err := o.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID:      "u1",
		ProductCode: "p1",
	})

	require.Error(t, err)
	assert.Nil(t, order)

	var validationErr *validation.ValidationError
	require.True(t, errors.As(err, &validationErr))

	assert.Zero(t, store.calls.Load())
	assert.Zero(t, pub.calls.Load())
}

func TestCreateOrder_StoreFails_NoPublish(t *testing.T) {
	users := &fakeUsers{profile: &models.UserProfile{FirstName: "Test", LastName: "User"}}
	products := &fakeProducts{product: &models.ProductInfo{Name: "Widget", Price: 50.0}}
	store := &fakeStore{err: &db.StoreError{Op: "create", Err: errors.New("connection lost")}}
	pub := &fakePublisher{}

	o := testOrchestrator(users, products, store, pub)
	order, err := o.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID:      "u1",
		ProductCode: "p1",
	})

	require.Error(t, err)
	assert.Nil(t, order)

	var storeErr *db.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Zero(t, pub.calls.Load())
}

func TestCreateOrder_PublishFails_OrderStaysPersisted(t *testing.T) {
	users := &fakeUsers{profile: &models.UserProfile{FirstName: "Test", LastName: "User"}}
	products := &fakeProducts{product: &models.ProductInfo{Name: "Widget", Price: 50.0}}
	store := &fakeStore{}
	pub := &fakePublisher{err: &messaging.PublishError{
		Kind: messaging.PublishUnreachable,
		Err:  errors.New("broker down"),
	}}

	o := testOrchestrator(users, products, store, pub)
	order, err := o.CreateOrder(context.Background(), models.CreateOrderRequest{
		UserID:      "u1",
		ProductCode: "p1",
	})

	require.Error(t, err)

	var publishErr *messaging.PublishError
	require.True(t, errors.As(err, &publishErr))

	// The persisted order is returned alongside the error and a read of the
	// store still shows it: the documented partial-failure mode.
	require.NotNil(t, order)
	assert.Equal(t, 42, order.ID)
	require.Len(t, store.orders, 1)
	assert.Equal(t, "Test User", store.orders[0].CustomerFullname)
	assert.Equal(t, int32(1), pub.calls.Load())
}
