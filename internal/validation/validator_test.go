package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minicommerce/order-service/internal/models"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestValidateCreateOrder_Valid(t *testing.T) {
	req := models.CreateOrderRequest{
		UserID:      "u1",
		ProductCode: "p1",
	}

	assert.NoError(t, ValidateCreateOrder(req))
}

func TestValidateCreateOrder_ValidWithOptionalFields(t *testing.T) {
	req := models.CreateOrderRequest{
		UserID:           "test_user",
		ProductCode:      "test_product",
		CustomerFullname: "Test Customer",
		ProductName:      "Test Product",
		TotalAmount:      floatPtr(50.0),
	}

	assert.NoError(t, ValidateCreateOrder(req))
}

func TestValidateCreateOrder_MissingIdentifiers(t *testing.T) {
	req := models.CreateOrderRequest{}

	err := ValidateCreateOrder(req)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Fields, 2)
	assert.Equal(t, "user_id", validationErr.Fields[0].Field)
	assert.Equal(t, "product_code", validationErr.Fields[1].Field)
}

func TestValidateCreateOrder_BlankUserID(t *testing.T) {
	req := models.CreateOrderRequest{
		UserID:      "   ",
		ProductCode: "p1",
	}

	err := ValidateCreateOrder(req)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, "user_id", validationErr.Fields[0].Field)
}

func TestValidateCreateOrder_NegativeAmount(t *testing.T) {
	req := models.CreateOrderRequest{
		UserID:      "7c11ee2741",
		ProductCode: "test_product",
		TotalAmount: floatPtr(-10.0),
	}

	err := ValidateCreateOrder(req)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Fields, 1)
	assert.Equal(t, "total_amount", validationErr.Fields[0].Field)
}

func TestValidateCreateOrder_ZeroAmountAllowed(t *testing.T) {
	req := models.CreateOrderRequest{
		UserID:      "u1",
		ProductCode: "p1",
		TotalAmount: floatPtr(0),
	}

	assert.NoError(t, ValidateCreateOrder(req))
}

func TestValidateCreateOrder_CollectsAllViolations(t *testing.T) {
	req := models.CreateOrderRequest{
		TotalAmount: floatPtr(-1),
	}

	err := ValidateCreateOrder(req)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Fields, 3)
	assert.Contains(t, err.Error(), "user_id")
	assert.Contains(t, err.Error(), "product_code")
	assert.Contains(t, err.Error(), "total_amount")
}
