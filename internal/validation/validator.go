package validation

import (
	"fmt"
	"strings"

	"github.com/minicommerce/order-service/internal/models"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every violated field of a request at once.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateCreateOrder checks structural validity of an order request.
// It performs no I/O and collects all violations instead of stopping
// at the first one.
func ValidateCreateOrder(req models.CreateOrderRequest) error {
	var fields []FieldError

	if strings.TrimSpace(req.UserID) == "" {
		fields = append(fields, FieldError{Field: "user_id", Message: "is required"})
	}
	if strings.TrimSpace(req.ProductCode) == "" {
		fields = append(fields, FieldError{Field: "product_code", Message: "is required"})
	}
	if req.TotalAmount != nil && *req.TotalAmount < 0 {
		fields = append(fields, FieldError{Field: "total_amount", Message: "cannot be negative"})
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// NegativeAmount builds the error used when an enrichment-sourced amount
// violates the non-negative invariant.
func NegativeAmount(amount float64) *ValidationError {
	return &ValidationError{Fields: []FieldError{{
		Field:   "total_amount",
		Message: fmt.Sprintf("cannot be negative (got %.2f)", amount),
	}}}
}
