package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found with id", NewNotFoundError("product", "prod_1"), "product not found: prod_1"},
		{"not found without id", NewNotFoundError("category", ""), "category not found"},
		{"validation with field", NewValidationError("price", "price is required"), "price: price is required"},
		{"validation without field", NewValidationError("", "invalid form"), "invalid form"},
		{"unauthorized", NewUnauthorizedError("missing bearer token"), "unauthorized: missing bearer token"},
		{"unauthorized bare", NewUnauthorizedError(""), "unauthorized"},
		{"unavailable", NewServiceUnavailableError("status 503"), "service unavailable: status 503"},
		{"timeout", NewTimeoutError("get product"), "operation timed out: get product"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("load product: %w", NewNotFoundError("product", "prod_1"))

	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))
	assert.Equal(t, "prod_1", nf.ID)
}
