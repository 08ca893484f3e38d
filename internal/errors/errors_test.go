package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation error",
			err:        NewValidationError("price", "must be greater than or equal to 0"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
		{
			name:       "wrapped not found",
			err:        fmt.Errorf("create order: %w", NotFound("product", 7)),
			wantStatus: http.StatusNotFound,
			wantCode:   "PRODUCT_NOT_FOUND",
		},
		{
			name:       "conflict",
			err:        Conflict("product is part of an order"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "CONFLICT",
		},
		{
			name:       "store failure",
			err:        StoreFailure("insert order", errors.New("connection reset")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
		{
			name:       "invalid credentials",
			err:        ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_CREDENTIALS",
		},
		{
			name:       "unclassified",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_StoreFailureHidesCause(t *testing.T) {
	httpErr := MapErrorToHTTP(StoreFailure("insert account", errors.New("Duplicate entry 'bob' for key 'username'")))
	assert.Equal(t, "internal server error", httpErr.Message)
}

func TestValidationErrorResponseCarriesAllFields(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "name", Message: "is required"},
		{Field: "price", Message: "is required"},
	}}

	resp := MapErrorToHTTP(err).ToErrorResponse()

	assert.Len(t, resp.Fields, 2)
	assert.Contains(t, err.Error(), "name: is required")
	assert.Contains(t, err.Error(), "price: is required")
}

func TestSentinelMatching(t *testing.T) {
	assert.True(t, errors.Is(NotFound("order", 1), ErrNotFound))
	assert.True(t, errors.Is(Conflict("x"), ErrConflict))
	assert.True(t, errors.Is(StoreFailure("op", errors.New("x")), ErrStoreFailure))
	assert.Nil(t, StoreFailure("op", nil))

	assert.True(t, IsDomain(NotFound("order", 1)))
	assert.True(t, IsDomain(fmt.Errorf("wrapped: %w", NewValidationError("a", "b"))))
	assert.False(t, IsDomain(errors.New("driver: bad connection")))
}

func TestNotFoundErrorMessage(t *testing.T) {
	assert.Equal(t, "product with ID 3 not found", NotFound("product", 3).Error())
	assert.Equal(t, "account not found", NotFound("account", 0).Error())
}
