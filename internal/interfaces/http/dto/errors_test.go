package dto

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/garagehub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"CUSTOMER_NOT_FOUND", http.StatusNotFound},
		{"EMAIL_EXISTS", http.StatusConflict},
		{"INSUFFICIENT_STOCK", http.StatusConflict},
		{"ROLE_IN_USE", http.StatusConflict},
		{"INVALID_INPUT", http.StatusBadRequest},
		{"TENANT_REQUIRED", http.StatusBadRequest},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"ACCOUNT_INACTIVE", http.StatusForbidden},
		{"FORBIDDEN", http.StatusForbidden},
		{"TENANT_CONNECTION", http.StatusServiceUnavailable},
		{"INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := shared.NewDomainError(tt.code, "boom")
			assert.Equal(t, tt.status, HTTPStatusFromError(err))
		})
	}

	t.Run("unknown code falls back to 500", func(t *testing.T) {
		err := shared.NewDomainError("SOMETHING_NEW", "boom")
		assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromError(err))
	})

	t.Run("non-domain error falls back to 500", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, HTTPStatusFromError(errors.New("boom")))
	})

	t.Run("wrapped domain error is unwrapped", func(t *testing.T) {
		err := fmt.Errorf("loading user: %w", shared.ErrNotFound)
		assert.Equal(t, http.StatusNotFound, HTTPStatusFromError(err))
	})
}

func TestErrorResponseFromError(t *testing.T) {
	t.Run("domain error keeps its code and message", func(t *testing.T) {
		status, resp := ErrorResponseFromError(shared.NewDomainError("SKU_EXISTS", "A product with this SKU already exists"))
		assert.Equal(t, http.StatusConflict, status)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "SKU_EXISTS", resp.Error.Code)
		assert.Equal(t, "A product with this SKU already exists", resp.Error.Message)
	})

	t.Run("non-domain error is masked", func(t *testing.T) {
		status, resp := ErrorResponseFromError(errors.New("pq: connection refused"))
		assert.Equal(t, http.StatusInternalServerError, status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
		assert.NotContains(t, resp.Error.Message, "pq:", "internal detail must not leak")
	})
}
