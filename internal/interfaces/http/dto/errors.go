package dto

import (
	"errors"
	"net/http"

	"github.com/garagehub/backend/internal/domain/shared"
)

// statusByCode maps domain error codes to HTTP status codes. Codes missing
// from the map fall back to 500.
var statusByCode = map[string]int{
	"NOT_FOUND":             http.StatusNotFound,
	"USER_NOT_FOUND":        http.StatusNotFound,
	"ROLE_NOT_FOUND":        http.StatusNotFound,
	"PAGE_NOT_FOUND":        http.StatusNotFound,
	"CATEGORY_NOT_FOUND":    http.StatusNotFound,
	"PRODUCT_NOT_FOUND":     http.StatusNotFound,
	"WAREHOUSE_NOT_FOUND":   http.StatusNotFound,
	"CUSTOMER_NOT_FOUND":    http.StatusNotFound,
	"ALREADY_EXISTS":        http.StatusConflict,
	"EMAIL_EXISTS":          http.StatusConflict,
	"ROLE_EXISTS":           http.StatusConflict,
	"PAGE_EXISTS":           http.StatusConflict,
	"CATEGORY_EXISTS":       http.StatusConflict,
	"SKU_EXISTS":            http.StatusConflict,
	"PHONE_EXISTS":          http.StatusConflict,
	"REGISTRATION_EXISTS":   http.StatusConflict,
	"ROLE_IN_USE":           http.StatusConflict,
	"PAGE_IN_USE":           http.StatusConflict,
	"CATEGORY_IN_USE":       http.StatusConflict,
	"PRODUCT_IN_USE":        http.StatusConflict,
	"WAREHOUSE_IN_USE":      http.StatusConflict,
	"CUSTOMER_HAS_VEHICLES": http.StatusConflict,
	"INVALID_INPUT":         http.StatusBadRequest,
	"INVALID_STATE":         http.StatusConflict,
	"INSUFFICIENT_STOCK":    http.StatusConflict,
	"INVALID_CREDENTIALS":   http.StatusUnauthorized,
	"UNAUTHORIZED":          http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":      http.StatusForbidden,
	"FORBIDDEN":             http.StatusForbidden,
	"TENANT_REQUIRED":       http.StatusBadRequest,
	"TENANT_CONNECTION":     http.StatusServiceUnavailable,
	"UNKNOWN_ENTITY":        http.StatusBadRequest,
	"INTERNAL_ERROR":        http.StatusInternalServerError,
}

// HTTPStatusFromError resolves the HTTP status for an error
func HTTPStatusFromError(err error) int {
	var de *shared.DomainError
	if errors.As(err, &de) {
		if status, ok := statusByCode[de.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// ErrorResponseFromError builds the error envelope for an error. Non-domain
// errors are masked behind a generic internal error.
func ErrorResponseFromError(err error) (int, Response) {
	var de *shared.DomainError
	if errors.As(err, &de) {
		return HTTPStatusFromError(err), NewErrorResponse(de.Code, de.Message)
	}
	return http.StatusInternalServerError, NewErrorResponse("INTERNAL_ERROR", "An unexpected error occurred")
}
