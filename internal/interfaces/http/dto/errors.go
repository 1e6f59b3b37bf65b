package dto

import (
	"net/http"

	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
)

// Codes produced by the HTTP layer itself. Domain codes come from
// shared.DomainError and the typed settlement errors.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeValidation      = shared.CodeValidationFailed
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeTokenExpired    = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid    = "INVALID_TOKEN"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeKeyReused       = "IDEMPOTENCY_KEY_REUSED"
)

// InternalErrorMessage is the only message a 500 response ever carries
const InternalErrorMessage = "An unexpected error occurred"

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Rejected input
	shared.CodeValidationFailed:         http.StatusBadRequest,
	ErrCodeInvalidInput:                 http.StatusBadRequest,
	ErrCodeBadRequest:                   http.StatusBadRequest,
	ledger.CodeExceedsRemaining:         http.StatusBadRequest,
	finance.CodePaymentExceedsRemaining: http.StatusBadRequest,
	payroll.CodeBudgetExceeded:          http.StatusBadRequest,

	// Auth
	shared.CodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired:     http.StatusUnauthorized,
	ErrCodeTokenInvalid:     http.StatusUnauthorized,
	shared.CodeForbidden:    http.StatusForbidden,

	// Resources
	shared.CodeNotFound:            http.StatusNotFound,
	shared.CodeConflict:            http.StatusConflict,
	shared.CodeConcurrencyConflict: http.StatusConflict,
	shared.CodeRequestInProgress:   http.StatusConflict,
	ErrCodeKeyReused:               http.StatusUnprocessableEntity,

	shared.CodeInvalidState: http.StatusUnprocessableEntity,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes are internal errors.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsKnownCode reports whether code has a registered status
func IsKnownCode(code string) bool {
	_, ok := ErrorCodeHTTPStatus[code]
	return ok
}
