package handler

import "github.com/erp/backoffice/internal/interfaces/http/dto"

// APIResponse is the envelope every JSON endpoint returns. It exists for
// the OpenAPI generator; handlers write dto.Response directly.
// @Description Response envelope; meta is present on paged lists
type APIResponse[T any] struct {
	Success bool           `json:"success" example:"true"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse documents a failed call
// @Description Error envelope; error.code is stable, error.message is for humans
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error"`
}
