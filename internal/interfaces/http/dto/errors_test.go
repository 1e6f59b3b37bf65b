package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"FORBIDDEN", http.StatusForbidden},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"VALIDATION_FAILED", http.StatusBadRequest},
		{"INVALID_INPUT", http.StatusBadRequest},
		{"EXCEEDS_REMAINING", http.StatusBadRequest},
		{"PAYMENT_EXCEEDS_REMAINING", http.StatusBadRequest},
		{"BUDGET_EXCEEDED", http.StatusBadRequest},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{"CONFLICT", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"REQUEST_IN_PROGRESS", http.StatusConflict},
		{"TOKEN_EXPIRED", http.StatusUnauthorized},
		{"REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestIsKnownCode(t *testing.T) {
	assert.True(t, IsKnownCode("NOT_FOUND"))
	assert.False(t, IsKnownCode("pq: relation does not exist"))
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		page      int
		pageSize  int
		wantPages int
		wantPage  int
	}{
		{"exact", 40, 1, 20, 2, 1},
		{"remainder", 41, 3, 20, 3, 3},
		{"empty", 0, 1, 20, 0, 1},
		{"zero page defaults to first", 5, 0, 10, 1, 1},
		{"zero page size", 5, 1, 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewSuccessResponseWithMeta([]int{}, tt.total, tt.page, tt.pageSize)
			require.NotNil(t, resp.Meta)
			assert.True(t, resp.Success)
			assert.Equal(t, tt.wantPages, resp.Meta.TotalPages)
			assert.Equal(t, tt.wantPage, resp.Meta.Page)
			assert.Equal(t, tt.total, resp.Meta.Total)
		})
	}
}

func TestErrorResponse_JSON(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "amount", Message: "Must be greater than 0"},
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.NotContains(t, decoded, "data")
	assert.NotContains(t, decoded, "meta")

	errObj := decoded["error"].(map[string]any)
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])
	assert.Equal(t, "req-1", errObj["request_id"])
	details := errObj["details"].([]any)
	require.Len(t, details, 1)
	assert.Equal(t, "amount", details[0].(map[string]any)["field"])
}

func TestNewErrorResponse_OmitsEmptyFields(t *testing.T) {
	raw, err := json.Marshal(NewErrorResponse("NOT_FOUND", "Employee not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"code":"NOT_FOUND","message":"Employee not found"}}`, string(raw))
}
