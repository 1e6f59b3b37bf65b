package middleware

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type amountRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"decimal_gt0"`
	Name   string          `json:"name" validate:"required,max=5"`
	Kind   string          `form:"kind" validate:"omitempty,oneof=VENDOR CUSTOMER"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterValidations(v)
	return v
}

func TestDecimalGreaterThanZero(t *testing.T) {
	v := newValidator()

	tests := []struct {
		amount string
		valid  bool
	}{
		{"0.01", true},
		{"1500", true},
		{"0", false},
		{"-3", false},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			err := v.Struct(amountRequest{Amount: decimal.RequireFromString(tt.amount), Name: "ok"})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			details, ok := ValidationDetails(err)
			require.True(t, ok)
			require.Len(t, details, 1)
			assert.Equal(t, "amount", details[0].Field)
			assert.Equal(t, "Must be greater than 0", details[0].Message)
		})
	}
}

type adjustRequest struct {
	Delta decimal.Decimal `json:"delta" validate:"decimal_ne0"`
}

func TestDecimalNotZero(t *testing.T) {
	v := newValidator()

	assert.NoError(t, v.Struct(adjustRequest{Delta: decimal.NewFromInt(-4)}))
	assert.NoError(t, v.Struct(adjustRequest{Delta: decimal.RequireFromString("0.5")}))

	err := v.Struct(adjustRequest{})
	require.Error(t, err)
	details, ok := ValidationDetails(err)
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Equal(t, "delta", details[0].Field)
	assert.Equal(t, "Must not be 0", details[0].Message)
}

func TestRequiredDoesNotRejectZeroDecimal(t *testing.T) {
	// A decimal is validated as its string form, so an absent amount ("0")
	// slips past required and only the decimal tags catch it.
	type onlyRequired struct {
		Amount decimal.Decimal `json:"amount" validate:"required"`
	}
	v := newValidator()
	assert.NoError(t, v.Struct(onlyRequired{}))
	assert.Error(t, v.Struct(amountRequest{Name: "ok"}))
}

func TestValidationDetails_FieldNames(t *testing.T) {
	v := newValidator()
	err := v.Struct(amountRequest{Amount: decimal.NewFromInt(1), Name: "too long", Kind: "OTHER"})
	require.Error(t, err)

	details, ok := ValidationDetails(err)
	require.True(t, ok)
	messages := map[string]string{}
	for _, d := range details {
		messages[d.Field] = d.Message
	}
	assert.Equal(t, "Must be at most 5 characters", messages["name"])
	assert.Equal(t, "Must be one of: VENDOR CUSTOMER", messages["kind"])
}

func TestValidationDetails_NotValidation(t *testing.T) {
	_, ok := ValidationDetails(assert.AnError)
	assert.False(t, ok)
}
