package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CodeExceedsRemaining is the error code of ExceedsRemainingError
const CodeExceedsRemaining = "EXCEEDS_REMAINING"

// ExceedsRemainingError is returned when a deduction is larger than what is
// still owed. The balance is left untouched.
type ExceedsRemainingError struct {
	Attempted decimal.Decimal
	Remaining decimal.Decimal
}

func (e *ExceedsRemainingError) Error() string {
	return fmt.Sprintf("deduction amount %s exceeds remaining amount %s",
		e.Attempted.StringFixed(2), e.Remaining.StringFixed(2))
}

// ErrorCode implements shared.CodedError
func (e *ExceedsRemainingError) ErrorCode() string {
	return CodeExceedsRemaining
}
