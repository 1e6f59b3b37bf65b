package finance

import (
	"errors"
	"fmt"
	"time"

	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CodePaymentExceedsRemaining is the error code of PaymentExceedsRemainingError
const CodePaymentExceedsRemaining = "PAYMENT_EXCEEDS_REMAINING"

// PaymentExceedsRemainingError is returned when a payment is larger than the
// open amount of a payable or receivable.
type PaymentExceedsRemainingError struct {
	AmountPaid decimal.Decimal
	Remaining  decimal.Decimal
}

func (e *PaymentExceedsRemainingError) Error() string {
	return fmt.Sprintf("payment amount %s exceeds remaining amount %s",
		e.AmountPaid.StringFixed(2), e.Remaining.StringFixed(2))
}

// ErrorCode implements shared.CodedError
func (e *PaymentExceedsRemainingError) ErrorCode() string {
	return CodePaymentExceedsRemaining
}

// Settle applies amountPaid to balance. It is the settlement counterpart of
// ledger.ApplyDeduction and reports overpayment with its own error type.
func Settle(balance ledger.Balance, amountPaid decimal.Decimal) (ledger.Balance, error) {
	updated, err := ledger.ApplyDeduction(balance, amountPaid)
	if err != nil {
		var exceeds *ledger.ExceedsRemainingError
		if errors.As(err, &exceeds) {
			return balance, &PaymentExceedsRemainingError{AmountPaid: exceeds.Attempted, Remaining: exceeds.Remaining}
		}
		return balance, err
	}
	return updated, nil
}

// Payment is an immutable settlement record against a payable or receivable.
type Payment struct {
	ID            uuid.UUID                `json:"id"`
	BalanceID     uuid.UUID                `json:"balanceId"`
	Amount        decimal.Decimal          `json:"amount"`
	PaymentDate   time.Time                `json:"paymentDate"`
	PaymentMethod accounting.PaymentMethod `json:"paymentMethod"`
	Notes         string                   `json:"notes,omitempty"`
	TransactionID *uuid.UUID               `json:"transactionId,omitempty"`
	CreatedBy     *uuid.UUID               `json:"createdBy,omitempty"`
	CreatedAt     time.Time                `json:"createdAt"`
	DeletedAt     *time.Time               `json:"-"`
}

// IsDeleted reports whether the payment row was soft-deleted
func (p *Payment) IsDeleted() bool {
	return p.DeletedAt != nil
}

// PaymentInput carries the caller-supplied fields of a settlement
type PaymentInput struct {
	Amount        decimal.Decimal
	PaymentDate   time.Time
	PaymentMethod accounting.PaymentMethod
	Notes         string
	ActorID       uuid.UUID
}

func (in PaymentInput) validate() error {
	if err := ledger.RequirePositive("amountPaid", in.Amount); err != nil {
		return err
	}
	if in.PaymentDate.IsZero() {
		return shared.NewValidationError("paymentDate is required")
	}
	if !in.PaymentMethod.IsValid() {
		return shared.NewValidationError("invalid payment method: " + string(in.PaymentMethod))
	}
	return nil
}

// OpenItem is the state shared by payables and receivables: an amount owed
// by or to a contact, settled by a list of payments.
type OpenItem struct {
	ContactID   uuid.UUID
	Description string
	Date        time.Time
	DueDate     *time.Time
	Balance     ledger.Balance
	Payments    []Payment
}

func newOpenItem(contactID uuid.UUID, description string, amount decimal.Decimal, date time.Time, dueDate *time.Time) (OpenItem, error) {
	if contactID == uuid.Nil {
		return OpenItem{}, shared.NewValidationError("contactId is required")
	}
	if err := ledger.RequirePositive("amount", amount); err != nil {
		return OpenItem{}, err
	}
	if date.IsZero() {
		return OpenItem{}, shared.NewValidationError("date is required")
	}
	if dueDate != nil && dueDate.Before(date) {
		return OpenItem{}, shared.NewValidationError("dueDate cannot be before date")
	}
	balance, err := ledger.NewBalance(amount)
	if err != nil {
		return OpenItem{}, err
	}
	return OpenItem{
		ContactID:   contactID,
		Description: description,
		Date:        date,
		DueDate:     dueDate,
		Balance:     balance,
		Payments:    make([]Payment, 0),
	}, nil
}

// settle validates in, applies it to the balance and appends the payment.
// The item is unchanged when an error is returned.
func (o *OpenItem) settle(balanceID uuid.UUID, in PaymentInput) (*Payment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	updated, err := Settle(o.Balance, in.Amount)
	if err != nil {
		return nil, err
	}

	payment := Payment{
		ID:            uuid.New(),
		BalanceID:     balanceID,
		Amount:        in.Amount,
		PaymentDate:   in.PaymentDate,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
		CreatedAt:     time.Now(),
	}
	if in.ActorID != uuid.Nil {
		actor := in.ActorID
		payment.CreatedBy = &actor
	}

	o.Balance = updated
	o.Payments = append(o.Payments, payment)
	return &o.Payments[len(o.Payments)-1], nil
}

// LinkTransaction attaches the paired ledger row to a payment.
func (o *OpenItem) LinkTransaction(paymentID, transactionID uuid.UUID) error {
	for i := range o.Payments {
		if o.Payments[i].ID == paymentID {
			if o.Payments[i].TransactionID != nil {
				return shared.NewInvalidStateError("payment already has a transaction")
			}
			o.Payments[i].TransactionID = &transactionID
			return nil
		}
	}
	return shared.NewNotFoundError("Payment")
}

// ActivePayments returns the payments that have not been soft-deleted
func (o *OpenItem) ActivePayments() []Payment {
	active := make([]Payment, 0, len(o.Payments))
	for _, p := range o.Payments {
		if !p.IsDeleted() {
			active = append(active, p)
		}
	}
	return active
}

// PaidAmount sums the active payments
func (o *OpenItem) PaidAmount() decimal.Decimal {
	total := decimal.Zero
	for _, p := range o.ActivePayments() {
		total = total.Add(p.Amount)
	}
	return total
}

// IsOverdue reports whether the item is open past its due date
func (o *OpenItem) IsOverdue(now time.Time) bool {
	return o.DueDate != nil && o.Balance.IsOpen() && now.After(*o.DueDate)
}

func (o *OpenItem) checkDeletable(kind string) error {
	if n := len(o.ActivePayments()); n > 0 {
		return shared.NewConflictError(fmt.Sprintf("%s has %d payment(s) and cannot be deleted", kind, n))
	}
	return nil
}
