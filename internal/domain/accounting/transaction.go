// Package accounting contains the branch ledger: income and expense
// transactions, including those created as side effects of settlements.
package accounting

import (
	"strings"
	"time"

	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the cash-flow direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// IsValid checks if the type is valid
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// SourceType names the record that caused a transaction
type SourceType string

const (
	SourceManual               SourceType = "MANUAL"
	SourceSalaryPayment        SourceType = "SALARY_PAYMENT"
	SourceEmployeeAdvance      SourceType = "EMPLOYEE_ADVANCE"
	SourceBonus                SourceType = "BONUS"
	SourcePayablePayment       SourceType = "PAYABLE_PAYMENT"
	SourceReceivableCollection SourceType = "RECEIVABLE_COLLECTION"
)

// IsValid checks if the source type is valid
func (s SourceType) IsValid() bool {
	switch s {
	case SourceManual, SourceSalaryPayment, SourceEmployeeAdvance, SourceBonus,
		SourcePayablePayment, SourceReceivableCollection:
		return true
	}
	return false
}

// Well-known categories used by paired transactions.
const (
	CategorySalaries         = "salaries"
	CategoryBonuses          = "bonuses"
	CategoryEmployeeAdvances = "employee_advances"
	CategoryPayables         = "payables"
	CategoryReceivables      = "receivables"
)

// PaymentMethod is how money moved
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard         PaymentMethod = "CARD"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCard,
		PaymentMethodCheque, PaymentMethodOther:
		return true
	}
	return false
}

// ParsePaymentMethod normalizes user input, defaulting to CASH when empty.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return PaymentMethodCash, nil
	}
	m := PaymentMethod(s)
	if !m.IsValid() {
		return "", shared.NewValidationError("invalid payment method: " + s)
	}
	return m, nil
}

// Transaction is one row of a branch ledger
type Transaction struct {
	shared.BranchAggregateRoot
	shared.SoftDeletable
	Type          TransactionType
	Category      string
	Amount        decimal.Decimal
	Date          time.Time
	PaymentMethod PaymentMethod
	Description   string
	SourceType    SourceType
	SourceID      *uuid.UUID
}

// NewTransaction validates and creates a ledger row
func NewTransaction(
	branchID uuid.UUID,
	txType TransactionType,
	category string,
	amount decimal.Decimal,
	date time.Time,
	method PaymentMethod,
	description string,
) (*Transaction, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("branch is required")
	}
	if !txType.IsValid() {
		return nil, shared.NewValidationError("transaction type must be INCOME or EXPENSE")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, shared.NewValidationError("category is required")
	}
	if err := ledger.RequirePositive("amount", amount); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, shared.NewValidationError("date is required")
	}
	if method == "" {
		method = PaymentMethodCash
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("invalid payment method: " + string(method))
	}

	tx := &Transaction{
		BranchAggregateRoot: shared.NewBranchAggregateRoot(branchID),
		Type:                txType,
		Category:            category,
		Amount:              amount,
		Date:                date,
		PaymentMethod:       method,
		Description:         description,
		SourceType:          SourceManual,
	}
	tx.AddDomainEvent(NewTransactionRecordedEvent(tx))
	return tx, nil
}

// NewPairedTransaction creates the cash-flow row of a settlement, linked back
// to the record that caused it.
func NewPairedTransaction(
	branchID uuid.UUID,
	txType TransactionType,
	category string,
	amount decimal.Decimal,
	date time.Time,
	method PaymentMethod,
	description string,
	source SourceType,
	sourceID uuid.UUID,
) (*Transaction, error) {
	if source == SourceManual || !source.IsValid() {
		return nil, shared.NewValidationError("paired transaction needs a settlement source")
	}
	if sourceID == uuid.Nil {
		return nil, shared.NewValidationError("paired transaction needs a source id")
	}
	tx, err := NewTransaction(branchID, txType, category, amount, date, method, description)
	if err != nil {
		return nil, err
	}
	tx.SourceType = source
	tx.SourceID = &sourceID
	tx.ClearDomainEvents()
	return tx, nil
}

// IsPaired reports whether the row was created by a settlement
func (t *Transaction) IsPaired() bool {
	return t.SourceType != SourceManual
}

// Delete soft-deletes a manual transaction. Paired rows can only go away with
// their source record.
func (t *Transaction) Delete(at time.Time) error {
	if t.IsDeleted() {
		return shared.NewNotFoundError("Transaction")
	}
	if t.IsPaired() {
		return shared.NewConflictError("transaction was created by " + string(t.SourceType) + " and must be removed through it")
	}
	t.MarkDeleted(at)
	t.Touch()
	t.IncrementVersion()
	t.AddDomainEvent(NewTransactionDeletedEvent(t))
	return nil
}

// CascadeDelete soft-deletes a paired row together with its source.
func (t *Transaction) CascadeDelete(at time.Time) {
	if t.IsDeleted() {
		return
	}
	t.MarkDeleted(at)
	t.Touch()
	t.IncrementVersion()
}

// SignedAmount is positive for income and negative for expense
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
