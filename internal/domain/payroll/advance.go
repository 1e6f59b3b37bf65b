package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdvanceStatus reports an advance's ledger status collapsed to the advance
// lifecycle: an advance stays ACTIVE until it is paid off or cancelled.
func AdvanceStatus(b ledger.Balance) ledger.Status {
	if b.Status == ledger.StatusPartial {
		return ledger.StatusActive
	}
	return b.Status
}

// RestoreAdvanceBalance rebuilds the ledger balance of a persisted advance
// from its amounts and stored advance status.
func RestoreAdvanceBalance(original, remaining decimal.Decimal, status ledger.Status) (ledger.Balance, error) {
	if status == ledger.StatusCancelled {
		return ledger.RestoreBalance(original, remaining, status)
	}
	derived, err := ledger.DeriveStatus(original, remaining)
	if err != nil {
		return ledger.Balance{}, err
	}
	if AdvanceStatus(ledger.Balance{Status: derived}) != status {
		return ledger.Balance{}, fmt.Errorf("payroll: advance status %s does not match remaining %s of %s", status, remaining.String(), original.String())
	}
	return ledger.Balance{Original: original, Remaining: remaining, Status: derived}, nil
}

// AdvanceDeduction is an immutable record of one recovery against an advance
type AdvanceDeduction struct {
	ID              uuid.UUID       `json:"id"`
	AdvanceID       uuid.UUID       `json:"advanceId"`
	EmployeeID      uuid.UUID       `json:"employeeId"`
	Amount          decimal.Decimal `json:"amount"`
	DeductionDate   time.Time       `json:"deductionDate"`
	SalaryPaymentID *uuid.UUID      `json:"salaryPaymentId,omitempty"`
	TransactionID   *uuid.UUID      `json:"transactionId,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedBy       *uuid.UUID      `json:"createdBy,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// IsManual reports whether the deduction was entered outside of payroll
func (d AdvanceDeduction) IsManual() bool {
	return d.SalaryPaymentID == nil
}

// EmployeeAdvance is cash handed to an employee and recovered later
type EmployeeAdvance struct {
	shared.BranchAggregateRoot
	EmployeeID       uuid.UUID
	Balance          ledger.Balance
	MonthlyDeduction decimal.Decimal
	AdvanceDate      time.Time
	Reason           string
	TransactionID    *uuid.UUID
	Deductions       []AdvanceDeduction
	CancelledAt      *time.Time
	CancelReason     string
}

// NewEmployeeAdvance creates an ACTIVE advance with nothing recovered yet
func NewEmployeeAdvance(
	employee *Employee,
	amount decimal.Decimal,
	monthlyDeduction decimal.Decimal,
	advanceDate time.Time,
	reason string,
) (*EmployeeAdvance, error) {
	if employee == nil || employee.ID == uuid.Nil {
		return nil, shared.NewValidationError("employee is required")
	}
	if !employee.IsActive() {
		return nil, shared.NewInvalidStateError("advances can only be given to active employees")
	}
	if err := ledger.RequirePositive("amount", amount); err != nil {
		return nil, err
	}
	if err := ledger.RequirePositive("monthlyDeduction", monthlyDeduction); err != nil {
		return nil, err
	}
	if advanceDate.IsZero() {
		return nil, shared.NewValidationError("advanceDate is required")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, shared.NewValidationError("reason is required")
	}
	balance, err := ledger.NewBalance(amount)
	if err != nil {
		return nil, err
	}

	a := &EmployeeAdvance{
		BranchAggregateRoot: shared.NewBranchAggregateRoot(employee.BranchID),
		EmployeeID:          employee.ID,
		Balance:             balance,
		MonthlyDeduction:    monthlyDeduction,
		AdvanceDate:         advanceDate,
		Reason:              reason,
		Deductions:          make([]AdvanceDeduction, 0),
	}
	a.AddDomainEvent(NewAdvanceCreatedEvent(a))
	return a, nil
}

// Status returns ACTIVE, PAID or CANCELLED
func (a *EmployeeAdvance) Status() ledger.Status {
	return AdvanceStatus(a.Balance)
}

// Amount is the original advance amount
func (a *EmployeeAdvance) Amount() decimal.Decimal {
	return a.Balance.Original
}

// Remaining is what the employee still owes
func (a *EmployeeAdvance) Remaining() decimal.Decimal {
	return a.Balance.Remaining
}

// IsActive reports whether the advance can still be deducted from
func (a *EmployeeAdvance) IsActive() bool {
	return a.Status() == ledger.StatusActive && a.Balance.Remaining.IsPositive()
}

// MonthlyInstallment is the target deduction for one payroll cycle, capped
// by what is still owed
func (a *EmployeeAdvance) MonthlyInstallment() decimal.Decimal {
	if !a.IsActive() {
		return decimal.Zero
	}
	return decimal.Min(a.MonthlyDeduction, a.Balance.Remaining)
}

// LinkTransaction records the ledger row for the cash handed out
func (a *EmployeeAdvance) LinkTransaction(transactionID uuid.UUID) {
	a.TransactionID = &transactionID
}

// Deduct recovers amount from the advance. The amount is never clamped:
// anything above the remaining balance is an ExceedsRemainingError and the
// advance is left unchanged.
func (a *EmployeeAdvance) Deduct(amount decimal.Decimal, date time.Time, salaryPaymentID *uuid.UUID, notes string, actorID uuid.UUID) (*AdvanceDeduction, error) {
	if date.IsZero() {
		return nil, shared.NewValidationError("deductionDate is required")
	}
	updated, err := ledger.ApplyDeduction(a.Balance, amount)
	if err != nil {
		return nil, err
	}

	d := AdvanceDeduction{
		ID:              uuid.New(),
		AdvanceID:       a.ID,
		EmployeeID:      a.EmployeeID,
		Amount:          amount,
		DeductionDate:   date,
		SalaryPaymentID: salaryPaymentID,
		Notes:           notes,
		CreatedAt:       time.Now(),
	}
	if actorID != uuid.Nil {
		d.CreatedBy = &actorID
	}

	previous := a.Balance.Remaining
	a.Balance = updated
	a.Deductions = append(a.Deductions, d)
	a.Touch()
	a.IncrementVersion()
	a.AddDomainEvent(NewAdvanceDeductedEvent(a, d, previous))
	return &a.Deductions[len(a.Deductions)-1], nil
}

// LinkDeductionTransaction attaches a repayment transaction to a manual deduction
func (a *EmployeeAdvance) LinkDeductionTransaction(deductionID, transactionID uuid.UUID) error {
	for i := range a.Deductions {
		if a.Deductions[i].ID == deductionID {
			a.Deductions[i].TransactionID = &transactionID
			return nil
		}
	}
	return shared.NewNotFoundError("Deduction")
}

// Cancel withdraws an advance that has not been deducted from
func (a *EmployeeAdvance) Cancel(reason string, at time.Time) error {
	if len(a.Deductions) > 0 {
		return shared.NewConflictError("advance has deductions and cannot be cancelled")
	}
	cancelled, err := a.Balance.Cancel()
	if err != nil {
		return err
	}
	a.Balance = cancelled
	a.CancelledAt = &at
	a.CancelReason = strings.TrimSpace(reason)
	a.Touch()
	a.IncrementVersion()
	a.AddDomainEvent(NewAdvanceCancelledEvent(a))
	return nil
}
