package payroll

import (
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalaryPayment records one payroll disbursement to an employee
type SalaryPayment struct {
	shared.BranchAggregateRoot
	shared.SoftDeletable
	EmployeeID     uuid.UUID
	GrossAmount    decimal.Decimal
	DeductedAmount decimal.Decimal
	NetAmount      decimal.Decimal
	PaymentDate    time.Time
	Notes          string
	Policy         PolicyName
	TransactionID  *uuid.UUID
	Deductions     []AdvanceDeduction
}

// NewSalaryPayment creates a salary payment from a deduction plan
func NewSalaryPayment(employee *Employee, plan *DeductionPlan, paymentDate time.Time, notes string) (*SalaryPayment, error) {
	if employee == nil {
		return nil, shared.NewValidationError("employee is required")
	}
	if plan == nil {
		return nil, shared.NewValidationError("deduction plan is required")
	}
	if paymentDate.IsZero() {
		return nil, shared.NewValidationError("paymentDate is required")
	}
	if plan.NetAmount.IsNegative() || !plan.GrossAmount.Equal(plan.NetAmount.Add(plan.Budget)) {
		return nil, shared.NewValidationError("deduction plan amounts do not add up")
	}

	return &SalaryPayment{
		BranchAggregateRoot: shared.NewBranchAggregateRoot(employee.BranchID),
		EmployeeID:          employee.ID,
		GrossAmount:         plan.GrossAmount,
		DeductedAmount:      plan.Budget,
		NetAmount:           plan.NetAmount,
		PaymentDate:         paymentDate,
		Notes:               notes,
		Policy:              plan.Policy,
		Deductions:          make([]AdvanceDeduction, 0, len(plan.Lines)),
	}, nil
}

// HasCashMovement reports whether anything was actually paid out
func (s *SalaryPayment) HasCashMovement() bool {
	return s.NetAmount.IsPositive()
}

// LinkTransaction records the paired EXPENSE row
func (s *SalaryPayment) LinkTransaction(transactionID uuid.UUID) {
	s.TransactionID = &transactionID
}

// AttachDeduction adds a deduction created by this payment to its summary
func (s *SalaryPayment) AttachDeduction(d AdvanceDeduction) {
	s.Deductions = append(s.Deductions, d)
}

// RecordPaid raises the event summarizing the payment once all rows exist
func (s *SalaryPayment) RecordPaid() {
	s.AddDomainEvent(NewSalaryPaidEvent(s))
}

// Delete soft-deletes the payment. Advance deductions it caused are ledger
// history and stay in place.
func (s *SalaryPayment) Delete(at time.Time) error {
	if s.IsDeleted() {
		return shared.NewNotFoundError("Salary payment")
	}
	s.MarkDeleted(at)
	s.Touch()
	s.IncrementVersion()
	s.AddDomainEvent(NewSalaryPaymentDeletedEvent(s))
	return nil
}
