package payroll

import (
	"time"

	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	aggregateTypeEmployee      = "Employee"
	aggregateTypeAdvance       = "EmployeeAdvance"
	aggregateTypeSalaryPayment = "SalaryPayment"
	aggregateTypeBonus         = "EmployeeBonus"
)

// Event types
const (
	EventTypeEmployeeCreated      = "EmployeeCreated"
	EventTypeAdvanceCreated       = "AdvanceCreated"
	EventTypeAdvanceDeducted      = "AdvanceDeducted"
	EventTypeAdvanceCancelled     = "AdvanceCancelled"
	EventTypeSalaryPaid           = "SalaryPaid"
	EventTypeSalaryPaymentDeleted = "SalaryPaymentDeleted"
	EventTypeBonusGranted         = "BonusGranted"
	EventTypeBonusDeleted         = "BonusDeleted"
)

// EmployeeCreatedEvent is raised when an employee is hired
type EmployeeCreatedEvent struct {
	shared.BaseDomainEvent
	EmployeeID    uuid.UUID       `json:"employee_id"`
	Name          string          `json:"name"`
	MonthlySalary decimal.Decimal `json:"monthly_salary"`
}

// NewEmployeeCreatedEvent creates a new EmployeeCreatedEvent
func NewEmployeeCreatedEvent(e *Employee) *EmployeeCreatedEvent {
	return &EmployeeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeCreated, aggregateTypeEmployee, e.ID, e.BranchID),
		EmployeeID:      e.ID,
		Name:            e.Name,
		MonthlySalary:   e.MonthlySalary,
	}
}

// AdvanceCreatedEvent is raised when cash is advanced to an employee
type AdvanceCreatedEvent struct {
	shared.BaseDomainEvent
	AdvanceID        uuid.UUID       `json:"advance_id"`
	EmployeeID       uuid.UUID       `json:"employee_id"`
	Amount           decimal.Decimal `json:"amount"`
	MonthlyDeduction decimal.Decimal `json:"monthly_deduction"`
	AdvanceDate      time.Time       `json:"advance_date"`
}

// NewAdvanceCreatedEvent creates a new AdvanceCreatedEvent
func NewAdvanceCreatedEvent(a *EmployeeAdvance) *AdvanceCreatedEvent {
	return &AdvanceCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeAdvanceCreated, aggregateTypeAdvance, a.ID, a.BranchID),
		AdvanceID:        a.ID,
		EmployeeID:       a.EmployeeID,
		Amount:           a.Amount(),
		MonthlyDeduction: a.MonthlyDeduction,
		AdvanceDate:      a.AdvanceDate,
	}
}

// AdvanceDeductedEvent is raised for every deduction against an advance
type AdvanceDeductedEvent struct {
	shared.BaseDomainEvent
	AdvanceID         uuid.UUID       `json:"advance_id"`
	DeductionID       uuid.UUID       `json:"deduction_id"`
	EmployeeID        uuid.UUID       `json:"employee_id"`
	Amount            decimal.Decimal `json:"amount"`
	PreviousRemaining decimal.Decimal `json:"previous_remaining"`
	Remaining         decimal.Decimal `json:"remaining"`
	Status            ledger.Status   `json:"status"`
	SalaryPaymentID   *uuid.UUID      `json:"salary_payment_id,omitempty"`
}

// NewAdvanceDeductedEvent creates a new AdvanceDeductedEvent
func NewAdvanceDeductedEvent(a *EmployeeAdvance, d AdvanceDeduction, previous decimal.Decimal) *AdvanceDeductedEvent {
	return &AdvanceDeductedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeAdvanceDeducted, aggregateTypeAdvance, a.ID, a.BranchID),
		AdvanceID:         a.ID,
		DeductionID:       d.ID,
		EmployeeID:        a.EmployeeID,
		Amount:            d.Amount,
		PreviousRemaining: previous,
		Remaining:         a.Remaining(),
		Status:            a.Status(),
		SalaryPaymentID:   d.SalaryPaymentID,
	}
}

// AdvanceCancelledEvent is raised when an untouched advance is withdrawn
type AdvanceCancelledEvent struct {
	shared.BaseDomainEvent
	AdvanceID uuid.UUID       `json:"advance_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason,omitempty"`
}

// NewAdvanceCancelledEvent creates a new AdvanceCancelledEvent
func NewAdvanceCancelledEvent(a *EmployeeAdvance) *AdvanceCancelledEvent {
	return &AdvanceCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdvanceCancelled, aggregateTypeAdvance, a.ID, a.BranchID),
		AdvanceID:       a.ID,
		Amount:          a.Amount(),
		Reason:          a.CancelReason,
	}
}

// SalaryPaidEvent summarizes a salary payment and the deductions it made
type SalaryPaidEvent struct {
	shared.BaseDomainEvent
	SalaryPaymentID uuid.UUID          `json:"salary_payment_id"`
	EmployeeID      uuid.UUID          `json:"employee_id"`
	Policy          PolicyName         `json:"policy"`
	GrossAmount     decimal.Decimal    `json:"gross_amount"`
	DeductedAmount  decimal.Decimal    `json:"deducted_amount"`
	NetAmount       decimal.Decimal    `json:"net_amount"`
	Deductions      []AdvanceDeduction `json:"deductions"`
	TransactionID   *uuid.UUID         `json:"transaction_id,omitempty"`
}

// NewSalaryPaidEvent creates a new SalaryPaidEvent
func NewSalaryPaidEvent(s *SalaryPayment) *SalaryPaidEvent {
	deductions := make([]AdvanceDeduction, len(s.Deductions))
	copy(deductions, s.Deductions)
	return &SalaryPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalaryPaid, aggregateTypeSalaryPayment, s.ID, s.BranchID),
		SalaryPaymentID: s.ID,
		EmployeeID:      s.EmployeeID,
		Policy:          s.Policy,
		GrossAmount:     s.GrossAmount,
		DeductedAmount:  s.DeductedAmount,
		NetAmount:       s.NetAmount,
		Deductions:      deductions,
		TransactionID:   s.TransactionID,
	}
}

// SalaryPaymentDeletedEvent is raised when a salary payment is soft-deleted
type SalaryPaymentDeletedEvent struct {
	shared.BaseDomainEvent
	SalaryPaymentID uuid.UUID       `json:"salary_payment_id"`
	EmployeeID      uuid.UUID       `json:"employee_id"`
	NetAmount       decimal.Decimal `json:"net_amount"`
}

// NewSalaryPaymentDeletedEvent creates a new SalaryPaymentDeletedEvent
func NewSalaryPaymentDeletedEvent(s *SalaryPayment) *SalaryPaymentDeletedEvent {
	return &SalaryPaymentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalaryPaymentDeleted, aggregateTypeSalaryPayment, s.ID, s.BranchID),
		SalaryPaymentID: s.ID,
		EmployeeID:      s.EmployeeID,
		NetAmount:       s.NetAmount,
	}
}

// BonusGrantedEvent is raised when a bonus is paid
type BonusGrantedEvent struct {
	shared.BaseDomainEvent
	BonusID    uuid.UUID       `json:"bonus_id"`
	EmployeeID uuid.UUID       `json:"employee_id"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
}

// NewBonusGrantedEvent creates a new BonusGrantedEvent
func NewBonusGrantedEvent(b *EmployeeBonus) *BonusGrantedEvent {
	return &BonusGrantedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBonusGranted, aggregateTypeBonus, b.ID, b.BranchID),
		BonusID:         b.ID,
		EmployeeID:      b.EmployeeID,
		Amount:          b.Amount,
		Reason:          b.Reason,
	}
}

// BonusDeletedEvent is raised when a bonus is soft-deleted
type BonusDeletedEvent struct {
	shared.BaseDomainEvent
	BonusID uuid.UUID       `json:"bonus_id"`
	Amount  decimal.Decimal `json:"amount"`
}

// NewBonusDeletedEvent creates a new BonusDeletedEvent
func NewBonusDeletedEvent(b *EmployeeBonus) *BonusDeletedEvent {
	return &BonusDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBonusDeleted, aggregateTypeBonus, b.ID, b.BranchID),
		BonusID:         b.ID,
		Amount:          b.Amount,
	}
}
