package payroll

import (
	"strings"
	"time"

	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeBonus is a one-off payment on top of the salary
type EmployeeBonus struct {
	shared.BranchAggregateRoot
	shared.SoftDeletable
	EmployeeID    uuid.UUID
	Amount        decimal.Decimal
	BonusDate     time.Time
	Reason        string
	TransactionID *uuid.UUID
}

// NewEmployeeBonus creates a bonus for an active employee
func NewEmployeeBonus(employee *Employee, amount decimal.Decimal, bonusDate time.Time, reason string) (*EmployeeBonus, error) {
	if employee == nil {
		return nil, shared.NewValidationError("employee is required")
	}
	if !employee.IsActive() {
		return nil, shared.NewInvalidStateError("bonuses can only be granted to active employees")
	}
	if err := ledger.RequirePositive("amount", amount); err != nil {
		return nil, err
	}
	if bonusDate.IsZero() {
		return nil, shared.NewValidationError("bonusDate is required")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, shared.NewValidationError("reason is required")
	}

	b := &EmployeeBonus{
		BranchAggregateRoot: shared.NewBranchAggregateRoot(employee.BranchID),
		EmployeeID:          employee.ID,
		Amount:              amount,
		BonusDate:           bonusDate,
		Reason:              reason,
	}
	b.AddDomainEvent(NewBonusGrantedEvent(b))
	return b, nil
}

// LinkTransaction records the paired EXPENSE row
func (b *EmployeeBonus) LinkTransaction(transactionID uuid.UUID) {
	b.TransactionID = &transactionID
}

// Delete soft-deletes the bonus
func (b *EmployeeBonus) Delete(at time.Time) error {
	if b.IsDeleted() {
		return shared.NewNotFoundError("Bonus")
	}
	b.MarkDeleted(at)
	b.Touch()
	b.IncrementVersion()
	b.AddDomainEvent(NewBonusDeletedEvent(b))
	return nil
}
