// Package payroll models employees, their salary payments and bonuses, and
// the cash advances that are recovered from salaries oldest-first.
package payroll

import (
	"strings"
	"time"

	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeStatus represents the employment status
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "ACTIVE"
	EmployeeStatusResigned EmployeeStatus = "RESIGNED"
)

// Employee is the aggregate that owns advances, salary payments and bonuses
type Employee struct {
	shared.BranchAggregateRoot
	shared.SoftDeletable
	Name          string
	Position      string
	Phone         string
	MonthlySalary decimal.Decimal
	HireDate      time.Time
	Status        EmployeeStatus
	ResignedAt    *time.Time
}

// NewEmployee creates a new employee
func NewEmployee(branchID uuid.UUID, name, position, phone string, monthlySalary decimal.Decimal, hireDate time.Time) (*Employee, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("branch is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("employee name is required")
	}
	if err := ledger.RequirePositive("monthlySalary", monthlySalary); err != nil {
		return nil, err
	}
	if hireDate.IsZero() {
		hireDate = time.Now()
	}

	e := &Employee{
		BranchAggregateRoot: shared.NewBranchAggregateRoot(branchID),
		Name:                name,
		Position:            strings.TrimSpace(position),
		Phone:               strings.TrimSpace(phone),
		MonthlySalary:       monthlySalary,
		HireDate:            hireDate,
		Status:              EmployeeStatusActive,
	}
	e.AddDomainEvent(NewEmployeeCreatedEvent(e))
	return e, nil
}

// IsActive reports whether the employee is still employed
func (e *Employee) IsActive() bool {
	return e.Status == EmployeeStatusActive && !e.IsDeleted()
}

// UpdateSalary changes the monthly salary used by the shortfall policy
func (e *Employee) UpdateSalary(amount decimal.Decimal) error {
	if err := ledger.RequirePositive("monthlySalary", amount); err != nil {
		return err
	}
	e.MonthlySalary = amount
	e.Touch()
	e.IncrementVersion()
	return nil
}

// Resign ends the employment. Open advances stay recoverable.
func (e *Employee) Resign(at time.Time) error {
	if e.Status == EmployeeStatusResigned {
		return shared.NewInvalidStateError("employee has already resigned")
	}
	e.Status = EmployeeStatusResigned
	e.ResignedAt = &at
	e.Touch()
	e.IncrementVersion()
	return nil
}
