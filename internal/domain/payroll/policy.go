package payroll

import (
	"fmt"
	"strings"

	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CodeBudgetExceeded is the error code of BudgetExceededError
const CodeBudgetExceeded = "BUDGET_EXCEEDED"

// BudgetExceededError is returned by the fixed monthly policy when the
// installments due are larger than the salary being paid.
type BudgetExceededError struct {
	Budget      decimal.Decimal
	GrossAmount decimal.Decimal
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("advance deductions %s exceed the salary amount %s",
		e.Budget.StringFixed(2), e.GrossAmount.StringFixed(2))
}

// ErrorCode implements shared.CodedError
func (e *BudgetExceededError) ErrorCode() string {
	return CodeBudgetExceeded
}

// PolicyName identifies a budget derivation policy
type PolicyName string

const (
	PolicyFixedMonthly PolicyName = "fixed_monthly"
	PolicyShortfall    PolicyName = "shortfall"
)

// PlanInput is everything a policy needs to plan one salary payment
type PlanInput struct {
	// Amount is the amount entered by the payer.
	Amount decimal.Decimal
	// MonthlySalary is the employee's full salary.
	MonthlySalary decimal.Decimal
	// Advances must already be sorted oldest first.
	Advances []*EmployeeAdvance
}

// DeductionPlan is the outcome of a policy: what the employee earned, what
// is withheld against advances, and the cash actually paid out.
type DeductionPlan struct {
	Policy      PolicyName       `json:"policy"`
	GrossAmount decimal.Decimal  `json:"grossAmount"`
	Budget      decimal.Decimal  `json:"deductedAmount"`
	NetAmount   decimal.Decimal  `json:"netAmount"`
	Lines       []AllocationLine `json:"deductions"`
}

// DeductionPolicy derives the deduction budget of a salary payment
type DeductionPolicy interface {
	Name() PolicyName
	Plan(in PlanInput) (*DeductionPlan, error)
}

// NewDeductionPolicy returns the policy registered under name
func NewDeductionPolicy(name string) (DeductionPolicy, error) {
	switch PolicyName(strings.ToLower(strings.TrimSpace(name))) {
	case PolicyFixedMonthly, "":
		return FixedMonthlyPolicy{}, nil
	case PolicyShortfall:
		return ShortfallPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown deduction policy %q", name)
}

// FixedMonthlyPolicy withholds each active advance's monthly installment
// from the gross salary entered by the payer.
type FixedMonthlyPolicy struct{}

// Name implements DeductionPolicy
func (FixedMonthlyPolicy) Name() PolicyName { return PolicyFixedMonthly }

// Plan implements DeductionPolicy
func (FixedMonthlyPolicy) Plan(in PlanInput) (*DeductionPlan, error) {
	if err := ledger.RequirePositive("amount", in.Amount); err != nil {
		return nil, err
	}

	active := ActiveAdvances(in.Advances)
	budget := decimal.Zero
	for _, a := range active {
		budget = budget.Add(a.MonthlyInstallment())
	}
	if budget.GreaterThan(in.Amount) {
		return nil, &BudgetExceededError{Budget: budget, GrossAmount: in.Amount}
	}

	lines, err := AllocateDeductions(active, budget, CapMonthlyInstallment)
	if err != nil {
		return nil, err
	}
	deducted := TotalAllocated(lines)
	return &DeductionPlan{
		Policy:      PolicyFixedMonthly,
		GrossAmount: in.Amount,
		Budget:      deducted,
		NetAmount:   in.Amount.Sub(deducted),
		Lines:       lines,
	}, nil
}

// ShortfallPolicy treats a payment below the full salary as a recovery of
// advances: the difference is deducted, capped at what is still owed.
type ShortfallPolicy struct{}

// Name implements DeductionPolicy
func (ShortfallPolicy) Name() PolicyName { return PolicyShortfall }

// Plan implements DeductionPolicy
func (ShortfallPolicy) Plan(in PlanInput) (*DeductionPlan, error) {
	if err := ledger.RequirePositive("amount", in.Amount); err != nil {
		return nil, err
	}
	if !in.MonthlySalary.IsPositive() {
		return nil, shared.NewValidationError("employee has no monthly salary configured")
	}

	active := ActiveAdvances(in.Advances)
	owed := decimal.Zero
	for _, a := range active {
		owed = owed.Add(a.Remaining())
	}
	budget := decimal.Max(decimal.Zero, in.MonthlySalary.Sub(in.Amount))
	budget = decimal.Min(budget, owed)

	lines, err := AllocateDeductions(active, budget, CapRemaining)
	if err != nil {
		return nil, err
	}
	deducted := TotalAllocated(lines)
	return &DeductionPlan{
		Policy:      PolicyShortfall,
		GrossAmount: in.Amount.Add(deducted),
		Budget:      deducted,
		NetAmount:   in.Amount,
		Lines:       lines,
	}, nil
}
