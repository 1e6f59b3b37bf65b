package payroll

import (
	"sort"

	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AllocationLine is the planned deduction against one advance
type AllocationLine struct {
	AdvanceID         uuid.UUID       `json:"advanceId"`
	Amount            decimal.Decimal `json:"deductionAmount"`
	PreviousRemaining decimal.Decimal `json:"previousRemaining"`
	NewRemaining      decimal.Decimal `json:"newRemaining"`
	NewStatus         ledger.Status   `json:"newStatus"`
}

// AllocationCap bounds how much a single advance may receive in one run
type AllocationCap func(a *EmployeeAdvance) decimal.Decimal

// CapRemaining lets an advance absorb up to everything it still owes
func CapRemaining(a *EmployeeAdvance) decimal.Decimal {
	return a.Remaining()
}

// CapMonthlyInstallment limits an advance to its monthly deduction
func CapMonthlyInstallment(a *EmployeeAdvance) decimal.Decimal {
	return a.MonthlyInstallment()
}

// SortOldestFirst orders advances by advance date, then creation time, then
// ID so that the order is total and repeatable.
func SortOldestFirst(advances []*EmployeeAdvance) {
	sort.SliceStable(advances, func(i, j int) bool {
		a, b := advances[i], advances[j]
		if !a.AdvanceDate.Equal(b.AdvanceDate) {
			return a.AdvanceDate.Before(b.AdvanceDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
}

// AllocateDeductions distributes budget across advances in the given order.
// Each advance takes min(budget left, its cap); advances that would take
// nothing are skipped and the walk stops once the budget is spent. No
// advance is touched before every earlier one has reached its cap.
func AllocateDeductions(advances []*EmployeeAdvance, budget decimal.Decimal, capFn AllocationCap) ([]AllocationLine, error) {
	if budget.IsNegative() {
		return nil, shared.NewValidationError("deduction budget cannot be negative")
	}
	if capFn == nil {
		capFn = CapRemaining
	}

	lines := make([]AllocationLine, 0, len(advances))
	left := budget
	for _, adv := range advances {
		if !left.IsPositive() {
			break
		}
		if adv == nil || !adv.IsActive() {
			continue
		}

		limit := decimal.Min(capFn(adv), adv.Remaining())
		amount := decimal.Min(left, limit)
		if !amount.IsPositive() {
			continue
		}

		next, err := ledger.ApplyDeduction(adv.Balance, amount)
		if err != nil {
			return nil, err
		}
		lines = append(lines, AllocationLine{
			AdvanceID:         adv.ID,
			Amount:            amount,
			PreviousRemaining: adv.Remaining(),
			NewRemaining:      next.Remaining,
			NewStatus:         AdvanceStatus(next),
		})
		left = left.Sub(amount)
	}
	return lines, nil
}

// TotalAllocated sums the amounts of lines
func TotalAllocated(lines []AllocationLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

// ActiveAdvances filters out paid and cancelled advances
func ActiveAdvances(advances []*EmployeeAdvance) []*EmployeeAdvance {
	active := make([]*EmployeeAdvance, 0, len(advances))
	for _, a := range advances {
		if a != nil && a.IsActive() {
			active = append(active, a)
		}
	}
	return active
}
