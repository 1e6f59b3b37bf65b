package payroll

import (
	"time"

	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest represents a request to hire an employee
type CreateEmployeeRequest struct {
	BranchID      *uuid.UUID      `json:"branchId"`
	Name          string          `json:"name" binding:"required,max=200"`
	Position      string          `json:"position" binding:"max=100"`
	Phone         string          `json:"phone" binding:"max=50"`
	MonthlySalary decimal.Decimal `json:"monthlySalary" binding:"decimal_gt0"`
	HireDate      *time.Time      `json:"hireDate"`
}

// UpdateSalaryRequest changes an employee's monthly salary
type UpdateSalaryRequest struct {
	MonthlySalary decimal.Decimal `json:"monthlySalary" binding:"decimal_gt0"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID            uuid.UUID       `json:"id"`
	BranchID      uuid.UUID       `json:"branchId"`
	Name          string          `json:"name"`
	Position      string          `json:"position,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	HireDate      time.Time       `json:"hireDate"`
	Status        string          `json:"status"`
	ResignedAt    *time.Time      `json:"resignedAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	Version       int             `json:"version"`
}

// ToEmployeeResponse converts an employee to its response
func ToEmployeeResponse(e *payroll.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		BranchID:      e.BranchID,
		Name:          e.Name,
		Position:      e.Position,
		Phone:         e.Phone,
		MonthlySalary: e.MonthlySalary,
		HireDate:      e.HireDate,
		Status:        string(e.Status),
		ResignedAt:    e.ResignedAt,
		CreatedAt:     e.CreatedAt,
		Version:       e.GetVersion(),
	}
}

// EmployeeListFilter represents filter options for employee lists
type EmployeeListFilter struct {
	BranchID *uuid.UUID `form:"branchId,parser=encoding.TextUnmarshaler"`
	Status   string     `form:"status" binding:"omitempty,oneof=ACTIVE RESIGNED"`
	Search   string     `form:"search"`
	Page     int        `form:"page"`
	PageSize int        `form:"pageSize"`
}

// CreateAdvanceRequest represents a request to hand out an advance
type CreateAdvanceRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	MonthlyDeduction decimal.Decimal `json:"monthlyDeduction" binding:"decimal_gt0"`
	AdvanceDate      time.Time       `json:"advanceDate" binding:"required"`
	Reason           string          `json:"reason" binding:"required,max=500"`
	PaymentMethod    string          `json:"paymentMethod"`
}

// DeductAdvanceRequest represents a manual repayment of an advance
type DeductAdvanceRequest struct {
	AdvanceID     uuid.UUID       `json:"advanceId" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	DeductionDate time.Time       `json:"deductionDate" binding:"required"`
	Notes         string          `json:"notes" binding:"max=500"`
	PaymentMethod string          `json:"paymentMethod"`
}

// CancelAdvanceRequest represents a request to withdraw an advance
type CancelAdvanceRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// DeductionResponse is one deduction taken from an advance
type DeductionResponse struct {
	ID              uuid.UUID       `json:"id"`
	AdvanceID       uuid.UUID       `json:"advanceId"`
	Amount          decimal.Decimal `json:"amount"`
	DeductionDate   time.Time       `json:"deductionDate"`
	SalaryPaymentID *uuid.UUID      `json:"salaryPaymentId,omitempty"`
	TransactionID   *uuid.UUID      `json:"transactionId,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

func toDeductionResponses(ds []payroll.AdvanceDeduction) []DeductionResponse {
	out := make([]DeductionResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, DeductionResponse{
			ID:              d.ID,
			AdvanceID:       d.AdvanceID,
			Amount:          d.Amount,
			DeductionDate:   d.DeductionDate,
			SalaryPaymentID: d.SalaryPaymentID,
			TransactionID:   d.TransactionID,
			Notes:           d.Notes,
		})
	}
	return out
}

// AdvanceResponse represents an advance in API responses
type AdvanceResponse struct {
	ID               uuid.UUID           `json:"id"`
	BranchID         uuid.UUID           `json:"branchId"`
	EmployeeID       uuid.UUID           `json:"employeeId"`
	Amount           decimal.Decimal     `json:"amount"`
	RemainingAmount  decimal.Decimal     `json:"remainingAmount"`
	MonthlyDeduction decimal.Decimal     `json:"monthlyDeduction"`
	Status           ledger.Status       `json:"status"`
	AdvanceDate      time.Time           `json:"advanceDate"`
	Reason           string              `json:"reason"`
	TransactionID    *uuid.UUID          `json:"transactionId,omitempty"`
	CancelledAt      *time.Time          `json:"cancelledAt,omitempty"`
	Deductions       []DeductionResponse `json:"deductions"`
	Version          int                 `json:"version"`
}

// ToAdvanceResponse converts an advance to its response
func ToAdvanceResponse(a *payroll.EmployeeAdvance) AdvanceResponse {
	return AdvanceResponse{
		ID:               a.ID,
		BranchID:         a.BranchID,
		EmployeeID:       a.EmployeeID,
		Amount:           a.Amount(),
		RemainingAmount:  a.Remaining(),
		MonthlyDeduction: a.MonthlyDeduction,
		Status:           a.Status(),
		AdvanceDate:      a.AdvanceDate,
		Reason:           a.Reason,
		TransactionID:    a.TransactionID,
		CancelledAt:      a.CancelledAt,
		Deductions:       toDeductionResponses(a.Deductions),
		Version:          a.GetVersion(),
	}
}

// AdvanceListFilter represents filter options for advance lists
type AdvanceListFilter struct {
	BranchID   *uuid.UUID `form:"branchId,parser=encoding.TextUnmarshaler"`
	EmployeeID *uuid.UUID `form:"employeeId,parser=encoding.TextUnmarshaler"`
	Status     string     `form:"status" binding:"omitempty,oneof=ACTIVE PAID CANCELLED"`
	Page       int        `form:"page"`
	PageSize   int        `form:"pageSize"`
}

// PaySalaryRequest represents a salary payment. Amount is interpreted by the
// deduction policy the deployment runs with.
type PaySalaryRequest struct {
	EmployeeID    uuid.UUID       `json:"employeeId" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	PaymentDate   time.Time       `json:"paymentDate" binding:"required"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes" binding:"max=500"`
}

// PlanLineResponse is one planned deduction
type PlanLineResponse struct {
	AdvanceID         uuid.UUID       `json:"advanceId"`
	DeductionAmount   decimal.Decimal `json:"deductionAmount"`
	PreviousRemaining decimal.Decimal `json:"previousRemaining"`
	NewRemaining      decimal.Decimal `json:"newRemaining"`
	NewStatus         ledger.Status   `json:"newStatus"`
}

// PlanResponse is the preview of a salary payment
type PlanResponse struct {
	EmployeeID     uuid.UUID          `json:"employeeId"`
	Policy         string             `json:"policy"`
	GrossAmount    decimal.Decimal    `json:"grossAmount"`
	DeductedAmount decimal.Decimal    `json:"deductedAmount"`
	NetAmount      decimal.Decimal    `json:"netAmount"`
	Deductions     []PlanLineResponse `json:"deductions"`
}

func toPlanResponse(employeeID uuid.UUID, plan *payroll.DeductionPlan) PlanResponse {
	lines := make([]PlanLineResponse, 0, len(plan.Lines))
	for _, l := range plan.Lines {
		lines = append(lines, PlanLineResponse{
			AdvanceID:         l.AdvanceID,
			DeductionAmount:   l.Amount,
			PreviousRemaining: l.PreviousRemaining,
			NewRemaining:      l.NewRemaining,
			NewStatus:         l.NewStatus,
		})
	}
	return PlanResponse{
		EmployeeID:     employeeID,
		Policy:         string(plan.Policy),
		GrossAmount:    plan.GrossAmount,
		DeductedAmount: plan.Budget,
		NetAmount:      plan.NetAmount,
		Deductions:     lines,
	}
}

// SalaryPaymentResponse represents a salary payment in API responses
type SalaryPaymentResponse struct {
	ID             uuid.UUID           `json:"id"`
	BranchID       uuid.UUID           `json:"branchId"`
	EmployeeID     uuid.UUID           `json:"employeeId"`
	Policy         string              `json:"policy"`
	GrossAmount    decimal.Decimal     `json:"grossAmount"`
	DeductedAmount decimal.Decimal     `json:"deductedAmount"`
	NetAmount      decimal.Decimal     `json:"netAmount"`
	PaymentDate    time.Time           `json:"paymentDate"`
	Notes          string              `json:"notes,omitempty"`
	TransactionID  *uuid.UUID          `json:"transactionId,omitempty"`
	Deductions     []DeductionResponse `json:"deductions"`
	CreatedAt      time.Time           `json:"createdAt"`
}

// ToSalaryPaymentResponse converts a salary payment to its response
func ToSalaryPaymentResponse(s *payroll.SalaryPayment) SalaryPaymentResponse {
	return SalaryPaymentResponse{
		ID:             s.ID,
		BranchID:       s.BranchID,
		EmployeeID:     s.EmployeeID,
		Policy:         string(s.Policy),
		GrossAmount:    s.GrossAmount,
		DeductedAmount: s.DeductedAmount,
		NetAmount:      s.NetAmount,
		PaymentDate:    s.PaymentDate,
		Notes:          s.Notes,
		TransactionID:  s.TransactionID,
		Deductions:     toDeductionResponses(s.Deductions),
		CreatedAt:      s.CreatedAt,
	}
}

// SalaryPaymentListFilter represents filter options for salary payment lists
type SalaryPaymentListFilter struct {
	BranchID   *uuid.UUID `form:"branchId,parser=encoding.TextUnmarshaler"`
	EmployeeID *uuid.UUID `form:"employeeId,parser=encoding.TextUnmarshaler"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Page       int        `form:"page"`
	PageSize   int        `form:"pageSize"`
}

// GrantBonusRequest represents a bonus payment
type GrantBonusRequest struct {
	EmployeeID    uuid.UUID       `json:"employeeId" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	BonusDate     time.Time       `json:"bonusDate" binding:"required"`
	Reason        string          `json:"reason" binding:"required,max=500"`
	PaymentMethod string          `json:"paymentMethod"`
}

// BonusResponse represents a bonus in API responses
type BonusResponse struct {
	ID            uuid.UUID       `json:"id"`
	BranchID      uuid.UUID       `json:"branchId"`
	EmployeeID    uuid.UUID       `json:"employeeId"`
	Amount        decimal.Decimal `json:"amount"`
	BonusDate     time.Time       `json:"bonusDate"`
	Reason        string          `json:"reason"`
	TransactionID *uuid.UUID      `json:"transactionId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToBonusResponse converts a bonus to its response
func ToBonusResponse(b *payroll.EmployeeBonus) BonusResponse {
	return BonusResponse{
		ID:            b.ID,
		BranchID:      b.BranchID,
		EmployeeID:    b.EmployeeID,
		Amount:        b.Amount,
		BonusDate:     b.BonusDate,
		Reason:        b.Reason,
		TransactionID: b.TransactionID,
		CreatedAt:     b.CreatedAt,
	}
}

// BonusListFilter represents filter options for bonus lists
type BonusListFilter struct {
	BranchID   *uuid.UUID `form:"branchId,parser=encoding.TextUnmarshaler"`
	EmployeeID *uuid.UUID `form:"employeeId,parser=encoding.TextUnmarshaler"`
	Page       int        `form:"page"`
	PageSize   int        `form:"pageSize"`
}
