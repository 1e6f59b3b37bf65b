package models

import (
	"time"

	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EmployeeModel is the persistence model for an employee
type EmployeeModel struct {
	BranchAggregateModel
	SoftDeleteModel
	Name          string                 `gorm:"type:varchar(200);not null;index"`
	Position      string                 `gorm:"type:varchar(100)"`
	Phone         string                 `gorm:"type:varchar(50)"`
	MonthlySalary decimal.Decimal        `gorm:"type:numeric(18,2);not null"`
	HireDate      time.Time              `gorm:"type:date;not null"`
	Status        payroll.EmployeeStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	ResignedAt    *time.Time             `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee
func (m *EmployeeModel) ToDomain() *payroll.Employee {
	return &payroll.Employee{
		BranchAggregateRoot: m.ToDomainBranchAggregateRoot(),
		SoftDeletable:       m.SoftDeleteModel.ToDomain(),
		Name:                m.Name,
		Position:            m.Position,
		Phone:               m.Phone,
		MonthlySalary:       m.MonthlySalary,
		HireDate:            m.HireDate,
		Status:              m.Status,
		ResignedAt:          m.ResignedAt,
	}
}

// EmployeeModelFromDomain creates a persistence model from a domain Employee
func EmployeeModelFromDomain(e *payroll.Employee) *EmployeeModel {
	m := &EmployeeModel{
		Name:          e.Name,
		Position:      e.Position,
		Phone:         e.Phone,
		MonthlySalary: e.MonthlySalary,
		HireDate:      e.HireDate,
		Status:        e.Status,
		ResignedAt:    e.ResignedAt,
	}
	m.FromDomainBranchAggregateRoot(e.BranchAggregateRoot)
	m.DeletedAt = e.DeletedAt
	return m
}

// EmployeeAdvanceModel is the persistence model for an employee advance.
// Status holds the advance status, which never reads PARTIAL.
type EmployeeAdvanceModel struct {
	BranchAggregateModel
	EmployeeID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_advance_employee_status,priority:1"`
	Amount           decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	RemainingAmount  decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Status           ledger.Status   `gorm:"type:varchar(20);not null;index:idx_advance_employee_status,priority:2"`
	MonthlyDeduction decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	AdvanceDate      time.Time       `gorm:"type:date;not null;index"`
	Reason           string          `gorm:"type:text"`
	TransactionID    *uuid.UUID      `gorm:"type:uuid"`
	CancelledAt      *time.Time
	CancelReason     string                  `gorm:"type:varchar(500)"`
	Deductions       []AdvanceDeductionModel `gorm:"foreignKey:AdvanceID;references:ID"`
}

// TableName returns the table name for GORM
func (EmployeeAdvanceModel) TableName() string {
	return "employee_advances"
}

// ToDomain converts the persistence model to a domain EmployeeAdvance
func (m *EmployeeAdvanceModel) ToDomain() (*payroll.EmployeeAdvance, error) {
	balance, err := payroll.RestoreAdvanceBalance(m.Amount, m.RemainingAmount, m.Status)
	if err != nil {
		return nil, err
	}
	deductions := make([]payroll.AdvanceDeduction, len(m.Deductions))
	for i := range m.Deductions {
		deductions[i] = m.Deductions[i].ToDomain()
	}
	return &payroll.EmployeeAdvance{
		BranchAggregateRoot: m.ToDomainBranchAggregateRoot(),
		EmployeeID:          m.EmployeeID,
		Balance:             balance,
		MonthlyDeduction:    m.MonthlyDeduction,
		AdvanceDate:         m.AdvanceDate,
		Reason:              m.Reason,
		TransactionID:       m.TransactionID,
		Deductions:          deductions,
		CancelledAt:         m.CancelledAt,
		CancelReason:        m.CancelReason,
	}, nil
}

// EmployeeAdvanceModelFromDomain creates a persistence model from a domain
// EmployeeAdvance, deductions included.
func EmployeeAdvanceModelFromDomain(a *payroll.EmployeeAdvance) *EmployeeAdvanceModel {
	m := &EmployeeAdvanceModel{
		EmployeeID:       a.EmployeeID,
		Amount:           a.Balance.Original,
		RemainingAmount:  a.Balance.Remaining,
		Status:           payroll.AdvanceStatus(a.Balance),
		MonthlyDeduction: a.MonthlyDeduction,
		AdvanceDate:      a.AdvanceDate,
		Reason:           a.Reason,
		TransactionID:    a.TransactionID,
		CancelledAt:      a.CancelledAt,
		CancelReason:     a.CancelReason,
		Deductions:       make([]AdvanceDeductionModel, len(a.Deductions)),
	}
	m.FromDomainBranchAggregateRoot(a.BranchAggregateRoot)
	for i, d := range a.Deductions {
		m.Deductions[i] = AdvanceDeductionModelFromDomain(d)
	}
	return m
}

// AdvanceDeductionModel is one recovery row against an advance
type AdvanceDeductionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	AdvanceID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	DeductionDate   time.Time       `gorm:"type:date;not null"`
	SalaryPaymentID *uuid.UUID      `gorm:"type:uuid;index"`
	TransactionID   *uuid.UUID      `gorm:"type:uuid"`
	Notes           string          `gorm:"type:varchar(500)"`
	CreatedBy       *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AdvanceDeductionModel) TableName() string {
	return "advance_deductions"
}

// ToDomain converts the persistence model to a domain AdvanceDeduction
func (m *AdvanceDeductionModel) ToDomain() payroll.AdvanceDeduction {
	return payroll.AdvanceDeduction{
		ID:              m.ID,
		AdvanceID:       m.AdvanceID,
		EmployeeID:      m.EmployeeID,
		Amount:          m.Amount,
		DeductionDate:   m.DeductionDate,
		SalaryPaymentID: m.SalaryPaymentID,
		TransactionID:   m.TransactionID,
		Notes:           m.Notes,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
	}
}

// AdvanceDeductionModelFromDomain creates a persistence model from a domain AdvanceDeduction
func AdvanceDeductionModelFromDomain(d payroll.AdvanceDeduction) AdvanceDeductionModel {
	return AdvanceDeductionModel{
		ID:              d.ID,
		AdvanceID:       d.AdvanceID,
		EmployeeID:      d.EmployeeID,
		Amount:          d.Amount,
		DeductionDate:   d.DeductionDate,
		SalaryPaymentID: d.SalaryPaymentID,
		TransactionID:   d.TransactionID,
		Notes:           d.Notes,
		CreatedBy:       d.CreatedBy,
		CreatedAt:       d.CreatedAt,
	}
}

// SalaryPaymentModel is the persistence model for a salary payment.
// Its deductions live in advance_deductions and are linked by salary_payment_id.
type SalaryPaymentModel struct {
	BranchAggregateModel
	SoftDeleteModel
	EmployeeID     uuid.UUID               `gorm:"type:uuid;not null;index"`
	GrossAmount    decimal.Decimal         `gorm:"type:numeric(18,2);not null"`
	DeductedAmount decimal.Decimal         `gorm:"type:numeric(18,2);not null"`
	NetAmount      decimal.Decimal         `gorm:"type:numeric(18,2);not null"`
	PaymentDate    time.Time               `gorm:"type:date;not null;index"`
	Notes          string                  `gorm:"type:text"`
	Policy         payroll.PolicyName      `gorm:"type:varchar(30);not null"`
	TransactionID  *uuid.UUID              `gorm:"type:uuid"`
	Deductions     []AdvanceDeductionModel `gorm:"foreignKey:SalaryPaymentID;references:ID"`
}

// TableName returns the table name for GORM
func (SalaryPaymentModel) TableName() string {
	return "salary_payments"
}

// ToDomain converts the persistence model to a domain SalaryPayment
func (m *SalaryPaymentModel) ToDomain() *payroll.SalaryPayment {
	deductions := make([]payroll.AdvanceDeduction, len(m.Deductions))
	for i := range m.Deductions {
		deductions[i] = m.Deductions[i].ToDomain()
	}
	return &payroll.SalaryPayment{
		BranchAggregateRoot: m.ToDomainBranchAggregateRoot(),
		SoftDeletable:       m.SoftDeleteModel.ToDomain(),
		EmployeeID:          m.EmployeeID,
		GrossAmount:         m.GrossAmount,
		DeductedAmount:      m.DeductedAmount,
		NetAmount:           m.NetAmount,
		PaymentDate:         m.PaymentDate,
		Notes:               m.Notes,
		Policy:              m.Policy,
		TransactionID:       m.TransactionID,
		Deductions:          deductions,
	}
}

// SalaryPaymentModelFromDomain creates a persistence model from a domain
// SalaryPayment. Deductions are persisted through their advances.
func SalaryPaymentModelFromDomain(s *payroll.SalaryPayment) *SalaryPaymentModel {
	m := &SalaryPaymentModel{
		EmployeeID:     s.EmployeeID,
		GrossAmount:    s.GrossAmount,
		DeductedAmount: s.DeductedAmount,
		NetAmount:      s.NetAmount,
		PaymentDate:    s.PaymentDate,
		Notes:          s.Notes,
		Policy:         s.Policy,
		TransactionID:  s.TransactionID,
	}
	m.FromDomainBranchAggregateRoot(s.BranchAggregateRoot)
	m.DeletedAt = s.DeletedAt
	return m
}

// EmployeeBonusModel is the persistence model for a bonus
type EmployeeBonusModel struct {
	BranchAggregateModel
	SoftDeleteModel
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	BonusDate     time.Time       `gorm:"type:date;not null;index"`
	Reason        string          `gorm:"type:text"`
	TransactionID *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (EmployeeBonusModel) TableName() string {
	return "employee_bonuses"
}

// ToDomain converts the persistence model to a domain EmployeeBonus
func (m *EmployeeBonusModel) ToDomain() *payroll.EmployeeBonus {
	return &payroll.EmployeeBonus{
		BranchAggregateRoot: m.ToDomainBranchAggregateRoot(),
		SoftDeletable:       m.SoftDeleteModel.ToDomain(),
		EmployeeID:          m.EmployeeID,
		Amount:              m.Amount,
		BonusDate:           m.BonusDate,
		Reason:              m.Reason,
		TransactionID:       m.TransactionID,
	}
}

// EmployeeBonusModelFromDomain creates a persistence model from a domain EmployeeBonus
func EmployeeBonusModelFromDomain(b *payroll.EmployeeBonus) *EmployeeBonusModel {
	m := &EmployeeBonusModel{
		EmployeeID:    b.EmployeeID,
		Amount:        b.Amount,
		BonusDate:     b.BonusDate,
		Reason:        b.Reason,
		TransactionID: b.TransactionID,
	}
	m.FromDomainBranchAggregateRoot(b.BranchAggregateRoot)
	m.DeletedAt = b.DeletedAt
	return m
}
