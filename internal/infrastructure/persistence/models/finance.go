package models

import (
	"time"

	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpenItemColumns are the columns payables and receivables share
type OpenItemColumns struct {
	ContactID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description     string          `gorm:"type:varchar(500);not null"`
	Date            time.Time       `gorm:"type:date;not null;index"`
	DueDate         *time.Time      `gorm:"type:date;index"`
	Amount          decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	RemainingAmount decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Status          ledger.Status   `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

func (c *OpenItemColumns) fromDomain(o finance.OpenItem) {
	c.ContactID = o.ContactID
	c.Description = o.Description
	c.Date = o.Date
	c.DueDate = o.DueDate
	c.Amount = o.Balance.Original
	c.RemainingAmount = o.Balance.Remaining
	c.Status = o.Balance.Status
}

func (c *OpenItemColumns) toDomain(payments []finance.Payment) (finance.OpenItem, error) {
	balance, err := ledger.RestoreBalance(c.Amount, c.RemainingAmount, c.Status)
	if err != nil {
		return finance.OpenItem{}, err
	}
	return finance.OpenItem{
		ContactID:   c.ContactID,
		Description: c.Description,
		Date:        c.Date,
		DueDate:     c.DueDate,
		Balance:     balance,
		Payments:    payments,
	}, nil
}

// PaymentColumns are the columns of a settlement row
type PaymentColumns struct {
	ID            uuid.UUID                `gorm:"type:uuid;primary_key"`
	BalanceID     uuid.UUID                `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal          `gorm:"type:numeric(18,2);not null"`
	PaymentDate   time.Time                `gorm:"type:date;not null"`
	PaymentMethod accounting.PaymentMethod `gorm:"type:varchar(20);not null"`
	Notes         string                   `gorm:"type:varchar(500)"`
	TransactionID *uuid.UUID               `gorm:"type:uuid"`
	CreatedBy     *uuid.UUID               `gorm:"type:uuid"`
	CreatedAt     time.Time                `gorm:"not null"`
	DeletedAt     *time.Time               `gorm:"index"`
}

func paymentColumnsFromDomain(p finance.Payment) PaymentColumns {
	return PaymentColumns{
		ID:            p.ID,
		BalanceID:     p.BalanceID,
		Amount:        p.Amount,
		PaymentDate:   p.PaymentDate,
		PaymentMethod: p.PaymentMethod,
		Notes:         p.Notes,
		TransactionID: p.TransactionID,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
		DeletedAt:     p.DeletedAt,
	}
}

// ToDomain converts the columns to a domain Payment
func (c *PaymentColumns) ToDomain() finance.Payment {
	return finance.Payment{
		ID:            c.ID,
		BalanceID:     c.BalanceID,
		Amount:        c.Amount,
		PaymentDate:   c.PaymentDate,
		PaymentMethod: c.PaymentMethod,
		Notes:         c.Notes,
		TransactionID: c.TransactionID,
		CreatedBy:     c.CreatedBy,
		CreatedAt:     c.CreatedAt,
		DeletedAt:     c.DeletedAt,
	}
}

// AccountPayableModel is the persistence model for an account payable
type AccountPayableModel struct {
	BranchAggregateModel
	SoftDeleteModel
	OpenItemColumns
	Payments []PayablePaymentModel `gorm:"foreignKey:BalanceID;references:ID"`
}

// TableName returns the table name for GORM
func (AccountPayableModel) TableName() string {
	return "account_payables"
}

// ToDomain converts the persistence model to a domain AccountPayable
func (m *AccountPayableModel) ToDomain() (*finance.AccountPayable, error) {
	payments := make([]finance.Payment, len(m.Payments))
	for i := range m.Payments {
		payments[i] = m.Payments[i].ToDomain()
	}
	item, err := m.OpenItemColumns.toDomain(payments)
	if err != nil {
		return nil, err
	}
	return &finance.AccountPayable{
		BranchAggregateRoot: m.ToDomainBranchAggregateRoot(),
		SoftDeletable:       m.SoftDeleteModel.ToDomain(),
		OpenItem:            item,
	}, nil
}

// AccountPayableModelFromDomain creates a persistence model from a domain AccountPayable
func AccountPayableModelFromDomain(ap *finance.AccountPayable) *AccountPayableModel {
	m := &AccountPayableModel{Payments: make([]PayablePaymentModel, len(ap.Payments))}
	m.FromDomainBranchAggregateRoot(ap.BranchAggregateRoot)
	m.DeletedAt = ap.DeletedAt
	m.OpenItemColumns.fromDomain(ap.OpenItem)
	for i, p := range ap.Payments {
		m.Payments[i] = PayablePaymentModel{PaymentColumns: paymentColumnsFromDomain(p)}
	}
	return m
}

// PayablePaymentModel is a payment made against a payable
type PayablePaymentModel struct {
	PaymentColumns
}

// TableName returns the table name for GORM
func (PayablePaymentModel) TableName() string {
	return "payable_payments"
}

// AccountReceivableModel is the persistence model for an account receivable
type AccountReceivableModel struct {
	BranchAggregateModel
	SoftDeleteModel
	OpenItemColumns
	Payments []ReceivablePaymentModel `gorm:"foreignKey:BalanceID;references:ID"`
}

// TableName returns the table name for GORM
func (AccountReceivableModel) TableName() string {
	return "account_receivables"
}

// ToDomain converts the persistence model to a domain AccountReceivable
func (m *AccountReceivableModel) ToDomain() (*finance.AccountReceivable, error) {
	payments := make([]finance.Payment, len(m.Payments))
	for i := range m.Payments {
		payments[i] = m.Payments[i].ToDomain()
	}
	item, err := m.OpenItemColumns.toDomain(payments)
	if err != nil {
		return nil, err
	}
	return &finance.AccountReceivable{
		BranchAggregateRoot: m.ToDomainBranchAggregateRoot(),
		SoftDeletable:       m.SoftDeleteModel.ToDomain(),
		OpenItem:            item,
	}, nil
}

// AccountReceivableModelFromDomain creates a persistence model from a domain AccountReceivable
func AccountReceivableModelFromDomain(ar *finance.AccountReceivable) *AccountReceivableModel {
	m := &AccountReceivableModel{Payments: make([]ReceivablePaymentModel, len(ar.Payments))}
	m.FromDomainBranchAggregateRoot(ar.BranchAggregateRoot)
	m.DeletedAt = ar.DeletedAt
	m.OpenItemColumns.fromDomain(ar.OpenItem)
	for i, p := range ar.Payments {
		m.Payments[i] = ReceivablePaymentModel{PaymentColumns: paymentColumnsFromDomain(p)}
	}
	return m
}

// ReceivablePaymentModel is a collection received against a receivable
type ReceivablePaymentModel struct {
	PaymentColumns
}

// TableName returns the table name for GORM
func (ReceivablePaymentModel) TableName() string {
	return "receivable_payments"
}

// ContactModel is the persistence model for a vendor or customer
type ContactModel struct {
	BranchAggregateModel
	Name  string              `gorm:"type:varchar(200);not null;index"`
	Kind  finance.ContactKind `gorm:"type:varchar(20);not null;index"`
	Phone string              `gorm:"type:varchar(50)"`
	Notes string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact
func (m *ContactModel) ToDomain() *finance.Contact {
	return &finance.Contact{
		BranchAggregateRoot: m.ToDomainBranchAggregateRoot(),
		Name:                m.Name,
		Kind:                m.Kind,
		Phone:               m.Phone,
		Notes:               m.Notes,
	}
}

// ContactModelFromDomain creates a persistence model from a domain Contact
func ContactModelFromDomain(c *finance.Contact) *ContactModel {
	m := &ContactModel{Name: c.Name, Kind: c.Kind, Phone: c.Phone, Notes: c.Notes}
	m.FromDomainBranchAggregateRoot(c.BranchAggregateRoot)
	return m
}
