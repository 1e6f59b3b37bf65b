package models

import (
	"time"

	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionModel is the persistence model for a ledger transaction
type TransactionModel struct {
	BranchAggregateModel
	SoftDeleteModel
	Type          accounting.TransactionType `gorm:"type:varchar(10);not null;index"`
	Category      string                     `gorm:"type:varchar(100);not null;index"`
	Amount        decimal.Decimal            `gorm:"type:numeric(18,2);not null"`
	Date          time.Time                  `gorm:"type:date;not null;index"`
	PaymentMethod accounting.PaymentMethod   `gorm:"type:varchar(20);not null"`
	Description   string                     `gorm:"type:text"`
	SourceType    accounting.SourceType      `gorm:"type:varchar(30);not null;default:'MANUAL';index:idx_transaction_source,priority:1"`
	SourceID      *uuid.UUID                 `gorm:"type:uuid;index:idx_transaction_source,priority:2"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToDomain converts the persistence model to a domain Transaction
func (m *TransactionModel) ToDomain() *accounting.Transaction {
	return &accounting.Transaction{
		BranchAggregateRoot: m.ToDomainBranchAggregateRoot(),
		SoftDeletable:       m.SoftDeleteModel.ToDomain(),
		Type:                m.Type,
		Category:            m.Category,
		Amount:              m.Amount,
		Date:                m.Date,
		PaymentMethod:       m.PaymentMethod,
		Description:         m.Description,
		SourceType:          m.SourceType,
		SourceID:            m.SourceID,
	}
}

// FromDomain populates the persistence model from a domain Transaction
func (m *TransactionModel) FromDomain(t *accounting.Transaction) {
	m.FromDomainBranchAggregateRoot(t.BranchAggregateRoot)
	m.DeletedAt = t.DeletedAt
	m.Type = t.Type
	m.Category = t.Category
	m.Amount = t.Amount
	m.Date = t.Date
	m.PaymentMethod = t.PaymentMethod
	m.Description = t.Description
	m.SourceType = t.SourceType
	m.SourceID = t.SourceID
}

// TransactionModelFromDomain creates a persistence model from a domain Transaction
func TransactionModelFromDomain(t *accounting.Transaction) *TransactionModel {
	m := &TransactionModel{}
	m.FromDomain(t)
	return m
}
