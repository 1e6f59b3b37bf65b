package models

import (
	"github.com/erp/backoffice/internal/domain/branch"
)

// BranchModel is the persistence model for a branch
type BranchModel struct {
	AggregateModel
	Name     string `gorm:"type:varchar(200);not null;uniqueIndex"`
	Address  string `gorm:"type:varchar(500)"`
	IsActive bool   `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (BranchModel) TableName() string {
	return "branches"
}

// ToDomain converts the persistence model to a domain Branch
func (m *BranchModel) ToDomain() *branch.Branch {
	return &branch.Branch{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Address:           m.Address,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Branch
func (m *BranchModel) FromDomain(b *branch.Branch) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.Name = b.Name
	m.Address = b.Address
	m.IsActive = b.IsActive
}

// BranchModelFromDomain creates a persistence model from a domain Branch
func BranchModelFromDomain(b *branch.Branch) *BranchModel {
	m := &BranchModel{}
	m.FromDomain(b)
	return m
}
