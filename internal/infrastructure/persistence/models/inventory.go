package models

import (
	"github.com/erp/backoffice/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItemModel is the persistence model for a stock item
type InventoryItemModel struct {
	BranchAggregateModel
	SoftDeleteModel
	Name     string          `gorm:"type:varchar(200);not null;index"`
	BaseUnit string          `gorm:"type:varchar(50);not null"`
	Quantity decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	SubUnits []SubUnitModel  `gorm:"foreignKey:ItemID;references:ID"`
}

// TableName returns the table name for GORM
func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

// ToDomain converts the persistence model to a domain InventoryItem
func (m *InventoryItemModel) ToDomain() *inventory.InventoryItem {
	subUnits := make([]inventory.SubUnit, len(m.SubUnits))
	for i, su := range m.SubUnits {
		subUnits[i] = inventory.SubUnit{Name: su.Name, Factor: su.Factor}
	}
	return &inventory.InventoryItem{
		BranchAggregateRoot: m.ToDomainBranchAggregateRoot(),
		SoftDeletable:       m.SoftDeleteModel.ToDomain(),
		Name:                m.Name,
		BaseUnit:            m.BaseUnit,
		Quantity:            m.Quantity,
		SubUnits:            subUnits,
	}
}

// InventoryItemModelFromDomain creates a persistence model from a domain InventoryItem
func InventoryItemModelFromDomain(item *inventory.InventoryItem) *InventoryItemModel {
	m := &InventoryItemModel{
		Name:     item.Name,
		BaseUnit: item.BaseUnit,
		Quantity: item.Quantity,
		SubUnits: make([]SubUnitModel, len(item.SubUnits)),
	}
	m.FromDomainBranchAggregateRoot(item.BranchAggregateRoot)
	m.DeletedAt = item.DeletedAt
	for i, su := range item.SubUnits {
		m.SubUnits[i] = SubUnitModel{ItemID: item.ID, Position: i, Name: su.Name, Factor: su.Factor}
	}
	return m
}

// SubUnitModel is an alternative counting unit of an item.
// Position keeps the order the units were added in.
type SubUnitModel struct {
	ItemID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name     string          `gorm:"type:varchar(50);primaryKey"`
	Position int             `gorm:"not null"`
	Factor   decimal.Decimal `gorm:"type:numeric(18,4);not null"`
}

// TableName returns the table name for GORM
func (SubUnitModel) TableName() string {
	return "inventory_sub_units"
}
