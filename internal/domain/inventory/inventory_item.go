// Package inventory tracks branch stock items and the alternative units they
// can be counted in.
package inventory

import (
	"strings"
	"time"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SubUnit is an alternative counting unit, Factor base units each
// (a "crate" of 24 bottles has Factor 24).
type SubUnit struct {
	Name   string          `json:"name"`
	Factor decimal.Decimal `json:"factor"`
}

// InventoryItem is a stock item held by a branch.
// Quantity is always expressed in BaseUnit.
type InventoryItem struct {
	shared.BranchAggregateRoot
	shared.SoftDeletable
	Name     string
	BaseUnit string
	Quantity decimal.Decimal
	SubUnits []SubUnit
}

// NewInventoryItem creates a stock item with an opening quantity
func NewInventoryItem(branchID uuid.UUID, name, baseUnit string, quantity decimal.Decimal) (*InventoryItem, error) {
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("branch is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("item name is required")
	}
	baseUnit = strings.TrimSpace(baseUnit)
	if baseUnit == "" {
		return nil, shared.NewValidationError("base unit is required")
	}
	if quantity.IsNegative() {
		return nil, shared.NewValidationError("quantity cannot be negative")
	}

	item := &InventoryItem{
		BranchAggregateRoot: shared.NewBranchAggregateRoot(branchID),
		Name:                name,
		BaseUnit:            baseUnit,
		Quantity:            quantity,
		SubUnits:            make([]SubUnit, 0),
	}
	item.AddDomainEvent(NewInventoryItemCreatedEvent(item))
	return item, nil
}

// findSubUnit returns the index of the sub-unit named name, ignoring case
func (i *InventoryItem) findSubUnit(name string) int {
	for idx, su := range i.SubUnits {
		if strings.EqualFold(su.Name, name) {
			return idx
		}
	}
	return -1
}

// SubUnit looks up a sub-unit by name, ignoring case
func (i *InventoryItem) SubUnit(name string) (SubUnit, bool) {
	idx := i.findSubUnit(strings.TrimSpace(name))
	if idx < 0 {
		return SubUnit{}, false
	}
	return i.SubUnits[idx], true
}

// AddSubUnit registers a new counting unit. Names are unique per item
// regardless of case and may not shadow the base unit.
func (i *InventoryItem) AddSubUnit(name string, factor decimal.Decimal) (*SubUnit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("sub-unit name is required")
	}
	if !factor.IsPositive() {
		return nil, shared.NewValidationError("sub-unit factor must be greater than zero")
	}
	if strings.EqualFold(name, i.BaseUnit) || i.findSubUnit(name) >= 0 {
		return nil, shared.NewConflictError("sub-unit " + name + " already exists for " + i.Name)
	}

	i.SubUnits = append(i.SubUnits, SubUnit{Name: name, Factor: factor})
	i.Touch()
	i.IncrementVersion()
	i.AddDomainEvent(NewSubUnitAddedEvent(i, name, factor))
	return &i.SubUnits[len(i.SubUnits)-1], nil
}

// RemoveSubUnit drops a counting unit
func (i *InventoryItem) RemoveSubUnit(name string) error {
	idx := i.findSubUnit(strings.TrimSpace(name))
	if idx < 0 {
		return shared.NewNotFoundError("Sub-unit")
	}
	removed := i.SubUnits[idx]
	i.SubUnits = append(i.SubUnits[:idx], i.SubUnits[idx+1:]...)
	i.Touch()
	i.IncrementVersion()
	i.AddDomainEvent(NewSubUnitRemovedEvent(i, removed.Name))
	return nil
}

// ToBaseUnits converts quantity counted in unit into base units
func (i *InventoryItem) ToBaseUnits(quantity decimal.Decimal, unit string) (decimal.Decimal, error) {
	unit = strings.TrimSpace(unit)
	if unit == "" || strings.EqualFold(unit, i.BaseUnit) {
		return quantity, nil
	}
	su, ok := i.SubUnit(unit)
	if !ok {
		return decimal.Zero, shared.NewValidationError("unknown unit " + unit + " for " + i.Name)
	}
	return quantity.Mul(su.Factor), nil
}

// Adjust changes the stock level by delta base units. Stock never goes negative.
func (i *InventoryItem) Adjust(delta decimal.Decimal, at time.Time) error {
	next := i.Quantity.Add(delta)
	if next.IsNegative() {
		return shared.NewValidationError("insufficient stock for " + i.Name)
	}
	i.Quantity = next
	i.UpdatedAt = at
	i.IncrementVersion()
	return nil
}
