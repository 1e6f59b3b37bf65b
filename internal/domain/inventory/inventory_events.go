package inventory

import (
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInventoryItem = "InventoryItem"

// Event type constants
const (
	EventTypeInventoryItemCreated = "InventoryItemCreated"
	EventTypeSubUnitAdded         = "SubUnitAdded"
	EventTypeSubUnitRemoved       = "SubUnitRemoved"
)

// InventoryItemCreatedEvent is raised when an item is registered
type InventoryItemCreatedEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	Name            string          `json:"name"`
	BaseUnit        string          `json:"base_unit"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// NewInventoryItemCreatedEvent creates a new InventoryItemCreatedEvent
func NewInventoryItemCreatedEvent(item *InventoryItem) *InventoryItemCreatedEvent {
	return &InventoryItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryItemCreated, AggregateTypeInventoryItem, item.ID, item.BranchID),
		InventoryItemID: item.ID,
		Name:            item.Name,
		BaseUnit:        item.BaseUnit,
		Quantity:        item.Quantity,
	}
}

// SubUnitAddedEvent is raised when a counting unit is added to an item
type SubUnitAddedEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	SubUnit         string          `json:"sub_unit"`
	Factor          decimal.Decimal `json:"factor"`
}

// NewSubUnitAddedEvent creates a new SubUnitAddedEvent
func NewSubUnitAddedEvent(item *InventoryItem, name string, factor decimal.Decimal) *SubUnitAddedEvent {
	return &SubUnitAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubUnitAdded, AggregateTypeInventoryItem, item.ID, item.BranchID),
		InventoryItemID: item.ID,
		SubUnit:         name,
		Factor:          factor,
	}
}

// SubUnitRemovedEvent is raised when a counting unit is dropped
type SubUnitRemovedEvent struct {
	shared.BaseDomainEvent
	InventoryItemID uuid.UUID `json:"inventory_item_id"`
	SubUnit         string    `json:"sub_unit"`
}

// NewSubUnitRemovedEvent creates a new SubUnitRemovedEvent
func NewSubUnitRemovedEvent(item *InventoryItem, name string) *SubUnitRemovedEvent {
	return &SubUnitRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSubUnitRemoved, AggregateTypeInventoryItem, item.ID, item.BranchID),
		InventoryItemID: item.ID,
		SubUnit:         name,
	}
}
