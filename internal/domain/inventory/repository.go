package inventory

import (
	"context"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemFilter narrows item listings
type ItemFilter struct {
	shared.Filter
	BranchID *uuid.UUID
}

// InventoryItemRepository defines the interface for inventory item persistence.
// Sub-units are stored and loaded with their item.
type InventoryItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*InventoryItem, error)
	List(ctx context.Context, rc shared.RequestContext, filter ItemFilter) ([]InventoryItem, int64, error)
	Save(ctx context.Context, item *InventoryItem) error
	// SaveWithLock replaces the item's sub-units if its version is unchanged
	SaveWithLock(ctx context.Context, item *InventoryItem) error
}
