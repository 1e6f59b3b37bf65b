// Package inventory manages branch stock items and their counting units.
package inventory

import (
	"context"
	"strings"

	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/inventory"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemService handles stock items
type ItemService struct {
	rt uow.Runtime
}

// NewItemService creates a new ItemService
func NewItemService(rt uow.Runtime) *ItemService {
	return &ItemService{rt: rt}
}

// Create registers a stock item
func (s *ItemService) Create(ctx context.Context, rc shared.RequestContext, req CreateItemRequest) (*ItemResponse, error) {
	branchID, err := rc.ResolveBranch(req.BranchID)
	if err != nil {
		return nil, err
	}

	var created *inventory.InventoryItem
	events := &uow.EventCollector{}
	err = s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		if err := branch.RequireActive(ctx, repos.Branches(), branchID); err != nil {
			return err
		}
		item, err := inventory.NewInventoryItem(branchID, req.Name, req.BaseUnit, req.Quantity)
		if err != nil {
			return err
		}
		item.SetCreatedBy(rc.UserID)
		if err := repos.InventoryItems().Save(ctx, item); err != nil {
			return err
		}
		events.Collect(item)
		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.rt.Publish(ctx, rc, events)

	resp := ToItemResponse(created)
	return &resp, nil
}

// Get returns one item with its sub-units
func (s *ItemService) Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.rt.Repos.InventoryItems().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rc.Authorize(item.BranchID); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// List returns items of the caller's scope ordered by name
func (s *ItemService) List(ctx context.Context, rc shared.RequestContext, f ItemListFilter) ([]ItemResponse, int64, error) {
	base := shared.DefaultFilter()
	base.Page = f.Page
	base.PageSize = f.PageSize
	base.OrderBy = "name"
	base.OrderDir = "asc"
	base.Search = strings.TrimSpace(f.Search)

	items, total, err := s.rt.Repos.InventoryItems().List(ctx, rc, inventory.ItemFilter{
		Filter:   base.Normalize(),
		BranchID: f.BranchID,
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, ToItemResponse(&items[i]))
	}
	return out, total, nil
}

// AddSubUnit adds a counting unit to an item
func (s *ItemService) AddSubUnit(ctx context.Context, rc shared.RequestContext, id uuid.UUID, req AddSubUnitRequest) (*ItemResponse, error) {
	return s.mutate(ctx, rc, id, func(item *inventory.InventoryItem) error {
		_, err := item.AddSubUnit(req.Name, req.Factor)
		return err
	})
}

// RemoveSubUnit drops a counting unit from an item
func (s *ItemService) RemoveSubUnit(ctx context.Context, rc shared.RequestContext, id uuid.UUID, name string) (*ItemResponse, error) {
	return s.mutate(ctx, rc, id, func(item *inventory.InventoryItem) error {
		return item.RemoveSubUnit(name)
	})
}

// AdjustStock changes the stock level, converting from a sub-unit if given
func (s *ItemService) AdjustStock(ctx context.Context, rc shared.RequestContext, id uuid.UUID, req AdjustStockRequest) (*ItemResponse, error) {
	return s.mutate(ctx, rc, id, func(item *inventory.InventoryItem) error {
		delta, err := item.ToBaseUnits(req.Delta, req.Unit)
		if err != nil {
			return err
		}
		return item.Adjust(delta, s.rt.Now())
	})
}

// mutate locks the item, applies fn and saves it under the version check
func (s *ItemService) mutate(ctx context.Context, rc shared.RequestContext, id uuid.UUID, fn func(*inventory.InventoryItem) error) (*ItemResponse, error) {
	var updated *inventory.InventoryItem
	events := &uow.EventCollector{}
	err := s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		item, err := repos.InventoryItems().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := rc.Authorize(item.BranchID); err != nil {
			return err
		}
		if err := fn(item); err != nil {
			return err
		}
		if err := repos.InventoryItems().SaveWithLock(ctx, item); err != nil {
			return err
		}
		events.Collect(item)
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.rt.Publish(ctx, rc, events)

	resp := ToItemResponse(updated)
	return &resp, nil
}
