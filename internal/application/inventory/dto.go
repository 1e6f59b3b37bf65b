package inventory

import (
	"time"

	"github.com/erp/backoffice/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateItemRequest represents a request to register a stock item
type CreateItemRequest struct {
	BranchID *uuid.UUID      `json:"branchId"`
	Name     string          `json:"name" binding:"required,max=200"`
	BaseUnit string          `json:"baseUnit" binding:"required,max=30"`
	Quantity decimal.Decimal `json:"quantity"`
}

// AddSubUnitRequest represents a request to add a counting unit
type AddSubUnitRequest struct {
	Name   string          `json:"name" binding:"required,max=30"`
	Factor decimal.Decimal `json:"factor" binding:"decimal_gt0"`
}

// AdjustStockRequest moves stock up or down, counted in Unit
// (the base unit when empty).
type AdjustStockRequest struct {
	Delta decimal.Decimal `json:"delta" binding:"decimal_ne0"`
	Unit  string          `json:"unit"`
}

// SubUnitResponse is one counting unit of an item
type SubUnitResponse struct {
	Name   string          `json:"name"`
	Factor decimal.Decimal `json:"factor"`
}

// ItemResponse represents a stock item in API responses
type ItemResponse struct {
	ID        uuid.UUID         `json:"id"`
	BranchID  uuid.UUID         `json:"branchId"`
	Name      string            `json:"name"`
	BaseUnit  string            `json:"baseUnit"`
	Quantity  decimal.Decimal   `json:"quantity"`
	SubUnits  []SubUnitResponse `json:"subUnits"`
	Version   int               `json:"version"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ToItemResponse converts an item to its response
func ToItemResponse(item *inventory.InventoryItem) ItemResponse {
	units := make([]SubUnitResponse, 0, len(item.SubUnits))
	for _, su := range item.SubUnits {
		units = append(units, SubUnitResponse{Name: su.Name, Factor: su.Factor})
	}
	return ItemResponse{
		ID:        item.ID,
		BranchID:  item.BranchID,
		Name:      item.Name,
		BaseUnit:  item.BaseUnit,
		Quantity:  item.Quantity,
		SubUnits:  units,
		Version:   item.GetVersion(),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// ItemListFilter represents filter options for item lists
type ItemListFilter struct {
	BranchID *uuid.UUID `form:"branchId,parser=encoding.TextUnmarshaler"`
	Search   string     `form:"search"`
	Page     int        `form:"page"`
	PageSize int        `form:"pageSize"`
}
