package handler

import (
	"context"

	inventoryapp "github.com/erp/backoffice/internal/application/inventory"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ItemService manages stock items and their counting units
type ItemService interface {
	Create(ctx context.Context, rc shared.RequestContext, req inventoryapp.CreateItemRequest) (*inventoryapp.ItemResponse, error)
	Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*inventoryapp.ItemResponse, error)
	List(ctx context.Context, rc shared.RequestContext, f inventoryapp.ItemListFilter) ([]inventoryapp.ItemResponse, int64, error)
	AddSubUnit(ctx context.Context, rc shared.RequestContext, id uuid.UUID, req inventoryapp.AddSubUnitRequest) (*inventoryapp.ItemResponse, error)
	RemoveSubUnit(ctx context.Context, rc shared.RequestContext, id uuid.UUID, name string) (*inventoryapp.ItemResponse, error)
	AdjustStock(ctx context.Context, rc shared.RequestContext, id uuid.UUID, req inventoryapp.AdjustStockRequest) (*inventoryapp.ItemResponse, error)
}

// InventoryHandler handles stock items
type InventoryHandler struct {
	BaseHandler
	service ItemService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service ItemService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// CreateItem godoc
// @ID           createInventoryItem
// @Summary      Register a stock item
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request body inventoryapp.CreateItemRequest true "Item"
// @Success      201 {object} APIResponse[inventoryapp.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/items [post]
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var req inventoryapp.CreateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Create(c.Request.Context(), rc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListItems godoc
// @ID           listInventoryItems
// @Summary      List stock items
// @Tags         inventory
// @Produce      json
// @Param        branchId query string false "Branch ID"
// @Param        search   query string false "Name search"
// @Param        page     query int    false "Page number"
// @Param        pageSize query int    false "Page size"
// @Success      200 {object} APIResponse[[]inventoryapp.ItemResponse]
// @Security     BearerAuth
// @Router       /inventory/items [get]
func (h *InventoryHandler) ListItems(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var f inventoryapp.ItemListFilter
	if !h.bindQuery(c, &f) {
		return
	}

	items, total, err := h.service.List(c.Request.Context(), rc, f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// GetItem godoc
// @ID           getInventoryItem
// @Summary      Get a stock item
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} APIResponse[inventoryapp.ItemResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/items/{id} [get]
func (h *InventoryHandler) GetItem(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), rc, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AddSubUnit godoc
// @ID           addInventorySubUnit
// @Summary      Add a counting unit
// @Description  A sub-unit holds Factor base units, e.g. a box of 12
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id      path string true "Item ID"
// @Param        request body inventoryapp.AddSubUnitRequest true "Sub-unit"
// @Success      200 {object} APIResponse[inventoryapp.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/items/{id}/sub-units [post]
func (h *InventoryHandler) AddSubUnit(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.AddSubUnitRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.AddSubUnit(c.Request.Context(), rc, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveSubUnit godoc
// @ID           removeInventorySubUnit
// @Summary      Remove a counting unit
// @Tags         inventory
// @Produce      json
// @Param        id   path string true "Item ID"
// @Param        name path string true "Sub-unit name"
// @Success      200 {object} APIResponse[inventoryapp.ItemResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/items/{id}/sub-units/{name} [delete]
func (h *InventoryHandler) RemoveSubUnit(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.RemoveSubUnit(c.Request.Context(), rc, id, c.Param("name"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// AdjustStock godoc
// @ID           adjustInventoryStock
// @Summary      Adjust stock
// @Description  Adds a signed quantity counted in the given unit. Stock cannot go below zero.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id      path string true "Item ID"
// @Param        request body inventoryapp.AdjustStockRequest true "Adjustment"
// @Success      200 {object} APIResponse[inventoryapp.ItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/items/{id}/adjust [post]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.AdjustStockRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.AdjustStock(c.Request.Context(), rc, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
