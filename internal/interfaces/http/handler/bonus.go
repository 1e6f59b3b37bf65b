package handler

import (
	"context"

	payrollapp "github.com/erp/backoffice/internal/application/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BonusService grants one-off bonuses
type BonusService interface {
	Grant(ctx context.Context, rc shared.RequestContext, req payrollapp.GrantBonusRequest) (*payrollapp.BonusResponse, error)
	List(ctx context.Context, rc shared.RequestContext, f payrollapp.BonusListFilter) ([]payrollapp.BonusResponse, int64, error)
	Delete(ctx context.Context, rc shared.RequestContext, id uuid.UUID) error
}

// BonusHandler handles employee bonuses
type BonusHandler struct {
	BaseHandler
	service BonusService
}

// NewBonusHandler creates a new BonusHandler
func NewBonusHandler(service BonusService) *BonusHandler {
	return &BonusHandler{service: service}
}

// Grant godoc
// @ID           grantBonus
// @Summary      Grant a bonus
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay protection key"
// @Param        request body payrollapp.GrantBonusRequest true "Bonus"
// @Success      201 {object} APIResponse[payrollapp.BonusResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payroll/bonuses [post]
func (h *BonusHandler) Grant(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var req payrollapp.GrantBonusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.service.Grant(c.Request.Context(), rc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @ID           listBonuses
// @Summary      List bonuses
// @Tags         payroll
// @Produce      json
// @Param        branchId   query string false "Branch ID"
// @Param        employeeId query string false "Employee ID"
// @Param        page       query int    false "Page number"
// @Param        pageSize   query int    false "Page size"
// @Success      200 {object} APIResponse[[]payrollapp.BonusResponse]
// @Security     BearerAuth
// @Router       /payroll/bonuses [get]
func (h *BonusHandler) List(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var f payrollapp.BonusListFilter
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

// Delete godoc
// @ID           deleteBonus
// @Summary      Delete a bonus
// @Description  Soft-deletes the bonus together with its cash transaction
// @Tags         payroll
// @Param        id path string true "Bonus ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payroll/bonuses/{id} [delete]
func (h *BonusHandler) Delete(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), rc, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
