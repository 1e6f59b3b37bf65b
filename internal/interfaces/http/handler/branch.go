package handler

import (
	"context"

	branchapp "github.com/erp/backoffice/internal/application/branch"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BranchService administers branches
type BranchService interface {
	Create(ctx context.Context, rc shared.RequestContext, req branchapp.CreateBranchRequest) (*branchapp.BranchResponse, error)
	List(ctx context.Context, rc shared.RequestContext, page, pageSize int) ([]branchapp.BranchResponse, int64, error)
	Disable(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*branchapp.BranchResponse, error)
}

// BranchHandler handles branches
type BranchHandler struct {
	BaseHandler
	service BranchService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(service BranchService) *BranchHandler {
	return &BranchHandler{service: service}
}

type branchListQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

// Create godoc
// @ID           createBranch
// @Summary      Open a branch
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        request body branchapp.CreateBranchRequest true "Branch"
// @Success      201 {object} APIResponse[branchapp.BranchResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /branches [post]
func (h *BranchHandler) Create(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var req branchapp.CreateBranchRequest
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

// List godoc
// @ID           listBranches
// @Summary      List branches
// @Description  Non-admin users only see their own branch
// @Tags         branches
// @Produce      json
// @Param        page     query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Success      200 {object} APIResponse[[]branchapp.BranchResponse]
// @Security     BearerAuth
// @Router       /branches [get]
func (h *BranchHandler) List(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var q branchListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	items, total, err := h.service.List(c.Request.Context(), rc, q.Page, q.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, q.Page, q.PageSize)
}

// Disable godoc
// @ID           disableBranch
// @Summary      Disable a branch
// @Tags         branches
// @Produce      json
// @Param        id path string true "Branch ID"
// @Success      200 {object} APIResponse[branchapp.BranchResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /branches/{id}/disable [post]
func (h *BranchHandler) Disable(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.Disable(c.Request.Context(), rc, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
