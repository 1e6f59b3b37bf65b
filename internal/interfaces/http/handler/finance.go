package handler

import (
	"context"

	financeapp "github.com/erp/backoffice/internal/application/finance"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// openItemService is the part payables and receivables have in common
type openItemService interface {
	Create(ctx context.Context, rc shared.RequestContext, req financeapp.CreateOpenItemRequest) (*financeapp.OpenItemResponse, error)
	Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*financeapp.OpenItemResponse, error)
	List(ctx context.Context, rc shared.RequestContext, f financeapp.OpenItemListFilter) ([]financeapp.OpenItemResponse, int64, error)
	Delete(ctx context.Context, rc shared.RequestContext, id uuid.UUID) error
}

// PayableService manages vendor payables
type PayableService interface {
	openItemService
	Pay(ctx context.Context, rc shared.RequestContext, id uuid.UUID, req financeapp.SettleRequest) (*financeapp.OpenItemResponse, error)
}

// ReceivableService manages customer receivables
type ReceivableService interface {
	openItemService
	Collect(ctx context.Context, rc shared.RequestContext, id uuid.UUID, req financeapp.SettleRequest) (*financeapp.OpenItemResponse, error)
}

// openItemHandler holds the endpoints payables and receivables share
type openItemHandler struct {
	BaseHandler
	service openItemService
}

func (h *openItemHandler) create(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var req financeapp.CreateOpenItemRequest
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

func (h *openItemHandler) list(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var f financeapp.OpenItemListFilter
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

func (h *openItemHandler) get(c *gin.Context) {
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

func (h *openItemHandler) delete(c *gin.Context) {
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

type settleFunc func(ctx context.Context, rc shared.RequestContext, id uuid.UUID, req financeapp.SettleRequest) (*financeapp.OpenItemResponse, error)

func (h *openItemHandler) settle(c *gin.Context, fn settleFunc) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req financeapp.SettleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := fn(c.Request.Context(), rc, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// PayableHandler handles account payables
type PayableHandler struct {
	openItemHandler
	payables PayableService
}

// NewPayableHandler creates a new PayableHandler
func NewPayableHandler(service PayableService) *PayableHandler {
	return &PayableHandler{openItemHandler: openItemHandler{service: service}, payables: service}
}

// Create godoc
// @ID           createPayable
// @Summary      Record a payable
// @Tags         payables
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateOpenItemRequest true "Payable"
// @Success      201 {object} APIResponse[financeapp.OpenItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payables [post]
func (h *PayableHandler) Create(c *gin.Context) { h.create(c) }

// List godoc
// @ID           listPayables
// @Summary      List payables
// @Tags         payables
// @Produce      json
// @Param        branchId  query string false "Branch ID"
// @Param        contactId query string false "Vendor contact ID"
// @Param        status    query string false "ACTIVE, PARTIAL, PAID or CANCELLED"
// @Param        onlyOpen  query bool   false "Only items with a remaining balance"
// @Param        search    query string false "Description search"
// @Param        page      query int    false "Page number"
// @Param        pageSize  query int    false "Page size"
// @Success      200 {object} APIResponse[[]financeapp.OpenItemResponse]
// @Security     BearerAuth
// @Router       /payables [get]
func (h *PayableHandler) List(c *gin.Context) { h.list(c) }

// Get godoc
// @ID           getPayable
// @Summary      Get a payable with its payments
// @Tags         payables
// @Produce      json
// @Param        id path string true "Payable ID"
// @Success      200 {object} APIResponse[financeapp.OpenItemResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payables/{id} [get]
func (h *PayableHandler) Get(c *gin.Context) { h.get(c) }

// Delete godoc
// @ID           deletePayable
// @Summary      Delete a payable
// @Description  Soft-deletes the payable and the cash transactions of its payments
// @Tags         payables
// @Param        id path string true "Payable ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payables/{id} [delete]
func (h *PayableHandler) Delete(c *gin.Context) { h.delete(c) }

// Pay godoc
// @ID           payPayable
// @Summary      Pay a payable
// @Description  Records a payment against the payable and books it as an expense, in one transaction.
// @Description  Paying more than the remaining balance is rejected. Supports the Idempotency-Key header.
// @Tags         payables
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay protection key"
// @Param        id      path string true "Payable ID"
// @Param        request body financeapp.SettleRequest true "Payment"
// @Success      200 {object} APIResponse[financeapp.OpenItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payables/{id}/pay [post]
func (h *PayableHandler) Pay(c *gin.Context) { h.settle(c, h.payables.Pay) }

// ReceivableHandler handles account receivables
type ReceivableHandler struct {
	openItemHandler
	receivables ReceivableService
}

// NewReceivableHandler creates a new ReceivableHandler
func NewReceivableHandler(service ReceivableService) *ReceivableHandler {
	return &ReceivableHandler{openItemHandler: openItemHandler{service: service}, receivables: service}
}

// Create godoc
// @ID           createReceivable
// @Summary      Record a receivable
// @Tags         receivables
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateOpenItemRequest true "Receivable"
// @Success      201 {object} APIResponse[financeapp.OpenItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /receivables [post]
func (h *ReceivableHandler) Create(c *gin.Context) { h.create(c) }

// List godoc
// @ID           listReceivables
// @Summary      List receivables
// @Tags         receivables
// @Produce      json
// @Param        branchId  query string false "Branch ID"
// @Param        contactId query string false "Customer contact ID"
// @Param        status    query string false "ACTIVE, PARTIAL, PAID or CANCELLED"
// @Param        onlyOpen  query bool   false "Only items with a remaining balance"
// @Param        search    query string false "Description search"
// @Param        page      query int    false "Page number"
// @Param        pageSize  query int    false "Page size"
// @Success      200 {object} APIResponse[[]financeapp.OpenItemResponse]
// @Security     BearerAuth
// @Router       /receivables [get]
func (h *ReceivableHandler) List(c *gin.Context) { h.list(c) }

// Get godoc
// @ID           getReceivable
// @Summary      Get a receivable with its collections
// @Tags         receivables
// @Produce      json
// @Param        id path string true "Receivable ID"
// @Success      200 {object} APIResponse[financeapp.OpenItemResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /receivables/{id} [get]
func (h *ReceivableHandler) Get(c *gin.Context) { h.get(c) }

// Delete godoc
// @ID           deleteReceivable
// @Summary      Delete a receivable
// @Tags         receivables
// @Param        id path string true "Receivable ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /receivables/{id} [delete]
func (h *ReceivableHandler) Delete(c *gin.Context) { h.delete(c) }

// Collect godoc
// @ID           collectReceivable
// @Summary      Collect a receivable
// @Description  Records a collection against the receivable and books it as income, in one transaction.
// @Description  Supports the Idempotency-Key header.
// @Tags         receivables
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay protection key"
// @Param        id      path string true "Receivable ID"
// @Param        request body financeapp.SettleRequest true "Collection"
// @Success      200 {object} APIResponse[financeapp.OpenItemResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /receivables/{id}/collect [post]
func (h *ReceivableHandler) Collect(c *gin.Context) { h.settle(c, h.receivables.Collect) }
