package handler

import (
	"context"

	accountingapp "github.com/erp/backoffice/internal/application/accounting"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionService reads and writes the branch ledger
type TransactionService interface {
	Create(ctx context.Context, rc shared.RequestContext, req accountingapp.CreateTransactionRequest) (*accountingapp.TransactionResponse, error)
	Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*accountingapp.TransactionResponse, error)
	List(ctx context.Context, rc shared.RequestContext, f accountingapp.TransactionListFilter) ([]accountingapp.TransactionResponse, int64, error)
	Delete(ctx context.Context, rc shared.RequestContext, id uuid.UUID) error
	Summary(ctx context.Context, rc shared.RequestContext, req accountingapp.SummaryRequest) (*accountingapp.SummaryResponse, error)
}

// TransactionHandler handles the income and expense ledger
type TransactionHandler struct {
	BaseHandler
	service TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(service TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// Create godoc
// @ID           createTransaction
// @Summary      Record a manual transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay protection key"
// @Param        request body accountingapp.CreateTransactionRequest true "Transaction"
// @Success      201 {object} APIResponse[accountingapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var req accountingapp.CreateTransactionRequest
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
// @ID           listTransactions
// @Summary      List transactions
// @Tags         transactions
// @Produce      json
// @Param        branchId   query string false "Branch ID"
// @Param        type       query string false "INCOME or EXPENSE"
// @Param        category   query string false "Category"
// @Param        sourceType query string false "Originating document type"
// @Param        from       query string false "From date (YYYY-MM-DD)"
// @Param        to         query string false "To date (YYYY-MM-DD)"
// @Param        search     query string false "Description search"
// @Param        page       query int    false "Page number"
// @Param        pageSize   query int    false "Page size"
// @Success      200 {object} APIResponse[[]accountingapp.TransactionResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var f accountingapp.TransactionListFilter
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

// Summary godoc
// @ID           summarizeTransactions
// @Summary      Income and expense totals of a period
// @Tags         transactions
// @Produce      json
// @Param        branchId query string false "Branch ID"
// @Param        from     query string true  "From date (YYYY-MM-DD)"
// @Param        to       query string true  "To date (YYYY-MM-DD)"
// @Success      200 {object} APIResponse[accountingapp.SummaryResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/summary [get]
func (h *TransactionHandler) Summary(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var req accountingapp.SummaryRequest
	if !h.bindQuery(c, &req) {
		return
	}

	resp, err := h.service.Summary(c.Request.Context(), rc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get godoc
// @ID           getTransaction
// @Summary      Get a transaction
// @Tags         transactions
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Success      200 {object} APIResponse[accountingapp.TransactionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/{id} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
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

// Delete godoc
// @ID           deleteTransaction
// @Summary      Delete a manual transaction
// @Description  Transactions created by payments, salaries or bonuses are removed through their source document
// @Tags         transactions
// @Param        id path string true "Transaction ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
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
