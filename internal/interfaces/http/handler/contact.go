package handler

import (
	"context"

	financeapp "github.com/erp/backoffice/internal/application/finance"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContactService manages vendors and customers
type ContactService interface {
	Create(ctx context.Context, rc shared.RequestContext, req financeapp.CreateContactRequest) (*financeapp.ContactResponse, error)
	Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*financeapp.ContactResponse, error)
	List(ctx context.Context, rc shared.RequestContext, f financeapp.ContactListFilter) ([]financeapp.ContactResponse, int64, error)
}

// ContactHandler handles contacts
type ContactHandler struct {
	BaseHandler
	service ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(service ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Create godoc
// @ID           createContact
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        request body financeapp.CreateContactRequest true "Contact"
// @Success      201 {object} APIResponse[financeapp.ContactResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var req financeapp.CreateContactRequest
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
// @ID           listContacts
// @Summary      List contacts
// @Description  Filtering by VENDOR or CUSTOMER also returns contacts of kind BOTH
// @Tags         contacts
// @Produce      json
// @Param        branchId query string false "Branch ID"
// @Param        kind     query string false "VENDOR, CUSTOMER or BOTH"
// @Param        search   query string false "Name search"
// @Param        page     query int    false "Page number"
// @Param        pageSize query int    false "Page size"
// @Success      200 {object} APIResponse[[]financeapp.ContactResponse]
// @Security     BearerAuth
// @Router       /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var f financeapp.ContactListFilter
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

// Get godoc
// @ID           getContact
// @Summary      Get a contact
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Contact ID"
// @Success      200 {object} APIResponse[financeapp.ContactResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /contacts/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
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
