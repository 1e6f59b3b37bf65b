package handler

import (
	"context"

	auditapp "github.com/erp/backoffice/internal/application/audit"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// AuditLogService lists audit entries
type AuditLogService interface {
	List(ctx context.Context, rc shared.RequestContext, f auditapp.AuditLogListFilter) ([]auditapp.AuditLogResponse, int64, error)
}

// AuditHandler exposes the audit trail
type AuditHandler struct {
	BaseHandler
	service AuditLogService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(service AuditLogService) *AuditHandler {
	return &AuditHandler{service: service}
}

// List godoc
// @ID           listAuditLogs
// @Summary      List audit entries
// @Description  Newest first. Not available to cashiers.
// @Tags         audit
// @Produce      json
// @Param        branchId   query string false "Branch ID"
// @Param        entityType query string false "Entity type"
// @Param        entityId   query string false "Entity ID"
// @Param        action     query string false "Action"
// @Param        from       query string false "From date (YYYY-MM-DD)"
// @Param        to         query string false "To date (YYYY-MM-DD)"
// @Param        page       query int    false "Page number"
// @Param        pageSize   query int    false "Page size"
// @Success      200 {object} APIResponse[[]auditapp.AuditLogResponse]
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var f auditapp.AuditLogListFilter
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
