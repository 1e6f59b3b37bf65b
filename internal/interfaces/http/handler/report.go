package handler

import (
	"context"
	"fmt"
	"net/http"

	reportapp "github.com/erp/backoffice/internal/application/report"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// ExportService renders ledger exports
type ExportService interface {
	ExportPayables(ctx context.Context, rc shared.RequestContext, f reportapp.ExportFilter) (*reportapp.Workbook, error)
	ExportReceivables(ctx context.Context, rc shared.RequestContext, f reportapp.ExportFilter) (*reportapp.Workbook, error)
	ExportSalaryPayments(ctx context.Context, rc shared.RequestContext, f reportapp.ExportFilter) (*reportapp.Workbook, error)
}

// ReportHandler serves spreadsheet downloads
type ReportHandler struct {
	BaseHandler
	service ExportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service ExportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type exportFunc func(ctx context.Context, rc shared.RequestContext, f reportapp.ExportFilter) (*reportapp.Workbook, error)

func (h *ReportHandler) export(c *gin.Context, fn exportFunc) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var f reportapp.ExportFilter
	if !h.bindQuery(c, &f) {
		return
	}

	wb, err := fn(c.Request.Context(), rc, f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", wb.Filename))
	c.Data(http.StatusOK, reportapp.ContentTypeXLSX, wb.Data)
}

// ExportPayables godoc
// @ID           exportPayables
// @Summary      Download payables as XLSX
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        branchId query string false "Branch ID"
// @Param        onlyOpen query bool   false "Only items with a remaining balance"
// @Success      200 {file} file
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/payables.xlsx [get]
func (h *ReportHandler) ExportPayables(c *gin.Context) {
	h.export(c, h.service.ExportPayables)
}

// ExportReceivables godoc
// @ID           exportReceivables
// @Summary      Download receivables as XLSX
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        branchId query string false "Branch ID"
// @Param        onlyOpen query bool   false "Only items with a remaining balance"
// @Success      200 {file} file
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/receivables.xlsx [get]
func (h *ReportHandler) ExportReceivables(c *gin.Context) {
	h.export(c, h.service.ExportReceivables)
}

// ExportSalaryPayments godoc
// @ID           exportSalaryPayments
// @Summary      Download salary payments as XLSX
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        branchId query string false "Branch ID"
// @Success      200 {file} file
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /reports/salary-payments.xlsx [get]
func (h *ReportHandler) ExportSalaryPayments(c *gin.Context) {
	h.export(c, h.service.ExportSalaryPayments)
}
