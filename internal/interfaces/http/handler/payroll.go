package handler

import (
	"context"

	"github.com/erp/backoffice/internal/application/document"
	payrollapp "github.com/erp/backoffice/internal/application/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SalaryService is the payroll orchestrator as seen by the HTTP layer
type SalaryService interface {
	PaySalary(ctx context.Context, rc shared.RequestContext, req payrollapp.PaySalaryRequest) (*payrollapp.SalaryPaymentResponse, error)
	Preview(ctx context.Context, rc shared.RequestContext, req payrollapp.PaySalaryRequest) (*payrollapp.PlanResponse, error)
	Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*payrollapp.SalaryPaymentResponse, error)
	List(ctx context.Context, rc shared.RequestContext, f payrollapp.SalaryPaymentListFilter) ([]payrollapp.SalaryPaymentResponse, int64, error)
	Delete(ctx context.Context, rc shared.RequestContext, id uuid.UUID) error
}

// PayslipGenerator renders and stores payslip PDFs
type PayslipGenerator interface {
	GeneratePayslip(ctx context.Context, rc shared.RequestContext, salaryPaymentID uuid.UUID) (*document.PayslipResponse, error)
}

// PayrollHandler handles salary payments
type PayrollHandler struct {
	BaseHandler
	salaries SalaryService
	payslips PayslipGenerator
}

// NewPayrollHandler creates a new PayrollHandler
func NewPayrollHandler(salaries SalaryService, payslips PayslipGenerator) *PayrollHandler {
	return &PayrollHandler{salaries: salaries, payslips: payslips}
}

// PaySalary godoc
// @ID           paySalary
// @Summary      Pay a salary
// @Description  Pays an employee, deducting outstanding advances according to the deployment's deduction policy.
// @Description  Everything is written in one database transaction. Supports the Idempotency-Key header.
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay protection key"
// @Param        request body payrollapp.PaySalaryRequest true "Salary payment"
// @Success      201 {object} APIResponse[payrollapp.SalaryPaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payroll/pay-salary [post]
func (h *PayrollHandler) PaySalary(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var req payrollapp.PaySalaryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.salaries.PaySalary(c.Request.Context(), rc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Preview godoc
// @ID           previewSalary
// @Summary      Preview a salary payment
// @Description  Computes the deduction plan of a salary payment without writing anything
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Param        request body payrollapp.PaySalaryRequest true "Salary payment"
// @Success      200 {object} APIResponse[payrollapp.PlanResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payroll/preview [post]
func (h *PayrollHandler) Preview(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var req payrollapp.PaySalaryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	plan, err := h.salaries.Preview(c.Request.Context(), rc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plan)
}

// ListSalaryPayments godoc
// @ID           listSalaryPayments
// @Summary      List salary payments
// @Tags         payroll
// @Produce      json
// @Param        branchId   query string false "Branch ID"
// @Param        employeeId query string false "Employee ID"
// @Param        from       query string false "From date (YYYY-MM-DD)"
// @Param        to         query string false "To date (YYYY-MM-DD)"
// @Param        page       query int    false "Page number"
// @Param        pageSize   query int    false "Page size"
// @Success      200 {object} APIResponse[[]payrollapp.SalaryPaymentResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payroll/salary-payments [get]
func (h *PayrollHandler) ListSalaryPayments(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var f payrollapp.SalaryPaymentListFilter
	if !h.bindQuery(c, &f) {
		return
	}

	items, total, err := h.salaries.List(c.Request.Context(), rc, f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// GetSalaryPayment godoc
// @ID           getSalaryPayment
// @Summary      Get a salary payment
// @Tags         payroll
// @Produce      json
// @Param        id path string true "Salary payment ID"
// @Success      200 {object} APIResponse[payrollapp.SalaryPaymentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payroll/salary-payments/{id} [get]
func (h *PayrollHandler) GetSalaryPayment(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.salaries.Get(c.Request.Context(), rc, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteSalaryPayment godoc
// @ID           deleteSalaryPayment
// @Summary      Delete a salary payment
// @Description  Soft-deletes the payment and its cash transaction. Advances already deducted are not restored.
// @Tags         payroll
// @Param        id path string true "Salary payment ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payroll/salary-payments/{id} [delete]
func (h *PayrollHandler) DeleteSalaryPayment(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.salaries.Delete(c.Request.Context(), rc, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GeneratePayslip godoc
// @ID           generatePayslip
// @Summary      Generate a payslip
// @Description  Renders the payslip PDF of a salary payment, stores it and returns a time-limited download link
// @Tags         payroll
// @Produce      json
// @Param        id path string true "Salary payment ID"
// @Success      200 {object} APIResponse[document.PayslipResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payroll/salary-payments/{id}/payslip [post]
func (h *PayrollHandler) GeneratePayslip(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.payslips.GeneratePayslip(c.Request.Context(), rc, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
