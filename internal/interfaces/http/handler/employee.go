package handler

import (
	"context"

	payrollapp "github.com/erp/backoffice/internal/application/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EmployeeService manages employees
type EmployeeService interface {
	Create(ctx context.Context, rc shared.RequestContext, req payrollapp.CreateEmployeeRequest) (*payrollapp.EmployeeResponse, error)
	Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*payrollapp.EmployeeResponse, error)
	List(ctx context.Context, rc shared.RequestContext, f payrollapp.EmployeeListFilter) ([]payrollapp.EmployeeResponse, int64, error)
	UpdateSalary(ctx context.Context, rc shared.RequestContext, id uuid.UUID, req payrollapp.UpdateSalaryRequest) (*payrollapp.EmployeeResponse, error)
	Resign(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*payrollapp.EmployeeResponse, error)
}

// AdvanceService hands out and settles employee advances
type AdvanceService interface {
	Create(ctx context.Context, rc shared.RequestContext, employeeID uuid.UUID, req payrollapp.CreateAdvanceRequest) (*payrollapp.AdvanceResponse, error)
	Deduct(ctx context.Context, rc shared.RequestContext, req payrollapp.DeductAdvanceRequest) (*payrollapp.AdvanceResponse, error)
	Cancel(ctx context.Context, rc shared.RequestContext, advanceID uuid.UUID, req payrollapp.CancelAdvanceRequest) (*payrollapp.AdvanceResponse, error)
	Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*payrollapp.AdvanceResponse, error)
	List(ctx context.Context, rc shared.RequestContext, f payrollapp.AdvanceListFilter) ([]payrollapp.AdvanceResponse, int64, error)
	ListByEmployee(ctx context.Context, rc shared.RequestContext, employeeID uuid.UUID, f payrollapp.AdvanceListFilter) ([]payrollapp.AdvanceResponse, int64, error)
}

// EmployeeHandler handles employees and their advances
type EmployeeHandler struct {
	BaseHandler
	employees EmployeeService
	advances  AdvanceService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employees EmployeeService, advances AdvanceService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, advances: advances}
}

// Create godoc
// @ID           createEmployee
// @Summary      Hire an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        request body payrollapp.CreateEmployeeRequest true "Employee"
// @Success      201 {object} APIResponse[payrollapp.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var req payrollapp.CreateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.employees.Create(c.Request.Context(), rc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List godoc
// @ID           listEmployees
// @Summary      List employees
// @Tags         employees
// @Produce      json
// @Param        branchId query string false "Branch ID"
// @Param        status   query string false "ACTIVE or RESIGNED"
// @Param        search   query string false "Name search"
// @Param        page     query int    false "Page number"
// @Param        pageSize query int    false "Page size"
// @Success      200 {object} APIResponse[[]payrollapp.EmployeeResponse]
// @Security     BearerAuth
// @Router       /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var f payrollapp.EmployeeListFilter
	if !h.bindQuery(c, &f) {
		return
	}

	items, total, err := h.employees.List(c.Request.Context(), rc, f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// Get godoc
// @ID           getEmployee
// @Summary      Get an employee
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID"
// @Success      200 {object} APIResponse[payrollapp.EmployeeResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.employees.Get(c.Request.Context(), rc, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateSalary godoc
// @ID           updateEmployeeSalary
// @Summary      Change an employee's monthly salary
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id      path string true "Employee ID"
// @Param        request body payrollapp.UpdateSalaryRequest true "New salary"
// @Success      200 {object} APIResponse[payrollapp.EmployeeResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id}/salary [put]
func (h *EmployeeHandler) UpdateSalary(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req payrollapp.UpdateSalaryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.employees.UpdateSalary(c.Request.Context(), rc, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Resign godoc
// @ID           resignEmployee
// @Summary      Mark an employee as resigned
// @Tags         employees
// @Produce      json
// @Param        id path string true "Employee ID"
// @Success      200 {object} APIResponse[payrollapp.EmployeeResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id}/resign [post]
func (h *EmployeeHandler) Resign(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.employees.Resign(c.Request.Context(), rc, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CreateAdvance godoc
// @ID           createAdvance
// @Summary      Hand out an advance
// @Description  Records an advance against the employee and books its cash expense. Supports the Idempotency-Key header.
// @Tags         advances
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay protection key"
// @Param        id      path string true "Employee ID"
// @Param        request body payrollapp.CreateAdvanceRequest true "Advance"
// @Success      201 {object} APIResponse[payrollapp.AdvanceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id}/advances [post]
func (h *EmployeeHandler) CreateAdvance(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	employeeID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req payrollapp.CreateAdvanceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.advances.Create(c.Request.Context(), rc, employeeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListEmployeeAdvances godoc
// @ID           listEmployeeAdvances
// @Summary      List an employee's advances
// @Tags         advances
// @Produce      json
// @Param        id       path  string true  "Employee ID"
// @Param        status   query string false "ACTIVE, PAID or CANCELLED"
// @Param        page     query int    false "Page number"
// @Param        pageSize query int    false "Page size"
// @Success      200 {object} APIResponse[[]payrollapp.AdvanceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/{id}/advances [get]
func (h *EmployeeHandler) ListEmployeeAdvances(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	employeeID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var f payrollapp.AdvanceListFilter
	if !h.bindQuery(c, &f) {
		return
	}

	items, total, err := h.advances.ListByEmployee(c.Request.Context(), rc, employeeID, f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// ListAdvances godoc
// @ID           listAdvances
// @Summary      List advances
// @Tags         advances
// @Produce      json
// @Param        branchId   query string false "Branch ID"
// @Param        employeeId query string false "Employee ID"
// @Param        status     query string false "ACTIVE, PAID or CANCELLED"
// @Param        page       query int    false "Page number"
// @Param        pageSize   query int    false "Page size"
// @Success      200 {object} APIResponse[[]payrollapp.AdvanceResponse]
// @Security     BearerAuth
// @Router       /employees/advances [get]
func (h *EmployeeHandler) ListAdvances(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var f payrollapp.AdvanceListFilter
	if !h.bindQuery(c, &f) {
		return
	}

	items, total, err := h.advances.List(c.Request.Context(), rc, f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, f.Page, f.PageSize)
}

// GetAdvance godoc
// @ID           getAdvance
// @Summary      Get an advance with its deductions
// @Tags         advances
// @Produce      json
// @Param        id path string true "Advance ID"
// @Success      200 {object} APIResponse[payrollapp.AdvanceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/advances/{id} [get]
func (h *EmployeeHandler) GetAdvance(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.advances.Get(c.Request.Context(), rc, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeductAdvance godoc
// @ID           deductAdvance
// @Summary      Record a manual advance repayment
// @Description  Reduces the advance's remaining balance and books the repayment as income. Supports the Idempotency-Key header.
// @Tags         advances
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay protection key"
// @Param        request body payrollapp.DeductAdvanceRequest true "Deduction"
// @Success      200 {object} APIResponse[payrollapp.AdvanceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/advances/deduct [post]
func (h *EmployeeHandler) DeductAdvance(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	var req payrollapp.DeductAdvanceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.advances.Deduct(c.Request.Context(), rc, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CancelAdvance godoc
// @ID           cancelAdvance
// @Summary      Cancel an advance
// @Description  Only advances without deductions can be cancelled; the cash expense is removed with it
// @Tags         advances
// @Accept       json
// @Produce      json
// @Param        id      path string true "Advance ID"
// @Param        request body payrollapp.CancelAdvanceRequest false "Reason"
// @Success      200 {object} APIResponse[payrollapp.AdvanceResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /employees/advances/{id}/cancel [post]
func (h *EmployeeHandler) CancelAdvance(c *gin.Context) {
	rc, ok := h.rc(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req payrollapp.CancelAdvanceRequest
	if c.Request.ContentLength > 0 && !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.advances.Cancel(c.Request.Context(), rc, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
