package handler

import (
	"context"
	"net/http"
	"testing"

	payrollapp "github.com/erp/backoffice/internal/application/payroll"
	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) Create(ctx context.Context, rc shared.RequestContext, req payrollapp.CreateEmployeeRequest) (*payrollapp.EmployeeResponse, error) {
	args := m.Called(ctx, rc, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payrollapp.EmployeeResponse), args.Error(1)
}

func (m *MockEmployeeService) Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*payrollapp.EmployeeResponse, error) {
	args := m.Called(ctx, rc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payrollapp.EmployeeResponse), args.Error(1)
}

func (m *MockEmployeeService) List(ctx context.Context, rc shared.RequestContext, f payrollapp.EmployeeListFilter) ([]payrollapp.EmployeeResponse, int64, error) {
	args := m.Called(ctx, rc, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]payrollapp.EmployeeResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockEmployeeService) UpdateSalary(ctx context.Context, rc shared.RequestContext, id uuid.UUID, req payrollapp.UpdateSalaryRequest) (*payrollapp.EmployeeResponse, error) {
	args := m.Called(ctx, rc, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payrollapp.EmployeeResponse), args.Error(1)
}

func (m *MockEmployeeService) Resign(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*payrollapp.EmployeeResponse, error) {
	args := m.Called(ctx, rc, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payrollapp.EmployeeResponse), args.Error(1)
}

type MockAdvanceService struct {
	mock.Mock
}

func (m *MockAdvanceService) advance(args mock.Arguments) (*payrollapp.AdvanceResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payrollapp.AdvanceResponse), args.Error(1)
}

func (m *MockAdvanceService) Create(ctx context.Context, rc shared.RequestContext, employeeID uuid.UUID, req payrollapp.CreateAdvanceRequest) (*payrollapp.AdvanceResponse, error) {
	return m.advance(m.Called(ctx, rc, employeeID, req))
}

func (m *MockAdvanceService) Deduct(ctx context.Context, rc shared.RequestContext, req payrollapp.DeductAdvanceRequest) (*payrollapp.AdvanceResponse, error) {
	return m.advance(m.Called(ctx, rc, req))
}

func (m *MockAdvanceService) Cancel(ctx context.Context, rc shared.RequestContext, id uuid.UUID, req payrollapp.CancelAdvanceRequest) (*payrollapp.AdvanceResponse, error) {
	return m.advance(m.Called(ctx, rc, id, req))
}

func (m *MockAdvanceService) Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*payrollapp.AdvanceResponse, error) {
	return m.advance(m.Called(ctx, rc, id))
}

func (m *MockAdvanceService) List(ctx context.Context, rc shared.RequestContext, f payrollapp.AdvanceListFilter) ([]payrollapp.AdvanceResponse, int64, error) {
	args := m.Called(ctx, rc, f)
	return args.Get(0).([]payrollapp.AdvanceResponse), args.Get(1).(int64), args.Error(2)
}

func (m *MockAdvanceService) ListByEmployee(ctx context.Context, rc shared.RequestContext, employeeID uuid.UUID, f payrollapp.AdvanceListFilter) ([]payrollapp.AdvanceResponse, int64, error) {
	args := m.Called(ctx, rc, employeeID, f)
	return args.Get(0).([]payrollapp.AdvanceResponse), args.Get(1).(int64), args.Error(2)
}

func newEmployeeRouter(rc shared.RequestContext, employees *MockEmployeeService, advances *MockAdvanceService) *gin.Engine {
	h := NewEmployeeHandler(employees, advances)
	r := newTestRouter(&rc)
	r.POST("/employees/:id/resign", h.Resign)
	r.POST("/employees/:id/advances", h.CreateAdvance)
	r.GET("/employees/:id/advances", h.ListEmployeeAdvances)
	r.GET("/employees/advances/:id", h.GetAdvance)
	r.POST("/employees/advances/:id/cancel", h.CancelAdvance)
	return r
}

func TestEmployeeHandler_CreateAdvance(t *testing.T) {
	rc := managerContext()
	employeeID := uuid.New()
	advances := new(MockAdvanceService)
	r := newEmployeeRouter(rc, new(MockEmployeeService), advances)

	created := &payrollapp.AdvanceResponse{
		ID:              uuid.New(),
		EmployeeID:      employeeID,
		Amount:          decimal.NewFromInt(1000),
		RemainingAmount: decimal.NewFromInt(1000),
		Status:          ledger.StatusActive,
	}
	advances.On("Create", mock.Anything, rc, employeeID, mock.MatchedBy(func(req payrollapp.CreateAdvanceRequest) bool {
		return req.Amount.Equal(decimal.NewFromInt(1000)) && req.MonthlyDeduction.Equal(decimal.NewFromInt(250))
	})).Return(created, nil)

	rec := doRequest(r, http.MethodPost, "/employees/"+employeeID.String()+"/advances", map[string]any{
		"amount":           "1000",
		"monthlyDeduction": "250",
		"advanceDate":      "2026-09-01T00:00:00Z",
		"reason":           "rent",
	})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var got payrollapp.AdvanceResponse
	decodeData(t, rec, &got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, ledger.StatusActive, got.Status)
	advances.AssertExpectations(t)
}

func TestEmployeeHandler_CancelAdvanceWithoutBody(t *testing.T) {
	rc := managerContext()
	id := uuid.New()
	advances := new(MockAdvanceService)
	r := newEmployeeRouter(rc, new(MockEmployeeService), advances)
	advances.On("Cancel", mock.Anything, rc, id, payrollapp.CancelAdvanceRequest{}).
		Return(&payrollapp.AdvanceResponse{ID: id, Status: ledger.StatusCancelled}, nil)

	rec := doRequest(r, http.MethodPost, "/employees/advances/"+id.String()+"/cancel", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	advances.AssertExpectations(t)
}

func TestEmployeeHandler_CancelAdvanceWithDeductions(t *testing.T) {
	rc := managerContext()
	id := uuid.New()
	advances := new(MockAdvanceService)
	r := newEmployeeRouter(rc, new(MockEmployeeService), advances)
	advances.On("Cancel", mock.Anything, rc, id, payrollapp.CancelAdvanceRequest{Reason: "duplicate"}).
		Return(nil, shared.NewConflictError("advance already has deductions"))

	rec := doRequest(r, http.MethodPost, "/employees/advances/"+id.String()+"/cancel", map[string]any{"reason": "duplicate"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, shared.CodeConflict, resp.Error.Code)
}

func TestEmployeeHandler_AdvanceRoutesDoNotCollide(t *testing.T) {
	rc := managerContext()
	employeeID := uuid.New()
	advanceID := uuid.New()
	advances := new(MockAdvanceService)
	r := newEmployeeRouter(rc, new(MockEmployeeService), advances)
	advances.On("ListByEmployee", mock.Anything, rc, employeeID, mock.Anything).
		Return([]payrollapp.AdvanceResponse{}, int64(0), nil)
	advances.On("Get", mock.Anything, rc, advanceID).
		Return(&payrollapp.AdvanceResponse{ID: advanceID}, nil)

	rec := doRequest(r, http.MethodGet, "/employees/"+employeeID.String()+"/advances", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(r, http.MethodGet, "/employees/advances/"+advanceID.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	advances.AssertExpectations(t)
}

func TestEmployeeHandler_Resign(t *testing.T) {
	rc := managerContext()
	id := uuid.New()
	employees := new(MockEmployeeService)
	r := newEmployeeRouter(rc, employees, new(MockAdvanceService))
	employees.On("Resign", mock.Anything, rc, id).
		Return(nil, shared.NewInvalidStateError("employee already resigned"))

	rec := doRequest(r, http.MethodPost, "/employees/"+id.String()+"/resign", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
