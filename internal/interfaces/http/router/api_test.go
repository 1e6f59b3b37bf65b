package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	branchapp "github.com/erp/backoffice/internal/application/branch"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/auth"
	"github.com/erp/backoffice/internal/infrastructure/cache"
	"github.com/erp/backoffice/internal/infrastructure/config"
	"github.com/erp/backoffice/internal/interfaces/http/handler"
	"github.com/erp/backoffice/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingBranches struct {
	created atomic.Int32
}

func (b *countingBranches) Create(_ context.Context, _ shared.RequestContext, req branchapp.CreateBranchRequest) (*branchapp.BranchResponse, error) {
	b.created.Add(1)
	return &branchapp.BranchResponse{ID: uuid.New(), Name: req.Name, IsActive: true}, nil
}

func (b *countingBranches) List(_ context.Context, rc shared.RequestContext, _, _ int) ([]branchapp.BranchResponse, int64, error) {
	if !rc.IsAdmin() {
		return nil, 0, shared.ErrForbidden
	}
	return []branchapp.BranchResponse{{ID: uuid.New(), Name: "Main"}}, 1, nil
}

func (b *countingBranches) Disable(_ context.Context, _ shared.RequestContext, id uuid.UUID) (*branchapp.BranchResponse, error) {
	return &branchapp.BranchResponse{ID: id}, nil
}

type engineFixture struct {
	engine   *gin.Engine
	jwt      *auth.JWTService
	branches *countingBranches
}

func newEngineFixture(t *testing.T, idempotency bool) *engineFixture {
	t.Helper()
	jwt := auth.NewJWTService(config.JWTConfig{Secret: "router-test-secret-at-least-32-chars", Issuer: "backoffice"})
	branches := &countingBranches{}

	cfg := Config{Verifier: jwt, ServiceName: "backoffice", MaxBodySize: 1 << 20}
	if idempotency {
		store := cache.NewInMemoryIdempotencyStore()
		t.Cleanup(func() { _ = store.Close() })
		cfg.Idempotency = &middleware.IdempotencyConfig{Store: store}
	}

	engine := New(cfg, Handlers{
		System:   handler.NewSystemHandler("backoffice", "test", nil),
		Branches: handler.NewBranchHandler(branches),
	})
	return &engineFixture{engine: engine, jwt: jwt, branches: branches}
}

func (f *engineFixture) token(t *testing.T, role shared.Role) string {
	t.Helper()
	var branchID *uuid.UUID
	if role != shared.RoleAdmin {
		id := uuid.New()
		branchID = &id
	}
	token, _, err := f.jwt.Issue(auth.IssueInput{UserID: uuid.New(), Role: role, BranchID: branchID, TTL: time.Hour})
	require.NoError(t, err)
	return token
}

func (f *engineFixture) do(method, path, token, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestNew_HealthIsPublic(t *testing.T) {
	f := newEngineFixture(t, false)

	w := f.do("GET", "/health", "", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestNew_APIRequiresToken(t *testing.T) {
	f := newEngineFixture(t, false)

	w := f.do("GET", "/api/v1/branches", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do("GET", "/api/v1/branches", f.token(t, shared.RoleAdmin), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do("GET", "/api/v1/branches", f.token(t, shared.RoleCashier), "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestNew_SwaggerDisabledByDefault(t *testing.T) {
	f := newEngineFixture(t, false)

	w := f.do("GET", "/swagger/index.html", "", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNew_IdempotentReplay(t *testing.T) {
	f := newEngineFixture(t, true)
	token := f.token(t, shared.RoleAdmin)
	headers := map[string]string{middleware.IdempotencyKeyHeader: "branch-create-1"}
	body := `{"name":"Harbour"}`

	first := f.do("POST", "/api/v1/branches", token, body, headers)
	second := f.do("POST", "/api/v1/branches", token, body, headers)

	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(middleware.IdempotentReplayHeader))
	assert.Equal(t, int32(1), f.branches.created.Load())
}

func TestNew_WithoutIdempotencyEveryPostRuns(t *testing.T) {
	f := newEngineFixture(t, false)
	token := f.token(t, shared.RoleAdmin)
	headers := map[string]string{middleware.IdempotencyKeyHeader: "branch-create-1"}

	f.do("POST", "/api/v1/branches", token, `{"name":"Harbour"}`, headers)
	f.do("POST", "/api/v1/branches", token, `{"name":"Harbour"}`, headers)

	assert.Equal(t, int32(2), f.branches.created.Load())
}

func TestRoutes_MountsOnlyProvidedHandlers(t *testing.T) {
	groups := Routes(Handlers{Branches: handler.NewBranchHandler(&countingBranches{})})
	require.Len(t, groups, 1)
	assert.Equal(t, "branches", groups[0].(*DomainGroup).Name())

	assert.Empty(t, Routes(Handlers{}))
}

func TestRoutes_FullTableHasNoConflicts(t *testing.T) {
	h := Handlers{
		Branches:     handler.NewBranchHandler(nil),
		Contacts:     handler.NewContactHandler(nil),
		Transactions: handler.NewTransactionHandler(nil),
		Payables:     handler.NewPayableHandler(nil),
		Receivables:  handler.NewReceivableHandler(nil),
		Employees:    handler.NewEmployeeHandler(nil, nil),
		Payroll:      handler.NewPayrollHandler(nil, nil),
		Bonuses:      handler.NewBonusHandler(nil),
		Inventory:    handler.NewInventoryHandler(nil),
		Audit:        handler.NewAuditHandler(nil),
		Reports:      handler.NewReportHandler(nil),
	}

	var engine *gin.Engine
	require.NotPanics(t, func() { engine = New(Config{}, h) })

	registered := make(map[string]bool)
	for _, ri := range engine.Routes() {
		registered[ri.Method+" "+ri.Path] = true
	}
	for _, want := range []string{
		"POST /api/v1/payroll/pay-salary",
		"POST /api/v1/payables/:id/pay",
		"POST /api/v1/receivables/:id/collect",
		"GET /api/v1/transactions/summary",
		"POST /api/v1/employees/:id/advances",
		"POST /api/v1/employees/advances/:id/cancel",
		"DELETE /api/v1/inventory/items/:id/sub-units/:name",
		"GET /api/v1/reports/salary-payments.xlsx",
		"GET /api/v1/audit-logs",
	} {
		assert.True(t, registered[want], want)
	}
}
