package handler

import (
	"context"
	"net/http"
	"testing"

	reportapp "github.com/erp/backoffice/internal/application/report"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExporter struct {
	filter reportapp.ExportFilter
	err    error
}

func (s *stubExporter) workbook(name string, f reportapp.ExportFilter) (*reportapp.Workbook, error) {
	s.filter = f
	if s.err != nil {
		return nil, s.err
	}
	return &reportapp.Workbook{Filename: name, Data: []byte("PK\x03\x04")}, nil
}

func (s *stubExporter) ExportPayables(_ context.Context, _ shared.RequestContext, f reportapp.ExportFilter) (*reportapp.Workbook, error) {
	return s.workbook("payables.xlsx", f)
}

func (s *stubExporter) ExportReceivables(_ context.Context, _ shared.RequestContext, f reportapp.ExportFilter) (*reportapp.Workbook, error) {
	return s.workbook("receivables.xlsx", f)
}

func (s *stubExporter) ExportSalaryPayments(_ context.Context, _ shared.RequestContext, f reportapp.ExportFilter) (*reportapp.Workbook, error) {
	return s.workbook("salary-payments.xlsx", f)
}

func TestReportHandler_Downloads(t *testing.T) {
	tests := []struct {
		path     string
		filename string
	}{
		{"/reports/payables.xlsx?onlyOpen=true", "payables.xlsx"},
		{"/reports/receivables.xlsx", "receivables.xlsx"},
		{"/reports/salary-payments.xlsx", "salary-payments.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			rc := managerContext()
			svc := &stubExporter{}
			h := NewReportHandler(svc)
			r := newTestRouter(&rc)
			r.GET("/reports/payables.xlsx", h.ExportPayables)
			r.GET("/reports/receivables.xlsx", h.ExportReceivables)
			r.GET("/reports/salary-payments.xlsx", h.ExportSalaryPayments)

			rec := doRequest(r, http.MethodGet, tt.path, nil)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, reportapp.ContentTypeXLSX, rec.Header().Get("Content-Type"))
			assert.Equal(t, `attachment; filename="`+tt.filename+`"`, rec.Header().Get("Content-Disposition"))
			assert.Equal(t, "PK\x03\x04", rec.Body.String())
		})
	}
}

func TestReportHandler_PassesFilter(t *testing.T) {
	rc := managerContext()
	svc := &stubExporter{}
	h := NewReportHandler(svc)
	r := newTestRouter(&rc)
	r.GET("/reports/payables.xlsx", h.ExportPayables)

	rec := doRequest(r, http.MethodGet, "/reports/payables.xlsx?onlyOpen=true", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.filter.OnlyOpen)
	assert.Nil(t, svc.filter.BranchID)
}

func TestReportHandler_Forbidden(t *testing.T) {
	rc := managerContext()
	svc := &stubExporter{err: shared.ErrForbidden}
	h := NewReportHandler(svc)
	r := newTestRouter(&rc)
	r.GET("/reports/payables.xlsx", h.ExportPayables)

	rec := doRequest(r, http.MethodGet, "/reports/payables.xlsx", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}
