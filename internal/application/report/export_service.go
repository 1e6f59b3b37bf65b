// Package report builds spreadsheet exports of branch ledgers.
package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the MIME type of generated workbooks
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	exportPageSize = 200
	moneyFormat    = "#,##0.00"
	dateFormat     = "2006-01-02"
)

// ExportFilter scopes an export
type ExportFilter struct {
	BranchID *uuid.UUID `form:"branchId,parser=encoding.TextUnmarshaler"`
	OnlyOpen bool       `form:"onlyOpen"`
}

// Workbook is a rendered export
type Workbook struct {
	Filename string
	Data     []byte
}

// ExportService renders ledgers as XLSX workbooks
type ExportService struct {
	repos uow.Repositories
}

// NewExportService creates a new ExportService
func NewExportService(repos uow.Repositories) *ExportService {
	return &ExportService{repos: repos}
}

// column describes one sheet column
type column struct {
	title string
	width float64
	money bool
}

var openItemColumns = []column{
	{title: "Date", width: 12},
	{title: "Due date", width: 12},
	{title: "Description", width: 36},
	{title: "Original", width: 14, money: true},
	{title: "Paid", width: 14, money: true},
	{title: "Remaining", width: 14, money: true},
	{title: "Status", width: 10},
}

// ExportPayables writes every payable of the caller's scope
func (s *ExportService) ExportPayables(ctx context.Context, rc shared.RequestContext, f ExportFilter) (*Workbook, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", "payables")
	defer span.End()

	var rows [][]interface{}
	err := eachPage(func(page int) (int, int64, error) {
		items, total, err := s.repos.Payables().List(ctx, rc, openItemFilter(f, page))
		for i := range items {
			rows = append(rows, openItemRow(&items[i].OpenItem))
		}
		return len(items), total, err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return render(ctx, "payables", "Payables", openItemColumns, rows)
}

// ExportReceivables writes every receivable of the caller's scope
func (s *ExportService) ExportReceivables(ctx context.Context, rc shared.RequestContext, f ExportFilter) (*Workbook, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", "receivables")
	defer span.End()

	var rows [][]interface{}
	err := eachPage(func(page int) (int, int64, error) {
		items, total, err := s.repos.Receivables().List(ctx, rc, openItemFilter(f, page))
		for i := range items {
			rows = append(rows, openItemRow(&items[i].OpenItem))
		}
		return len(items), total, err
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return render(ctx, "receivables", "Receivables", openItemColumns, rows)
}

var salaryColumns = []column{
	{title: "Payment date", width: 14},
	{title: "Employee", width: 28},
	{title: "Gross", width: 14, money: true},
	{title: "Advance deductions", width: 18, money: true},
	{title: "Net paid", width: 14, money: true},
	{title: "Policy", width: 14},
	{title: "Notes", width: 30},
}

// ExportSalaryPayments writes every salary payment of the caller's scope
func (s *ExportService) ExportSalaryPayments(ctx context.Context, rc shared.RequestContext, f ExportFilter) (*Workbook, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "export", "salary_payments")
	defer span.End()

	names := map[uuid.UUID]string{}
	var rows [][]interface{}
	err := eachPage(func(page int) (int, int64, error) {
		filter := shared.DefaultFilter()
		filter.Page = page
		filter.PageSize = exportPageSize
		filter.OrderBy = "payment_date"
		filter.OrderDir = "asc"
		items, total, err := s.repos.SalaryPayments().List(ctx, rc, payroll.SalaryPaymentFilter{Filter: filter, BranchID: f.BranchID})
		if err != nil {
			return 0, 0, err
		}
		for i := range items {
			sp := &items[i]
			name, err := s.employeeName(ctx, names, sp.EmployeeID)
			if err != nil {
				return 0, 0, err
			}
			rows = append(rows, []interface{}{
				sp.PaymentDate.Format(dateFormat),
				name,
				sp.GrossAmount,
				sp.DeductedAmount,
				sp.NetAmount,
				string(sp.Policy),
				sp.Notes,
			})
		}
		return len(items), total, nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return render(ctx, "salary-payments", "Salary payments", salaryColumns, rows)
}

func (s *ExportService) employeeName(ctx context.Context, cache map[uuid.UUID]string, id uuid.UUID) (string, error) {
	if name, ok := cache[id]; ok {
		return name, nil
	}
	e, err := s.repos.Employees().FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	cache[id] = e.Name
	return e.Name, nil
}

func openItemFilter(f ExportFilter, page int) finance.OpenItemFilter {
	filter := shared.DefaultFilter()
	filter.Page = page
	filter.PageSize = exportPageSize
	filter.OrderBy = "date"
	filter.OrderDir = "asc"
	return finance.OpenItemFilter{Filter: filter, BranchID: f.BranchID, OnlyOpen: f.OnlyOpen}
}

func openItemRow(o *finance.OpenItem) []interface{} {
	due := ""
	if o.DueDate != nil {
		due = o.DueDate.Format(dateFormat)
	}
	return []interface{}{
		o.Date.Format(dateFormat),
		due,
		o.Description,
		o.Balance.Original,
		o.PaidAmount(),
		o.Balance.Remaining,
		string(o.Balance.Status),
	}
}

// eachPage calls fetch for pages 1, 2, ... until all rows are read
func eachPage(fetch func(page int) (n int, total int64, err error)) error {
	var seen int64
	for page := 1; ; page++ {
		n, total, err := fetch(page)
		if err != nil {
			return err
		}
		seen += int64(n)
		if n < exportPageSize || seen >= total {
			return nil
		}
	}
}

// render lays rows out under a bold header row. Money cells are written as
// numbers with a two-decimal format.
func render(ctx context.Context, name, sheet string, cols []column, rows [][]interface{}) (*Workbook, error) {
	var (
		wb  *Workbook
		err error
	)
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationExportWorkbook, map[string]string{"sheet": name}), func(context.Context) {
		wb, err = renderWorkbook(name, sheet, cols, rows)
	})
	return wb, err
}

func renderWorkbook(name, sheet string, cols []column, rows [][]interface{}) (*Workbook, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: stringPtr(moneyFormat)})
	if err != nil {
		return nil, fmt.Errorf("money style: %w", err)
	}

	titles := make([]interface{}, len(cols))
	for i, c := range cols {
		titles[i] = c.title
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, colName, colName, c.width); err != nil {
			return nil, err
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &titles); err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(cols), 1)
	if err := f.SetCellStyle(sheet, "A1", last, header); err != nil {
		return nil, err
	}

	for r, row := range rows {
		values := make([]interface{}, len(row))
		for i, v := range row {
			if d, ok := v.(decimal.Decimal); ok {
				v = d.InexactFloat64()
			}
			values[i] = v
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}
	if len(rows) > 0 {
		for i, c := range cols {
			if !c.money {
				continue
			}
			top, _ := excelize.CoordinatesToCellName(i+1, 2)
			bottom, _ := excelize.CoordinatesToCellName(i+1, len(rows)+1)
			if err := f.SetCellStyle(sheet, top, bottom, money); err != nil {
				return nil, err
			}
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &Workbook{Filename: name + ".xlsx", Data: bytes.Clone(buf.Bytes())}, nil
}

func stringPtr(s string) *string { return &s }
