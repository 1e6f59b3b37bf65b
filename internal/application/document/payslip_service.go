// Package document produces printable documents for ledger records.
package document

import (
	"context"
	"fmt"
	"time"

	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	pdfContentType    = "application/pdf"
	defaultLinkExpiry = 15 * time.Minute
)

// PDFRenderer converts an HTML document to PDF bytes
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html, title string) ([]byte, error)
}

// ObjectStorage stores generated documents and hands out download links
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
}

// PayslipResponse points at a generated payslip
type PayslipResponse struct {
	SalaryPaymentID uuid.UUID `json:"salaryPaymentId"`
	StorageKey      string    `json:"storageKey"`
	URL             string    `json:"url"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// PayslipService renders salary payments as PDF payslips
type PayslipService struct {
	repos      uow.Repositories
	renderer   PDFRenderer
	storage    ObjectStorage
	template   *PayslipTemplate
	linkExpiry time.Duration
	logger     *zap.Logger
	group      singleflight.Group
}

// PayslipServiceOption configures a PayslipService
type PayslipServiceOption func(*PayslipService)

// WithLinkExpiry sets how long download links stay valid
func WithLinkExpiry(d time.Duration) PayslipServiceOption {
	return func(s *PayslipService) {
		if d > 0 {
			s.linkExpiry = d
		}
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) PayslipServiceOption {
	return func(s *PayslipService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewPayslipService creates a new PayslipService
func NewPayslipService(repos uow.Repositories, renderer PDFRenderer, storage ObjectStorage, tmpl *PayslipTemplate, opts ...PayslipServiceOption) *PayslipService {
	s := &PayslipService{
		repos:      repos,
		renderer:   renderer,
		storage:    storage,
		template:   tmpl,
		linkExpiry: defaultLinkExpiry,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PayslipKey is the storage key of a salary payment's payslip
func PayslipKey(branchID, salaryPaymentID uuid.UUID) string {
	return fmt.Sprintf("payslips/%s/%s.pdf", branchID, salaryPaymentID)
}

// GeneratePayslip renders and uploads the payslip of a salary payment and
// returns a presigned download link. Concurrent requests for the same
// payment share one rendering.
func (s *PayslipService) GeneratePayslip(ctx context.Context, rc shared.RequestContext, salaryPaymentID uuid.UUID) (*PayslipResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payslip", "generate")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrSalaryPaymentID, salaryPaymentID.String())

	sp, err := s.repos.SalaryPayments().FindByID(ctx, salaryPaymentID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := rc.Authorize(sp.BranchID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	key := PayslipKey(sp.BranchID, sp.ID)
	_, err, dup := s.group.Do(key, func() (interface{}, error) {
		var renderErr error
		telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationRenderPayslip, nil), func(c context.Context) {
			renderErr = s.renderAndStore(c, sp, key)
		})
		return nil, renderErr
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if dup {
		telemetry.AddEvent(span, "payslip.shared_render")
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, s.linkExpiry)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("payslip download link: %w", err)
	}
	return &PayslipResponse{
		SalaryPaymentID: sp.ID,
		StorageKey:      key,
		URL:             url,
		ExpiresAt:       expiresAt,
	}, nil
}

func (s *PayslipService) renderAndStore(ctx context.Context, sp *payroll.SalaryPayment, key string) error {
	data, err := s.collect(ctx, sp)
	if err != nil {
		return err
	}
	html, err := s.template.Render(*data)
	if err != nil {
		return err
	}
	pdf, err := s.renderer.RenderPDF(ctx, html, "Payslip "+data.Reference)
	if err != nil {
		return fmt.Errorf("render payslip pdf: %w", err)
	}
	if err := s.storage.Upload(ctx, key, pdf, pdfContentType); err != nil {
		return fmt.Errorf("upload payslip: %w", err)
	}
	s.logger.Info("payslip generated",
		zap.String("salary_payment_id", sp.ID.String()),
		zap.String("key", key),
		zap.Int("bytes", len(pdf)),
	)
	return nil
}

// collect gathers the printable view of sp
func (s *PayslipService) collect(ctx context.Context, sp *payroll.SalaryPayment) (*PayslipData, error) {
	b, err := s.repos.Branches().FindByID(ctx, sp.BranchID)
	if err != nil {
		return nil, err
	}
	e, err := s.repos.Employees().FindByID(ctx, sp.EmployeeID)
	if err != nil {
		return nil, err
	}

	lines := make([]PayslipLine, 0, len(sp.Deductions))
	for _, d := range sp.Deductions {
		line := PayslipLine{Amount: d.Amount, AdvanceDate: d.DeductionDate}
		if a, err := s.repos.Advances().FindByID(ctx, d.AdvanceID); err == nil {
			line.AdvanceDate = a.AdvanceDate
		}
		lines = append(lines, line)
	}

	return &PayslipData{
		Reference:   sp.ID.String()[:8],
		Branch:      b.Name,
		Employee:    e.Name,
		Position:    e.Position,
		PaymentDate: sp.PaymentDate,
		Policy:      string(sp.Policy),
		Gross:       sp.GrossAmount,
		Net:         sp.NetAmount,
		Deductions:  lines,
		Notes:       sp.Notes,
	}, nil
}
