package payroll

import (
	"context"
	"strings"

	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// AdvanceService hands out employee advances and records manual repayments
type AdvanceService struct {
	rt uow.Runtime
}

// NewAdvanceService creates a new AdvanceService
func NewAdvanceService(rt uow.Runtime) *AdvanceService {
	return &AdvanceService{rt: rt}
}

// Create gives an advance to an employee. The cash handed out is booked as
// an EXPENSE in the same unit of work.
func (s *AdvanceService) Create(ctx context.Context, rc shared.RequestContext, employeeID uuid.UUID, req CreateAdvanceRequest) (*AdvanceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "advance", "create")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrEmployeeID, employeeID.String(),
		telemetry.SpanAttrAmount, req.Amount.String(),
	)

	method, err := accounting.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var created *payroll.EmployeeAdvance
	events := &uow.EventCollector{}
	err = s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		employee, err := loadEmployee(ctx, repos.Employees(), rc, employeeID)
		if err != nil {
			return err
		}
		if err := branch.RequireActive(ctx, repos.Branches(), employee.BranchID); err != nil {
			return err
		}

		advance, err := payroll.NewEmployeeAdvance(employee, req.Amount, req.MonthlyDeduction, req.AdvanceDate, req.Reason)
		if err != nil {
			return err
		}
		advance.SetCreatedBy(rc.UserID)

		tx, err := accounting.NewPairedTransaction(
			employee.BranchID,
			accounting.TransactionTypeExpense,
			accounting.CategoryEmployeeAdvances,
			advance.Amount(),
			advance.AdvanceDate,
			method,
			"Advance to "+employee.Name+": "+advance.Reason,
			accounting.SourceEmployeeAdvance,
			advance.ID,
		)
		if err != nil {
			return err
		}
		tx.SetCreatedBy(rc.UserID)
		if err := repos.Transactions().Save(ctx, tx); err != nil {
			return err
		}
		advance.LinkTransaction(tx.ID)

		if err := repos.Advances().Save(ctx, advance); err != nil {
			return err
		}
		events.Collect(advance)
		created = advance
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.rt.Publish(ctx, rc, events)

	telemetry.SetAttributes(span, telemetry.SpanAttrAdvanceID, created.ID.String())
	resp := ToAdvanceResponse(created)
	return &resp, nil
}

// Deduct records a repayment outside payroll. The advance row is locked for
// the duration of the unit of work and the repayment is booked as INCOME.
func (s *AdvanceService) Deduct(ctx context.Context, rc shared.RequestContext, req DeductAdvanceRequest) (*AdvanceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "advance", "deduct")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrAdvanceID, req.AdvanceID.String(),
		telemetry.SpanAttrAmount, req.Amount.String(),
	)

	method, err := accounting.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var updated *payroll.EmployeeAdvance
	events := &uow.EventCollector{}
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationDeductAdvance, nil), func(c context.Context) {
		err = s.rt.UoW.Execute(c, func(repos uow.Repositories) error {
			advance, err := repos.Advances().FindByIDForUpdate(c, req.AdvanceID)
			if err != nil {
				return err
			}
			if err := rc.Authorize(advance.BranchID); err != nil {
				return err
			}

			deduction, err := advance.Deduct(req.Amount, req.DeductionDate, nil, req.Notes, rc.UserID)
			if err != nil {
				return err
			}

			tx, err := accounting.NewPairedTransaction(
				advance.BranchID,
				accounting.TransactionTypeIncome,
				accounting.CategoryEmployeeAdvances,
				deduction.Amount,
				deduction.DeductionDate,
				method,
				"Advance repayment",
				accounting.SourceEmployeeAdvance,
				advance.ID,
			)
			if err != nil {
				return err
			}
			tx.SetCreatedBy(rc.UserID)
			if err := repos.Transactions().Save(c, tx); err != nil {
				return err
			}
			if err := advance.LinkDeductionTransaction(deduction.ID, tx.ID); err != nil {
				return err
			}

			if err := repos.Advances().SaveWithLock(c, advance); err != nil {
				return err
			}
			events.Collect(advance)
			updated = advance
			return nil
		})
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.rt.Publish(ctx, rc, events)
	s.rt.Metrics.RecordSettlement(ctx, updated.BranchID, telemetry.BalanceKindAdvance, req.Amount)

	resp := ToAdvanceResponse(updated)
	return &resp, nil
}

// Cancel withdraws an advance nothing was deducted from and reverses the
// cash it booked.
func (s *AdvanceService) Cancel(ctx context.Context, rc shared.RequestContext, advanceID uuid.UUID, req CancelAdvanceRequest) (*AdvanceResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "advance", "cancel")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrAdvanceID, advanceID.String())

	var cancelled *payroll.EmployeeAdvance
	events := &uow.EventCollector{}
	err := s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		advance, err := repos.Advances().FindByIDForUpdate(ctx, advanceID)
		if err != nil {
			return err
		}
		if err := rc.Authorize(advance.BranchID); err != nil {
			return err
		}
		now := s.rt.Now()
		if err := advance.Cancel(req.Reason, now); err != nil {
			return err
		}
		if err := repos.Advances().SaveWithLock(ctx, advance); err != nil {
			return err
		}
		if advance.TransactionID != nil {
			if err := cascadeDeleteTransaction(ctx, repos.Transactions(), *advance.TransactionID, now); err != nil {
				return err
			}
		}
		events.Collect(advance)
		cancelled = advance
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.rt.Publish(ctx, rc, events)

	resp := ToAdvanceResponse(cancelled)
	return &resp, nil
}

// Get returns one advance with its deductions
func (s *AdvanceService) Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*AdvanceResponse, error) {
	advance, err := s.rt.Repos.Advances().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rc.Authorize(advance.BranchID); err != nil {
		return nil, err
	}
	resp := ToAdvanceResponse(advance)
	return &resp, nil
}

// List returns advances of the caller's scope
func (s *AdvanceService) List(ctx context.Context, rc shared.RequestContext, f AdvanceListFilter) ([]AdvanceResponse, int64, error) {
	filter := payroll.AdvanceFilter{
		Filter:     pageFilter(f.Page, f.PageSize, ""),
		BranchID:   f.BranchID,
		EmployeeID: f.EmployeeID,
		Status:     ledger.Status(strings.ToUpper(f.Status)),
	}
	advances, total, err := s.rt.Repos.Advances().List(ctx, rc, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]AdvanceResponse, 0, len(advances))
	for i := range advances {
		out = append(out, ToAdvanceResponse(&advances[i]))
	}
	return out, total, nil
}

// ListByEmployee returns every advance of one employee
func (s *AdvanceService) ListByEmployee(ctx context.Context, rc shared.RequestContext, employeeID uuid.UUID, f AdvanceListFilter) ([]AdvanceResponse, int64, error) {
	if _, err := loadEmployee(ctx, s.rt.Repos.Employees(), rc, employeeID); err != nil {
		return nil, 0, err
	}
	f.EmployeeID = &employeeID
	return s.List(ctx, rc, f)
}
