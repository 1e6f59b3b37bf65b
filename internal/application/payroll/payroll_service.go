package payroll

import (
	"context"
	"time"

	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PayrollService pays salaries, withholding outstanding advances according
// to the deduction policy the deployment runs with.
type PayrollService struct {
	rt     uow.Runtime
	policy payroll.DeductionPolicy
}

// NewPayrollService creates a new PayrollService. A nil policy falls back
// to the fixed monthly installment policy.
func NewPayrollService(rt uow.Runtime, policy payroll.DeductionPolicy) *PayrollService {
	if policy == nil {
		policy = payroll.FixedMonthlyPolicy{}
	}
	return &PayrollService{rt: rt, policy: policy}
}

// Policy returns the active deduction policy
func (s *PayrollService) Policy() payroll.PolicyName {
	return s.policy.Name()
}

// PaySalary records a salary payment. Inside one unit of work it locks the
// employee's active advances, plans the deductions oldest first, books the
// net cash as an EXPENSE, deducts each advance and saves it with a version
// check. SalaryPaidEvent is published after commit.
func (s *PayrollService) PaySalary(ctx context.Context, rc shared.RequestContext, req PaySalaryRequest) (*SalaryPaymentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payroll", "pay_salary")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrEmployeeID, req.EmployeeID.String(),
		telemetry.SpanAttrAmount, req.Amount.String(),
		telemetry.SpanAttrPolicy, string(s.policy.Name()),
	)

	var (
		payment *payroll.SalaryPayment
		opErr   error
	)
	labels := telemetry.OperationLabels(telemetry.OperationPaySalary, map[string]string{
		telemetry.ProfilingLabelPolicy: string(s.policy.Name()),
	})
	telemetry.WithProfilingLabels(ctx, labels, func(c context.Context) {
		payment, opErr = s.paySalary(c, rc, req)
	})
	if opErr != nil {
		telemetry.RecordError(span, opErr)
		return nil, opErr
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrSalaryPaymentID, payment.ID.String(),
		telemetry.SpanAttrBranchID, payment.BranchID.String(),
		telemetry.SpanAttrDeductionCount, len(payment.Deductions),
	)
	telemetry.AddEvent(span, "salary_paid",
		"gross", payment.GrossAmount.String(),
		"deducted", payment.DeductedAmount.String(),
		"net", payment.NetAmount.String(),
	)
	s.rt.Metrics.RecordSalaryPaid(ctx, payment.BranchID, string(payment.Policy),
		payment.NetAmount, payment.DeductedAmount, len(payment.Deductions))

	resp := ToSalaryPaymentResponse(payment)
	return &resp, nil
}

func (s *PayrollService) paySalary(ctx context.Context, rc shared.RequestContext, req PaySalaryRequest) (*payroll.SalaryPayment, error) {
	if err := ledger.RequirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	if req.PaymentDate.IsZero() {
		return nil, shared.NewValidationError("paymentDate is required")
	}
	method, err := accounting.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	employee, err := loadEmployee(ctx, s.rt.Repos.Employees(), rc, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if err := branch.RequireActive(ctx, s.rt.Repos.Branches(), employee.BranchID); err != nil {
		return nil, err
	}

	var payment *payroll.SalaryPayment
	events := &uow.EventCollector{}
	err = s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		advances, err := repos.Advances().FindActiveByEmployeeForUpdate(ctx, employee.ID)
		if err != nil {
			return err
		}
		payroll.SortOldestFirst(advances)

		plan, err := s.policy.Plan(payroll.PlanInput{
			Amount:        req.Amount,
			MonthlySalary: employee.MonthlySalary,
			Advances:      advances,
		})
		if err != nil {
			return err
		}

		sp, err := payroll.NewSalaryPayment(employee, plan, req.PaymentDate, req.Notes)
		if err != nil {
			return err
		}
		sp.SetCreatedBy(rc.UserID)

		if sp.HasCashMovement() {
			tx, err := accounting.NewPairedTransaction(
				sp.BranchID,
				accounting.TransactionTypeExpense,
				accounting.CategorySalaries,
				sp.NetAmount,
				sp.PaymentDate,
				method,
				"Salary payment: "+employee.Name,
				accounting.SourceSalaryPayment,
				sp.ID,
			)
			if err != nil {
				return err
			}
			tx.SetCreatedBy(rc.UserID)
			if err := repos.Transactions().Save(ctx, tx); err != nil {
				return err
			}
			sp.LinkTransaction(tx.ID)
		}

		byID := make(map[uuid.UUID]*payroll.EmployeeAdvance, len(advances))
		for _, a := range advances {
			byID[a.ID] = a
		}
		touched := make([]*payroll.EmployeeAdvance, 0, len(plan.Lines))
		for _, line := range plan.Lines {
			a, ok := byID[line.AdvanceID]
			if !ok {
				return shared.NewNotFoundError("Advance")
			}
			d, err := a.Deduct(line.Amount, sp.PaymentDate, &sp.ID, "", rc.UserID)
			if err != nil {
				return err
			}
			sp.AttachDeduction(*d)
			touched = append(touched, a)
		}
		sp.RecordPaid()

		if err := repos.SalaryPayments().Save(ctx, sp); err != nil {
			return err
		}
		for _, a := range touched {
			if err := repos.Advances().SaveWithLock(ctx, a); err != nil {
				return err
			}
			events.Collect(a)
		}
		events.Collect(sp)
		payment = sp
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.rt.Publish(ctx, rc, events)
	return payment, nil
}

// Preview plans a salary payment without writing anything
func (s *PayrollService) Preview(ctx context.Context, rc shared.RequestContext, req PaySalaryRequest) (*PlanResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payroll", "preview")
	defer span.End()

	var (
		resp  *PlanResponse
		opErr error
	)
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationPreviewSalary, nil), func(c context.Context) {
		employee, err := loadEmployee(c, s.rt.Repos.Employees(), rc, req.EmployeeID)
		if err != nil {
			opErr = err
			return
		}
		advances, err := s.rt.Repos.Advances().FindActiveByEmployee(c, employee.ID)
		if err != nil {
			opErr = err
			return
		}
		payroll.SortOldestFirst(advances)
		plan, err := s.policy.Plan(payroll.PlanInput{
			Amount:        req.Amount,
			MonthlySalary: employee.MonthlySalary,
			Advances:      advances,
		})
		if err != nil {
			opErr = err
			return
		}
		out := toPlanResponse(employee.ID, plan)
		resp = &out
	})
	if opErr != nil {
		telemetry.RecordError(span, opErr)
		return nil, opErr
	}
	return resp, nil
}

// Get returns one salary payment with its deduction summary
func (s *PayrollService) Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*SalaryPaymentResponse, error) {
	sp, err := s.rt.Repos.SalaryPayments().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rc.Authorize(sp.BranchID); err != nil {
		return nil, err
	}
	resp := ToSalaryPaymentResponse(sp)
	return &resp, nil
}

// List returns salary payments of the caller's scope
func (s *PayrollService) List(ctx context.Context, rc shared.RequestContext, f SalaryPaymentListFilter) ([]SalaryPaymentResponse, int64, error) {
	filter := payroll.SalaryPaymentFilter{
		Filter:     pageFilter(f.Page, f.PageSize, ""),
		BranchID:   f.BranchID,
		EmployeeID: f.EmployeeID,
	}
	filter.From, filter.To = f.From, f.To
	payments, total, err := s.rt.Repos.SalaryPayments().List(ctx, rc, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]SalaryPaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, ToSalaryPaymentResponse(&payments[i]))
	}
	return out, total, nil
}

// Delete soft-deletes a salary payment and its paired transaction. Advance
// deductions it caused stay on the books.
func (s *PayrollService) Delete(ctx context.Context, rc shared.RequestContext, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "payroll", "delete_salary_payment")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrSalaryPaymentID, id.String())

	events := &uow.EventCollector{}
	err := s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		sp, err := repos.SalaryPayments().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := rc.Authorize(sp.BranchID); err != nil {
			return err
		}
		now := s.rt.Now()
		if err := sp.Delete(now); err != nil {
			return err
		}
		if err := repos.SalaryPayments().Save(ctx, sp); err != nil {
			return err
		}
		if sp.TransactionID != nil {
			if err := cascadeDeleteTransaction(ctx, repos.Transactions(), *sp.TransactionID, now); err != nil {
				return err
			}
		}
		if len(sp.Deductions) > 0 {
			s.rt.Log().Info("salary payment deleted, advance deductions kept",
				zap.String("salary_payment_id", sp.ID.String()),
				zap.Int("deductions", len(sp.Deductions)),
			)
		}
		events.Collect(sp)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	s.rt.Publish(ctx, rc, events)
	return nil
}

// cascadeDeleteTransaction soft-deletes the paired ledger row of a source
// record. A row that is already gone is not an error.
func cascadeDeleteTransaction(ctx context.Context, repo accounting.TransactionRepository, id uuid.UUID, at time.Time) error {
	tx, err := repo.FindByID(ctx, id)
	if err != nil {
		if shared.CodeOf(err) == shared.CodeNotFound {
			return nil
		}
		return err
	}
	tx.CascadeDelete(at)
	return repo.Save(ctx, tx)
}
