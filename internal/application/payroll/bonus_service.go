package payroll

import (
	"context"

	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/payroll"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// BonusService grants one-off bonuses
type BonusService struct {
	rt uow.Runtime
}

// NewBonusService creates a new BonusService
func NewBonusService(rt uow.Runtime) *BonusService {
	return &BonusService{rt: rt}
}

// Grant pays a bonus and books it as an EXPENSE
func (s *BonusService) Grant(ctx context.Context, rc shared.RequestContext, req GrantBonusRequest) (*BonusResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "bonus", "grant")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrEmployeeID, req.EmployeeID.String(),
		telemetry.SpanAttrAmount, req.Amount.String(),
	)

	method, err := accounting.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var granted *payroll.EmployeeBonus
	events := &uow.EventCollector{}
	err = s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		employee, err := loadEmployee(ctx, repos.Employees(), rc, req.EmployeeID)
		if err != nil {
			return err
		}
		if err := branch.RequireActive(ctx, repos.Branches(), employee.BranchID); err != nil {
			return err
		}
		bonus, err := payroll.NewEmployeeBonus(employee, req.Amount, req.BonusDate, req.Reason)
		if err != nil {
			return err
		}
		bonus.SetCreatedBy(rc.UserID)

		tx, err := accounting.NewPairedTransaction(
			bonus.BranchID,
			accounting.TransactionTypeExpense,
			accounting.CategoryBonuses,
			bonus.Amount,
			bonus.BonusDate,
			method,
			"Bonus for "+employee.Name+": "+bonus.Reason,
			accounting.SourceBonus,
			bonus.ID,
		)
		if err != nil {
			return err
		}
		tx.SetCreatedBy(rc.UserID)
		if err := repos.Transactions().Save(ctx, tx); err != nil {
			return err
		}
		bonus.LinkTransaction(tx.ID)

		if err := repos.Bonuses().Save(ctx, bonus); err != nil {
			return err
		}
		events.Collect(bonus)
		granted = bonus
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.rt.Publish(ctx, rc, events)

	resp := ToBonusResponse(granted)
	return &resp, nil
}

// List returns bonuses of the caller's scope
func (s *BonusService) List(ctx context.Context, rc shared.RequestContext, f BonusListFilter) ([]BonusResponse, int64, error) {
	filter := payroll.BonusFilter{
		Filter:     pageFilter(f.Page, f.PageSize, ""),
		BranchID:   f.BranchID,
		EmployeeID: f.EmployeeID,
	}
	bonuses, total, err := s.rt.Repos.Bonuses().List(ctx, rc, filter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]BonusResponse, 0, len(bonuses))
	for i := range bonuses {
		out = append(out, ToBonusResponse(&bonuses[i]))
	}
	return out, total, nil
}

// Delete soft-deletes a bonus together with its transaction
func (s *BonusService) Delete(ctx context.Context, rc shared.RequestContext, id uuid.UUID) error {
	events := &uow.EventCollector{}
	err := s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		bonus, err := repos.Bonuses().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := rc.Authorize(bonus.BranchID); err != nil {
			return err
		}
		now := s.rt.Now()
		if err := bonus.Delete(now); err != nil {
			return err
		}
		if err := repos.Bonuses().Save(ctx, bonus); err != nil {
			return err
		}
		if bonus.TransactionID != nil {
			if err := cascadeDeleteTransaction(ctx, repos.Transactions(), *bonus.TransactionID, now); err != nil {
				return err
			}
		}
		events.Collect(bonus)
		return nil
	})
	if err != nil {
		return err
	}
	s.rt.Publish(ctx, rc, events)
	return nil
}
