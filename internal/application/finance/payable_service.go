package finance

import (
	"context"

	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// PayableService manages money owed to vendors
type PayableService struct {
	rt uow.Runtime
}

// NewPayableService creates a new PayableService
func NewPayableService(rt uow.Runtime) *PayableService {
	return &PayableService{rt: rt}
}

// Create records a new payable
func (s *PayableService) Create(ctx context.Context, rc shared.RequestContext, req CreateOpenItemRequest) (*OpenItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payable", "create")
	defer span.End()

	branchID, err := rc.ResolveBranch(req.BranchID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var created *finance.AccountPayable
	events := &uow.EventCollector{}
	err = s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		if err := branch.RequireActive(ctx, repos.Branches(), branchID); err != nil {
			return err
		}
		if _, err := loadContact(ctx, repos.Contacts(), branchID, req.ContactID, finance.ContactKind.CanOwePayable); err != nil {
			return err
		}
		ap, err := finance.NewAccountPayable(branchID, req.ContactID, req.Description, req.Amount, req.Date, req.DueDate)
		if err != nil {
			return err
		}
		ap.SetCreatedBy(rc.UserID)
		if err := repos.Payables().Save(ctx, ap); err != nil {
			return err
		}
		events.Collect(ap)
		created = ap
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.rt.Publish(ctx, rc, events)

	resp := ToPayableResponse(created, s.rt.Now())
	return &resp, nil
}

// Get returns one payable with its payments
func (s *PayableService) Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*OpenItemResponse, error) {
	ap, err := s.rt.Repos.Payables().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rc.Authorize(ap.BranchID); err != nil {
		return nil, err
	}
	resp := ToPayableResponse(ap, s.rt.Now())
	return &resp, nil
}

// List returns payables of the caller's scope
func (s *PayableService) List(ctx context.Context, rc shared.RequestContext, f OpenItemListFilter) ([]OpenItemResponse, int64, error) {
	items, total, err := s.rt.Repos.Payables().List(ctx, rc, openItemFilter(f))
	if err != nil {
		return nil, 0, err
	}
	now := s.rt.Now()
	out := make([]OpenItemResponse, 0, len(items))
	for i := range items {
		out = append(out, ToPayableResponse(&items[i], now))
	}
	return out, total, nil
}

// Pay records a payment to the vendor. The payable row stays locked until
// the paired EXPENSE transaction and the payment are both written.
func (s *PayableService) Pay(ctx context.Context, rc shared.RequestContext, id uuid.UUID, req SettleRequest) (*OpenItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "payable", "pay")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrBalanceID, id.String(),
		telemetry.SpanAttrBalanceKind, telemetry.BalanceKindPayable,
		telemetry.SpanAttrAmount, req.AmountPaid.String(),
	)

	in, err := toPaymentInput(rc, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var paid *finance.AccountPayable
	events := &uow.EventCollector{}
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationSettlePayable, nil), func(c context.Context) {
		err = s.rt.UoW.Execute(c, func(repos uow.Repositories) error {
			ap, err := repos.Payables().FindByIDForUpdate(c, id)
			if err != nil {
				return err
			}
			if err := rc.Authorize(ap.BranchID); err != nil {
				return err
			}
			payment, err := ap.Pay(in)
			if err != nil {
				return err
			}
			tx, err := bookSettlement(c, repos, rc, payablePairing, ap.BranchID, ap.ID, ap.Description, payment)
			if err != nil {
				return err
			}
			if err := ap.LinkTransaction(payment.ID, tx.ID); err != nil {
				return err
			}
			if err := repos.Payables().SaveWithLock(c, ap); err != nil {
				return err
			}
			events.Collect(ap)
			paid = ap
			return nil
		})
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.rt.Publish(ctx, rc, events)
	s.rt.Metrics.RecordSettlement(ctx, paid.BranchID, telemetry.BalanceKindPayable, req.AmountPaid)

	resp := ToPayableResponse(paid, s.rt.Now())
	return &resp, nil
}

// Delete soft-deletes a payable that has no payments
func (s *PayableService) Delete(ctx context.Context, rc shared.RequestContext, id uuid.UUID) error {
	events := &uow.EventCollector{}
	err := s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		ap, err := repos.Payables().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := rc.Authorize(ap.BranchID); err != nil {
			return err
		}
		if err := ap.Delete(s.rt.Now()); err != nil {
			return err
		}
		if err := repos.Payables().SaveWithLock(ctx, ap); err != nil {
			return err
		}
		events.Collect(ap)
		return nil
	})
	if err != nil {
		return err
	}
	s.rt.Publish(ctx, rc, events)
	return nil
}
