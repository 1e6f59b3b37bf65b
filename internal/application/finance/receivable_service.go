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

// ReceivableService manages money owed by customers
type ReceivableService struct {
	rt uow.Runtime
}

// NewReceivableService creates a new ReceivableService
func NewReceivableService(rt uow.Runtime) *ReceivableService {
	return &ReceivableService{rt: rt}
}

// Create records a new receivable
func (s *ReceivableService) Create(ctx context.Context, rc shared.RequestContext, req CreateOpenItemRequest) (*OpenItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "receivable", "create")
	defer span.End()

	branchID, err := rc.ResolveBranch(req.BranchID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var created *finance.AccountReceivable
	events := &uow.EventCollector{}
	err = s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		if err := branch.RequireActive(ctx, repos.Branches(), branchID); err != nil {
			return err
		}
		if _, err := loadContact(ctx, repos.Contacts(), branchID, req.ContactID, finance.ContactKind.CanOweReceivable); err != nil {
			return err
		}
		ar, err := finance.NewAccountReceivable(branchID, req.ContactID, req.Description, req.Amount, req.Date, req.DueDate)
		if err != nil {
			return err
		}
		ar.SetCreatedBy(rc.UserID)
		if err := repos.Receivables().Save(ctx, ar); err != nil {
			return err
		}
		events.Collect(ar)
		created = ar
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.rt.Publish(ctx, rc, events)

	resp := ToReceivableResponse(created, s.rt.Now())
	return &resp, nil
}

// Get returns one receivable with its payments
func (s *ReceivableService) Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*OpenItemResponse, error) {
	ar, err := s.rt.Repos.Receivables().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rc.Authorize(ar.BranchID); err != nil {
		return nil, err
	}
	resp := ToReceivableResponse(ar, s.rt.Now())
	return &resp, nil
}

// List returns receivables of the caller's scope
func (s *ReceivableService) List(ctx context.Context, rc shared.RequestContext, f OpenItemListFilter) ([]OpenItemResponse, int64, error) {
	items, total, err := s.rt.Repos.Receivables().List(ctx, rc, openItemFilter(f))
	if err != nil {
		return nil, 0, err
	}
	now := s.rt.Now()
	out := make([]OpenItemResponse, 0, len(items))
	for i := range items {
		out = append(out, ToReceivableResponse(&items[i], now))
	}
	return out, total, nil
}

// Collect records money received from the customer and books the paired
// INCOME transaction in the same unit of work.
func (s *ReceivableService) Collect(ctx context.Context, rc shared.RequestContext, id uuid.UUID, req SettleRequest) (*OpenItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "receivable", "collect")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrBalanceID, id.String(),
		telemetry.SpanAttrBalanceKind, telemetry.BalanceKindReceivable,
		telemetry.SpanAttrAmount, req.AmountPaid.String(),
	)

	in, err := toPaymentInput(rc, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var collected *finance.AccountReceivable
	events := &uow.EventCollector{}
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(telemetry.OperationCollect, nil), func(c context.Context) {
		err = s.rt.UoW.Execute(c, func(repos uow.Repositories) error {
			ar, err := repos.Receivables().FindByIDForUpdate(c, id)
			if err != nil {
				return err
			}
			if err := rc.Authorize(ar.BranchID); err != nil {
				return err
			}
			payment, err := ar.Collect(in)
			if err != nil {
				return err
			}
			tx, err := bookSettlement(c, repos, rc, receivablePairing, ar.BranchID, ar.ID, ar.Description, payment)
			if err != nil {
				return err
			}
			if err := ar.LinkTransaction(payment.ID, tx.ID); err != nil {
				return err
			}
			if err := repos.Receivables().SaveWithLock(c, ar); err != nil {
				return err
			}
			events.Collect(ar)
			collected = ar
			return nil
		})
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.rt.Publish(ctx, rc, events)
	s.rt.Metrics.RecordSettlement(ctx, collected.BranchID, telemetry.BalanceKindReceivable, req.AmountPaid)

	resp := ToReceivableResponse(collected, s.rt.Now())
	return &resp, nil
}

// Delete soft-deletes a receivable that has no payments
func (s *ReceivableService) Delete(ctx context.Context, rc shared.RequestContext, id uuid.UUID) error {
	events := &uow.EventCollector{}
	err := s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		ar, err := repos.Receivables().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := rc.Authorize(ar.BranchID); err != nil {
			return err
		}
		if err := ar.Delete(s.rt.Now()); err != nil {
			return err
		}
		if err := repos.Receivables().SaveWithLock(ctx, ar); err != nil {
			return err
		}
		events.Collect(ar)
		return nil
	})
	if err != nil {
		return err
	}
	s.rt.Publish(ctx, rc, events)
	return nil
}
