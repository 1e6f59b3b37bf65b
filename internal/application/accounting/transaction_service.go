// Package accounting exposes the branch ledger: manual income and expense
// rows alongside the ones produced by settlements.
package accounting

import (
	"context"
	"strings"

	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// TransactionService handles ledger reads and manual postings
type TransactionService struct {
	rt uow.Runtime
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(rt uow.Runtime) *TransactionService {
	return &TransactionService{rt: rt}
}

// Create records a manual income or expense
func (s *TransactionService) Create(ctx context.Context, rc shared.RequestContext, req CreateTransactionRequest) (*TransactionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "transaction", "create")
	defer span.End()

	branchID, err := rc.ResolveBranch(req.BranchID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	method, err := accounting.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var created *accounting.Transaction
	events := &uow.EventCollector{}
	err = s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		if err := branch.RequireActive(ctx, repos.Branches(), branchID); err != nil {
			return err
		}
		tx, err := accounting.NewTransaction(
			branchID,
			accounting.TransactionType(strings.ToUpper(req.Type)),
			strings.ToLower(req.Category),
			req.Amount,
			req.Date,
			method,
			strings.TrimSpace(req.Description),
		)
		if err != nil {
			return err
		}
		tx.SetCreatedBy(rc.UserID)
		if err := repos.Transactions().Save(ctx, tx); err != nil {
			return err
		}
		events.Collect(tx)
		created = tx
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.rt.Publish(ctx, rc, events)

	resp := ToTransactionResponse(created)
	return &resp, nil
}

// Get returns one ledger row
func (s *TransactionService) Get(ctx context.Context, rc shared.RequestContext, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.rt.Repos.Transactions().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := rc.Authorize(tx.BranchID); err != nil {
		return nil, err
	}
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// List returns ledger rows of the caller's scope, newest first
func (s *TransactionService) List(ctx context.Context, rc shared.RequestContext, f TransactionListFilter) ([]TransactionResponse, int64, error) {
	base := shared.DefaultFilter()
	base.Page = f.Page
	base.PageSize = f.PageSize
	base.OrderBy = "date"
	base.Search = strings.TrimSpace(f.Search)
	base.From = f.From
	base.To = f.To

	items, total, err := s.rt.Repos.Transactions().List(ctx, rc, accounting.TransactionFilter{
		Filter:     base.Normalize(),
		BranchID:   f.BranchID,
		Type:       accounting.TransactionType(strings.ToUpper(f.Type)),
		Category:   strings.ToLower(strings.TrimSpace(f.Category)),
		SourceType: accounting.SourceType(strings.ToUpper(f.SourceType)),
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]TransactionResponse, 0, len(items))
	for i := range items {
		out = append(out, ToTransactionResponse(&items[i]))
	}
	return out, total, nil
}

// Delete removes a manual transaction. Rows created by a settlement return
// CONFLICT and must be removed through their source.
func (s *TransactionService) Delete(ctx context.Context, rc shared.RequestContext, id uuid.UUID) error {
	events := &uow.EventCollector{}
	err := s.rt.UoW.Execute(ctx, func(repos uow.Repositories) error {
		tx, err := repos.Transactions().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := rc.Authorize(tx.BranchID); err != nil {
			return err
		}
		if err := tx.Delete(s.rt.Now()); err != nil {
			return err
		}
		if err := repos.Transactions().Save(ctx, tx); err != nil {
			return err
		}
		events.Collect(tx)
		return nil
	})
	if err != nil {
		return err
	}
	s.rt.Publish(ctx, rc, events)
	return nil
}

// Summary totals income and expense between From and To inclusive
func (s *TransactionService) Summary(ctx context.Context, rc shared.RequestContext, req SummaryRequest) (*SummaryResponse, error) {
	if req.To.Before(req.From) {
		return nil, shared.NewValidationError("'to' must not be before 'from'")
	}
	if req.BranchID != nil {
		if err := rc.Authorize(*req.BranchID); err != nil {
			return nil, err
		}
	}
	sum, err := s.rt.Repos.Transactions().Summarize(ctx, rc, req.BranchID, req.From, req.To)
	if err != nil {
		return nil, err
	}
	return &SummaryResponse{
		BranchID: req.BranchID,
		From:     req.From,
		To:       req.To,
		Income:   sum.Income,
		Expense:  sum.Expense,
		Net:      sum.Net,
		Count:    sum.Count,
	}, nil
}
