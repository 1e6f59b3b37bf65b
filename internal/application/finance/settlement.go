// Package finance implements payables, receivables and their settlement,
// plus the contact register they reference.
package finance

import (
	"context"
	"strings"

	"github.com/erp/backoffice/internal/application/uow"
	"github.com/erp/backoffice/internal/domain/accounting"
	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// pairing describes the ledger row a settlement produces
type pairing struct {
	txType   accounting.TransactionType
	category string
	source   accounting.SourceType
	label    string
}

var (
	payablePairing = pairing{
		txType:   accounting.TransactionTypeExpense,
		category: accounting.CategoryPayables,
		source:   accounting.SourcePayablePayment,
		label:    "Payment to vendor",
	}
	receivablePairing = pairing{
		txType:   accounting.TransactionTypeIncome,
		category: accounting.CategoryReceivables,
		source:   accounting.SourceReceivableCollection,
		label:    "Collection from customer",
	}
)

// toPaymentInput validates the request shape and fills defaults
func toPaymentInput(rc shared.RequestContext, req SettleRequest) (finance.PaymentInput, error) {
	method, err := accounting.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return finance.PaymentInput{}, err
	}
	return finance.PaymentInput{
		Amount:        req.AmountPaid,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: method,
		Notes:         strings.TrimSpace(req.Notes),
		ActorID:       rc.UserID,
	}, nil
}

// bookSettlement saves the paired transaction of payment and returns it
func bookSettlement(
	ctx context.Context,
	repos uow.Repositories,
	rc shared.RequestContext,
	p pairing,
	branchID, sourceID uuid.UUID,
	description string,
	payment *finance.Payment,
) (*accounting.Transaction, error) {
	label := p.label
	if description != "" {
		label += ": " + description
	}
	tx, err := accounting.NewPairedTransaction(
		branchID,
		p.txType,
		p.category,
		payment.Amount,
		payment.PaymentDate,
		payment.PaymentMethod,
		label,
		p.source,
		sourceID,
	)
	if err != nil {
		return nil, err
	}
	tx.SetCreatedBy(rc.UserID)
	if err := repos.Transactions().Save(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// loadContact fetches the counterparty of a new open item and checks it
// belongs to branchID and can sit on the requested side of the ledger.
func loadContact(ctx context.Context, repo finance.ContactRepository, branchID, contactID uuid.UUID, allowed func(finance.ContactKind) bool) (*finance.Contact, error) {
	c, err := repo.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if c.BranchID != branchID {
		return nil, shared.NewValidationError("contact belongs to another branch")
	}
	if !allowed(c.Kind) {
		return nil, shared.NewValidationError("contact " + c.Name + " is a " + strings.ToLower(string(c.Kind)))
	}
	return c, nil
}

func openItemFilter(f OpenItemListFilter) finance.OpenItemFilter {
	base := shared.DefaultFilter()
	base.Page = f.Page
	base.PageSize = f.PageSize
	base.Search = strings.TrimSpace(f.Search)
	return finance.OpenItemFilter{
		Filter:    base.Normalize(),
		BranchID:  f.BranchID,
		ContactID: f.ContactID,
		Status:    ledger.Status(strings.ToUpper(f.Status)),
		OnlyOpen:  f.OnlyOpen,
	}
}
