package finance

import (
	"time"

	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOpenItemRequest represents a request to record a payable or receivable
type CreateOpenItemRequest struct {
	BranchID    *uuid.UUID      `json:"branchId"`
	ContactID   uuid.UUID       `json:"contactId" binding:"required"`
	Description string          `json:"description" binding:"max=500"`
	Amount      decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	Date        time.Time       `json:"date" binding:"required"`
	DueDate     *time.Time      `json:"dueDate"`
}

// SettleRequest represents a payment against a payable or a collection
// against a receivable
type SettleRequest struct {
	AmountPaid    decimal.Decimal `json:"amountPaid" binding:"decimal_gt0"`
	PaymentDate   time.Time       `json:"paymentDate" binding:"required"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes" binding:"max=500"`
}

// PaymentResponse is one settlement record
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes,omitempty"`
	TransactionID *uuid.UUID      `json:"transactionId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// OpenItemResponse represents a payable or receivable in API responses
type OpenItemResponse struct {
	ID              uuid.UUID         `json:"id"`
	BranchID        uuid.UUID         `json:"branchId"`
	ContactID       uuid.UUID         `json:"contactId"`
	Description     string            `json:"description,omitempty"`
	Amount          decimal.Decimal   `json:"amount"`
	PaidAmount      decimal.Decimal   `json:"paidAmount"`
	RemainingAmount decimal.Decimal   `json:"remainingAmount"`
	Status          ledger.Status     `json:"status"`
	Date            time.Time         `json:"date"`
	DueDate         *time.Time        `json:"dueDate,omitempty"`
	IsOverdue       bool              `json:"isOverdue"`
	Payments        []PaymentResponse `json:"payments"`
	CreatedAt       time.Time         `json:"createdAt"`
	Version         int               `json:"version"`
}

func toOpenItemResponse(id, branchID uuid.UUID, item *finance.OpenItem, createdAt time.Time, version int, now time.Time) OpenItemResponse {
	payments := make([]PaymentResponse, 0, len(item.Payments))
	for _, p := range item.ActivePayments() {
		payments = append(payments, PaymentResponse{
			ID:            p.ID,
			Amount:        p.Amount,
			PaymentDate:   p.PaymentDate,
			PaymentMethod: string(p.PaymentMethod),
			Notes:         p.Notes,
			TransactionID: p.TransactionID,
			CreatedAt:     p.CreatedAt,
		})
	}
	return OpenItemResponse{
		ID:              id,
		BranchID:        branchID,
		ContactID:       item.ContactID,
		Description:     item.Description,
		Amount:          item.Balance.Original,
		PaidAmount:      item.PaidAmount(),
		RemainingAmount: item.Balance.Remaining,
		Status:          item.Balance.Status,
		Date:            item.Date,
		DueDate:         item.DueDate,
		IsOverdue:       item.IsOverdue(now),
		Payments:        payments,
		CreatedAt:       createdAt,
		Version:         version,
	}
}

// ToPayableResponse converts a payable to its response
func ToPayableResponse(ap *finance.AccountPayable, now time.Time) OpenItemResponse {
	return toOpenItemResponse(ap.ID, ap.BranchID, &ap.OpenItem, ap.CreatedAt, ap.GetVersion(), now)
}

// ToReceivableResponse converts a receivable to its response
func ToReceivableResponse(ar *finance.AccountReceivable, now time.Time) OpenItemResponse {
	return toOpenItemResponse(ar.ID, ar.BranchID, &ar.OpenItem, ar.CreatedAt, ar.GetVersion(), now)
}

// OpenItemListFilter represents filter options for payable and receivable lists
type OpenItemListFilter struct {
	BranchID  *uuid.UUID `form:"branchId,parser=encoding.TextUnmarshaler"`
	ContactID *uuid.UUID `form:"contactId,parser=encoding.TextUnmarshaler"`
	Status    string     `form:"status" binding:"omitempty,oneof=ACTIVE PARTIAL PAID CANCELLED"`
	OnlyOpen  bool       `form:"onlyOpen"`
	Search    string     `form:"search"`
	Page      int        `form:"page"`
	PageSize  int        `form:"pageSize"`
}

// CreateContactRequest represents a request to register a vendor or customer
type CreateContactRequest struct {
	BranchID *uuid.UUID `json:"branchId"`
	Name     string     `json:"name" binding:"required,max=200"`
	Kind     string     `json:"kind" binding:"omitempty,oneof=VENDOR CUSTOMER BOTH"`
	Phone    string     `json:"phone" binding:"max=50"`
	Notes    string     `json:"notes" binding:"max=1000"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	BranchID  uuid.UUID `json:"branchId"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToContactResponse converts a contact to its response
func ToContactResponse(c *finance.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		BranchID:  c.BranchID,
		Name:      c.Name,
		Kind:      string(c.Kind),
		Phone:     c.Phone,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
	}
}

// ContactListFilter represents filter options for contact lists
type ContactListFilter struct {
	BranchID *uuid.UUID `form:"branchId,parser=encoding.TextUnmarshaler"`
	Kind     string     `form:"kind" binding:"omitempty,oneof=VENDOR CUSTOMER BOTH"`
	Search   string     `form:"search"`
	Page     int        `form:"page"`
	PageSize int        `form:"pageSize"`
}
