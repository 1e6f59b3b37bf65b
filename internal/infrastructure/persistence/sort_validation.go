package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// BranchSortFields contains allowed sort fields for branches
var BranchSortFields = withCommon("name", "is_active")

// TransactionSortFields contains allowed sort fields for transactions
var TransactionSortFields = withCommon("date", "amount", "type", "category", "source_type")

// EmployeeSortFields contains allowed sort fields for employees
var EmployeeSortFields = withCommon("name", "position", "hire_date", "monthly_salary", "status")

// AdvanceSortFields contains allowed sort fields for advances
var AdvanceSortFields = withCommon("advance_date", "amount", "remaining_amount", "status")

// SalaryPaymentSortFields contains allowed sort fields for salary payments
var SalaryPaymentSortFields = withCommon("payment_date", "gross_amount", "net_amount")

// BonusSortFields contains allowed sort fields for bonuses
var BonusSortFields = withCommon("bonus_date", "amount")

// OpenItemSortFields contains allowed sort fields for payables and receivables
var OpenItemSortFields = withCommon("date", "due_date", "amount", "remaining_amount", "status")

// ContactSortFields contains allowed sort fields for contacts
var ContactSortFields = withCommon("name", "kind")

// InventoryItemSortFields contains allowed sort fields for inventory items
var InventoryItemSortFields = withCommon("name", "quantity")

// AuditLogSortFields contains allowed sort fields for audit logs
var AuditLogSortFields = map[string]bool{
	"occurred_at": true,
	"action":      true,
	"entity_type": true,
}

func withCommon(fields ...string) map[string]bool {
	m := make(map[string]bool, len(CommonSortFields)+len(fields))
	for k := range CommonSortFields {
		m[k] = true
	}
	for _, f := range fields {
		m[f] = true
	}
	return m
}
