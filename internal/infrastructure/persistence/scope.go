package persistence

import (
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScopeFilter restricts db to the branches rc may see. Admins are not
// restricted; a caller without a branch sees nothing.
func ScopeFilter(rc shared.RequestContext, db *gorm.DB) *gorm.DB {
	return scopeColumn(rc, db, "branch_id", nil)
}

// scopeColumn applies the caller's scope to column and narrows it further to
// requested when the caller asked for a single branch.
func scopeColumn(rc shared.RequestContext, db *gorm.DB, column string, requested *uuid.UUID) *gorm.DB {
	allowed, ok := rc.ScopeBranches()
	if !ok {
		return db.Where("1 = 0")
	}
	if requested != nil && *requested != uuid.Nil {
		if allowed != nil && *allowed != *requested {
			return db.Where("1 = 0")
		}
		return db.Where(column+" = ?", *requested)
	}
	if allowed != nil {
		return db.Where(column+" = ?", *allowed)
	}
	return db
}

// applyDateRange filters column by the filter's inclusive From/To bounds
func applyDateRange(db *gorm.DB, column string, filter shared.Filter) *gorm.DB {
	if filter.From != nil {
		db = db.Where(column+" >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where(column+" <= ?", *filter.To)
	}
	return db
}

// paginate counts the matching rows, then orders and pages the query.
// orderBy must already be validated against a whitelist.
func paginate(db *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) (*gorm.DB, int64, error) {
	var total int64
	if err := db.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	filter = filter.Normalize()
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	order := ValidateSortOrder(filter.OrderDir)
	return db.Order(field + " " + order).Order("id " + order).
		Offset(filter.Offset()).
		Limit(filter.PageSize), total, nil
}
