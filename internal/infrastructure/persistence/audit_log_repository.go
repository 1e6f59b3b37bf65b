package persistence

import (
	"context"

	"github.com/erp/backoffice/internal/domain/audit"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAuditLogRepository implements AuditLogRepository using GORM.
// Audit rows are only ever inserted.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Create appends an audit entry
func (r *GormAuditLogRepository) Create(ctx context.Context, l *audit.AuditLog) error {
	return TranslateError(r.db.WithContext(ctx).Create(models.AuditLogModelFromDomain(l)).Error)
}

// List returns the entries visible to rc
func (r *GormAuditLogRepository) List(ctx context.Context, rc shared.RequestContext, filter audit.Filter) ([]audit.AuditLog, int64, error) {
	query := scopeColumn(rc, r.db.WithContext(ctx).Model(&models.AuditLogModel{}), "branch_id", filter.BranchID)
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != nil {
		query = query.Where("entity_id = ?", *filter.EntityID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.From != nil {
		query = query.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		// To is a calendar day; include all of it
		query = query.Where("occurred_at < ?", filter.To.AddDate(0, 0, 1))
	}

	query, total, err := paginate(query, filter.Filter, AuditLogSortFields, "occurred_at")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.AuditLogModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	logs := make([]audit.AuditLog, len(rows))
	for i := range rows {
		logs[i] = *rows[i].ToDomain()
	}
	return logs, total, nil
}
