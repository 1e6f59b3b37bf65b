package persistence

import (
	"context"

	"github.com/erp/backoffice/internal/domain/branch"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBranchRepository implements BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByID finds a branch by its ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*branch.Branch, error) {
	var model models.BranchModel
	if err := findOne(r.db.WithContext(ctx), &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns the branches visible to rc. Non-admins only see their own.
func (r *GormBranchRepository) List(ctx context.Context, rc shared.RequestContext, filter shared.Filter) ([]branch.Branch, int64, error) {
	query := scopeColumn(rc, r.db.WithContext(ctx).Model(&models.BranchModel{}), "id", nil)
	if filter.Search != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}

	query, total, err := paginate(query, filter, BranchSortFields, "name")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.BranchModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	branches := make([]branch.Branch, len(rows))
	for i := range rows {
		branches[i] = *rows[i].ToDomain()
	}
	return branches, total, nil
}

// Save inserts a new branch. A branch that has been changed since it was
// loaded is written only if the stored version still matches.
func (r *GormBranchRepository) Save(ctx context.Context, b *branch.Branch) error {
	model := models.BranchModelFromDomain(b)
	if b.GetVersion() <= 1 {
		return upsert(r.db.WithContext(ctx), model)
	}
	return updateWithVersion(r.db.WithContext(ctx), model, b.ID, b.GetVersion())
}
