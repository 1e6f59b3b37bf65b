package persistence

import (
	"context"

	"github.com/erp/backoffice/internal/domain/finance"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByID finds a contact by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Contact, error) {
	var model models.ContactModel
	if err := findOne(r.db.WithContext(ctx), &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns the contacts visible to rc. Filtering by VENDOR or CUSTOMER
// also returns contacts of kind BOTH.
func (r *GormContactRepository) List(ctx context.Context, rc shared.RequestContext, filter finance.ContactFilter) ([]finance.Contact, int64, error) {
	query := scopeColumn(rc, r.db.WithContext(ctx).Model(&models.ContactModel{}), "branch_id", filter.BranchID)
	switch filter.Kind {
	case "":
	case finance.ContactKindBoth:
		query = query.Where("kind = ?", finance.ContactKindBoth)
	default:
		query = query.Where("kind IN ?", []finance.ContactKind{filter.Kind, finance.ContactKindBoth})
	}
	if filter.Search != "" {
		p := likePattern(filter.Search)
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR phone LIKE ? ESCAPE '\')`, p, p)
	}

	query, total, err := paginate(query, filter.Filter, ContactSortFields, "name")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.ContactModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	contacts := make([]finance.Contact, len(rows))
	for i := range rows {
		contacts[i] = *rows[i].ToDomain()
	}
	return contacts, total, nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, c *finance.Contact) error {
	return upsert(r.db.WithContext(ctx), models.ContactModelFromDomain(c))
}
