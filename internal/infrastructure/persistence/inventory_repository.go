package persistence

import (
	"context"

	"github.com/erp/backoffice/internal/domain/inventory"
	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/erp/backoffice/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInventoryItemRepository implements InventoryItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

func preloadSubUnits(db *gorm.DB) *gorm.DB {
	return db.Preload("SubUnits", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// FindByID finds a live item with its sub-units
func (r *GormInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	var model models.InventoryItemModel
	if err := findOne(preloadSubUnits(notDeleted(r.db.WithContext(ctx))), &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a live item and locks its row
func (r *GormInventoryItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	var model models.InventoryItemModel
	if err := findOne(forUpdate(preloadSubUnits(notDeleted(r.db.WithContext(ctx)))), &model, id); err != nil {
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns the live items visible to rc
func (r *GormInventoryItemRepository) List(ctx context.Context, rc shared.RequestContext, filter inventory.ItemFilter) ([]inventory.InventoryItem, int64, error) {
	query := notDeleted(r.db.WithContext(ctx).Model(&models.InventoryItemModel{}))
	query = scopeColumn(rc, query, "branch_id", filter.BranchID)
	if filter.Search != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(filter.Search))
	}

	query, total, err := paginate(query, filter.Filter, InventoryItemSortFields, "name")
	if err != nil {
		return nil, 0, err
	}
	var rows []models.InventoryItemModel
	if err := preloadSubUnits(query).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	items := make([]inventory.InventoryItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items, total, nil
}

// Save creates or updates an item and its sub-units
func (r *GormInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	model := models.InventoryItemModelFromDomain(item)
	db := r.db.WithContext(ctx)
	if err := upsert(db, model); err != nil {
		return err
	}
	return replaceSubUnits(db, item.ID, model.SubUnits)
}

// SaveWithLock saves with optimistic locking, replacing the sub-units
func (r *GormInventoryItemRepository) SaveWithLock(ctx context.Context, item *inventory.InventoryItem) error {
	model := models.InventoryItemModelFromDomain(item)
	db := r.db.WithContext(ctx)
	if err := updateWithVersion(db, model, item.ID, item.Version); err != nil {
		return err
	}
	return replaceSubUnits(db, item.ID, model.SubUnits)
}

func replaceSubUnits(db *gorm.DB, itemID uuid.UUID, subUnits []models.SubUnitModel) error {
	if err := db.Where("item_id = ?", itemID).Delete(&models.SubUnitModel{}).Error; err != nil {
		return TranslateError(err)
	}
	if len(subUnits) == 0 {
		return nil
	}
	return TranslateError(db.Create(&subUnits).Error)
}
