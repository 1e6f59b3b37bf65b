package persistence

import (
	"errors"
	"strings"

	"github.com/erp/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// notDeleted hides soft-deleted rows
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// forUpdate locks the selected rows until the transaction ends.
// SQLite ignores the clause.
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// findOne loads a single row into dest, reporting a missing row as
// shared.ErrNotFound
func findOne(db *gorm.DB, dest any, id uuid.UUID) error {
	if err := db.First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.ErrNotFound
		}
		return TranslateError(err)
	}
	return nil
}

// upsert inserts model or overwrites the row with the same primary key.
// Associations are written by the caller.
func upsert(db *gorm.DB, model any) error {
	err := db.Omit(clause.Associations).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(model).Error
	return TranslateError(err)
}

// updateWithVersion overwrites the row only if its stored version is the one
// the aggregate was loaded with. The domain has already bumped version by
// one, so the row must still carry version-1.
func updateWithVersion(db *gorm.DB, model any, id uuid.UUID, version int) error {
	result := db.Model(model).
		Select("*").
		Omit(clause.Associations, "id", "created_at").
		Where("id = ? AND version = ?", id, version-1).
		Updates(model)
	if result.Error != nil {
		return TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// likePattern builds a case-insensitive LIKE pattern for a search term.
// Compare it against LOWER(column).
func likePattern(search string) string {
	s := strings.ToLower(strings.TrimSpace(search))
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}
