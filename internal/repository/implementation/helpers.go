package implementation

import (
	"context"

	"parish-portal-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// guardedUpdate applies values to row id only while every guard column still
// holds its expected value. The single UPDATE is the compare-and-swap; the
// affected-row count tells the caller whether it won.
func guardedUpdate(ctx context.Context, db *gorm.DB, table interface{}, id uuid.UUID, guard map[string]interface{}, values map[string]interface{}) (bool, error) {
	query := db.WithContext(ctx).Model(table).Where("id = ?", id)
	for col, expected := range guard {
		query = query.Where(col+" = ?", expected)
	}
	result := query.Updates(values)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
