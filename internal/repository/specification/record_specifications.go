package specification

import (
	"time"

	"gorm.io/gorm"
)

// WithRequester preloads the owning account (name, email) for admin listings and emails.
type WithRequester struct{}

func (s WithRequester) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "email")
	})
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type ByRecord struct {
	Kind string
	ID   interface{}
}

func (s ByRecord) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("record_kind = ? AND record_id = ?", s.Kind, s.ID)
}

type CreatedAfter struct {
	Since time.Time
}

func (s CreatedAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.Since)
}
