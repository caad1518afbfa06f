package specification

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// ByStringID matches text primary keys such as payment intent ids.
type ByStringID struct {
	ID string
}

func (s ByStringID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

var sortable = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"date":       true,
	"start":      true,
}

// OrderBy only accepts whitelisted columns; anything else falls back to created_at.
type OrderBy struct {
	Field string
	Desc  bool
}

func (s OrderBy) Apply(db *gorm.DB) *gorm.DB {
	field := s.Field
	if !sortable[field] {
		field = "created_at"
	}
	direction := "ASC"
	if s.Desc {
		direction = "DESC"
	}
	return db.Order(fmt.Sprintf("%q %s", field, direction))
}

func NewestFirst() Specification {
	return OrderBy{Field: "created_at", Desc: true}
}

type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}
