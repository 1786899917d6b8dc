package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Specification narrows, orders or pages a query.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// ApplyAll folds specs onto db in order.
func ApplyAll(db *gorm.DB, specs ...Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

type ByID struct {
	ID uuid.UUID
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

type newestFirst struct{}

func (newestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

// NewestFirst orders by creation time, latest first.
var NewestFirst Specification = newestFirst{}

// Pagination is a LIMIT/OFFSET window. A zero Limit leaves the query unbounded.
type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	if s.Limit <= 0 {
		return db.Offset(s.Offset)
	}
	return db.Limit(s.Limit).Offset(s.Offset)
}
