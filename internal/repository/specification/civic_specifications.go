package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// UserOwnedBy scopes rows that carry a user_id column to one account.
type UserOwnedBy struct {
	UserID uuid.UUID
}

func (s UserOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByRepresentative struct {
	ID string
}

func (s ByRepresentative) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("representative_id = ?", s.ID)
}

type ByRepresentativeIDs struct {
	IDs []string
}

func (s ByRepresentativeIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("representative_id IN ?", s.IDs)
}
