package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RepresentativeContact struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_representative"`
	RepresentativeId string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_representative"`
	LastContactedAt  *time.Time
	LifetimeCount    int       `gorm:"not null;default:0"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (RepresentativeContact) TableName() string {
	return "representative_contacts"
}

func (c *RepresentativeContact) BeforeCreate(tx *gorm.DB) error {
	if c.Id == uuid.Nil {
		c.Id = uuid.New()
	}
	return nil
}
