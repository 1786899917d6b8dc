package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Email      string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName   string         `gorm:"type:varchar(255);not null"`
	AvatarURL  *string        `gorm:"type:text"`
	Address    *string        `gorm:"type:text"`
	IsVerified bool           `gorm:"default:false"`
	IsPro      bool           `gorm:"default:false"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Id == uuid.Nil {
		u.Id = uuid.New()
	}
	return nil
}

type UserProvider struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderName   string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_provider_user"`
	ProviderUserId string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_provider_user"`
	AvatarURL      string    `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (UserProvider) TableName() string {
	return "user_providers"
}

func (p *UserProvider) BeforeCreate(tx *gorm.DB) error {
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	return nil
}
