package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ActivityLog struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	RepName   string    `gorm:"type:varchar(255);not null"`
	RepRole   string    `gorm:"type:varchar(255)"`
	RepAvatar string    `gorm:"type:text"`
	Topic     string    `gorm:"type:text"`
	Excerpt   string    `gorm:"type:text"`
	Method    string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

func (a *ActivityLog) BeforeCreate(tx *gorm.DB) error {
	if a.Id == uuid.Nil {
		a.Id = uuid.New()
	}
	return nil
}

type ArchivedDocument struct {
	Id        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID         `gorm:"type:uuid;not null;index"`
	Title     string            `gorm:"type:varchar(255);not null"`
	SizeBytes int64             `gorm:"not null;default:0"`
	Type      string            `gorm:"type:varchar(10);not null"`
	Metadata  datatypes.JSONMap `gorm:"type:json"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index"`
}

func (ArchivedDocument) TableName() string {
	return "archived_documents"
}

func (d *ArchivedDocument) BeforeCreate(tx *gorm.DB) error {
	if d.Id == uuid.Nil {
		d.Id = uuid.New()
	}
	return nil
}
