package entity

import (
	"time"

	"github.com/google/uuid"
)

type ContactMethod string

const (
	ContactMethodWebform ContactMethod = "webform"
	ContactMethodPDF     ContactMethod = "pdf"
)

type ActivityLog struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	RepName   string
	RepRole   string
	RepAvatar string
	Topic     string
	Excerpt   string
	Method    ContactMethod
	CreatedAt time.Time
}

type DocumentType string

const (
	DocumentTypePDF DocumentType = "pdf"
	DocumentTypeDoc DocumentType = "doc"
)

type ArchivedDocument struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	SizeBytes int64
	Type      DocumentType
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
