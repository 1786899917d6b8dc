package entity

import (
	"time"

	"github.com/google/uuid"
)

// RepresentativeContact is one user's contact history with one representative.
type RepresentativeContact struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	RepresentativeId string
	LastContactedAt  *time.Time
	LifetimeCount    int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
