package service

import (
	"civic-bridge-be/internal/entity"
	"civic-bridge-be/pkg/navigation"

	"github.com/google/uuid"
)

// Caller identifies who a service call is made for.
type Caller struct {
	Class   navigation.SessionClass
	UserID  uuid.UUID
	GuestID string
}

func (c Caller) IsGuest() bool {
	return c.Class == navigation.Guest
}

func (c Caller) IsAuthenticated() bool {
	return c.Class == navigation.Authenticated
}

// owner is the drafting session owner key for the caller.
func (c Caller) owner() (entity.OwnerKind, string) {
	if c.IsAuthenticated() {
		return entity.OwnerUser, c.UserID.String()
	}
	return entity.OwnerGuest, c.GuestID
}
