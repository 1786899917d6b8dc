package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id         uuid.UUID
	Email      string
	FullName   string
	AvatarURL  *string
	Address    *string
	IsVerified bool
	IsPro      bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasAddress reports whether the profile carries a usable mailing address.
func (u *User) HasAddress() bool {
	return u.Address != nil && *u.Address != ""
}

type UserProvider struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	ProviderName   string
	ProviderUserId string
	AvatarURL      string
	CreatedAt      time.Time
}
