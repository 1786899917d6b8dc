package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Avatar     string    `json:"avatar"`
	Address    string    `json:"address,omitempty"`
	IsVerified bool      `json:"is_verified"`
	IsPro      bool      `json:"is_pro"`
	CreatedAt  time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=255"`
	Avatar string `json:"avatar" validate:"omitempty,url"`
}

type UpdateAddressRequest struct {
	Address string `json:"address" validate:"required,min=5,max=500"`
}

type UpdateSubscriptionRequest struct {
	IsPro bool `json:"is_pro"`
}

type LoginResponse struct {
	AccessToken string              `json:"access_token"`
	IsNewUser   bool                `json:"is_new_user"`
	User        UserProfileResponse `json:"user"`
	View        string              `json:"view"`
}
