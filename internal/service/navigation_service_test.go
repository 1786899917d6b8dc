package service

import (
	"context"
	"testing"

	"civic-bridge-be/internal/dto"
	"civic-bridge-be/pkg/navigation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialView(t *testing.T) {
	svc := NewNavigationService()
	ctx := context.Background()

	res := svc.Initial(ctx, Caller{Class: navigation.Anonymous})
	assert.Equal(t, "LANDING", res.View)
	assert.False(t, res.ShowsHeader)

	res = svc.Initial(ctx, guestCaller("g"))
	assert.Equal(t, "DASHBOARD", res.View)
	assert.Equal(t, "guest", res.SessionClass)
	assert.True(t, res.ShowsHeader)
}

func TestNavigateRedirectsGuestFromArchive(t *testing.T) {
	svc := NewNavigationService()

	res, err := svc.Navigate(context.Background(), guestCaller("g"), &dto.NavigateRequest{
		Current:   "dashboard",
		Requested: "ARCHIVE",
	})
	require.NoError(t, err)
	assert.Equal(t, "LOGIN", res.View)
	assert.Equal(t, navigation.MessageHistoryRequiresAccount, res.Message)
	assert.True(t, res.Changed)
}

func TestNavigateEducationAdvancesKey(t *testing.T) {
	svc := NewNavigationService()

	res, err := svc.Navigate(context.Background(), guestCaller("g"), &dto.NavigateRequest{
		Current:      "EDUCATION",
		Requested:    "EDUCATION",
		EducationKey: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "EDUCATION", res.View)
	assert.Equal(t, 3, res.EducationKey)
}

func TestNavigateRejectsUnknownView(t *testing.T) {
	svc := NewNavigationService()

	_, err := svc.Navigate(context.Background(), Caller{Class: navigation.Anonymous}, &dto.NavigateRequest{
		Current:   "LANDING",
		Requested: "NOWHERE",
	})
	assert.ErrorIs(t, err, ErrInvalidView)
}
