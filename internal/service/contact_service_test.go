package service

import (
	"context"
	"errors"
	"testing"

	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/pkg/mailer"
	"civic-bridge-be/pkg/navigation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	messages      []mailer.ContactMessage
	confirmations []string
	sendErr       error
	confirmErr    error
}

func (m *fakeMailer) SendContactMessage(msg mailer.ContactMessage) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *fakeMailer) SendWaitlistConfirmation(toEmail, name string) error {
	if m.confirmErr != nil {
		return m.confirmErr
	}
	m.confirmations = append(m.confirmations, toEmail)
	return nil
}

func newContactService(m *fakeMailer) IContactService {
	return NewContactService(m, testLogger(), "https://donate.example.org", "https://civicplus.example.org")
}

func TestSendContactMessage(t *testing.T) {
	m := &fakeMailer{}
	err := newContactService(m).Send(context.Background(), &dto.ContactRequest{
		Name:    " Dana Reyes ",
		Email:   "dana@example.com ",
		Subject: " Feedback",
		Message: "Love the app.",
	})
	require.NoError(t, err)
	require.Len(t, m.messages, 1)
	assert.Equal(t, mailer.ContactMessage{
		Name:    "Dana Reyes",
		Email:   "dana@example.com",
		Subject: "Feedback",
		Message: "Love the app.",
	}, m.messages[0])
}

func TestSendContactMessageMailerDown(t *testing.T) {
	m := &fakeMailer{sendErr: errors.New("smtp: connection refused")}
	err := newContactService(m).Send(context.Background(), &dto.ContactRequest{
		Name: "Dana", Email: "dana@example.com", Subject: "Hi", Message: "Hello",
	})
	assert.Error(t, err)
}

func TestJoinWaitlist(t *testing.T) {
	m := &fakeMailer{confirmErr: errors.New("mailbox full")}
	err := newContactService(m).JoinWaitlist(context.Background(), &dto.WaitlistRequest{Email: "sam@example.com"})
	require.NoError(t, err)
	require.Len(t, m.messages, 1)
	assert.Equal(t, WaitlistSubject, m.messages[0].Subject)
	assert.Equal(t, "Civic Bridge supporter", m.messages[0].Name)
	assert.Contains(t, m.messages[0].Message, "Civic+ waitlist")
}

func TestUpgradeNeverUpgrades(t *testing.T) {
	svc := newContactService(&fakeMailer{})

	res := svc.Upgrade(context.Background(), Caller{Class: navigation.Authenticated})
	assert.False(t, res.Upgraded)
	assert.Equal(t, UpgradeMessage, res.Message)

	links := svc.SubscriptionLinks()
	assert.Equal(t, "https://donate.example.org", links.DonationURL)
	assert.Equal(t, "https://civicplus.example.org", links.SubscriptionURL)
}
