package service

import (
	"context"
	"fmt"
	"strings"

	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/pkg/logger"
	"civic-bridge-be/internal/pkg/mailer"
)

const (
	WaitlistSubject = "Join Waitlist"
	UpgradeMessage  = "Civic+ subscriptions are coming soon. Please join the waitlist."
)

type IContactService interface {
	Send(ctx context.Context, req *dto.ContactRequest) error
	JoinWaitlist(ctx context.Context, req *dto.WaitlistRequest) error
	SubscriptionLinks() *dto.SubscriptionLinksResponse
	// Upgrade stands in for checkout; it never upgrades.
	Upgrade(ctx context.Context, caller Caller) *dto.UpgradeResponse
}

type contactService struct {
	emailService    mailer.IEmailService
	logger          logger.ILogger
	donationURL     string
	subscriptionURL string
}

func NewContactService(emailService mailer.IEmailService, log logger.ILogger, donationURL, subscriptionURL string) IContactService {
	return &contactService{
		emailService:    emailService,
		logger:          log,
		donationURL:     donationURL,
		subscriptionURL: subscriptionURL,
	}
}

func (s *contactService) Send(ctx context.Context, req *dto.ContactRequest) error {
	msg := mailer.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}
	if err := s.emailService.SendContactMessage(msg); err != nil {
		s.logger.Error("CONTACT", "Failed to forward contact message", map[string]interface{}{
			"subject": msg.Subject,
			"error":   err.Error(),
		})
		return fmt.Errorf("send contact message: %w", err)
	}
	return nil
}

// JoinWaitlist notifies support and confirms to the visitor. A failed
// confirmation does not fail the request.
func (s *contactService) JoinWaitlist(ctx context.Context, req *dto.WaitlistRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Civic Bridge supporter"
	}

	if err := s.emailService.SendContactMessage(mailer.ContactMessage{
		Name:    name,
		Email:   strings.TrimSpace(req.Email),
		Subject: WaitlistSubject,
		Message: name + " would like to join the Civic+ waitlist.",
	}); err != nil {
		return fmt.Errorf("send waitlist request: %w", err)
	}

	if err := s.emailService.SendWaitlistConfirmation(req.Email, name); err != nil {
		s.logger.Warn("CONTACT", "Failed to send waitlist confirmation", map[string]interface{}{"error": err.Error()})
	}
	return nil
}

func (s *contactService) SubscriptionLinks() *dto.SubscriptionLinksResponse {
	return &dto.SubscriptionLinksResponse{
		DonationURL:     s.donationURL,
		SubscriptionURL: s.subscriptionURL,
	}
}

func (s *contactService) Upgrade(ctx context.Context, caller Caller) *dto.UpgradeResponse {
	s.logger.Info("CONTACT", "Upgrade requested", map[string]interface{}{"session_class": caller.Class})
	return &dto.UpgradeResponse{Upgraded: false, Message: UpgradeMessage}
}
