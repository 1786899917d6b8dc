package mailer

import (
	"fmt"
	"html"
	"log"

	"gopkg.in/gomail.v2"
)

type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type IEmailService interface {
	SendContactMessage(msg ContactMessage) error
	SendWaitlistConfirmation(toEmail, name string) error
}

// Sender is the part of *gomail.Dialer the service needs.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	sender       Sender
	senderEmail  string
	senderName   string
	supportInbox string
}

func NewEmailService(host string, port int, username, password, senderName, supportInbox string) IEmailService {
	return NewEmailServiceWithSender(gomail.NewDialer(host, port, username, password), username, senderName, supportInbox)
}

func NewEmailServiceWithSender(sender Sender, senderEmail, senderName, supportInbox string) IEmailService {
	return &emailService{
		sender:       sender,
		senderEmail:  senderEmail,
		senderName:   senderName,
		supportInbox: supportInbox,
	}
}

// SendContactMessage forwards a visitor's message to the support inbox with
// Reply-To set to the visitor.
func (s *emailService) SendContactMessage(msg ContactMessage) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", s.supportInbox)
	m.SetAddressHeader("Reply-To", msg.Email, msg.Name)
	m.SetHeader("Subject", fmt.Sprintf("[Contact] %s", msg.Subject))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<p><strong>From:</strong> %s &lt;%s&gt;</p>
			<p style="white-space: pre-wrap;">%s</p>
		</div>
	`, html.EscapeString(msg.Subject), html.EscapeString(msg.Name), html.EscapeString(msg.Email), html.EscapeString(msg.Message))

	m.SetBody("text/html", body)

	if err := s.sender.DialAndSend(m); err != nil {
		log.Printf("[MAILER ERROR] Failed to forward contact message from %s: %v", msg.Email, err)
		return err
	}

	log.Printf("[MAILER] Contact message from %s forwarded", msg.Email)
	return nil
}

func (s *emailService) SendWaitlistConfirmation(toEmail, name string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "You're on the Civic+ waitlist")

	greeting := "Hello"
	if name != "" {
		greeting = "Hello " + html.EscapeString(name)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s,</h2>
			<p>Thanks for your interest in Civic+. We'll email you as soon as subscriptions open.</p>
			<p>The Civic Bridge team</p>
		</div>
	`, greeting)

	m.SetBody("text/html", body)

	if err := s.sender.DialAndSend(m); err != nil {
		log.Printf("[MAILER ERROR] Failed to send waitlist confirmation to %s: %v", toEmail, err)
		return err
	}
	return nil
}
