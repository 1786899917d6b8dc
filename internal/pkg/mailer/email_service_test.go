package mailer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type captureSender struct {
	sent []*gomail.Message
	err  error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.sent = append(c.sent, m...)
	return c.err
}

func TestSendContactMessage(t *testing.T) {
	sender := &captureSender{}
	svc := NewEmailServiceWithSender(sender, "noreply@civicbridge.org", "Civic Bridge", "support@civicbridge.org")

	err := svc.SendContactMessage(ContactMessage{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Subject: "Join Waitlist",
		Message: "<b>hi</b>",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	m := sender.sent[0]
	assert.Equal(t, []string{"support@civicbridge.org"}, m.GetHeader("To"))
	assert.Equal(t, []string{"[Contact] Join Waitlist"}, m.GetHeader("Subject"))
	assert.Contains(t, m.GetHeader("Reply-To")[0], "jane@example.com")

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<b>hi</b>")
}

func TestSendWaitlistConfirmationError(t *testing.T) {
	sender := &captureSender{err: errors.New("smtp down")}
	svc := NewEmailServiceWithSender(sender, "noreply@civicbridge.org", "Civic Bridge", "support@civicbridge.org")

	err := svc.SendWaitlistConfirmation("jane@example.com", "Jane")
	assert.Error(t, err)
	assert.Equal(t, []string{"jane@example.com"}, sender.sent[0].GetHeader("To"))
}
