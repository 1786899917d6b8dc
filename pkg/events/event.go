package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "LETTER_SENT").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeLetterSent   = "LETTER_SENT"
	TypeUserSignedIn = "USER_SIGNED_IN"
)

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// LetterSent is raised once a constituent's letter has gone out by web form
// or been downloaded as PDF.
type LetterSent struct {
	UserID           string    `json:"user_id,omitempty"`
	GuestID          string    `json:"guest_id,omitempty"`
	RepresentativeID string    `json:"representative_id"`
	RepName          string    `json:"rep_name"`
	RepRole          string    `json:"rep_role"`
	RepAvatar        string    `json:"rep_avatar"`
	Topic            string    `json:"topic"`
	Excerpt          string    `json:"excerpt"`
	Method           string    `json:"method"`
	SentAt           time.Time `json:"sent_at"`
}

func (e LetterSent) EventType() string {
	return TypeLetterSent
}

func (e LetterSent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"user_id":           e.UserID,
		"guest_id":          e.GuestID,
		"representative_id": e.RepresentativeID,
		"rep_name":          e.RepName,
		"rep_role":          e.RepRole,
		"rep_avatar":        e.RepAvatar,
		"topic":             e.Topic,
		"excerpt":           e.Excerpt,
		"method":            e.Method,
		"sent_at":           e.SentAt.Format(time.RFC3339),
	}
}

func (e LetterSent) Timestamp() time.Time {
	return e.SentAt
}
