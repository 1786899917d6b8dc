package entity

import (
	"time"

	"civic-bridge-be/pkg/legislators"
	"civic-bridge-be/pkg/strategist"

	"github.com/google/uuid"
)

type OwnerKind string

const (
	OwnerUser  OwnerKind = "user"
	OwnerGuest OwnerKind = "guest"
)

type Attachment struct {
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

type ChatMessage struct {
	Id         uuid.UUID   `json:"id"`
	Role       string      `json:"role"`
	Text       string      `json:"text"`
	Timestamp  time.Time   `json:"timestamp"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

// DraftSession is the state of one drafting portal visit: the chosen
// representative, the interview so far and the working letter.
type DraftSession struct {
	Id             uuid.UUID
	OwnerKind      OwnerKind
	OwnerId        string
	SenderName     string
	Location       string
	AwaitingName   bool
	Representative legislators.Representative
	Messages       []ChatMessage
	Suggestions    []string
	Draft          string
	Evidence       *Attachment
	// ContactRecorded is set once the letter has been sent or downloaded.
	ContactRecorded bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OwnedBy reports whether the session belongs to the given owner.
func (s *DraftSession) OwnedBy(kind OwnerKind, id string) bool {
	return s.OwnerKind == kind && s.OwnerId == id
}

// Turns is the conversation in the shape the strategist prompts expect.
func (s *DraftSession) Turns() []strategist.Turn {
	turns := make([]strategist.Turn, len(s.Messages))
	for i, m := range s.Messages {
		turns[i] = strategist.Turn{Role: m.Role, Text: m.Text}
	}
	return turns
}
