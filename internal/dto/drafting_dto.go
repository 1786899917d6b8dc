package dto

import "time"

type StartDraftRequest struct {
	RepresentativeId string `json:"representative_id" validate:"required"`
}

type AttachmentPayload struct {
	MimeType string `json:"mime_type" validate:"required"`
	// Data is base64 encoded.
	Data string `json:"data" validate:"required"`
}

type SendMessageRequest struct {
	Text       string             `json:"text" validate:"max=8000"`
	Attachment *AttachmentPayload `json:"attachment"`
}

type UpdateDraftRequest struct {
	Draft string `json:"draft" validate:"required,max=20000"`
}

type ChatMessageResponse struct {
	Id            string    `json:"id"`
	Role          string    `json:"role"`
	Text          string    `json:"text"`
	Timestamp     time.Time `json:"timestamp"`
	HasAttachment bool      `json:"has_attachment"`
	MimeType      string    `json:"mime_type,omitempty"`
}

type DraftSessionResponse struct {
	Id             string                 `json:"id"`
	Representative RepresentativeResponse `json:"representative"`
	Location       string                 `json:"location"`
	SenderName     string                 `json:"sender_name,omitempty"`
	CollectingName bool                   `json:"collecting_name"`
	Messages       []ChatMessageResponse  `json:"messages"`
	Suggestions    []string               `json:"suggestions"`
	Draft          string                 `json:"draft"`
	CanDraft       bool                   `json:"can_draft"`
}

type ChatTurnResponse struct {
	Reply       ChatMessageResponse `json:"reply"`
	Suggestions []string            `json:"suggestions"`
	// DraftStarted is true when the message asked for the letter.
	DraftStarted bool   `json:"draft_started"`
	Draft        string `json:"draft,omitempty"`
}

type DraftResponse struct {
	Draft string `json:"draft"`
}

type WebformResponse struct {
	ContactURL string                `json:"contact_url"`
	Draft      string                `json:"draft"`
	Contact    ContactRecordResponse `json:"contact"`
}
