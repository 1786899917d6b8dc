package dto

import "time"

type RepresentativeResponse struct {
	Id                   string     `json:"id"`
	Name                 string     `json:"name"`
	Role                 string     `json:"role"`
	Level                string     `json:"level"`
	Party                string     `json:"party"`
	ImageURL             string     `json:"image_url"`
	ContactURL           string     `json:"contact_url,omitempty"`
	MailingAddress       string     `json:"mailing_address"`
	LastContacted        *time.Time `json:"last_contacted"`
	LifetimeContactCount int        `json:"lifetime_contact_count"`

	Contactable      bool       `json:"contactable"`
	UnavailableCause string     `json:"unavailable_reason,omitempty"`
	AvailableAt      *time.Time `json:"available_at,omitempty"`
	CooldownLeft     string     `json:"cooldown_remaining,omitempty"`
}

type RepresentativeListResponse struct {
	Address         string                   `json:"address"`
	Representatives []RepresentativeResponse `json:"representatives"`
}

type RecordContactRequest struct {
	Method  string `json:"method" validate:"required,oneof=webform pdf"`
	Topic   string `json:"topic" validate:"max=500"`
	Excerpt string `json:"excerpt" validate:"max=2000"`
}

type ContactRecordResponse struct {
	ReferenceId    string                 `json:"reference_id"`
	Method         string                 `json:"method"`
	Representative RepresentativeResponse `json:"representative"`
	// MailingAddress is echoed verbatim for the success screen.
	MailingAddress string   `json:"mailing_address"`
	AddressLines   []string `json:"address_lines"`
	View           string   `json:"view"`
}
