package dto

type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required,max=5000"`
}

type WaitlistRequest struct {
	Name  string `json:"name" validate:"max=255"`
	Email string `json:"email" validate:"required,email"`
}

type SubscriptionLinksResponse struct {
	DonationURL     string `json:"donation_url"`
	SubscriptionURL string `json:"subscription_url"`
}

type UpgradeResponse struct {
	Upgraded bool   `json:"upgraded"`
	Message  string `json:"message"`
}
