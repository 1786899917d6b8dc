package service

import "errors"

var (
	ErrInvalidView            = errors.New("unknown view")
	ErrAddressRequired        = errors.New("address is required")
	ErrStreetNumberRequired   = errors.New("Please include a street number.")
	ErrInvalidAddress         = errors.New("Please select a valid address.")
	ErrNoRepresentatives      = errors.New("No representatives found for this address.")
	ErrRepresentativeNotFound = errors.New("representative not found")
	ErrGuestLocked            = errors.New("You have already contacted this representative as a guest. Create an account to write again.")
	ErrOnCooldown             = errors.New("This representative was contacted in the last 24 hours. Please try again later.")
	ErrSessionNotFound        = errors.New("drafting session not found")
	ErrNotEnoughContext       = errors.New("Please provide a bit more detail in the chat before generating a draft.")
	ErrNoDraft                = errors.New("no draft has been generated yet")
	ErrWebformRequiresAccount = errors.New("Please create an account to submit through the official web form.")
	ErrAttachmentTooLarge     = errors.New("File is too large. Please upload files smaller than 5MB.")
	ErrUnsupportedAttachment  = errors.New("Only images and PDF documents can be attached.")
	ErrEmptyMessage           = errors.New("message must contain text or an attachment")
	ErrUserNotFound           = errors.New("user not found")
	ErrUnsupportedProvider    = errors.New("unsupported provider")
	ErrAutocompleteDisabled   = errors.New("address autocomplete is not configured")
)

var ErrAlreadySent = errors.New("This letter has already been sent.")
