package dto

type StartGuestSessionRequest struct {
	Address string `json:"address" validate:"required,min=5,max=500"`
}

type GuestSessionResponse struct {
	GuestId         string                   `json:"guest_id"`
	Address         string                   `json:"address"`
	ShowTour        bool                     `json:"show_tour"`
	View            string                   `json:"view"`
	Representatives []RepresentativeResponse `json:"representatives"`
}

type DismissTourRequest struct {
	DontShowAgain bool `json:"dont_show_again"`
}
