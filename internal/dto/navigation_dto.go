package dto

type NavigateRequest struct {
	Current      string `json:"current" validate:"required"`
	Requested    string `json:"requested" validate:"required"`
	EducationKey int    `json:"education_key" validate:"min=0"`
}

type NavigationResponse struct {
	View         string `json:"view"`
	EducationKey int    `json:"education_key"`
	Message      string `json:"message,omitempty"`
	Changed      bool   `json:"changed"`
	SessionClass string `json:"session_class"`
	ShowsHeader  bool   `json:"shows_header"`
	ShowsFooter  bool   `json:"shows_footer"`
	HasSidebar   bool   `json:"has_sidebar"`
}
