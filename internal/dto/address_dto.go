package dto

type AddressSuggestion struct {
	Formatted   string  `json:"formatted"`
	HouseNumber string  `json:"house_number,omitempty"`
	Street      string  `json:"street,omitempty"`
	City        string  `json:"city,omitempty"`
	StateCode   string  `json:"state_code,omitempty"`
	Postcode    string  `json:"postcode,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	ResultType  string  `json:"result_type,omitempty"`
}

type AddressAutocompleteResponse struct {
	Suggestions []AddressSuggestion `json:"suggestions"`
}

type ValidateAddressRequest struct {
	Formatted   string `json:"formatted" validate:"required"`
	HouseNumber string `json:"house_number"`
}

type ValidateAddressResponse struct {
	Address string `json:"address"`
}
