package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"civic-bridge-be/internal/dto"

	"github.com/patrickmn/go-cache"
)

const geoapifyAutocompleteURL = "https://api.geoapify.com/v1/geocode/autocomplete"

type IAddressService interface {
	Autocomplete(ctx context.Context, text string) (*dto.AddressAutocompleteResponse, error)
	Validate(ctx context.Context, req *dto.ValidateAddressRequest) (*dto.ValidateAddressResponse, error)
}

type addressService struct {
	geoapifyKey string
	baseURL     string
	httpClient  *http.Client
	cache       *cache.Cache
}

func NewAddressService(geoapifyKey string) IAddressService {
	return newAddressService(geoapifyKey, geoapifyAutocompleteURL)
}

func newAddressService(geoapifyKey, baseURL string) *addressService {
	return &addressService{
		geoapifyKey: geoapifyKey,
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		cache:       cache.New(time.Hour, 10*time.Minute),
	}
}

// Autocomplete suggests US street addresses for a partial input.
func (s *addressService) Autocomplete(ctx context.Context, text string) (*dto.AddressAutocompleteResponse, error) {
	text = strings.TrimSpace(text)
	if len(text) < 3 {
		return &dto.AddressAutocompleteResponse{Suggestions: []dto.AddressSuggestion{}}, nil
	}
	if s.geoapifyKey == "" {
		return nil, ErrAutocompleteDisabled
	}

	cacheKey := "autocomplete:" + strings.ToLower(text)
	if val, ok := s.cache.Get(cacheKey); ok {
		return val.(*dto.AddressAutocompleteResponse), nil
	}

	params := url.Values{}
	params.Add("text", text)
	params.Add("filter", "countrycode:us")
	params.Add("format", "json")
	params.Add("limit", "5")
	params.Add("apiKey", s.geoapifyKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geoapify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geoapify returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result struct {
		Results []struct {
			Formatted   string  `json:"formatted"`
			HouseNumber string  `json:"housenumber"`
			Street      string  `json:"street"`
			City        string  `json:"city"`
			StateCode   string  `json:"state_code"`
			Postcode    string  `json:"postcode"`
			Lat         float64 `json:"lat"`
			Lon         float64 `json:"lon"`
			ResultType  string  `json:"result_type"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode geoapify response: %w", err)
	}

	suggestions := make([]dto.AddressSuggestion, 0, len(result.Results))
	for _, r := range result.Results {
		if r.Formatted == "" {
			continue
		}
		suggestions = append(suggestions, dto.AddressSuggestion{
			Formatted:   r.Formatted,
			HouseNumber: r.HouseNumber,
			Street:      r.Street,
			City:        r.City,
			StateCode:   strings.ToUpper(r.StateCode),
			Postcode:    r.Postcode,
			Latitude:    r.Lat,
			Longitude:   r.Lon,
			ResultType:  r.ResultType,
		})
	}

	response := &dto.AddressAutocompleteResponse{Suggestions: suggestions}
	s.cache.Set(cacheKey, response, cache.DefaultExpiration)
	return response, nil
}

// Validate accepts a selected suggestion only when it names a house.
func (s *addressService) Validate(ctx context.Context, req *dto.ValidateAddressRequest) (*dto.ValidateAddressResponse, error) {
	formatted := strings.TrimSpace(req.Formatted)
	if formatted == "" {
		return nil, ErrInvalidAddress
	}
	if strings.TrimSpace(req.HouseNumber) == "" {
		return nil, ErrStreetNumberRequired
	}
	return &dto.ValidateAddressResponse{Address: formatted}, nil
}
