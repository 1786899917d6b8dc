package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"civic-bridge-be/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutocomplete(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "1600 amph", r.URL.Query().Get("text"))
		assert.Equal(t, "countrycode:us", r.URL.Query().Get("filter"))
		assert.Equal(t, "key", r.URL.Query().Get("apiKey"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"formatted":"1600 Amphitheatre Pkwy, Mountain View, CA 94043, United States of America","housenumber":"1600","street":"Amphitheatre Pkwy","city":"Mountain View","state_code":"ca","postcode":"94043","result_type":"building"},
			{"formatted":""}
		]}`))
	}))
	defer srv.Close()

	svc := newAddressService("key", srv.URL)
	ctx := context.Background()

	res, err := svc.Autocomplete(ctx, "1600 amph")
	require.NoError(t, err)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "CA", res.Suggestions[0].StateCode)
	assert.Equal(t, "1600", res.Suggestions[0].HouseNumber)

	_, err = svc.Autocomplete(ctx, "1600 AMPH")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAutocompleteShortInput(t *testing.T) {
	svc := newAddressService("", "http://127.0.0.1:0")

	res, err := svc.Autocomplete(context.Background(), " 16 ")
	require.NoError(t, err)
	assert.Empty(t, res.Suggestions)

	_, err = svc.Autocomplete(context.Background(), "1600 Amph")
	assert.ErrorIs(t, err, ErrAutocompleteDisabled)
}

func TestAutocompleteUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newAddressService("bad", srv.URL).Autocomplete(context.Background(), "1600 Amph")
	assert.Error(t, err)
}

func TestValidateAddress(t *testing.T) {
	svc := NewAddressService("")
	ctx := context.Background()

	res, err := svc.Validate(ctx, &dto.ValidateAddressRequest{Formatted: " " + testAddress, HouseNumber: "1600"})
	require.NoError(t, err)
	assert.Equal(t, testAddress, res.Address)

	_, err = svc.Validate(ctx, &dto.ValidateAddressRequest{Formatted: "Amphitheatre Pkwy, Mountain View, CA"})
	assert.ErrorIs(t, err, ErrStreetNumberRequired)

	_, err = svc.Validate(ctx, &dto.ValidateAddressRequest{Formatted: "  "})
	assert.ErrorIs(t, err, ErrInvalidAddress)
}
