package mapsapi

import (
	"errors"
	"fmt"
)

// Status values returned by the Maps web services.
const (
	StatusOK            = "OK"
	StatusZeroResults   = "ZERO_RESULTS"
	StatusRequestDenied = "REQUEST_DENIED"
	StatusOverLimit     = "OVER_QUERY_LIMIT"
)

var (
	// ErrNotAuthenticated is returned when the API rejects the configured key.
	ErrNotAuthenticated = errors.New("the Google Maps API denied the request, check the configured API key")
	// ErrNoResults is returned when a geocode lookup matches nothing.
	ErrNoResults = errors.New("the Google Maps API returned no results")
	// ErrUnknown is the fallback for responses we can't make sense of.
	ErrUnknown = errors.New("an unknown error occurred talking to the Google Maps API")
)

// APIError represents a non-OK status reported in a Maps API response body.
type APIError struct {
	Status  string `json:"status"`
	Message string `json:"error_message"`
}

func (e APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("(%s) %s", e.Status, e.Message)
	}
	return e.Status
}
