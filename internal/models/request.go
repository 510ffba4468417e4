package models

import "strings"

// SearchRequest holds normalized trip parameters for one evaluation.
// Dates are provider display strings and are not interpreted by the engine.
type SearchRequest struct {
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departure_date"`
	ReturnDate    *string `json:"return_date,omitempty"`
}

func (r *SearchRequest) Validate() error {
	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))

	if !isAirportCode(r.Origin) {
		return ErrInvalidOrigin
	}
	if !isAirportCode(r.Destination) {
		return ErrInvalidDestination
	}
	if r.Origin == r.Destination {
		return ErrSameAirport
	}
	if r.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	return nil
}

func isAirportCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrInvalidOrigin        ValidationError = "origin must be a 3-letter airport code"
	ErrInvalidDestination   ValidationError = "destination must be a 3-letter airport code"
	ErrSameAirport          ValidationError = "origin and destination must differ"
	ErrMissingDepartureDate ValidationError = "departure_date is required"
)
