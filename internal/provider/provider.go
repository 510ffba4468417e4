// Package provider defines the search provider contract. A provider answers
// one origin/destination/date query with priced offers; anything that can do
// that (an API client, a browser-automation session, a fixture) satisfies it.
package provider

import (
	"context"
	"errors"

	"github.com/dharmasatrya/farescout/internal/models"
)

// Nonstop restricts a query to zero-stop offers.
const Nonstop = 0

// Sort orders a provider can be asked for. Cheapest-first is what the
// sampling logic upstream assumes; a provider that cannot guarantee it
// degrades the cheapest-N sample to N arbitrary offers.
const (
	SortCheapest = "cheapest"
)

// Query is one leg search. MaxStops < 0 means unconstrained.
type Query struct {
	Origin      string
	Destination string
	Date        string
	MaxStops    int
	Sort        string
}

type Provider interface {
	Name() string
	Search(ctx context.Context, q Query) ([]models.Offer, error)
}

// ErrUnavailable reports that the provider could not fulfill a request at
// all (navigation, network, missing data). Zero results is not this error;
// an empty offer list is a valid outcome.
var ErrUnavailable = errors.New("search provider unavailable")

type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Err:      err,
	}
}
