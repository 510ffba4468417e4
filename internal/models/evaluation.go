package models

import "github.com/dharmasatrya/farescout/pkg/money"

// ProtectedBaseline is the comparison ceiling derived from the direct route:
// the highest price among the cheapest-N direct offers. Computed once per
// direct search and immutable afterward.
type ProtectedBaseline struct {
	Amount     money.Amount `json:"amount"`
	SampleSize int          `json:"sample_size"`
}

// CandidateItinerary is a two-leg itinerary through one hub, recorded for
// every hub whose legs both priced, whether flagged or not.
type CandidateItinerary struct {
	Hub            string       `json:"hub"`
	FirstLegPrice  money.Amount `json:"first_leg_price"`
	SecondLegPrice money.Amount `json:"second_leg_price"`
	TotalPrice     money.Amount `json:"total_price"`
	Accepted       bool         `json:"accepted"`
}
