package models

import (
	"strings"

	"github.com/dharmasatrya/farescout/pkg/money"
)

// Offer is a single priced flight leg as returned by a search provider.
// Time, duration, and emissions fields are provider display strings and are
// carried through untouched; only Price and Stops are parsed.
type Offer struct {
	Airline            string `json:"airline"`
	DepartureTime      string `json:"departure_time"`
	ArrivalTime        string `json:"arrival_time"`
	Duration           string `json:"duration"`
	StopsDisplay       string `json:"stops"`
	PriceDisplay       string `json:"price"`
	CO2Emissions       string `json:"co2_emissions,omitempty"`
	EmissionsVariation string `json:"emissions_variation,omitempty"`

	// Parsed fields, populated by Normalize.
	Stops  int          `json:"-"`
	Price  money.Amount `json:"-"`
	Priced bool         `json:"-"`
}

// Normalize parses the display price and stop count. An offer whose price
// cannot be parsed keeps Priced == false and is excluded from all numeric
// comparisons downstream; it is never treated as zero.
func (o *Offer) Normalize() {
	if amount, err := money.Parse(o.PriceDisplay); err == nil {
		o.Price = amount
		o.Priced = true
	}
	o.Stops = ParseStops(o.StopsDisplay)
}

// ParseStops converts a stops display string ("Nonstop", "1 stop", "2 stops")
// into a count. Unrecognized strings count as nonstop.
func ParseStops(s string) int {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || strings.HasPrefix(s, "nonstop") || strings.HasPrefix(s, "non-stop") {
		return 0
	}

	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
