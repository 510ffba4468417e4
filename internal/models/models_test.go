package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/farescout/internal/models"
	"github.com/dharmasatrya/farescout/pkg/money"
)

func TestOffer_Normalize(t *testing.T) {
	o := models.Offer{
		Airline:      "Delta",
		PriceDisplay: "$1,024",
		StopsDisplay: "1 stop",
	}
	o.Normalize()

	assert.True(t, o.Priced)
	assert.Equal(t, money.Amount(1024), o.Price)
	assert.Equal(t, 1, o.Stops)
}

func TestOffer_Normalize_UnparsablePrice(t *testing.T) {
	o := models.Offer{PriceDisplay: "Price unavailable", StopsDisplay: "Nonstop"}
	o.Normalize()

	assert.False(t, o.Priced)
	assert.Equal(t, money.Amount(0), o.Price)
	assert.Equal(t, 0, o.Stops)
}

func TestParseStops(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"Nonstop", 0},
		{"nonstop", 0},
		{"Non-stop", 0},
		{"", 0},
		{"1 stop", 1},
		{"2 stops", 2},
		{"3 stops", 3},
		{"gibberish", 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, models.ParseStops(tc.in), "input %q", tc.in)
	}
}

func TestSearchRequest_Validate(t *testing.T) {
	req := models.SearchRequest{
		Origin:        " mia ",
		Destination:   "sea",
		DepartureDate: "Tuesday, December 31,",
	}
	require.NoError(t, req.Validate())

	assert.Equal(t, "MIA", req.Origin)
	assert.Equal(t, "SEA", req.Destination)
}

func TestSearchRequest_Validate_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  models.SearchRequest
		want error
	}{
		{
			name: "bad origin",
			req:  models.SearchRequest{Origin: "MIAMI", Destination: "SEA", DepartureDate: "x"},
			want: models.ErrInvalidOrigin,
		},
		{
			name: "bad destination",
			req:  models.SearchRequest{Origin: "MIA", Destination: "S1A", DepartureDate: "x"},
			want: models.ErrInvalidDestination,
		},
		{
			name: "same airport",
			req:  models.SearchRequest{Origin: "MIA", Destination: "mia", DepartureDate: "x"},
			want: models.ErrSameAirport,
		},
		{
			name: "missing date",
			req:  models.SearchRequest{Origin: "MIA", Destination: "SEA"},
			want: models.ErrMissingDepartureDate,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.req.Validate(), tc.want)
		})
	}
}
