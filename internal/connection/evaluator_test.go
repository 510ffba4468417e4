package connection_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/farescout/internal/connection"
	"github.com/dharmasatrya/farescout/internal/models"
	"github.com/dharmasatrya/farescout/internal/provider"
	"github.com/dharmasatrya/farescout/pkg/money"
)

// stubSearcher maps "ORIGIN-DEST" routes to canned prices and records every
// query it serves, so tests can assert which legs were actually searched.
type stubSearcher struct {
	prices  map[string][]string
	errs    map[string]error
	queried []string
}

func (s *stubSearcher) Fetch(ctx context.Context, q provider.Query) ([]models.Offer, error) {
	route := q.Origin + "-" + q.Destination
	s.queried = append(s.queried, route)

	if err, ok := s.errs[route]; ok {
		return nil, err
	}

	out := []models.Offer{}
	for _, p := range s.prices[route] {
		o := models.Offer{PriceDisplay: p, StopsDisplay: "Nonstop"}
		o.Normalize()
		out = append(out, o)
	}
	return out, nil
}

var _ connection.Searcher = (*stubSearcher)(nil)

func request() models.SearchRequest {
	return models.SearchRequest{
		Origin:        "MIA",
		Destination:   "SEA",
		DepartureDate: "Tuesday, December 31,",
	}
}

func bl(amount money.Amount, sample int) models.ProtectedBaseline {
	return models.ProtectedBaseline{Amount: amount, SampleSize: sample}
}

func TestEvaluate_SkipsOriginAndDestinationHubs(t *testing.T) {
	s := &stubSearcher{}
	e := connection.New(s, connection.Config{Hubs: []string{"MIA", "SEA"}})

	candidates, err := e.Evaluate(context.Background(), request(), bl(320, 3))

	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Empty(t, s.queried, "a same-airport hop must not trigger any search")
}

func TestEvaluate_PrunesSecondLegWhenFirstNotCompetitive(t *testing.T) {
	s := &stubSearcher{prices: map[string][]string{
		"MIA-ORD": {"$400"},
	}}
	e := connection.New(s, connection.Config{Hubs: []string{"ORD"}})

	candidates, err := e.Evaluate(context.Background(), request(), bl(320, 3))

	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Equal(t, []string{"MIA-ORD"}, s.queried, "leg 2 must not be searched")
}

func TestEvaluate_UnreachableFirstLegSkipsSecond(t *testing.T) {
	s := &stubSearcher{prices: map[string][]string{
		"MIA-DEN": {},
	}}
	e := connection.New(s, connection.Config{Hubs: []string{"DEN"}})

	candidates, err := e.Evaluate(context.Background(), request(), bl(320, 3))

	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Equal(t, []string{"MIA-DEN"}, s.queried)
}

func TestEvaluate_RecordsCandidateWhetherFlaggedOrNot(t *testing.T) {
	s := &stubSearcher{prices: map[string][]string{
		"MIA-DFW": {"$200", "$214"},
		"DFW-SEA": {"$100", "$129"},
	}}
	e := connection.New(s, connection.Config{Hubs: []string{"DFW"}})

	candidates, err := e.Evaluate(context.Background(), request(), bl(320, 3))

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.Equal(t, "DFW", c.Hub)
	assert.Equal(t, money.Amount(200), c.FirstLegPrice)
	assert.Equal(t, money.Amount(100), c.SecondLegPrice)
	assert.Equal(t, money.Amount(300), c.TotalPrice)
	assert.False(t, c.Accepted, "300 does not exceed 320+150")
}

func TestEvaluate_FlagOverpricedRule(t *testing.T) {
	tests := []struct {
		name  string
		leg1  string
		leg2  string
		want  bool
		total money.Amount
	}{
		// baseline 300, margin 150: flagged iff total > 450
		{name: "total 500 flagged", leg1: "$250", leg2: "$250", total: 500, want: true},
		{name: "total 400 not flagged", leg1: "$250", leg2: "$150", total: 400, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := &stubSearcher{prices: map[string][]string{
				"MIA-DFW": {tc.leg1},
				"DFW-SEA": {tc.leg2},
			}}
			e := connection.New(s, connection.Config{
				Hubs:          []string{"DFW"},
				SavingsMargin: 150,
			})

			candidates, err := e.Evaluate(context.Background(), request(), bl(300, 3))

			require.NoError(t, err)
			require.Len(t, candidates, 1)
			assert.Equal(t, tc.total, candidates[0].TotalPrice)
			assert.Equal(t, tc.want, candidates[0].Accepted)
		})
	}
}

func TestEvaluate_FlagSavingsRule(t *testing.T) {
	s := &stubSearcher{prices: map[string][]string{
		"MIA-DFW": {"$60"},
		"DFW-SEA": {"$60"},
	}}
	e := connection.New(s, connection.Config{
		Hubs:          []string{"DFW"},
		SavingsMargin: 150,
		Rule:          connection.RuleFlagSavings,
	})

	// total 120 + margin 150 < baseline 300
	candidates, err := e.Evaluate(context.Background(), request(), bl(300, 3))

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.True(t, candidates[0].Accepted)
}

func TestEvaluate_HubFailureIsIsolated(t *testing.T) {
	s := &stubSearcher{
		prices: map[string][]string{
			"MIA-ORD": {"$150"},
			"MIA-DFW": {"$200"},
			"DFW-SEA": {"$100"},
		},
		errs: map[string]error{
			"ORD-SEA": provider.ErrUnavailable,
		},
	}
	e := connection.New(s, connection.Config{Hubs: []string{"ORD", "DFW"}})

	candidates, err := e.Evaluate(context.Background(), request(), bl(320, 3))

	require.NoError(t, err)
	require.Len(t, candidates, 1, "failed hub contributes nothing; next hub still runs")
	assert.Equal(t, "DFW", candidates[0].Hub)
}

func TestEvaluate_FirstLegFailureIsIsolated(t *testing.T) {
	s := &stubSearcher{
		prices: map[string][]string{
			"MIA-DFW": {"$200"},
			"DFW-SEA": {"$100"},
		},
		errs: map[string]error{
			"MIA-ORD": provider.ErrUnavailable,
		},
	}
	e := connection.New(s, connection.Config{Hubs: []string{"ORD", "DFW"}})

	candidates, err := e.Evaluate(context.Background(), request(), bl(320, 3))

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "DFW", candidates[0].Hub)
}

func TestEvaluate_ZeroBaselinePrunesEverything(t *testing.T) {
	s := &stubSearcher{prices: map[string][]string{
		"MIA-DFW": {"$10"},
	}}
	e := connection.New(s, connection.Config{Hubs: []string{"DFW"}})

	// Degenerate baseline from an empty direct search: no leg-1 price can be
	// below zero, so no second leg is ever fetched.
	candidates, err := e.Evaluate(context.Background(), request(), bl(0, 0))

	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Equal(t, []string{"MIA-DFW"}, s.queried)
}

func TestEvaluate_HubOrderPreserved(t *testing.T) {
	s := &stubSearcher{prices: map[string][]string{
		"MIA-ATL": {"$145"}, "ATL-SEA": {"$210"},
		"MIA-DFW": {"$200"}, "DFW-SEA": {"$100"},
	}}
	e := connection.New(s, connection.Config{Hubs: []string{"DFW", "ATL"}})

	candidates, err := e.Evaluate(context.Background(), request(), bl(320, 3))

	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "DFW", candidates[0].Hub)
	assert.Equal(t, "ATL", candidates[1].Hub)
}

func TestEvaluate_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &stubSearcher{}
	e := connection.New(s, connection.Config{Hubs: []string{"DFW"}})

	_, err := e.Evaluate(ctx, request(), bl(320, 3))

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, s.queried)
}

func TestEvaluate_NonstopConstraintOnLegs(t *testing.T) {
	var queries []provider.Query
	s := &recordingSearcher{record: &queries, prices: map[string][]string{
		"MIA-DFW": {"$200"},
		"DFW-SEA": {"$100"},
	}}
	e := connection.New(s, connection.Config{Hubs: []string{"DFW"}})

	_, err := e.Evaluate(context.Background(), request(), bl(320, 3))

	require.NoError(t, err)
	require.Len(t, queries, 2)
	for _, q := range queries {
		assert.Equal(t, provider.Nonstop, q.MaxStops)
		assert.Equal(t, provider.SortCheapest, q.Sort)
	}
}

type recordingSearcher struct {
	record *[]provider.Query
	prices map[string][]string
}

func (s *recordingSearcher) Fetch(ctx context.Context, q provider.Query) ([]models.Offer, error) {
	*s.record = append(*s.record, q)
	out := []models.Offer{}
	for _, p := range s.prices[q.Origin+"-"+q.Destination] {
		o := models.Offer{PriceDisplay: p, StopsDisplay: "Nonstop"}
		o.Normalize()
		out = append(out, o)
	}
	return out, nil
}
