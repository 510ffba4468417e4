// Package connection evaluates two-leg itineraries through candidate hubs
// against the protected direct baseline.
package connection

import (
	"context"
	"log"

	"github.com/dharmasatrya/farescout/internal/baseline"
	"github.com/dharmasatrya/farescout/internal/models"
	"github.com/dharmasatrya/farescout/internal/provider"
	"github.com/dharmasatrya/farescout/pkg/money"
)

// Rule selects the decision direction for flagging a candidate.
type Rule int

const (
	// RuleFlagOverpriced flags a candidate whose two-leg total exceeds
	// baseline + margin: the connection is priced above the protected direct
	// ceiling by more than the margin, a pricing anomaly worth the
	// traveler's attention. This matches the behavior of the original
	// engine.
	RuleFlagOverpriced Rule = iota
	// RuleFlagSavings flags a candidate whose total undercuts the baseline
	// by more than the margin (total + margin < baseline): the connection
	// saves enough to justify the extra risk of an unprotected two-leg trip.
	RuleFlagSavings
)

// DefaultSavingsMargin is the amount a candidate total must differ from the
// baseline by, in major currency units, before it is flagged.
const DefaultSavingsMargin money.Amount = 150

// DefaultHubs is the stock candidate set: large US connecting airports.
var DefaultHubs = []string{"ATL", "DFW", "ORD", "DEN", "CLT", "PHX", "IAH", "LAS"}

// Searcher is the leg-fetch dependency, satisfied by *orchestrator.Orchestrator.
type Searcher interface {
	Fetch(ctx context.Context, q provider.Query) ([]models.Offer, error)
}

type Config struct {
	// Hubs is the candidate set, tried in order. Defaults to DefaultHubs.
	Hubs []string
	// SavingsMargin defaults to DefaultSavingsMargin.
	SavingsMargin money.Amount
	// SampleSize bounds the cheapest-N window per leg. Defaults to
	// baseline.DefaultSampleSize.
	SampleSize int
	// Rule defaults to RuleFlagOverpriced.
	Rule Rule
}

type Evaluator struct {
	searcher Searcher
	config   Config
}

func New(searcher Searcher, config Config) *Evaluator {
	if config.Hubs == nil {
		config.Hubs = DefaultHubs
	}
	if config.SavingsMargin == 0 {
		config.SavingsMargin = DefaultSavingsMargin
	}
	if config.SampleSize <= 0 {
		config.SampleSize = baseline.DefaultSampleSize
	}
	return &Evaluator{
		searcher: searcher,
		config:   config,
	}
}

// Evaluate tries every configured hub as a connection point for the request
// and returns one CandidateItinerary per hub that priced both legs, flagged
// or not. Hubs are independent: a provider failure on either leg drops that
// hub and the loop continues.
//
// Leg 2 is searched only when the hub's leg-1 minimum is strictly below the
// baseline — a first leg that alone matches the direct ceiling can never
// yield a competitive total, so the second provider call is skipped. With the
// degenerate zero baseline this prunes every hub, which is the intended
// "no threshold achievable" outcome.
func (e *Evaluator) Evaluate(ctx context.Context, req models.SearchRequest, bl models.ProtectedBaseline) ([]models.CandidateItinerary, error) {
	candidates := []models.CandidateItinerary{}

	for _, hub := range e.config.Hubs {
		if ctx.Err() != nil {
			return candidates, ctx.Err()
		}
		if hub == req.Origin || hub == req.Destination {
			continue
		}

		candidate, ok := e.evaluateHub(ctx, req, bl, hub)
		if ok {
			candidates = append(candidates, candidate)
		}
	}

	return candidates, nil
}

func (e *Evaluator) evaluateHub(ctx context.Context, req models.SearchRequest, bl models.ProtectedBaseline, hub string) (models.CandidateItinerary, bool) {
	firstLeg, err := e.searcher.Fetch(ctx, provider.Query{
		Origin:      req.Origin,
		Destination: hub,
		Date:        req.DepartureDate,
		MaxStops:    provider.Nonstop,
		Sort:        provider.SortCheapest,
	})
	if err != nil {
		log.Printf("Hub %s: first leg search failed: %v", hub, err)
		return models.CandidateItinerary{}, false
	}

	minFirst, priced := baseline.MinPrice(firstLeg, e.config.SampleSize)
	if !priced {
		// Unreachable leg; nothing to total.
		return models.CandidateItinerary{}, false
	}

	if minFirst >= bl.Amount {
		return models.CandidateItinerary{}, false
	}

	secondLeg, err := e.searcher.Fetch(ctx, provider.Query{
		Origin:      hub,
		Destination: req.Destination,
		Date:        req.DepartureDate,
		MaxStops:    provider.Nonstop,
		Sort:        provider.SortCheapest,
	})
	if err != nil {
		log.Printf("Hub %s: second leg search failed: %v", hub, err)
		return models.CandidateItinerary{}, false
	}

	minSecond, priced := baseline.MinPrice(secondLeg, e.config.SampleSize)
	if !priced {
		return models.CandidateItinerary{}, false
	}

	total := minFirst + minSecond
	return models.CandidateItinerary{
		Hub:            hub,
		FirstLegPrice:  minFirst,
		SecondLegPrice: minSecond,
		TotalPrice:     total,
		Accepted:       e.flagged(total, bl),
	}, true
}

func (e *Evaluator) flagged(total money.Amount, bl models.ProtectedBaseline) bool {
	switch e.config.Rule {
	case RuleFlagSavings:
		return total+e.config.SavingsMargin < bl.Amount
	default:
		return total > bl.Amount+e.config.SavingsMargin
	}
}
