// Package engine runs the full trip evaluation: direct search, protected
// baseline, hub sweep, persisted result.
package engine

import (
	"context"
	"log"

	"github.com/dharmasatrya/farescout/internal/baseline"
	"github.com/dharmasatrya/farescout/internal/connection"
	"github.com/dharmasatrya/farescout/internal/models"
	"github.com/dharmasatrya/farescout/internal/orchestrator"
	"github.com/dharmasatrya/farescout/internal/provider"
	"github.com/dharmasatrya/farescout/internal/report"
)

// DirectMaxStops is the stop bound for the baseline search: one stop or
// fewer, so the baseline reflects fares a traveler would actually book.
const DirectMaxStops = 1

type Config struct {
	// SampleSize bounds the cheapest-N windows for the baseline and each
	// leg minimum. Defaults to baseline.DefaultSampleSize.
	SampleSize int
}

type Engine struct {
	orchestrator *orchestrator.Orchestrator
	evaluator    *connection.Evaluator
	reporter     *report.Reporter
	config       Config
}

// Evaluation is the outcome of one request: everything fetched and decided,
// plus where it was persisted.
type Evaluation struct {
	Request      models.SearchRequest
	DirectOffers []models.Offer
	Baseline     models.ProtectedBaseline
	Candidates   []models.CandidateItinerary
	ResultPath   string
}

// Accepted returns only the flagged candidates, in hub order.
func (e *Evaluation) Accepted() []models.CandidateItinerary {
	accepted := []models.CandidateItinerary{}
	for _, c := range e.Candidates {
		if c.Accepted {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

func New(orch *orchestrator.Orchestrator, eval *connection.Evaluator, rep *report.Reporter, config Config) *Engine {
	if config.SampleSize <= 0 {
		config.SampleSize = baseline.DefaultSampleSize
	}
	return &Engine{
		orchestrator: orch,
		evaluator:    eval,
		reporter:     rep,
		config:       config,
	}
}

// Evaluate runs the whole flow for one request. A provider failure on the
// direct search is terminal (there is no baseline to compare against); hub
// failures are absorbed inside the evaluator. The result file is written
// even when no candidate was flagged, so every run leaves a record.
func (e *Engine) Evaluate(ctx context.Context, req *models.SearchRequest) (*Evaluation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	direct, err := e.orchestrator.Fetch(ctx, provider.Query{
		Origin:      req.Origin,
		Destination: req.Destination,
		Date:        req.DepartureDate,
		MaxStops:    DirectMaxStops,
		Sort:        provider.SortCheapest,
	})
	if err != nil {
		return nil, err
	}

	bl := baseline.Estimate(direct, e.config.SampleSize)
	if bl.SampleSize == 0 {
		log.Printf("No priced direct offers for %s-%s; baseline degenerate", req.Origin, req.Destination)
	}

	candidates, err := e.evaluator.Evaluate(ctx, *req, bl)
	if err != nil {
		// Cancellation mid-sweep; don't report partial results as final.
		return nil, err
	}

	evaluation := &Evaluation{
		Request:      *req,
		DirectOffers: direct,
		Baseline:     bl,
		Candidates:   candidates,
	}

	if e.reporter != nil {
		result := e.reporter.NewResult(*req, direct)
		result.Evaluation = &report.Evaluation{
			Baseline:   bl,
			Candidates: candidates,
		}
		path, err := e.reporter.Save(result)
		if err != nil {
			log.Printf("Failed to persist results: %v", err)
		} else {
			evaluation.ResultPath = path
		}
	}

	return evaluation, nil
}

// Search runs a plain direct search without the hub sweep, the equivalent of
// the original one-shot scrape.
func (e *Engine) Search(ctx context.Context, req *models.SearchRequest) ([]models.Offer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return e.orchestrator.Fetch(ctx, provider.Query{
		Origin:      req.Origin,
		Destination: req.Destination,
		Date:        req.DepartureDate,
		MaxStops:    DirectMaxStops,
		Sort:        provider.SortCheapest,
	})
}
