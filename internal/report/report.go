// Package report persists evaluation results as JSON files, one per run.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dharmasatrya/farescout/internal/models"
)

const timestampLayout = "20060102_150405"

// Result is the persisted document. search_parameters and flights follow the
// layout the original scraper wrote, so existing result files stay readable;
// the evaluation block carries the baseline and hub candidates.
type Result struct {
	RunID            string           `json:"run_id"`
	SearchParameters SearchParameters `json:"search_parameters"`
	Flights          []models.Offer   `json:"flights"`
	Evaluation       *Evaluation      `json:"evaluation,omitempty"`
}

type SearchParameters struct {
	Departure       string  `json:"departure"`
	Destination     string  `json:"destination"`
	DepartureDate   string  `json:"departure_date"`
	ReturnDate      *string `json:"return_date,omitempty"`
	SearchTimestamp string  `json:"search_timestamp"`
}

type Evaluation struct {
	Baseline   models.ProtectedBaseline    `json:"baseline"`
	Candidates []models.CandidateItinerary `json:"candidates"`
}

// Reporter writes results beneath a single directory, created on demand.
type Reporter struct {
	dir string
	now func() time.Time
}

func NewReporter(dir string) *Reporter {
	return &Reporter{
		dir: dir,
		now: time.Now,
	}
}

// NewResult assembles a Result for the given request with a fresh run ID and
// the current timestamp.
func (r *Reporter) NewResult(req models.SearchRequest, offers []models.Offer) *Result {
	return &Result{
		RunID: uuid.NewString(),
		SearchParameters: SearchParameters{
			Departure:       req.Origin,
			Destination:     req.Destination,
			DepartureDate:   req.DepartureDate,
			ReturnDate:      req.ReturnDate,
			SearchTimestamp: r.now().Format(timestampLayout),
		},
		Flights: offers,
	}
}

// Save writes the result as
// flight_results_<departure>_<destination>_<timestamp>.json and returns the
// path written.
func (r *Reporter) Save(result *Result) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", err
	}

	filename := "flight_results_" + result.SearchParameters.Departure +
		"_" + result.SearchParameters.Destination +
		"_" + result.SearchParameters.SearchTimestamp + ".json"
	path := filepath.Join(r.dir, filename)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a previously saved result. Offer parsed fields are rebuilt so a
// loaded result can feed straight back into the engine.
func Load(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	for i := range result.Flights {
		result.Flights[i].Normalize()
	}
	return &result, nil
}
