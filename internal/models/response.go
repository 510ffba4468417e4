package models

// SearchMetadata describes how a search or evaluation was served.
type SearchMetadata struct {
	RunID        string `json:"run_id"`
	TotalResults int    `json:"total_results"`
	SearchTimeMs int64  `json:"search_time_ms"`
	CacheHit     bool   `json:"cache_hit"`
}

// SearchResponse is the payload for a plain orchestrated search.
type SearchResponse struct {
	Request  SearchRequest  `json:"search_criteria"`
	Metadata SearchMetadata `json:"metadata"`
	Offers   []Offer        `json:"flights"`
}

// EvaluationResponse is the payload for a full fare evaluation: the direct
// offers, the protected baseline, and one entry per hub that priced both legs.
type EvaluationResponse struct {
	Request      SearchRequest        `json:"search_criteria"`
	Metadata     SearchMetadata       `json:"metadata"`
	Baseline     ProtectedBaseline    `json:"baseline"`
	DirectOffers []Offer              `json:"direct_flights"`
	Candidates   []CandidateItinerary `json:"candidates"`
	ResultPath   string               `json:"result_path,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
