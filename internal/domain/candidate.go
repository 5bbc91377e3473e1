package domain

// Candidate is a document under consideration for one request's ranked
// output. It exists for the lifetime of a single search request and carries
// both partial retrieval scores plus the combined score mutated through the
// ranking pipeline.
type Candidate struct {
	Doc      Document
	LexScore float64
	SemScore float64
	Score    float64
}

// ScoredResult is the presentation projection of a ranked candidate.
// Constructed only for the top-N candidates after normalization.
type ScoredResult struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Date      string   `json:"date,omitempty"`
	Authors   []Author `json:"authors,omitempty"`
	Locations []string `json:"locations,omitempty"`
	Point     GeoPoint `json:"geopoint"`
	Temporal  []string `json:"temporal_expressions,omitempty"`
	Score     float64  `json:"score"`
}
