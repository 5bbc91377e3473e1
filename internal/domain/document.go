package domain

// Author identifies a document byline entry.
type Author struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
}

// GeoPoint is a WGS84 coordinate.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsZero reports whether the point is the unresolved default {0,0}.
func (p GeoPoint) IsZero() bool {
	return p.Lat == 0 && p.Lon == 0
}

// Document is a read-only view of an indexed article. The index owns the
// canonical copy; this core never writes documents.
type Document struct {
	ID        string
	Title     string
	Content   string
	Date      string // ISO-8601 (2006-01-02), empty when unknown
	Authors   []Author
	Locations []string // lower-cased place labels
	Point     GeoPoint // {0,0} when unresolved
	Temporal  []string // ISO-8601 dates extracted from the text
}

// Hit is a single retrieval result with an engine-native score.
// Lexical and semantic scores live on different scales and must never be
// compared raw across sources.
type Hit struct {
	Doc   Document
	Score float64
}

// LocationCount is one bucket of the top-locations aggregation.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}
