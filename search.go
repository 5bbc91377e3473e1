package newswire

import (
	"context"
	"fmt"
	"time"

	"github.com/tidewater-labs/newswire/internal/domain"
)

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Author is an article byline entry.
type Author struct {
	FirstName string
	LastName  string
	Email     string
}

// Result is one ranked search hit. Score is normalized to [0, 100] within a
// single response and is not comparable across requests.
type Result struct {
	ID        string
	Title     string
	Content   string
	Date      string
	Authors   []Author
	Locations []string
	Point     Coordinate
	Temporal  []string
	Score     float64
}

// LocationCount is one bucket of the top-locations aggregation.
type LocationCount struct {
	Location string
	Count    int
}

// SearchOptions configures a search query. The zero value searches the whole
// corpus with the default result size.
type SearchOptions struct {
	// From and To bound publication dates inclusively. From without To
	// implies an effective end of December 31 of From's year.
	From time.Time
	To   time.Time
	// Near is a place name or "lat,lon" literal for geo-proximity boosting.
	Near string
	// Size caps the number of returned results.
	Size int
}

// Search executes a ranked hybrid search.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) ([]Result, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}

	req := &domain.QueryRequest{
		Text: query,
		Near: opts.Near,
		Size: opts.Size,
	}
	if !opts.From.IsZero() {
		from := opts.From
		req.From = &from
	}
	if !opts.To.IsZero() {
		to := opts.To
		req.To = &to
	}

	results, err := c.searchSvc.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromScoredResults(results), nil
}

// Complete returns up to limit unique title suggestions for the prefix.
// Prefixes shorter than three runes return an empty list.
func (c *Client) Complete(ctx context.Context, prefix string, limit int) ([]string, error) {
	titles, err := c.suggSvc.Complete(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}
	return titles, nil
}

// TopLocations returns the n most frequent article locations.
func (c *Client) TopLocations(ctx context.Context, n int) ([]LocationCount, error) {
	buckets, err := c.analSvc.TopLocations(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("top locations: %w", err)
	}
	out := make([]LocationCount, len(buckets))
	for i, b := range buckets {
		out[i] = LocationCount{Location: b.Location, Count: b.Count}
	}
	return out, nil
}

// Timeline returns document counts keyed by ISO publication date.
func (c *Client) Timeline(ctx context.Context) (map[string]int, error) {
	timeline, err := c.analSvc.Timeline(ctx)
	if err != nil {
		return nil, fmt.Errorf("timeline: %w", err)
	}
	return timeline, nil
}

func fromScoredResults(results []domain.ScoredResult) []Result {
	out := make([]Result, len(results))
	for i := range results {
		r := &results[i]
		authors := make([]Author, len(r.Authors))
		for j, a := range r.Authors {
			authors[j] = Author{FirstName: a.FirstName, LastName: a.LastName, Email: a.Email}
		}
		out[i] = Result{
			ID:        r.ID,
			Title:     r.Title,
			Content:   r.Content,
			Date:      r.Date,
			Authors:   authors,
			Locations: r.Locations,
			Point:     geoPointFromDomain(r.Point),
			Temporal:  r.Temporal,
			Score:     r.Score,
		}
	}
	return out
}
