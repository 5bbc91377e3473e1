// Package analytics shapes index bucket aggregations into domain responses.
package analytics

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tidewater-labs/newswire/internal/db"
	"github.com/tidewater-labs/newswire/internal/domain"
)

// store is the consumer interface for aggregations (ISP).
type store interface {
	Aggregate(ctx context.Context, q *db.AggregateQuery) ([]db.AggregateRow, error)
}

// Repo implements the analytics service's aggregation contract.
type Repo struct {
	store     store
	indexName string
}

// New creates an analytics repository over the named index.
func New(s store, indexName string) *Repo {
	return &Repo{store: s, indexName: indexName}
}

// TopLocations returns the n most frequent location labels with counts,
// ordered by count descending.
func (r *Repo) TopLocations(ctx context.Context, n int) ([]domain.LocationCount, error) {
	rows, err := r.store.Aggregate(ctx, &db.AggregateQuery{
		IndexName: r.indexName,
		GroupBy:   "@locations",
		SortBy:    "@count",
		SortDesc:  true,
		Limit:     n,
	})
	if err != nil {
		return nil, fmt.Errorf("top locations: %w: %w", domain.ErrIndexUnavailable, err)
	}

	out := make([]domain.LocationCount, 0, len(rows))
	for _, row := range rows {
		loc := row["locations"]
		if loc == "" {
			continue
		}
		count, _ := strconv.Atoi(row["count"])
		out = append(out, domain.LocationCount{Location: loc, Count: count})
	}
	return out, nil
}

// timelineMaxBuckets bounds the per-day histogram; the corpus spans about a
// year, so this is generous.
const timelineMaxBuckets = 5000

// Timeline returns document counts bucketed by publication date (one bucket
// per ISO day), keyed by the date string.
func (r *Repo) Timeline(ctx context.Context) (map[string]int, error) {
	rows, err := r.store.Aggregate(ctx, &db.AggregateQuery{
		IndexName: r.indexName,
		GroupBy:   "@date",
		SortBy:    "@date",
		Limit:     timelineMaxBuckets,
	})
	if err != nil {
		return nil, fmt.Errorf("timeline: %w: %w", domain.ErrIndexUnavailable, err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		date := row["date"]
		if date == "" {
			continue
		}
		count, _ := strconv.Atoi(row["count"])
		out[date] = count
	}
	return out, nil
}
