// Package analytics exposes corpus-level aggregations over the article index.
package analytics

import (
	"context"

	"github.com/tidewater-labs/newswire/internal/domain"
)

// DefaultTopN bounds the top-locations aggregation when unspecified.
const DefaultTopN = 10

// Aggregator is the index bucket-aggregation contract.
type Aggregator interface {
	TopLocations(ctx context.Context, n int) ([]domain.LocationCount, error)
	Timeline(ctx context.Context) (map[string]int, error)
}

// Service shapes aggregation responses. It carries no business logic beyond
// defaulting; the index does the grouping.
type Service struct {
	repo Aggregator
}

// New creates an analytics service.
func New(repo Aggregator) *Service {
	return &Service{repo: repo}
}

// TopLocations returns the n most frequent article locations, descending by
// document count.
func (s *Service) TopLocations(ctx context.Context, n int) ([]domain.LocationCount, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	return s.repo.TopLocations(ctx, n)
}

// Timeline returns document counts keyed by ISO publication date.
func (s *Service) Timeline(ctx context.Context) (map[string]int, error) {
	return s.repo.Timeline(ctx)
}
