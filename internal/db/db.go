// Package db defines the storage contracts the retrieval core consumes.
// The index itself is pre-built and owned by an external ingest pipeline;
// this layer exposes read-side search and aggregation primitives only.
package db

import (
	"context"
	"time"
)

// Store is the index store facade combining all sub-interfaces.
type Store interface {
	Pinger
	Searcher
	Aggregator
	IndexInspector
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexInspector probes read-only index metadata.
type IndexInspector interface {
	IndexExists(ctx context.Context, name string) (bool, error)
}

// TextQuery is a term-based FT.SEARCH request.
type TextQuery struct {
	IndexName    string
	Query        string
	ReturnFields []string
	Limit        int
}

// KNNQuery is a vector similarity FT.SEARCH request.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	ReturnFields []string
}

// AggregateQuery is a bucket aggregation (FT.AGGREGATE) request.
type AggregateQuery struct {
	IndexName string
	Query     string
	GroupBy   string // field to bucket on, with leading @
	SortBy    string // field to order buckets by, with leading @
	SortDesc  bool
	Limit     int
}

// SearchEntry is a single hit with its raw hash fields.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// SearchResult holds search hits plus the engine-reported total.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// AggregateRow is one bucket of an aggregation result.
type AggregateRow map[string]string

// Searcher provides search operations over FT indexes.
type Searcher interface {
	SearchText(ctx context.Context, q *TextQuery) (*SearchResult, error)
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
}

// Aggregator provides bucket aggregations over FT indexes.
type Aggregator interface {
	Aggregate(ctx context.Context, q *AggregateQuery) ([]AggregateRow, error)
}
