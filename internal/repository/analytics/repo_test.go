package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/tidewater-labs/newswire/internal/db"
	"github.com/tidewater-labs/newswire/internal/domain"
)

type mockStore struct {
	rows []db.AggregateRow
	err  error
	last *db.AggregateQuery
}

func (m *mockStore) Aggregate(_ context.Context, q *db.AggregateQuery) ([]db.AggregateRow, error) {
	m.last = q
	return m.rows, m.err
}

func TestTopLocations(t *testing.T) {
	s := &mockStore{rows: []db.AggregateRow{
		{"locations": "usa", "count": "42"},
		{"locations": "uk", "count": "17"},
		{"locations": "", "count": "3"}, // unnamed bucket skipped
	}}

	got, err := New(s, "idx").TopLocations(context.Background(), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(got))
	}
	if got[0].Location != "usa" || got[0].Count != 42 {
		t.Errorf("unexpected first bucket: %+v", got[0])
	}
	if s.last.GroupBy != "@locations" || !s.last.SortDesc || s.last.Limit != 10 {
		t.Errorf("unexpected aggregate query: %+v", s.last)
	}
}

func TestTimeline(t *testing.T) {
	s := &mockStore{rows: []db.AggregateRow{
		{"date": "1987-03-12", "count": "5"},
		{"date": "1987-03-13", "count": "8"},
	}}

	got, err := New(s, "idx").Timeline(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["1987-03-12"] != 5 || got["1987-03-13"] != 8 {
		t.Errorf("unexpected timeline: %v", got)
	}
	if s.last.GroupBy != "@date" || s.last.SortDesc {
		t.Errorf("unexpected aggregate query: %+v", s.last)
	}
}

func TestAggregateErrorWrapsIndexUnavailable(t *testing.T) {
	s := &mockStore{err: errors.New("connection refused")}

	if _, err := New(s, "idx").TopLocations(context.Background(), 5); !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
	if _, err := New(s, "idx").Timeline(context.Background()); !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
}
