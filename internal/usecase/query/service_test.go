package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tidewater-labs/newswire/internal/domain"
)

type mockRetriever struct {
	lexHits []domain.Hit
	lexErr  error
	semHits []domain.Hit
	semErr  error

	lexCalls  int
	semCalls  int
	lexText   string
	lexDates  *domain.DateRange
	lexLimit  int
	semVector []float32
	semK      int
}

func (m *mockRetriever) Lexical(_ context.Context, text string, dates *domain.DateRange, limit int) ([]domain.Hit, error) {
	m.lexCalls++
	m.lexText, m.lexDates, m.lexLimit = text, dates, limit
	return m.lexHits, m.lexErr
}

func (m *mockRetriever) Semantic(_ context.Context, vector []float32, k int) ([]domain.Hit, error) {
	m.semCalls++
	m.semVector, m.semK = vector, k
	return m.semHits, m.semErr
}

type mockEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	m.calls++
	return m.vector, m.err
}

type mockResolver struct {
	point domain.GeoPoint
	found bool
	calls int
	ref   string
}

func (m *mockResolver) Resolve(_ context.Context, ref string) (domain.GeoPoint, bool) {
	m.calls++
	m.ref = ref
	return m.point, m.found
}

func refTime() time.Time {
	return time.Date(1987, 10, 20, 0, 0, 0, 0, time.UTC)
}

func newTestService(r *mockRetriever, e *mockEmbedder, g *mockResolver) *Service {
	return New(r, e, g, Config{ReferenceTime: refTime()}, zap.NewNop())
}

func TestSearchEmptyTextSkipsRetrieval(t *testing.T) {
	retriever := &mockRetriever{}
	embedder := &mockEmbedder{vector: []float32{0.1}}
	svc := newTestService(retriever, embedder, &mockResolver{})

	results, err := svc.Search(context.Background(), &domain.QueryRequest{Text: "   "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected empty results, got %d", len(results))
	}
	if retriever.lexCalls != 0 || retriever.semCalls != 0 || embedder.calls != 0 {
		t.Error("empty text must not trigger retrieval or embedding")
	}
}

func TestSearchEndToEndRanking(t *testing.T) {
	retriever := &mockRetriever{
		lexHits: []domain.Hit{
			{Doc: domain.Document{ID: "A", Title: "oil prices rise"}, Score: 5.0},
		},
		semHits: []domain.Hit{
			{Doc: domain.Document{ID: "A", Title: "oil prices rise"}, Score: 2.0},
			{Doc: domain.Document{ID: "B", Title: "gold market"}, Score: 3.0},
		},
	}
	embedder := &mockEmbedder{vector: []float32{0.1, 0.2}}
	svc := newTestService(retriever, embedder, &mockResolver{})

	results, err := svc.Search(context.Background(), &domain.QueryRequest{Text: "oil prices"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// A: base 5+2=7, two title matches -> 7*(1+2*2.5)=42; B: base 3, no boost.
	// After min-max normalization A maps to 100, B to 0.
	if results[0].ID != "A" || results[1].ID != "B" {
		t.Fatalf("expected order [A B], got [%s %s]", results[0].ID, results[1].ID)
	}
	if results[0].Score != 100 {
		t.Errorf("top score = %v, want 100", results[0].Score)
	}
	if results[1].Score != 0 {
		t.Errorf("bottom score = %v, want 0", results[1].Score)
	}
}

func TestSearchDateRangePropagation(t *testing.T) {
	retriever := &mockRetriever{}
	embedder := &mockEmbedder{vector: []float32{0.1}}
	svc := newTestService(retriever, embedder, &mockResolver{})

	from := time.Date(1987, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Search(context.Background(), &domain.QueryRequest{Text: "oil", From: &from})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if retriever.lexDates == nil {
		t.Fatal("expected a date range to reach the lexical retriever")
	}
	wantEnd := time.Date(1987, 12, 31, 23, 59, 59, 0, time.UTC)
	if !retriever.lexDates.End.Equal(wantEnd) {
		t.Errorf("effective end = %v, want %v", retriever.lexDates.End, wantEnd)
	}
}

func TestSearchSemanticHitsPostFilteredByDate(t *testing.T) {
	retriever := &mockRetriever{
		semHits: []domain.Hit{
			{Doc: domain.Document{ID: "in", Date: "1987-06-15"}, Score: 1.0},
			{Doc: domain.Document{ID: "out", Date: "1988-01-01"}, Score: 2.0},
			{Doc: domain.Document{ID: "undated"}, Score: 3.0},
		},
	}
	embedder := &mockEmbedder{vector: []float32{0.1}}
	svc := newTestService(retriever, embedder, &mockResolver{})

	from := time.Date(1987, 3, 1, 0, 0, 0, 0, time.UTC)
	results, err := svc.Search(context.Background(), &domain.QueryRequest{Text: "oil", From: &from})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].ID != "in" {
		t.Fatalf("expected only the in-range hit, got %+v", results)
	}
}

func TestSearchOverfetchAndTruncate(t *testing.T) {
	var semHits []domain.Hit
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		semHits = append(semHits, domain.Hit{Doc: domain.Document{ID: id}, Score: 1.0})
	}
	retriever := &mockRetriever{semHits: semHits}
	embedder := &mockEmbedder{vector: []float32{0.1}}
	svc := newTestService(retriever, embedder, &mockResolver{})

	results, err := svc.Search(context.Background(), &domain.QueryRequest{Text: "oil", Size: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if retriever.lexLimit != 6 {
		t.Errorf("lexical fetch = %d, want size*factor = 6", retriever.lexLimit)
	}
	if retriever.semK != 6 {
		t.Errorf("semantic k = %d, want 6", retriever.semK)
	}
	if len(results) != 2 {
		t.Errorf("returned %d results, want 2", len(results))
	}
}

func TestSearchPropagatesIndexError(t *testing.T) {
	retriever := &mockRetriever{lexErr: domain.ErrIndexUnavailable}
	embedder := &mockEmbedder{vector: []float32{0.1}}
	svc := newTestService(retriever, embedder, &mockResolver{})

	_, err := svc.Search(context.Background(), &domain.QueryRequest{Text: "oil"})
	if !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
}

func TestSearchPropagatesEmbeddingError(t *testing.T) {
	retriever := &mockRetriever{}
	embedder := &mockEmbedder{err: domain.ErrEmbeddingProviderError}
	svc := newTestService(retriever, embedder, &mockResolver{})

	_, err := svc.Search(context.Background(), &domain.QueryRequest{Text: "oil"})
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestSearchUnresolvedGeoDegrades(t *testing.T) {
	retriever := &mockRetriever{
		lexHits: []domain.Hit{{Doc: domain.Document{ID: "A"}, Score: 1.0}},
	}
	embedder := &mockEmbedder{vector: []float32{0.1}}
	resolver := &mockResolver{found: false}
	svc := newTestService(retriever, embedder, resolver)

	results, err := svc.Search(context.Background(), &domain.QueryRequest{Text: "oil", Near: "Atlantis"})
	if err != nil {
		t.Fatalf("geo resolution failure must not fail the request: %v", err)
	}
	if resolver.calls != 1 || resolver.ref != "Atlantis" {
		t.Errorf("expected one resolve call for Atlantis, got %d (%q)", resolver.calls, resolver.ref)
	}
	if len(results) != 1 {
		t.Errorf("expected the lexical hit to survive, got %d results", len(results))
	}
}
