package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/tidewater-labs/newswire/internal/domain"
)

type mockAggregator struct {
	locations []domain.LocationCount
	timeline  map[string]int
	err       error
	lastN     int
}

func (m *mockAggregator) TopLocations(_ context.Context, n int) ([]domain.LocationCount, error) {
	m.lastN = n
	return m.locations, m.err
}

func (m *mockAggregator) Timeline(_ context.Context) (map[string]int, error) {
	return m.timeline, m.err
}

func TestTopLocationsDefaultsN(t *testing.T) {
	repo := &mockAggregator{locations: []domain.LocationCount{{Location: "usa", Count: 12}}}
	svc := New(repo)

	got, err := svc.TopLocations(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastN != DefaultTopN {
		t.Errorf("n = %d, want default %d", repo.lastN, DefaultTopN)
	}
	if len(got) != 1 || got[0].Location != "usa" {
		t.Errorf("unexpected buckets %+v", got)
	}
}

func TestTopLocationsPropagatesError(t *testing.T) {
	repo := &mockAggregator{err: domain.ErrIndexUnavailable}
	svc := New(repo)

	if _, err := svc.TopLocations(context.Background(), 5); !errors.Is(err, domain.ErrIndexUnavailable) {
		t.Fatalf("expected ErrIndexUnavailable, got %v", err)
	}
}

func TestTimelinePassesThrough(t *testing.T) {
	repo := &mockAggregator{timeline: map[string]int{"1987-03-12": 4}}
	svc := New(repo)

	got, err := svc.Timeline(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["1987-03-12"] != 4 {
		t.Errorf("unexpected timeline %+v", got)
	}
}
