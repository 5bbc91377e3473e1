package query

import (
	"testing"

	"github.com/tidewater-labs/newswire/internal/domain"
)

func TestNormalizeRescalesToRange(t *testing.T) {
	candidates := []domain.Candidate{
		{Doc: domain.Document{ID: "max"}, Score: 42.0},
		{Doc: domain.Document{ID: "mid"}, Score: 22.5},
		{Doc: domain.Document{ID: "min"}, Score: 3.0},
	}
	normalize(candidates)

	if candidates[0].Score != 100 {
		t.Errorf("max score = %v, want 100", candidates[0].Score)
	}
	if candidates[2].Score != 0 {
		t.Errorf("min score = %v, want 0", candidates[2].Score)
	}
	if candidates[1].Score != 50 {
		t.Errorf("mid score = %v, want 50", candidates[1].Score)
	}
	for _, c := range candidates {
		if c.Score < 0 || c.Score > 100 {
			t.Errorf("score %v outside [0,100]", c.Score)
		}
	}
}

func TestNormalizeEqualScoresAllMapToZero(t *testing.T) {
	candidates := []domain.Candidate{
		{Doc: domain.Document{ID: "a"}, Score: 7.0},
		{Doc: domain.Document{ID: "b"}, Score: 7.0},
	}
	normalize(candidates)
	for _, c := range candidates {
		if c.Score != 0 {
			t.Errorf("candidate %s score = %v, want 0", c.Doc.ID, c.Score)
		}
	}
}

func TestNormalizeRoundsToTwoDecimals(t *testing.T) {
	candidates := []domain.Candidate{
		{Doc: domain.Document{ID: "a"}, Score: 3.0},
		{Doc: domain.Document{ID: "b"}, Score: 2.0},
		{Doc: domain.Document{ID: "c"}, Score: 0.0},
	}
	normalize(candidates)
	if candidates[1].Score != 66.67 {
		t.Errorf("mid score = %v, want 66.67", candidates[1].Score)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	normalize(nil) // must not panic
}

func TestNormalizeSingleCandidate(t *testing.T) {
	candidates := []domain.Candidate{{Doc: domain.Document{ID: "only"}, Score: 9.5}}
	normalize(candidates)
	if candidates[0].Score != 0 {
		t.Errorf("single candidate score = %v, want 0", candidates[0].Score)
	}
}
