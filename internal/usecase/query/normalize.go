package query

import (
	"math"

	"github.com/tidewater-labs/newswire/internal/domain"
)

// normalize rescales candidate scores onto [0, 100] with a linear min-max
// transform, rounded to two decimals. When every score is equal the divisor
// collapses to 1 and all candidates map to 0. The transform intentionally
// destroys the absolute upstream scale; normalized scores are not comparable
// across requests.
func normalize(candidates []domain.Candidate) {
	if len(candidates) == 0 {
		return
	}

	minScore, maxScore := candidates[0].Score, candidates[0].Score
	for _, c := range candidates[1:] {
		if c.Score < minScore {
			minScore = c.Score
		}
		if c.Score > maxScore {
			maxScore = c.Score
		}
	}

	div := maxScore - minScore
	if div == 0 {
		div = 1
	}
	for i := range candidates {
		candidates[i].Score = round2((candidates[i].Score - minScore) / div * 100)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
