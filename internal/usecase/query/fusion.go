package query

import "github.com/tidewater-labs/newswire/internal/domain"

// fuse merges the two hit lists into one candidate per document id. Lexical
// hits seed candidates with their relevance score; semantic hits either fill
// in the similarity score on an existing candidate or create a new one with
// a zero lexical score. Fusion is commutative over document identity, so
// processing order only affects the (pre-sort) slice order.
//
// Semantic hits are re-checked against the date filter here: the vector leg
// cannot filter server-side, so a hit with a missing or out-of-range date is
// dropped rather than leaking past the filter the lexical leg enforced.
func fuse(lexical, semantic []domain.Hit, dates *domain.DateRange) []domain.Candidate {
	byID := make(map[string]int, len(lexical)+len(semantic))
	candidates := make([]domain.Candidate, 0, len(lexical)+len(semantic))

	for _, h := range lexical {
		byID[h.Doc.ID] = len(candidates)
		candidates = append(candidates, domain.Candidate{Doc: h.Doc, LexScore: h.Score})
	}

	for _, h := range semantic {
		if dates != nil {
			t, ok := domain.ParseDate(h.Doc.Date)
			if !ok || !dates.Contains(t) {
				continue
			}
		}
		if i, ok := byID[h.Doc.ID]; ok {
			candidates[i].SemScore = h.Score
			continue
		}
		byID[h.Doc.ID] = len(candidates)
		candidates = append(candidates, domain.Candidate{Doc: h.Doc, SemScore: h.Score})
	}

	return candidates
}
