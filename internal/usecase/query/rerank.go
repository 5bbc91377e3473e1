package query

import (
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/tidewater-labs/newswire/internal/domain"
	"github.com/tidewater-labs/newswire/internal/domain/geo"
)

const (
	titleBoostPerTerm   = 2.5
	contentBoostPerTerm = 0.7
	contentBoostCap     = 3.0
	recencyDecayPerMo   = 0.02
	recencyFloor        = 0.5
	geoDecayKm          = 10000.0
	geoFloor            = 0.1

	weightLexical  = 0.6
	weightSemantic = 0.4
	weightRecency  = 0.2
)

// rerank scores every candidate under the selected profile and orders the
// slice by descending score, ties broken by ascending document id so equal
// scores still produce a deterministic order.
//
// Per-candidate parse failures (dates, coordinates) skip the affected boost
// with factor 1.0; they never abort scoring of the batch.
func rerank(
	candidates []domain.Candidate, text string,
	queryPoint domain.GeoPoint, hasPoint bool,
	profile Profile, refTime time.Time,
) []domain.Candidate {
	terms := queryTerms(text)

	for i := range candidates {
		c := &candidates[i]
		if profile == ProfileWeighted {
			c.Score = scoreWeighted(c, refTime)
		} else {
			c.Score = scoreBoosted(c, terms, queryPoint, hasPoint, refTime)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Doc.ID < candidates[j].Doc.ID
	})
	return candidates
}

// scoreBoosted starts from the additive retrieval base and applies the
// multiplicative boost chain: title terms, content terms (capped), linear
// recency decay (floored), and exponential geo decay (floored).
func scoreBoosted(
	c *domain.Candidate, terms []string,
	queryPoint domain.GeoPoint, hasPoint bool, refTime time.Time,
) float64 {
	score := c.LexScore + c.SemScore

	if m := countTermMatches(terms, c.Doc.Title); m > 0 {
		score *= 1 + float64(m)*titleBoostPerTerm
	}
	if n := countTermMatches(terms, c.Doc.Content); n > 0 {
		score *= math.Min(contentBoostCap, 1+float64(n)*contentBoostPerTerm)
	}

	if t, ok := domain.ParseDate(c.Doc.Date); ok {
		days := refTime.Sub(t).Hours() / 24
		monthsOld := math.Max(0, math.Floor(days/30))
		score *= math.Max(recencyFloor, 1-monthsOld*recencyDecayPerMo)
	}

	if hasPoint && !c.Doc.Point.IsZero() {
		km := geo.HaversineKm(queryPoint.Lat, queryPoint.Lon, c.Doc.Point.Lat, c.Doc.Point.Lon)
		score *= math.Max(geoFloor, math.Pow(10, -km/geoDecayKm))
	}

	return score
}

// scoreWeighted combines the retrieval scores with fixed weights and adds an
// exponential recency term. No term or geo boosts apply under this profile.
func scoreWeighted(c *domain.Candidate, refTime time.Time) float64 {
	score := weightLexical*c.LexScore + weightSemantic*c.SemScore
	if t, ok := domain.ParseDate(c.Doc.Date); ok {
		// Future-dated documents count as published now: the recency
		// term never exceeds weightRecency.
		days := math.Max(0, refTime.Sub(t).Hours()/24)
		score += weightRecency * math.Exp(-days/365)
	}
	return score
}

// queryTerms tokenizes query text into lower-cased distinct terms.
func queryTerms(text string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, tok := range splitWords(text) {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		terms = append(terms, tok)
	}
	return terms
}

// countTermMatches counts how many of the query terms occur as words in the
// field. Each distinct term counts at most once regardless of how often it
// repeats in the field.
func countTermMatches(terms []string, field string) int {
	if field == "" || len(terms) == 0 {
		return 0
	}
	words := make(map[string]struct{})
	for _, w := range splitWords(field) {
		words[w] = struct{}{}
	}
	count := 0
	for _, t := range terms {
		if _, ok := words[t]; ok {
			count++
		}
	}
	return count
}

// splitWords lower-cases s and splits it on any non-alphanumeric rune, so
// punctuation next to a word does not defeat matching.
func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
