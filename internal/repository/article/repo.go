// Package article maps index store results onto domain documents. It owns
// the FT.SEARCH query-string construction for the pre-built article index.
package article

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidewater-labs/newswire/internal/db"
	"github.com/tidewater-labs/newswire/internal/domain"
)

// returnFields are the stored hash fields projected into domain.Document.
var returnFields = []string{
	"title", "content", "date", "authors", "locations", "lat", "lon", "temporal",
}

// store is the consumer interface for article retrieval (ISP).
type store interface {
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements the retrieval contracts of the query and suggest services.
type Repo struct {
	store     store
	indexName string
	keyPrefix string
}

// New creates an article repository over the named pre-built index.
func New(s store, indexName, keyPrefix string) *Repo {
	return &Repo{store: s, indexName: indexName, keyPrefix: keyPrefix}
}

// Lexical runs a fuzzy term search over title and content. The title carries
// a 5x weight assigned at index creation, so hits scoring is already
// title-boosted engine-side. An optional inclusive date range becomes a
// numeric pre-filter on the indexed epoch field.
func (r *Repo) Lexical(
	ctx context.Context, text string, dates *domain.DateRange, limit int,
) ([]domain.Hit, error) {
	query := buildLexicalQuery(text, dates)
	if query == "" {
		return nil, nil
	}

	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName:    r.indexName,
		Query:        query,
		ReturnFields: returnFields,
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("lexical search: %w: %w", domain.ErrIndexUnavailable, err)
	}

	return r.toHits(sr), nil
}

// Semantic runs a k-nearest-neighbor search over the stored content vectors.
// The vector path cannot filter server-side; callers post-filter by date.
func (r *Repo) Semantic(ctx context.Context, vector []float32, k int) ([]domain.Hit, error) {
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.indexName,
		Vector:       vector,
		K:            k,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w: %w", domain.ErrIndexUnavailable, err)
	}

	return r.toHits(sr), nil
}

// SuggestTitles returns article titles matching a combined phrase-prefix and
// fuzzy-prefix title query, in the index's relevance order. Duplicates are
// not removed here; the suggest service dedupes.
func (r *Repo) SuggestTitles(ctx context.Context, prefix string, fetch int) ([]string, error) {
	query := buildSuggestQuery(prefix)
	if query == "" {
		return nil, nil
	}

	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName:    r.indexName,
		Query:        query,
		ReturnFields: []string{"title"},
		Limit:        fetch,
	})
	if err != nil {
		return nil, fmt.Errorf("suggest titles: %w: %w", domain.ErrIndexUnavailable, err)
	}

	titles := make([]string, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		if t := e.Fields["title"]; t != "" {
			titles = append(titles, t)
		}
	}
	return titles, nil
}

func (r *Repo) toHits(sr *db.SearchResult) []domain.Hit {
	if sr == nil || sr.Total == 0 {
		return nil
	}

	hits := make([]domain.Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, r.keyPrefix)
		hits = append(hits, domain.Hit{
			Doc:   parseDocument(id, entry.Fields),
			Score: entry.Score,
		})
	}
	return hits
}

// parseDocument converts flat hash fields into a domain.Document. Malformed
// optional fields fall back to their documented defaults instead of failing.
func parseDocument(id string, fields map[string]string) domain.Document {
	doc := domain.Document{
		ID:      id,
		Title:   fields["title"],
		Content: fields["content"],
		Date:    fields["date"],
	}

	if v := fields["authors"]; v != "" {
		var authors []domain.Author
		if err := json.Unmarshal([]byte(v), &authors); err == nil {
			doc.Authors = authors
		}
	}

	if v := fields["locations"]; v != "" {
		for _, loc := range strings.Split(v, ",") {
			if loc = strings.TrimSpace(loc); loc != "" {
				doc.Locations = append(doc.Locations, loc)
			}
		}
	}

	if lat, err := strconv.ParseFloat(fields["lat"], 64); err == nil {
		if lon, err := strconv.ParseFloat(fields["lon"], 64); err == nil {
			doc.Point = domain.GeoPoint{Lat: lat, Lon: lon}
		}
	}

	if v := fields["temporal"]; v != "" {
		var temporal []string
		if err := json.Unmarshal([]byte(v), &temporal); err == nil {
			doc.Temporal = temporal
		}
	}

	return doc
}

// --- Query building ---

// buildLexicalQuery produces the FT.SEARCH query string: fuzzy term
// alternatives over the default text fields, preceded by a numeric epoch
// range filter when a date bound is set.
func buildLexicalQuery(text string, dates *domain.DateRange) string {
	terms := queryTerms(text)
	if len(terms) == 0 {
		return ""
	}

	fuzzy := make([]string, 0, len(terms))
	for _, t := range terms {
		fuzzy = append(fuzzy, "%"+t+"%")
	}
	query := "(" + strings.Join(fuzzy, "|") + ")"

	if dates != nil {
		query = fmt.Sprintf("@date_ts:[%d %d] %s",
			dates.Start.Unix(), dates.End.Unix(), query)
	}
	return query
}

// buildSuggestQuery combines a phrase-prefix match (last term starred) with
// a fuzzy variant of the same terms, both restricted to the title field.
func buildSuggestQuery(prefix string) string {
	terms := queryTerms(prefix)
	if len(terms) == 0 {
		return ""
	}

	phrase := make([]string, len(terms))
	copy(phrase, terms)
	phrase[len(phrase)-1] += "*"

	fuzzy := make([]string, 0, len(terms))
	for _, t := range terms {
		fuzzy = append(fuzzy, "%"+t+"%")
	}

	return fmt.Sprintf("@title:(%s) | @title:(%s)",
		strings.Join(phrase, " "), strings.Join(fuzzy, " "))
}

// queryTerms lower-cases, tokenizes, and strips non-alphanumeric runes so
// user input cannot inject FT.SEARCH syntax.
func queryTerms(text string) []string {
	var terms []string
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		var b strings.Builder
		for _, r := range raw {
			if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			terms = append(terms, b.String())
		}
	}
	return terms
}
