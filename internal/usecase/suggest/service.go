// Package suggest serves title autocompletion over the article index.
package suggest

import (
	"context"
	"strings"
	"unicode/utf8"
)

// minPrefixLen is the shortest prefix worth completing. Shorter prefixes
// return empty rather than fanning out a near-unbounded index scan.
const minPrefixLen = 3

// DefaultLimit bounds suggestions when the caller does not specify one.
const DefaultLimit = 5

// Suggester reads prefix-matched titles from the index in relevance order.
// Duplicates may appear; the service dedupes.
type Suggester interface {
	SuggestTitles(ctx context.Context, prefix string, fetch int) ([]string, error)
}

// Service deduplicates and bounds index suggestions.
type Service struct {
	repo Suggester
}

// New creates a suggestion service.
func New(repo Suggester) *Service {
	return &Service{repo: repo}
}

// Complete returns up to limit unique titles matching the prefix, preserving
// the index's relevance order. Prefixes shorter than three runes return an
// empty list, not an error. Identical titles from distinct documents
// collapse to one suggestion, so the index is overfetched to keep the final
// list full after deduplication.
func (s *Service) Complete(ctx context.Context, prefix string, limit int) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if utf8.RuneCountInString(prefix) < minPrefixLen {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	titles, err := s.repo.SuggestTitles(ctx, prefix, limit*3)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(titles))
	out := make([]string, 0, limit)
	for _, title := range titles {
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		out = append(out, title)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}
