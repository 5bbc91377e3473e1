// Package query implements the hybrid retrieval pipeline: concurrent
// lexical and vector retrieval, candidate fusion, multi-factor reranking,
// and min-max score normalization.
package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tidewater-labs/newswire/internal/domain"
	"github.com/tidewater-labs/newswire/internal/metrics"
)

// Profile selects the scoring variant applied during reranking.
type Profile string

const (
	// ProfileBoosted is the default: additive base score with the full
	// multiplicative boost chain (title, content, recency, geo).
	ProfileBoosted Profile = "boosted"
	// ProfileWeighted applies fixed 0.6/0.4 retrieval weights plus an
	// exponential recency term, with no term or geo boosts.
	ProfileWeighted Profile = "weighted"
)

// Service runs the search pipeline.
type Service struct {
	retriever Retriever
	embed     Embedder
	geo       GeoResolver
	profile   Profile
	refTime   time.Time
	fetchMul  int
	maxSize   int
	logger    *zap.Logger
}

// Config carries the tuning knobs for the pipeline.
type Config struct {
	// Profile selects the scoring variant; empty means ProfileBoosted.
	Profile Profile
	// ReferenceTime anchors recency scoring. The corpus is historical, so
	// "now" would make every document maximally old; the anchor should sit
	// near the corpus's own timeframe.
	ReferenceTime time.Time
	// CandidateFactor controls retrieval overfetch: each leg requests
	// size*CandidateFactor hits so reranking has headroom to reorder.
	CandidateFactor int
	// MaxSize caps the per-request result count.
	MaxSize int
}

// New creates a search service.
func New(retriever Retriever, embed Embedder, geo GeoResolver, cfg Config, logger *zap.Logger) *Service {
	if cfg.Profile == "" {
		cfg.Profile = ProfileBoosted
	}
	if cfg.ReferenceTime.IsZero() {
		cfg.ReferenceTime = time.Now().UTC()
	}
	if cfg.CandidateFactor < 1 {
		cfg.CandidateFactor = 3
	}
	if cfg.MaxSize < 1 {
		cfg.MaxSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		retriever: retriever,
		embed:     embed,
		geo:       geo,
		profile:   cfg.Profile,
		refTime:   cfg.ReferenceTime,
		fetchMul:  cfg.CandidateFactor,
		maxSize:   cfg.MaxSize,
		logger:    logger,
	}
}

// Search executes the full pipeline for one request. Empty query text
// short-circuits to an empty result without touching the index or the
// embedding provider. Index and embedding failures propagate; geocoding
// failures degrade to "no geo boost".
func (s *Service) Search(ctx context.Context, req *domain.QueryRequest) ([]domain.ScoredResult, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		metrics.SearchRequestsTotal.WithLabelValues("empty").Inc()
		return nil, nil
	}

	size := req.Size
	if size <= 0 {
		size = domain.DefaultSize
	}
	if size > s.maxSize {
		size = s.maxSize
	}
	fetch := size * s.fetchMul
	dates := req.EffectiveRange()

	var queryPoint domain.GeoPoint
	var hasPoint bool
	if req.Near != "" {
		queryPoint, hasPoint = s.geo.Resolve(ctx, req.Near)
	}

	// The two retrieval legs have no data dependency; run them in parallel.
	g, gctx := errgroup.WithContext(ctx)
	var lexHits, semHits []domain.Hit

	g.Go(func() error {
		hits, err := s.retriever.Lexical(gctx, text, dates, fetch)
		if err != nil {
			return err
		}
		lexHits = hits
		return nil
	})
	g.Go(func() error {
		vector, err := s.embed.Embed(gctx, text)
		if err != nil {
			return fmt.Errorf("vectorize query: %w", err)
		}
		hits, err := s.retriever.Semantic(gctx, vector, fetch)
		if err != nil {
			return err
		}
		semHits = hits
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	candidates := fuse(lexHits, semHits, dates)
	metrics.SearchCandidates.Observe(float64(len(candidates)))

	candidates = rerank(candidates, text, queryPoint, hasPoint, s.profile, s.refTime)
	normalize(candidates)

	if len(candidates) > size {
		candidates = candidates[:size]
	}

	results := make([]domain.ScoredResult, 0, len(candidates))
	for _, c := range candidates {
		results = append(results, domain.ScoredResult{
			ID:        c.Doc.ID,
			Title:     c.Doc.Title,
			Content:   c.Doc.Content,
			Date:      c.Doc.Date,
			Authors:   c.Doc.Authors,
			Locations: c.Doc.Locations,
			Point:     c.Doc.Point,
			Temporal:  c.Doc.Temporal,
			Score:     c.Score,
		})
	}

	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	s.logger.Debug("search completed",
		zap.String("query", text),
		zap.Int("lexical_hits", len(lexHits)),
		zap.Int("semantic_hits", len(semHits)),
		zap.Int("returned", len(results)))
	return results, nil
}
