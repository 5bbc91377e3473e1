// Package chi wires the search use cases onto an HTTP surface.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tidewater-labs/newswire/internal/domain"
	healthuc "github.com/tidewater-labs/newswire/internal/usecase/health"
)

// maxContentRunes bounds the content field in search responses. Full article
// bodies run to tens of kilobytes; the ranked list is a preview surface.
const maxContentRunes = 500

// Error codes returned in JSON error bodies.
const (
	codeUnauthorized     = "unauthorized"
	codeIndexUnavailable = "index_unavailable"
	codeEmbeddingError   = "embedding_provider_error"
	codeInternalError    = "internal_error"
)

// SearchService runs the ranked retrieval pipeline.
type SearchService interface {
	Search(ctx context.Context, req *domain.QueryRequest) ([]domain.ScoredResult, error)
}

// SuggestService serves title autocompletion.
type SuggestService interface {
	Complete(ctx context.Context, prefix string, limit int) ([]string, error)
}

// AnalyticsService serves corpus aggregations.
type AnalyticsService interface {
	TopLocations(ctx context.Context, n int) ([]domain.LocationCount, error)
	Timeline(ctx context.Context) (map[string]int, error)
}

// HealthService aggregates component health checks.
type HealthService interface {
	Check(ctx context.Context) healthuc.Report
}

// errorResponse is the JSON error body for every non-2xx response.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type searchResponse struct {
	Query   string                `json:"query"`
	Total   int                   `json:"total"`
	Results []domain.ScoredResult `json:"results"`
}

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

type locationsResponse struct {
	Locations []domain.LocationCount `json:"locations"`
}

type timelineResponse struct {
	Timeline map[string]int `json:"timeline"`
}

type healthResponse struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks,omitempty"`
}

// Server hosts the HTTP API handlers.
type Server struct {
	search    SearchService
	suggest   SuggestService
	analytics AnalyticsService
	health    HealthService
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	search SearchService,
	suggest SuggestService,
	analytics AnalyticsService,
	health HealthService,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		search:    search,
		suggest:   suggest,
		analytics: analytics,
		health:    health,
		logger:    logger,
	}
}

// Register mounts all routes on the router. Middleware must already be
// attached to r.
func (s *Server) Register(r chi.Router) {
	r.Get("/search", s.handleSearch)
	r.Get("/autocomplete", s.handleAutocomplete)
	r.Get("/analytics/locations", s.handleTopLocations)
	r.Get("/analytics/timeline", s.handleTimeline)
	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}

// handleSearch handles GET /search?q=&from=&to=&near=&size=.
// Malformed date or size parameters are treated as absent, not as errors.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := &domain.QueryRequest{
		Text: q.Get("q"),
		Near: strings.TrimSpace(q.Get("near")),
	}
	if t, ok := domain.ParseDate(q.Get("from")); ok {
		req.From = &t
	}
	if t, ok := domain.ParseDate(q.Get("to")); ok {
		req.To = &t
	}
	if n, err := strconv.Atoi(q.Get("size")); err == nil && n > 0 {
		req.Size = n
	}

	results, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	for i := range results {
		results[i].Content = truncateContent(results[i].Content)
	}
	if results == nil {
		results = []domain.ScoredResult{}
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Query:   strings.TrimSpace(req.Text),
		Total:   len(results),
		Results: results,
	})
}

// handleAutocomplete handles GET /autocomplete?prefix=&limit=.
func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if n, err := strconv.Atoi(q.Get("limit")); err == nil && n > 0 {
		limit = n
	}

	titles, err := s.suggest.Complete(r.Context(), q.Get("prefix"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if titles == nil {
		titles = []string{}
	}
	writeJSON(w, http.StatusOK, suggestResponse{Suggestions: titles})
}

// handleTopLocations handles GET /analytics/locations?n=.
func (s *Server) handleTopLocations(w http.ResponseWriter, r *http.Request) {
	n := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("n")); err == nil && v > 0 {
		n = v
	}

	buckets, err := s.analytics.TopLocations(r.Context(), n)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if buckets == nil {
		buckets = []domain.LocationCount{}
	}
	writeJSON(w, http.StatusOK, locationsResponse{Locations: buckets})
}

// handleTimeline handles GET /analytics/timeline.
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := s.analytics.Timeline(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if timeline == nil {
		timeline = map[string]int{}
	}
	writeJSON(w, http.StatusOK, timelineResponse{Timeline: timeline})
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, healthResponse{
		Status: string(report.Status),
		Checks: report.Checks,
	})
}

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// handleDomainError maps sentinel errors onto HTTP statuses. Index and
// embedding-provider failures are the only classes that surface with a
// dedicated status; everything else is an internal error.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmbeddingProviderError):
		s.logger.Warn("embedding provider error", zap.Error(err))
		writeError(w, http.StatusBadGateway, codeEmbeddingError, "embedding provider error")
	case errors.Is(err, domain.ErrIndexUnavailable):
		s.logger.Warn("index unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, codeIndexUnavailable, "search index unavailable")
	default:
		s.logger.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

// truncateContent cuts s on a rune boundary with an ellipsis marker.
func truncateContent(s string) string {
	runes := []rune(s)
	if len(runes) <= maxContentRunes {
		return s
	}
	return string(runes[:maxContentRunes]) + "..."
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
