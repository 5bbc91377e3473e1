package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and geocoding Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newswire",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"outcome"}, // "ok" / "empty" / "error"
	)

	SearchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "newswire",
			Name:      "search_candidates",
			Help:      "Fused candidate count per search request",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100, 200},
		},
	)

	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newswire",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newswire",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	GeocodeLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newswire",
			Name:      "geocode_lookups_total",
			Help:      "Remote geocode lookups by result",
		},
		[]string{"result"}, // "ok" / "not_found" / "fallback" / "error"
	)

	GeocodeCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newswire",
			Name:      "geocode_cache_total",
			Help:      "Geocode cache hits and misses",
		},
		[]string{"result"}, // "hit" / "negative_hit" / "miss"
	)
)

// RegisterSearchMetrics registers search, embedding, and geocode metrics.
// Called explicitly from the composition root (no init()) so tests can
// construct services without touching the default registry.
func RegisterSearchMetrics() {
	prometheus.MustRegister(
		SearchRequestsTotal,
		SearchCandidates,
		EmbeddingRequestsTotal,
		EmbeddingRequestDuration,
		GeocodeLookupsTotal,
		GeocodeCacheTotal,
	)
}
