package query

import (
	"context"

	"github.com/tidewater-labs/newswire/internal/domain"
)

// Retriever defines the index contract for the two retrieval legs. Lexical
// relevance and semantic similarity use engine-native scales that are not
// comparable to each other; the pipeline only ever combines them additively.
type Retriever interface {
	Lexical(ctx context.Context, text string, dates *domain.DateRange, limit int) ([]domain.Hit, error)
	Semantic(ctx context.Context, vector []float32, k int) ([]domain.Hit, error)
}

// Embedder vectorizes query text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// GeoResolver maps a free-text georeference to a coordinate. A false result
// means the reference did not resolve; the request proceeds without
// geo-boosting.
type GeoResolver interface {
	Resolve(ctx context.Context, ref string) (domain.GeoPoint, bool)
}
