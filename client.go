// Package newswire is the embedded client for the news-archive search
// engine. It wires the retrieval pipeline directly over a Redis index store,
// for programs that want ranked search without running the HTTP server.
package newswire

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tidewater-labs/newswire/internal/db"
	dbRedis "github.com/tidewater-labs/newswire/internal/db/redis"
	"github.com/tidewater-labs/newswire/internal/domain"
	analyticsrepo "github.com/tidewater-labs/newswire/internal/repository/analytics"
	articlerepo "github.com/tidewater-labs/newswire/internal/repository/article"
	"github.com/tidewater-labs/newswire/internal/retry"
	"github.com/tidewater-labs/newswire/internal/transport/nominatim"
	openaiEmb "github.com/tidewater-labs/newswire/internal/transport/openai"
	analyticsuc "github.com/tidewater-labs/newswire/internal/usecase/analytics"
	"github.com/tidewater-labs/newswire/internal/usecase/georesolve"
	queryuc "github.com/tidewater-labs/newswire/internal/usecase/query"
	suggestuc "github.com/tidewater-labs/newswire/internal/usecase/suggest"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultIndexName        = "newswire:articles:idx"
	defaultKeyPrefix        = "newswire:article:"
)

// Embedder vectorizes query text. Provide one via WithEmbedder to replace
// the OpenAI-compatible default.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Client is the newswire SDK entry point.
type Client struct {
	store     db.Store
	searchSvc *queryuc.Service
	suggSvc   *suggestuc.Service
	analSvc   *analyticsuc.Service
}

type clientConfig struct {
	addrs     []string
	password  string
	indexName string
	keyPrefix string

	embedder      Embedder
	embeddingKey  string
	embeddingURL  string
	model         string
	dimensions    int
	geocodingURL  string
	userAgent     string
	profile       string
	referenceTime time.Time
	logger        *zap.Logger
}

// New creates a newswire Client and connects to the index store.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		indexName: defaultIndexName,
		keyPrefix: defaultKeyPrefix,
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("newswire: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("newswire: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("newswire: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	embedder := cfg.embedder
	if embedder == nil {
		embedder = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.embeddingKey,
			BaseURL:    cfg.embeddingURL,
			Model:      cfg.model,
			Dimensions: cfg.dimensions,
			Logger:     logger,
		})
	}

	geocoder := nominatim.NewClient(&nominatim.Config{
		BaseURL:   cfg.geocodingURL,
		UserAgent: cfg.userAgent,
		Logger:    logger,
	})
	resolver := georesolve.New(geocoder, retry.DefaultPolicy(), 0, logger)

	articles := articlerepo.New(store, cfg.indexName, cfg.keyPrefix)
	aggregations := analyticsrepo.New(store, cfg.indexName)

	searchSvc := queryuc.New(articles, &embedderAdapter{inner: embedder}, resolver, queryuc.Config{
		Profile:       queryuc.Profile(cfg.profile),
		ReferenceTime: cfg.referenceTime,
	}, logger)

	return &Client{
		store:     store,
		searchSvc: searchSvc,
		suggSvc:   suggestuc.New(articles),
		analSvc:   analyticsuc.New(aggregations),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks index store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// embedderAdapter wraps the public Embedder to satisfy the internal contract.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) ([]float32, error) {
	v, err := a.inner.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	return v, nil
}

// geoPointFromDomain converts an internal coordinate to the public type.
func geoPointFromDomain(p domain.GeoPoint) Coordinate {
	return Coordinate{Lat: p.Lat, Lon: p.Lon}
}
