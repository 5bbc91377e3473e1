package newswire

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option func(*clientConfig)

// WithRedis sets the Redis index store addresses.
func WithRedis(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
	}
}

// WithPassword sets the index store password.
func WithPassword(password string) Option {
	return func(c *clientConfig) {
		c.password = password
	}
}

// WithIndex overrides the article index name and document key prefix.
func WithIndex(name, keyPrefix string) Option {
	return func(c *clientConfig) {
		if name != "" {
			c.indexName = name
		}
		if keyPrefix != "" {
			c.keyPrefix = keyPrefix
		}
	}
}

// WithEmbedding configures the OpenAI-compatible embedding provider.
// baseURL may be empty for the default endpoint.
func WithEmbedding(apiKey, baseURL, model string, dimensions int) Option {
	return func(c *clientConfig) {
		c.embeddingKey = apiKey
		c.embeddingURL = baseURL
		c.model = model
		c.dimensions = dimensions
	}
}

// WithEmbedder replaces the embedding provider entirely.
func WithEmbedder(e Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = e
	}
}

// WithGeocoding configures the remote geocoding service.
func WithGeocoding(baseURL, userAgent string) Option {
	return func(c *clientConfig) {
		c.geocodingURL = baseURL
		c.userAgent = userAgent
	}
}

// WithScoringProfile selects the re-ranking profile ("boosted" or
// "weighted"). Unknown values fall back to the default.
func WithScoringProfile(profile string) Option {
	return func(c *clientConfig) {
		c.profile = profile
	}
}

// WithReferenceTime anchors recency scoring to a fixed corpus date instead
// of the current time.
func WithReferenceTime(t time.Time) Option {
	return func(c *clientConfig) {
		c.referenceTime = t
	}
}

// WithLogger attaches a zap logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
