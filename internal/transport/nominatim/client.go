// Package nominatim implements a geocoding client against a Nominatim-style
// HTTP API. Failures are classified as transient (retryable) or permanent so
// the resolver's retry policy can act on them.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/tidewater-labs/newswire/internal/domain"
)

// Client calls a remote Nominatim-compatible geocoding service.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    *zap.Logger
}

// Config holds geocoding client settings.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Logger    *zap.Logger
}

// NewClient creates a geocoding client.
func NewClient(cfg *Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

type searchEntry struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a place name to a coordinate.
// Returns ErrGeocodeNotFound (permanent) when the provider has no match,
// ErrGeocodeRejected (permanent) on 4xx, ErrGeocodeUnavailable (transient)
// on network failures and 5xx.
func (c *Client) Geocode(ctx context.Context, place string) (domain.GeoPoint, error) {
	q := url.Values{}
	q.Set("q", place)
	q.Set("format", "json")
	q.Set("limit", "1")

	var entries []searchEntry
	if err := c.get(ctx, "/search", q, &entries); err != nil {
		return domain.GeoPoint{}, err
	}

	if len(entries) == 0 {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: %w", place, domain.ErrGeocodeNotFound)
	}

	lat, latErr := strconv.ParseFloat(entries[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(entries[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return domain.GeoPoint{}, fmt.Errorf("geocode %q: malformed coordinates: %w",
			place, domain.ErrGeocodeRejected)
	}

	return domain.GeoPoint{Lat: lat, Lon: lon}, nil
}

type reverseEntry struct {
	DisplayName string `json:"display_name"`
}

// Reverse resolves a coordinate to a display address.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("format", "json")

	var entry reverseEntry
	if err := c.get(ctx, "/reverse", q, &entry); err != nil {
		return "", err
	}
	if entry.DisplayName == "" {
		return "", fmt.Errorf("reverse %.4f,%.4f: %w", lat, lon, domain.ErrGeocodeNotFound)
	}
	return entry.DisplayName, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w: %w", domain.ErrGeocodeRejected, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		// Timeouts and connection failures are worth retrying.
		return fmt.Errorf("geocoding request: %w: %w", domain.ErrGeocodeUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("geocoding status %d: %w", resp.StatusCode, domain.ErrGeocodeUnavailable)
	case resp.StatusCode >= 400:
		return fmt.Errorf("geocoding status %d: %w", resp.StatusCode, domain.ErrGeocodeRejected)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode geocoding response: %w: %w", domain.ErrGeocodeRejected, err)
	}
	return nil
}
