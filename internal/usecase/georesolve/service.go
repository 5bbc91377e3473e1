// Package georesolve resolves free-text georeferences to coordinates with a
// process-lifetime cache and bounded retry against the remote geocoder.
package georesolve

import (
	"context"
	"errors"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/tidewater-labs/newswire/internal/domain"
	"github.com/tidewater-labs/newswire/internal/domain/geo"
	"github.com/tidewater-labs/newswire/internal/metrics"
	"github.com/tidewater-labs/newswire/internal/retry"
)

// DefaultCacheSize bounds the resolution cache. Entries are tiny; the bound
// exists only to keep a hostile query stream from growing memory unbounded.
const DefaultCacheSize = 4096

// entry is a cached resolution. found=false is an explicit negative: the
// lookup ran and failed, so later calls must not retry the remote service
// within this process lifetime.
type entry struct {
	point domain.GeoPoint
	found bool
}

// countryFallbacks maps common country abbreviations to a representative
// coordinate so geo-boosting stays meaningful when remote resolution fails.
var countryFallbacks = map[string]domain.GeoPoint{
	"usa":     {Lat: 39.8283, Lon: -98.5795},
	"us":      {Lat: 39.8283, Lon: -98.5795},
	"uk":      {Lat: 54.7024, Lon: -3.2766},
	"ussr":    {Lat: 61.5240, Lon: 105.3188},
	"japan":   {Lat: 36.2048, Lon: 138.2529},
	"germany": {Lat: 51.1657, Lon: 10.4515},
	"france":  {Lat: 46.2276, Lon: 2.2137},
	"canada":  {Lat: 56.1304, Lon: -106.3468},
	"china":   {Lat: 35.8617, Lon: 104.1954},
}

// Service resolves georeferences to coordinates.
type Service struct {
	geocoder Geocoder
	cache    *lru.Cache[string, entry]
	policy   retry.Policy
	logger   *zap.Logger
}

// New creates a resolver. cacheSize <= 0 falls back to DefaultCacheSize.
func New(geocoder Geocoder, policy retry.Policy, cacheSize int, logger *zap.Logger) *Service {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, _ := lru.New[string, entry](cacheSize)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{geocoder: geocoder, cache: cache, policy: policy, logger: logger}
}

// Resolve maps a place name or "lat,lon" literal to a coordinate. The second
// return value reports whether a coordinate was obtained; a false result is
// a degraded outcome, never an error — the caller simply skips geo-boosting.
//
// Literal coordinates bypass the cache and the remote service entirely.
// Named places are cached by their normalized form, including failed
// resolutions, so each distinct name triggers at most one remote lookup
// sequence per process. Two requests racing on the same fresh key may both
// call the remote service; both write the same result, which is harmless.
func (s *Service) Resolve(ctx context.Context, ref string) (domain.GeoPoint, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.GeoPoint{}, false
	}

	if lat, lon, ok := geo.ParseLatLon(ref); ok {
		return domain.GeoPoint{Lat: lat, Lon: lon}, true
	}

	key := strings.ToLower(ref)
	if e, ok := s.cache.Get(key); ok {
		if e.found {
			metrics.GeocodeCacheTotal.WithLabelValues("hit").Inc()
		} else {
			metrics.GeocodeCacheTotal.WithLabelValues("negative_hit").Inc()
		}
		return e.point, e.found
	}
	metrics.GeocodeCacheTotal.WithLabelValues("miss").Inc()

	e, cacheable := s.lookup(ctx, key, ref)
	if cacheable {
		s.cache.Add(key, e)
	}
	return e.point, e.found
}

// lookup performs the remote resolution with bounded retry, falling back to
// a representative country coordinate when the remote path fails. The
// second return value reports whether the outcome may be cached: a lookup
// cut short by the caller's context says nothing about the place name, so
// it must not become a process-lifetime negative.
func (s *Service) lookup(ctx context.Context, key, ref string) (entry, bool) {
	var point domain.GeoPoint
	err := retry.Do(ctx, s.policy, domain.IsTransientGeocode, func(ctx context.Context) error {
		p, err := s.geocoder.Geocode(ctx, ref)
		if err != nil {
			return err
		}
		point = p
		return nil
	})

	if err == nil {
		metrics.GeocodeLookupsTotal.WithLabelValues("ok").Inc()
		return entry{point: point, found: true}, true
	}

	if fallback, ok := countryFallbacks[key]; ok {
		metrics.GeocodeLookupsTotal.WithLabelValues("fallback").Inc()
		s.logger.Debug("geocode fallback used",
			zap.String("place", ref), zap.Error(err))
		return entry{point: fallback, found: true}, true
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		metrics.GeocodeLookupsTotal.WithLabelValues("error").Inc()
		s.logger.Debug("geocode lookup aborted by caller",
			zap.String("place", ref), zap.Error(err))
		return entry{}, false
	}

	if errors.Is(err, domain.ErrGeocodeNotFound) {
		metrics.GeocodeLookupsTotal.WithLabelValues("not_found").Inc()
	} else {
		metrics.GeocodeLookupsTotal.WithLabelValues("error").Inc()
	}
	s.logger.Warn("geocode resolution failed, caching negative",
		zap.String("place", ref), zap.Error(err))
	return entry{}, true
}
