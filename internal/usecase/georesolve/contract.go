package georesolve

import (
	"context"

	"github.com/tidewater-labs/newswire/internal/domain"
)

// Geocoder resolves a place name against the remote geocoding service.
// Implementations classify failures via the domain geocode sentinels so the
// retry policy can distinguish transient from permanent errors.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (domain.GeoPoint, error)
}
