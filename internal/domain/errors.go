package domain

import "errors"

var (
	// ErrIndexUnavailable signals that the search index cannot be reached.
	// This is the one dependency failure with no degraded path: it
	// propagates to the caller as a request-level failure.
	ErrIndexUnavailable = errors.New("index unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")

	// ErrGeocodeUnavailable signals a transient geocoding failure
	// (timeout, 5xx). Safe to retry.
	ErrGeocodeUnavailable = errors.New("geocoding unavailable")
	// ErrGeocodeRejected signals that the geocoding provider rejected the
	// request outright. Retrying cannot help.
	ErrGeocodeRejected = errors.New("geocoding request rejected")
	// ErrGeocodeNotFound signals that the place name did not resolve.
	ErrGeocodeNotFound = errors.New("place not found")

	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)

// IsTransientGeocode reports whether a geocoding error is worth retrying.
func IsTransientGeocode(err error) bool {
	return errors.Is(err, ErrGeocodeUnavailable)
}
