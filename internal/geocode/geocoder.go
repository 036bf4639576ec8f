// Package geocode reverse-geocodes coordinates to a best-effort city/state
// pair. A paid Google provider is used when a credential is configured,
// otherwise the free Nominatim provider behind a 1 req/s throttle.
package geocode

import (
	"context"
	"errors"

	"github.com/timecardhq/timecard/internal/model"
)

// ErrGeocodingFailed is the single error surfaced for any provider failure.
// Provider outage, malformed response and network error are deliberately not
// distinguished past this boundary.
var ErrGeocodingFailed = errors.New("geocoding failed")

// Geocoder resolves a latitude/longitude pair (decimal strings) to a
// location. Results are never persisted here; caching is the caller's
// responsibility.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon string) (model.Location, error)
}
