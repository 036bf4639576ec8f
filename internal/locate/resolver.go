// Package locate resolves the device's current city/state for pre-filling
// entry location fields. It rounds device coordinates, calls the service's
// geocoding proxy, and keeps the last successful result cached on disk as a
// non-authoritative placeholder for the next session.
package locate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/timecardhq/timecard/internal/localstate"
	"github.com/timecardhq/timecard/internal/model"
)

// Position acquisition failures, classified so each maps to a distinct
// advisory message.
var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("position request timed out")
	ErrNoCapability        = errors.New("geolocation not supported")
)

// AcquireOptions bounds a position fix request. A cached fix no older than
// MaximumAge is acceptable, avoiding unnecessary re-acquisition.
type AcquireOptions struct {
	Timeout    time.Duration
	MaximumAge time.Duration
}

// Coordinates is a device position fix.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// PositionSource supplies device coordinates. Implementations should return
// one of the classified errors above on failure.
type PositionSource interface {
	Current(ctx context.Context, opts AcquireOptions) (Coordinates, error)
}

// Status is the exposed resolver state. City/State may come from the cache
// (stale placeholder) until a fresh resolution lands. Advisory is empty on
// success and a human-readable hint otherwise.
type Status struct {
	City      string
	State     string
	Advisory  string
	Resolving bool
}

const (
	adviceDenied      = "Location permission denied. Enter your city/state manually."
	adviceUnavailable = "Location unavailable. Enter your city/state manually."
	adviceTimeout     = "Location request timed out. Enter your city/state manually."
	adviceNoGeo       = "Geolocation is not supported on this device."
	adviceGeneric     = "Could not determine location. Enter your city/state manually."

	positionTimeout = 10 * time.Second
	positionMaxAge  = 5 * time.Minute
)

// Resolver obtains and exposes the current location.
type Resolver struct {
	source PositionSource
	client *resty.Client

	mu     sync.Mutex
	status Status
}

// NewResolver builds a Resolver calling the geocode endpoint at baseURL.
// Any cached location is exposed immediately as a placeholder.
func NewResolver(baseURL string, source PositionSource) *Resolver {
	r := &Resolver{
		source: source,
		client: resty.New().SetBaseURL(baseURL).SetTimeout(15 * time.Second),
	}
	if cached := localstate.ReadCachedLocation(); cached != nil {
		r.status.City = cached.City
		r.status.State = cached.State
	}
	return r
}

// Status returns the current resolver state.
func (r *Resolver) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Start kicks off a background resolution, leaving any cached placeholder
// visible meanwhile. done, if non-nil, is closed when the attempt finishes.
func (r *Resolver) Start(ctx context.Context, done chan<- Status) {
	go func() {
		st := r.Refresh(ctx)
		if done != nil {
			done <- st
		}
	}()
}

// Refresh forces a fresh resolution attempt and returns the resulting state.
// On failure the previous city/state values are left in place so the caller
// can still fall back to manual entry with the cached hint.
func (r *Resolver) Refresh(ctx context.Context) Status {
	r.setResolving(true)
	defer r.setResolving(false)

	if r.source == nil {
		return r.fail(adviceNoGeo)
	}

	coords, err := r.source.Current(ctx, AcquireOptions{Timeout: positionTimeout, MaximumAge: positionMaxAge})
	if err != nil {
		switch {
		case errors.Is(err, ErrPermissionDenied):
			return r.fail(adviceDenied)
		case errors.Is(err, ErrPositionUnavailable):
			return r.fail(adviceUnavailable)
		case errors.Is(err, ErrTimeout):
			return r.fail(adviceTimeout)
		case errors.Is(err, ErrNoCapability):
			return r.fail(adviceNoGeo)
		default:
			return r.fail(adviceGeneric)
		}
	}

	loc, err := r.reverseGeocode(ctx, coords)
	if err != nil {
		return r.fail(adviceGeneric)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if loc.City != "" || loc.State != "" {
		r.status.City = loc.City
		r.status.State = loc.State
		_ = localstate.WriteCachedLocation(localstate.CachedLocation{City: loc.City, State: loc.State})
	}
	r.status.Advisory = ""
	return r.status
}

// reverseGeocode rounds coordinates to 4 decimal places (~11 m) before the
// proxy call so nearby fixes hit the same upstream cache key.
func (r *Resolver) reverseGeocode(ctx context.Context, c Coordinates) (model.Location, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParam("lat", RoundCoordinate(c.Latitude)).
		SetQueryParam("lon", RoundCoordinate(c.Longitude)).
		Get("/api/geocode")
	if err != nil {
		return model.Location{}, err
	}
	if resp.StatusCode() != http.StatusOK {
		return model.Location{}, errors.New("reverse geocode failed")
	}
	var loc model.Location
	if err := json.Unmarshal(resp.Body(), &loc); err != nil {
		return model.Location{}, err
	}
	return loc, nil
}

// RoundCoordinate formats a coordinate with 4 decimal places.
func RoundCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func (r *Resolver) setResolving(v bool) {
	r.mu.Lock()
	r.status.Resolving = v
	r.mu.Unlock()
}

func (r *Resolver) fail(advisory string) Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status.Advisory = advisory
	return r.status
}
