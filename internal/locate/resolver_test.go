package locate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timecardhq/timecard/internal/localstate"
)

type fakeSource struct {
	coords Coordinates
	err    error
	opts   AcquireOptions
}

func (f *fakeSource) Current(ctx context.Context, opts AcquireOptions) (Coordinates, error) {
	f.opts = opts
	return f.coords, f.err
}

func geocodeServer(t *testing.T, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var captured http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = *r
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &captured
}

func TestRefreshResolvesAndCaches(t *testing.T) {
	t.Setenv("TIMECARD_STATE_HOME", t.TempDir())

	srv, captured := geocodeServer(t, `{"city":"Springfield","state":"IL"}`)
	src := &fakeSource{coords: Coordinates{Latitude: 39.781719, Longitude: -89.650148}}
	r := NewResolver(srv.URL, src)

	st := r.Refresh(context.Background())
	assert.Equal(t, "Springfield", st.City)
	assert.Equal(t, "IL", st.State)
	assert.Empty(t, st.Advisory)

	// Coordinates rounded to 4 decimals before the proxy call.
	assert.Equal(t, "39.7817", captured.URL.Query().Get("lat"))
	assert.Equal(t, "-89.6501", captured.URL.Query().Get("lon"))

	// Bounded wait with acceptable stale fix.
	assert.Equal(t, positionTimeout, src.opts.Timeout)
	assert.Equal(t, positionMaxAge, src.opts.MaximumAge)

	// Cached for the next session.
	cached := localstate.ReadCachedLocation()
	require.NotNil(t, cached)
	assert.Equal(t, "Springfield", cached.City)
}

func TestNewResolverExposesCachedPlaceholder(t *testing.T) {
	t.Setenv("TIMECARD_STATE_HOME", t.TempDir())
	require.NoError(t, localstate.WriteCachedLocation(localstate.CachedLocation{City: "Portland", State: "OR"}))

	r := NewResolver("http://unused", &fakeSource{})
	st := r.Status()
	assert.Equal(t, "Portland", st.City)
	assert.Equal(t, "OR", st.State)
}

func TestRefreshAdvisoryPerFailureKind(t *testing.T) {
	t.Setenv("TIMECARD_STATE_HOME", t.TempDir())

	cases := []struct {
		name   string
		err    error
		advice string
	}{
		{"permission denied", ErrPermissionDenied, adviceDenied},
		{"unavailable", ErrPositionUnavailable, adviceUnavailable},
		{"timeout", ErrTimeout, adviceTimeout},
		{"no capability", ErrNoCapability, adviceNoGeo},
		{"other", context.Canceled, adviceGeneric},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResolver("http://unused", &fakeSource{err: tc.err})
			st := r.Refresh(context.Background())
			assert.Equal(t, tc.advice, st.Advisory)
		})
	}
}

func TestRefreshNilSource(t *testing.T) {
	t.Setenv("TIMECARD_STATE_HOME", t.TempDir())

	r := NewResolver("http://unused", nil)
	st := r.Refresh(context.Background())
	assert.Equal(t, adviceNoGeo, st.Advisory)
}

func TestRefreshGeocodeFailureKeepsCachedValue(t *testing.T) {
	t.Setenv("TIMECARD_STATE_HOME", t.TempDir())
	require.NoError(t, localstate.WriteCachedLocation(localstate.CachedLocation{City: "Portland", State: "OR"}))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Geocoding failed"}`))
	}))
	t.Cleanup(srv.Close)

	r := NewResolver(srv.URL, &fakeSource{coords: Coordinates{Latitude: 1, Longitude: 2}})
	st := r.Refresh(context.Background())

	assert.Equal(t, adviceGeneric, st.Advisory)
	assert.Equal(t, "Portland", st.City)
	assert.Equal(t, "OR", st.State)
}

func TestEmptyResultDoesNotClobberCache(t *testing.T) {
	t.Setenv("TIMECARD_STATE_HOME", t.TempDir())
	require.NoError(t, localstate.WriteCachedLocation(localstate.CachedLocation{City: "Portland", State: "OR"}))

	srv, _ := geocodeServer(t, `{"city":"","state":""}`)
	r := NewResolver(srv.URL, &fakeSource{coords: Coordinates{Latitude: 1, Longitude: 2}})
	st := r.Refresh(context.Background())

	assert.Empty(t, st.Advisory)
	assert.Equal(t, "Portland", st.City)

	cached := localstate.ReadCachedLocation()
	require.NotNil(t, cached)
	assert.Equal(t, "Portland", cached.City)
}

func TestStartDeliversResult(t *testing.T) {
	t.Setenv("TIMECARD_STATE_HOME", t.TempDir())

	srv, _ := geocodeServer(t, `{"city":"Springfield","state":"IL"}`)
	r := NewResolver(srv.URL, &fakeSource{coords: Coordinates{Latitude: 1, Longitude: 2}})

	done := make(chan Status, 1)
	r.Start(context.Background(), done)
	st := <-done
	assert.Equal(t, "Springfield", st.City)
}
