package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/timecardhq/timecard/internal/model"
)

// nominatimInterval is the minimum spacing between outbound requests,
// per the Nominatim usage policy.
const nominatimInterval = time.Second

// NominatimGeocoder calls the free OpenStreetMap Nominatim API. Outbound
// requests are throttled process-wide to one per rolling second: a caller
// arriving early sleeps out the remainder rather than being rejected. The
// mutex is held across the wait so the bound holds under concurrency.
type NominatimGeocoder struct {
	client   *resty.Client
	mu       sync.Mutex
	last     time.Time
	interval time.Duration
}

// NewNominatim creates a NominatimGeocoder against the given base URL
// (https://nominatim.openstreetmap.org in production).
func NewNominatim(baseURL string) *NominatimGeocoder {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", "Timecard/1.0").
		SetTimeout(10 * time.Second)
	return &NominatimGeocoder{client: c, interval: nominatimInterval}
}

type nominatimResponse struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		Hamlet  string `json:"hamlet"`
		State   string `json:"state"`
	} `json:"address"`
}

// Reverse waits out the throttle, issues the request, and normalizes the
// address: city is the first non-empty of city/town/village/hamlet.
func (n *NominatimGeocoder) Reverse(ctx context.Context, lat, lon string) (model.Location, error) {
	n.throttle()

	resp, err := n.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":            lat,
			"lon":            lon,
			"format":         "json",
			"addressdetails": "1",
		}).
		Get("/reverse")
	if err != nil {
		log.Warn().Err(err).Msg("nominatim request failed")
		return model.Location{}, ErrGeocodingFailed
	}
	if resp.StatusCode() != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode()).Msg("nominatim non-OK status")
		return model.Location{}, ErrGeocodingFailed
	}

	var body nominatimResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return model.Location{}, ErrGeocodingFailed
	}

	city := firstNonEmpty(body.Address.City, body.Address.Town, body.Address.Village, body.Address.Hamlet)
	return model.Location{City: city, State: body.Address.State}, nil
}

// throttle blocks until a full interval has elapsed since the previous
// request was issued, then records the new issue time. The timestamp is
// updated at issue time, not completion.
func (n *NominatimGeocoder) throttle() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if elapsed := time.Since(n.last); elapsed < n.interval {
		time.Sleep(n.interval - elapsed)
	}
	n.last = time.Now()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
