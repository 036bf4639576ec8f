package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/timecardhq/timecard/internal/model"
)

// GoogleGeocoder calls the Google reverse-geocoding API.
type GoogleGeocoder struct {
	client *resty.Client
	apiKey string
}

// NewGoogle creates a GoogleGeocoder against the given base URL
// (https://maps.googleapis.com in production).
func NewGoogle(baseURL, apiKey string) *GoogleGeocoder {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second)
	return &GoogleGeocoder{client: c, apiKey: apiKey}
}

type googleResponse struct {
	Results []struct {
		AddressComponents []struct {
			LongName  string   `json:"long_name"`
			ShortName string   `json:"short_name"`
			Types     []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// Reverse issues a single request and scans the results' address components
// in order: city is the first "locality" long name, state the first
// "administrative_area_level_1" short name. Partial results are returned
// as-is when no result yields both.
func (g *GoogleGeocoder) Reverse(ctx context.Context, lat, lon string) (model.Location, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("latlng", lat+","+lon).
		SetQueryParam("key", g.apiKey).
		Get("/maps/api/geocode/json")
	if err != nil {
		log.Warn().Err(err).Msg("google geocoding request failed")
		return model.Location{}, ErrGeocodingFailed
	}
	if resp.StatusCode() != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode()).Msg("google geocoding non-OK status")
		return model.Location{}, ErrGeocodingFailed
	}

	var body googleResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return model.Location{}, ErrGeocodingFailed
	}

	var loc model.Location
	for _, result := range body.Results {
		for _, comp := range result.AddressComponents {
			if loc.City == "" && hasType(comp.Types, "locality") {
				loc.City = comp.LongName
			}
			if loc.State == "" && hasType(comp.Types, "administrative_area_level_1") {
				loc.State = comp.ShortName
			}
			if loc.City != "" && loc.State != "" {
				break
			}
		}
		if loc.City != "" && loc.State != "" {
			break
		}
	}
	return loc, nil
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
