package factory

import (
	"github.com/rs/zerolog"

	"github.com/timecardhq/timecard/internal/config"
	"github.com/timecardhq/timecard/internal/geocode"
)

// NewGeocoder selects the geocoding provider. The presence of the Google
// credential is the sole switch; everything else falls back to the
// rate-limited Nominatim provider.
func NewGeocoder(cfg *config.Config, log zerolog.Logger) geocode.Geocoder {
	if cfg.GoogleGeocodingAPIKey != "" {
		log.Info().Msg("using Google geocoding provider")
		return geocode.NewGoogle(cfg.GoogleGeocodingURL, cfg.GoogleGeocodingAPIKey)
	}
	log.Info().Msg("using Nominatim geocoding provider (rate limited)")
	return geocode.NewNominatim(cfg.NominatimURL)
}
