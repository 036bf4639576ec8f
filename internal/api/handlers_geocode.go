package api

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/timecardhq/timecard/internal/api/respond"
	"github.com/timecardhq/timecard/internal/geocode"
)

// GeocodeHandler proxies reverse-geocoding lookups to the configured
// provider. Unauthenticated: the response carries nothing user-specific.
type GeocodeHandler struct {
	geocoder geocode.Geocoder
}

func NewGeocodeHandler(g geocode.Geocoder) *GeocodeHandler {
	return &GeocodeHandler{geocoder: g}
}

// Reverse GET /api/geocode?lat=<decimal>&lon=<decimal>
func (h *GeocodeHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, lon := q.Get("lat"), q.Get("lon")
	if lat == "" || lon == "" {
		respond.WriteBadRequest(w, "lat and lon query parameters are required")
		return
	}

	loc, err := h.geocoder.Reverse(r.Context(), lat, lon)
	if err != nil {
		// Every provider failure collapses to one generic message.
		log.Warn().Err(err).Msg("reverse geocode failed")
		respond.WriteInternalError(w, "Geocoding failed")
		return
	}
	respond.WriteJSON(w, http.StatusOK, loc)
}
