package api

import (
	"github.com/gorilla/mux"

	"github.com/timecardhq/timecard/internal/api/recovery"
	"github.com/timecardhq/timecard/internal/auth"
	"github.com/timecardhq/timecard/internal/geocode"
	"github.com/timecardhq/timecard/internal/services"
)

// NewRouter wires all HTTP routes to handlers.
func NewRouter(
	entrySvc *services.EntryService,
	dashboardSvc *services.DashboardService,
	geocoder geocode.Geocoder,
	authorizer auth.Authorizer,
) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	// Entries
	entry := NewEntryHandler(entrySvc, authorizer)
	root.HandleFunc("/api/entries", entry.SaveEntry).Methods("POST")
	root.HandleFunc("/api/entries", entry.ListEntries).Methods("GET")
	root.HandleFunc("/api/entries/{entryId}", entry.DeleteEntry).Methods("DELETE")

	// Dashboard
	dashboard := NewDashboardHandler(dashboardSvc, authorizer)
	root.HandleFunc("/api/dashboard/chart", dashboard.Chart).Methods("GET")

	// Geocoding proxy
	gc := NewGeocodeHandler(geocoder)
	root.HandleFunc("/api/geocode", gc.Reverse).Methods("GET")

	// Health
	health := NewHealthHandler()
	root.HandleFunc("/api/health", health.CheckHealth).Methods("GET")

	return root
}
