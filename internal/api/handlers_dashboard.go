package api

import (
	"net/http"

	"github.com/timecardhq/timecard/internal/api/respond"
	"github.com/timecardhq/timecard/internal/auth"
	"github.com/timecardhq/timecard/internal/services"
)

// DashboardHandler serves the chart series.
type DashboardHandler struct {
	svc        *services.DashboardService
	authorizer auth.Authorizer
}

func NewDashboardHandler(svc *services.DashboardService, authorizer auth.Authorizer) *DashboardHandler {
	return &DashboardHandler{svc: svc, authorizer: authorizer}
}

// Chart GET /api/dashboard/chart
// Returns the fixed 10-day gap-filled series ending today.
func (h *DashboardHandler) Chart(w http.ResponseWriter, r *http.Request) {
	apiKey, err := auth.ExtractAPIKey(r)
	if err != nil {
		respond.WriteUnauthorized(w, "Unauthorized: "+err.Error())
		return
	}
	actor, err := h.authorizer.Authorize(r.Context(), apiKey, "dashboard.read")
	if err != nil {
		respond.WriteUnauthorized(w, "Unauthorized: "+err.Error())
		return
	}

	points, err := h.svc.ChartData(r.Context(), actor.ActorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"points": points})
}
