package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/timecardhq/timecard/internal/api/respond"
	"github.com/timecardhq/timecard/internal/auth"
	"github.com/timecardhq/timecard/internal/model"
	"github.com/timecardhq/timecard/internal/services"
)

// EntryHandler is a thin HTTP transport over EntryService.
type EntryHandler struct {
	svc        *services.EntryService
	authorizer auth.Authorizer
}

func NewEntryHandler(svc *services.EntryService, authorizer auth.Authorizer) *EntryHandler {
	return &EntryHandler{svc: svc, authorizer: authorizer}
}

// SaveEntry POST /api/entries
// Inserts when the body carries no entryId, updates otherwise.
func (h *EntryHandler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.authorize(w, r, "entries.write")
	if !ok {
		return
	}

	var req model.SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	out, created, err := h.svc.Save(r.Context(), actor.ActorID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respond.WriteJSON(w, status, out)
}

// ListEntries GET /api/entries?from=&to=
func (h *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.authorize(w, r, "entries.read")
	if !ok {
		return
	}

	q := r.URL.Query()
	entries, err := h.svc.List(r.Context(), actor.ActorID, q.Get("from"), q.Get("to"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": entries, "count": len(entries)})
}

// DeleteEntry DELETE /api/entries/{entryId}
// Always 204 for authenticated callers: a nonexistent or non-owned id is a
// silent no-op so callers cannot probe for other users' rows.
func (h *EntryHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.authorize(w, r, "entries.write")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), actor.ActorID, mux.Vars(r)["entryId"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *EntryHandler) authorize(w http.ResponseWriter, r *http.Request, operation string) (*auth.ActorInfo, bool) {
	apiKey, err := auth.ExtractAPIKey(r)
	if err != nil {
		respond.WriteUnauthorized(w, "Unauthorized: "+err.Error())
		return nil, false
	}
	actor, err := h.authorizer.Authorize(r.Context(), apiKey, operation)
	if err != nil {
		respond.WriteUnauthorized(w, "Unauthorized: "+err.Error())
		return nil, false
	}
	return actor, true
}

// writeServiceError maps service errors onto the wire: validation failures
// are actionable 400s, missing identity is 401, and store failures pass
// through verbatim as 500s.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotAuthenticated):
		respond.WriteUnauthorized(w, err.Error())
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	default:
		respond.WriteInternalError(w, err.Error())
	}
}
