package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/store"
)

type StatusHandler struct {
	Store   store.StatusStore
	Catalog []domain.JobPosting
	Hub     *events.Hub
}

func (h StatusHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}
	updates, err := h.Store.RecentStatuses(r.Context(), limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, updates)
}

type putStatusRequest struct {
	Status string `json:"status"`
}

// Put records the status for a catalog posting. Title and company are
// denormalized from the catalog so the digest summary renders without a
// second lookup.
func (h StatusHandler) Put(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/statuses/"))
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "want /statuses/{id}")
		return
	}

	var job *domain.JobPosting
	for i := range h.Catalog {
		if h.Catalog[i].ID == id {
			job = &h.Catalog[i]
			break
		}
	}
	if job == nil {
		WriteError(w, r, http.StatusNotFound, "unknown_posting", "no posting with id "+id)
		return
	}

	var req putStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	status, err := domain.ParseApplicationStatus(req.Status)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_status", err.Error())
		return
	}

	u := domain.StatusUpdate{
		PostingID: id,
		JobTitle:  job.Title,
		Company:   job.Company,
		Status:    status,
		UpdatedAt: time.Now().UTC(),
	}
	if err := h.Store.PutStatus(r.Context(), u); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.TypeStatusUpdated,
		map[string]any{"id": id, "status": status}))
	writeJSON(w, u)
}
