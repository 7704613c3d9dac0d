package httpapi

import (
	"net/http"
	"strings"

	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/store"
)

type SavedHandler struct {
	Store store.SavedStore
	Hub   *events.Hub
}

func (h SavedHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.Store.ListSaved(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ids": ids})
}

func savedID(path string) string {
	return strings.TrimSpace(strings.TrimPrefix(path, "/saved/"))
}

func (h SavedHandler) Add(w http.ResponseWriter, r *http.Request) {
	id := savedID(r.URL.Path)
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "want /saved/{id}")
		return
	}
	if err := h.Store.AddSaved(r.Context(), id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.TypePostingSaved, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}

func (h SavedHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := savedID(r.URL.Path)
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "want /saved/{id}")
		return
	}
	if err := h.Store.RemoveSaved(r.Context(), id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.TypePostingUnsaved, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}
