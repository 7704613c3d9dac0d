package httpapi

import (
	"encoding/json"
	"net/http"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/store"
)

type PreferencesHandler struct {
	Store store.PreferencesStore
	Hub   *events.Hub
}

type preferencesResponse struct {
	Configured  bool               `json:"configured"`
	Preferences domain.Preferences `json:"preferences"`
}

func (h PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	prefs, ok, err := h.Store.GetPreferences(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if !ok {
		prefs = domain.DefaultPreferences()
	}
	writeJSON(w, preferencesResponse{Configured: ok, Preferences: prefs})
}

// Put replaces the record wholesale; there is no partial patch.
func (h PreferencesHandler) Put(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var incoming domain.Preferences
	if err := dec.Decode(&incoming); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if dec.More() {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "trailing data")
		return
	}

	normalized, vr := domain.NormalizeAndValidate(incoming)
	if !vr.OK() {
		WriteJSON(w, http.StatusBadRequest, vr)
		return
	}

	if err := h.Store.PutPreferences(r.Context(), normalized); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.Make(reqID, events.TypePreferencesUpdated, nil))
	writeJSON(w, preferencesResponse{Configured: true, Preferences: normalized})
}
