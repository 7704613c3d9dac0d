package httpapi

import (
	"net/http"
	"strings"
	"time"

	"jobtrack-engine/internal/digest"
	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/store"
)

type DigestHandler struct {
	Store    store.Store
	Selector *digest.Selector
	Hub      *events.Hub
}

// digestPath splits /digest/{date}[/text|/email]. The date is always passed
// by the caller, never read from the engine's clock.
func digestPath(path string) (date, view string, ok bool) {
	rest := strings.TrimPrefix(path, "/digest/")
	date, view, _ = strings.Cut(rest, "/")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", "", false
	}
	switch view {
	case "", "text", "email":
		return date, view, true
	}
	return "", "", false
}

// Generate materializes the snapshot for a date. Repeating the call returns
// the stored snapshot untouched; ?force=1 is the explicit regeneration path.
func (h DigestHandler) Generate(w http.ResponseWriter, r *http.Request) {
	date, view, ok := digestPath(r.URL.Path)
	if !ok || view != "" {
		WriteError(w, r, http.StatusBadRequest, "invalid_date", "want /digest/{YYYY-MM-DD}")
		return
	}

	prefs, configured, err := h.Store.GetPreferences(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if !configured {
		WriteError(w, r, http.StatusConflict, "preferences_not_set",
			"set preferences before generating a digest")
		return
	}

	force := r.URL.Query().Get("force") == "1" || r.URL.Query().Get("force") == "true"

	var snap digest.Snapshot
	created := false
	if force {
		snap, err = h.Selector.Regenerate(r.Context(), date, prefs)
		created = err == nil
	} else {
		snap, created, err = h.Selector.Generate(r.Context(), date, prefs)
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "digest_error", err.Error())
		return
	}

	if created {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.Make(reqID, events.TypeDigestGenerated,
			map[string]any{"date": date, "entries": len(snap.Entries)}))
	}
	writeJSON(w, map[string]any{"created": created, "digest": snap})
}

func (h DigestHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	date, view, ok := digestPath(r.URL.Path)
	if !ok {
		WriteError(w, r, http.StatusBadRequest, "invalid_date", "want /digest/{YYYY-MM-DD}")
		return
	}

	snap, found, err := h.Selector.Get(r.Context(), date)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "digest_error", err.Error())
		return
	}
	if !found {
		// Absent is distinct from "generated with zero results".
		WriteError(w, r, http.StatusNotFound, "not_generated",
			"no digest generated for "+date)
		return
	}

	switch view {
	case "":
		writeJSON(w, snap)
	case "text":
		updates, err := h.recentUpdates(r)
		if err != nil {
			WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(digest.Transcript(snap, updates)))
	case "email":
		updates, err := h.recentUpdates(r)
		if err != nil {
			WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
			return
		}
		writeJSON(w, digest.RenderMailDraft(snap, updates))
	}
}

func (h DigestHandler) recentUpdates(r *http.Request) ([]domain.StatusUpdate, error) {
	return h.Store.RecentStatuses(r.Context(), 5)
}
