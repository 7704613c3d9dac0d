package httpapi

import (
	"net/http"

	"jobtrack-engine/internal/catalog"
	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/feed"
	"jobtrack-engine/internal/rank"
	"jobtrack-engine/internal/store"
)

type JobsHandler struct {
	Store   store.PreferencesStore
	Catalog []domain.JobPosting
	Meta    catalog.Meta
	Scorer  rank.Scorer
}

// List serves the dashboard view: the catalog scored against current
// preferences, then filtered and sorted per query params. Unknown filter or
// sort values fall through to "no filter" / catalog order.
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	prefs, ok, err := h.Store.GetPreferences(r.Context())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if !ok {
		prefs = domain.DefaultPreferences()
	}

	q := r.URL.Query()
	filters := feed.Filters{
		Keyword:     q.Get("keyword"),
		Location:    q.Get("location"),
		Mode:        q.Get("mode"),
		Experience:  q.Get("experience"),
		Source:      q.Get("source"),
		OnlyMatches: q.Get("only_matches") == "1" || q.Get("only_matches") == "true",
	}
	sortKey, _ := feed.ParseSortKey(q.Get("sort"))

	scored := rank.ScoreAll(h.Scorer, h.Catalog, prefs)
	jobs := feed.Apply(scored, filters, sortKey, prefs.MinMatchScore)

	writeJSON(w, jobs)
}

func (h JobsHandler) GetMeta(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Meta)
}
