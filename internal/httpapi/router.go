package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: Health,
	}))

	// Jobs (scored + filtered + sorted view of the catalog)
	jh := JobsHandler{Store: d.Store, Catalog: d.Catalog, Meta: d.Meta, Scorer: d.Scorer}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs/meta", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.GetMeta,
	}))

	// Preferences
	ph := PreferencesHandler{Store: d.Store, Hub: d.Hub}
	mux.HandleFunc("/preferences", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Get,
		http.MethodPut: ph.Put,
	}))

	// Digest
	dh := DigestHandler{Store: d.Store, Selector: d.Selector, Hub: d.Hub}
	mux.HandleFunc("/digest/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  dh.GetByPath,  // /digest/{date}[/text|/email]
		http.MethodPost: dh.Generate,   // /digest/{date}[?force=1]
	}))

	// Saved shortlist
	svh := SavedHandler{Store: d.Store, Hub: d.Hub}
	mux.HandleFunc("/saved", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: svh.List,
	}))
	mux.HandleFunc("/saved/", methodMux(map[string]http.HandlerFunc{
		http.MethodPut:    svh.Add,    // /saved/{id}
		http.MethodDelete: svh.Remove, // /saved/{id}
	}))

	// Status ledger
	sth := StatusHandler{Store: d.Store, Catalog: d.Catalog, Hub: d.Hub}
	mux.HandleFunc("/statuses", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sth.Recent,
	}))
	mux.HandleFunc("/statuses/", methodMux(map[string]http.HandlerFunc{
		http.MethodPut: sth.Put, // /statuses/{id}
	}))

	// Config
	ch := ConfigHandler{CfgVal: d.CfgVal, UserCfgPath: d.UserCfgPath, LoadCfg: d.LoadCfg}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
