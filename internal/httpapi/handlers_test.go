package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-engine/internal/catalog"
	"jobtrack-engine/internal/digest"
	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/rank"
	"jobtrack-engine/internal/store"
)

func testCatalog() []domain.JobPosting {
	return []domain.JobPosting{
		{
			ID: "ln-101", Title: "Senior React Engineer", Company: "Flipstack",
			Location: "Bangalore", Mode: domain.ModeRemote, Experience: domain.ExpThreeFive,
			SalaryRange: "18-24 LPA", Description: "react with typescript",
			Skills: []string{"React", "TypeScript"}, Source: "LinkedIn",
			PostedDaysAgo: 1, ApplyURL: "https://example.com/jobs/ln-101",
		},
		{
			ID: "in-106", Title: "Data Analyst", Company: "Quantfield",
			Location: "Mumbai", Mode: domain.ModeOnsite, Experience: domain.ExpFresher,
			SalaryRange: "3-5 LPA", Description: "sql dashboards",
			Skills: []string{"SQL"}, Source: "Indeed",
			PostedDaysAgo: 7, ApplyURL: "https://example.com/jobs/in-106",
		},
	}
}

func newTestServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	cat := testCatalog()
	scorer := rank.RubricScorer{}
	mux := NewMux(Deps{
		Store:    mem,
		Catalog:  cat,
		Meta:     catalog.CollectMeta(cat),
		Scorer:   scorer,
		Selector: &digest.Selector{Catalog: cat, Scorer: scorer, Store: mem},
		Hub:      events.NewHub(),
	})
	// Same middleware set main() installs, so tests see production behavior.
	srv := httptest.NewServer(Chain(mux, RequestID, AccessLog, Recover, Cors))
	t.Cleanup(srv.Close)
	return srv, mem
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, true, body["ok"])
}

func TestPreferences_PutThenGet(t *testing.T) {
	srv, _ := newTestServer(t)

	// No record yet: defaults with configured=false.
	resp := do(t, http.MethodGet, srv.URL+"/preferences", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[preferencesResponse](t, resp)
	assert.False(t, got.Configured)
	assert.Equal(t, 40, got.Preferences.MinMatchScore)

	resp = do(t, http.MethodPut, srv.URL+"/preferences", `{
		"roleKeywords":["react"],
		"preferredLocations":["Bangalore"],
		"preferredModes":["Remote"],
		"experienceLevel":"3-5 Years",
		"skills":["React"],
		"minMatchScore":40
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decode[preferencesResponse](t, resp)
	assert.True(t, got.Configured)
	assert.Equal(t, []string{"react"}, got.Preferences.RoleKeywords)

	resp = do(t, http.MethodGet, srv.URL+"/preferences", "")
	got = decode[preferencesResponse](t, resp)
	assert.True(t, got.Configured)
}

func TestPreferences_PutRejectsInvalid(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPut, srv.URL+"/preferences", `{"minMatchScore":101}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodPut, srv.URL+"/preferences", `{"unknown":"field"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestJobs_ListScoredAndFiltered(t *testing.T) {
	srv, _ := newTestServer(t)

	// Unconfigured preferences: scores are bonuses only.
	resp := do(t, http.MethodGet, srv.URL+"/jobs", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	jobs := decode[[]domain.ScoredPosting](t, resp)
	require.Len(t, jobs, 2)
	assert.Equal(t, 10, jobs[0].Score) // fresh + LinkedIn
	assert.Equal(t, 0, jobs[1].Score)

	resp = do(t, http.MethodGet, srv.URL+"/jobs?keyword=react", "")
	jobs = decode[[]domain.ScoredPosting](t, resp)
	require.Len(t, jobs, 1)
	assert.Equal(t, "ln-101", jobs[0].ID)

	resp = do(t, http.MethodGet, srv.URL+"/jobs?sort=salary", "")
	jobs = decode[[]domain.ScoredPosting](t, resp)
	assert.Equal(t, "ln-101", jobs[0].ID) // 18 LPA over 3 LPA
}

func TestJobs_OnlyMatchesNeedsThreshold(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPut, srv.URL+"/preferences", `{
		"roleKeywords":["react"],"minMatchScore":40
	}`)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/jobs?only_matches=1", "")
	jobs := decode[[]domain.ScoredPosting](t, resp)
	require.Len(t, jobs, 1)
	assert.Equal(t, "ln-101", jobs[0].ID)
}

func TestJobs_Meta(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/jobs/meta", "")
	meta := decode[catalog.Meta](t, resp)
	assert.Equal(t, []string{"Bangalore", "Mumbai"}, meta.Locations)
	assert.Equal(t, []string{"LinkedIn", "Indeed"}, meta.Sources)
}

func TestDigest_Lifecycle(t *testing.T) {
	srv, _ := newTestServer(t)

	// Locked until preferences exist.
	resp := do(t, http.MethodPost, srv.URL+"/digest/2026-01-15", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = do(t, http.MethodPut, srv.URL+"/preferences", `{"roleKeywords":["react"],"minMatchScore":40}`)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Reading before generation is 404, not an empty digest.
	resp = do(t, http.MethodGet, srv.URL+"/digest/2026-01-15", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	type genResponse struct {
		Created bool            `json:"created"`
		Digest  digest.Snapshot `json:"digest"`
	}

	resp = do(t, http.MethodPost, srv.URL+"/digest/2026-01-15", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	gen := decode[genResponse](t, resp)
	assert.True(t, gen.Created)
	require.Len(t, gen.Digest.Entries, 2)
	assert.Equal(t, "ln-101", gen.Digest.Entries[0].ID)

	// Second POST is idempotent.
	resp = do(t, http.MethodPost, srv.URL+"/digest/2026-01-15", "")
	gen2 := decode[genResponse](t, resp)
	assert.False(t, gen2.Created)
	assert.Equal(t, gen.Digest, gen2.Digest)

	// Changing preferences does not touch the stored snapshot.
	resp = do(t, http.MethodPut, srv.URL+"/preferences", `{"roleKeywords":["analyst"],"minMatchScore":40}`)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/digest/2026-01-15", "")
	snap := decode[digest.Snapshot](t, resp)
	assert.Equal(t, gen.Digest, snap)

	// ?force=1 is the explicit regeneration.
	resp = do(t, http.MethodPost, srv.URL+"/digest/2026-01-15?force=1", "")
	gen3 := decode[genResponse](t, resp)
	assert.True(t, gen3.Created)
	assert.Equal(t, "in-106", gen3.Digest.Entries[0].ID)
}

func TestDigest_TextAndEmailViews(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPut, srv.URL+"/preferences", `{"roleKeywords":["react"],"minMatchScore":40}`)
	resp.Body.Close()
	resp = do(t, http.MethodPost, srv.URL+"/digest/2026-01-15", "")
	resp.Body.Close()

	resp = do(t, http.MethodGet, srv.URL+"/digest/2026-01-15/text", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasPrefix(text, "My 9AM Job Digest - 2026-01-15\n\n"))
	assert.Contains(t, text, "1. Senior React Engineer at Flipstack")

	resp = do(t, http.MethodGet, srv.URL+"/digest/2026-01-15/email", "")
	draft := decode[digest.MailDraft](t, resp)
	assert.Equal(t, "My 9AM Job Digest", draft.Subject)
	assert.True(t, strings.HasPrefix(draft.Mailto, "mailto:?subject="))
}

func TestDigest_BadDate(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/digest/15-01-2026", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSaved_AddListRemove(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPut, srv.URL+"/saved/ln-101", "")
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/saved", "")
	got := decode[map[string][]string](t, resp)
	assert.Equal(t, []string{"ln-101"}, got["ids"])

	resp = do(t, http.MethodDelete, srv.URL+"/saved/ln-101", "")
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/saved", "")
	got = decode[map[string][]string](t, resp)
	assert.Empty(t, got["ids"])
}

// The SSE stream must survive the full middleware chain: the access log's
// response wrapper has to pass Flush through or the handler refuses to stream.
func TestEvents_StreamsThroughMiddlewareChain(t *testing.T) {
	srv, _ := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	// First frame is the ping envelope, flushed immediately on subscribe.
	br := bufio.NewReader(resp.Body)
	var event, data string
	for {
		line, err := br.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" {
			break
		}
		if v, ok := strings.CutPrefix(line, "event: "); ok {
			event = v
		}
		if v, ok := strings.CutPrefix(line, "data: "); ok {
			data = v
		}
	}
	assert.Equal(t, "message", event)
	assert.Contains(t, data, `"type":"ping"`)
}

func TestStatuses_PutAndRecent(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPut, srv.URL+"/statuses/ln-101", `{"status":"Applied"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	u := decode[domain.StatusUpdate](t, resp)
	assert.Equal(t, "Senior React Engineer", u.JobTitle)
	assert.Equal(t, domain.StatusApplied, u.Status)

	resp = do(t, http.MethodPut, srv.URL+"/statuses/ghost", `{"status":"Applied"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodPut, srv.URL+"/statuses/in-106", `{"status":"Ghosted"}`)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/statuses", "")
	updates := decode[[]domain.StatusUpdate](t, resp)
	require.Len(t, updates, 1)
	assert.Equal(t, "ln-101", updates[0].PostingID)
}
