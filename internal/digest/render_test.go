package digest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobtrack-engine/internal/domain"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Date: "2026-01-15",
		Entries: []domain.ScoredPosting{
			{
				JobPosting: domain.JobPosting{
					Title: "Senior React Engineer", Company: "Flipstack",
					Location: "Bangalore", Mode: domain.ModeRemote,
					ApplyURL: "https://example.com/jobs/ln-101",
				},
				Score: 100,
			},
			{
				JobPosting: domain.JobPosting{
					Title: "Data Analyst", Company: "Quantfield",
					Location: "Mumbai", Mode: domain.ModeOnsite,
					ApplyURL: "https://example.com/jobs/in-106",
				},
				Score: 20,
			},
		},
	}
}

func TestTranscript_Format(t *testing.T) {
	want := "My 9AM Job Digest - 2026-01-15\n" +
		"\n" +
		"1. Senior React Engineer at Flipstack\n" +
		"   Location: Bangalore (Remote)\n" +
		"   Score: 100/100\n" +
		"   Link: https://example.com/jobs/ln-101\n" +
		"\n" +
		"2. Data Analyst at Quantfield\n" +
		"   Location: Mumbai (Onsite)\n" +
		"   Score: 20/100\n" +
		"   Link: https://example.com/jobs/in-106\n" +
		"\n"
	assert.Equal(t, want, Transcript(sampleSnapshot(), nil))
}

func TestTranscript_EmptySnapshotIsJustHeader(t *testing.T) {
	snap := Snapshot{Date: "2026-01-15"}
	assert.Equal(t, "My 9AM Job Digest - 2026-01-15\n\n", Transcript(snap, nil))
}

func TestTranscript_StatusSectionCapsAtFive(t *testing.T) {
	updates := make([]domain.StatusUpdate, 7)
	for i := range updates {
		updates[i] = domain.StatusUpdate{
			JobTitle: "Job", Company: "Co", Status: domain.StatusApplied,
		}
	}
	out := Transcript(sampleSnapshot(), updates)
	assert.Contains(t, out, "Recent Status Updates\n")
	assert.Equal(t, 5, strings.Count(out, "- Job at Co: Applied"))
}

func TestTranscript_Deterministic(t *testing.T) {
	a := Transcript(sampleSnapshot(), nil)
	b := Transcript(sampleSnapshot(), nil)
	assert.Equal(t, a, b)
}

func TestRenderMailDraft(t *testing.T) {
	draft := RenderMailDraft(sampleSnapshot(), nil)

	assert.Equal(t, "My 9AM Job Digest", draft.Subject)
	assert.Equal(t, Transcript(sampleSnapshot(), nil), draft.Body)

	assert.True(t, strings.HasPrefix(draft.Mailto, "mailto:?subject=My%209AM%20Job%20Digest&body="))
	// encodeURIComponent semantics: %20 for spaces, never +.
	assert.NotContains(t, draft.Mailto, "+")
	assert.Contains(t, draft.Mailto, "Senior%20React%20Engineer%20at%20Flipstack")
	assert.Contains(t, draft.Mailto, "https%3A%2F%2Fexample.com%2Fjobs%2Fln-101")
}
