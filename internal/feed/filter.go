// Package feed turns the scored catalog into the ordered view the dashboard
// shows: optional filters combined with AND, then a stable sort. The catalog
// itself is never mutated; every call returns a fresh slice.
package feed

import (
	"strings"

	"jobtrack-engine/internal/domain"
)

// Filters holds the dashboard's filter controls. Every field is optional;
// the zero value filters nothing.
type Filters struct {
	Keyword     string `json:"keyword"`
	Location    string `json:"location"`
	Mode        string `json:"mode"`
	Experience  string `json:"experience"`
	Source      string `json:"source"`
	OnlyMatches bool   `json:"onlyMatches"`
}

// Apply narrows and orders the scored postings. minScore is only consulted
// when OnlyMatches is set. Unknown mode/experience filter values fall through
// to "no filter" rather than failing.
func Apply(scored []domain.ScoredPosting, f Filters, key SortKey, minScore int) []domain.ScoredPosting {
	out := make([]domain.ScoredPosting, 0, len(scored))
	for _, p := range scored {
		if keep(p, f, minScore) {
			out = append(out, p)
		}
	}
	sortPostings(out, key)
	return out
}

func keep(p domain.ScoredPosting, f Filters, minScore int) bool {
	if kw := strings.ToLower(strings.TrimSpace(f.Keyword)); kw != "" {
		blob := strings.ToLower(p.Title + " " + p.Company + " " + p.Description)
		if !strings.Contains(blob, kw) {
			return false
		}
	}

	if loc := strings.TrimSpace(f.Location); loc != "" {
		// "Remote" is the one value where location and mode overlap: a
		// posting located "Remote (India)" counts even when its mode is
		// Onsite, and a Remote-mode posting counts whatever its location.
		if loc == string(domain.ModeRemote) {
			if !strings.Contains(p.Location, "Remote") && p.Mode != domain.ModeRemote {
				return false
			}
		} else if p.Location != loc {
			return false
		}
	}

	if f.Mode != "" {
		if m, err := domain.ParseWorkMode(f.Mode); err == nil && p.Mode != m {
			return false
		}
	}

	if f.Experience != "" {
		if b, err := domain.ParseExperienceBand(f.Experience); err == nil && p.Experience != b {
			return false
		}
	}

	if f.Source != "" && p.Source != f.Source {
		return false
	}

	if f.OnlyMatches && p.Score < minScore {
		return false
	}

	return true
}
