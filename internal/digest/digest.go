// Package digest materializes the daily top-10 snapshot. Selection is pure;
// persistence goes through an injected store so a date's snapshot is written
// once and read back verbatim afterwards.
package digest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/rank"
	"jobtrack-engine/internal/store"
)

// Size is the maximum number of entries in a snapshot.
const Size = 10

// Snapshot is the persisted digest for one calendar date. It deliberately
// carries no wall-clock fields: generating twice with the same inputs must
// produce byte-identical payloads.
type Snapshot struct {
	Date    string                 `json:"date"`
	Entries []domain.ScoredPosting `json:"entries"`
}

// SelectTop scores every posting and picks the digest entries: score
// descending, ties broken by ascending days-since-posted (freshest wins),
// remaining ties keep catalog order. No minimum-score cut is applied — the
// digest always shows min(Size, len(catalog)) entries.
func SelectTop(sc rank.Scorer, catalog []domain.JobPosting, prefs domain.Preferences) []domain.ScoredPosting {
	scored := rank.ScoreAll(sc, catalog, prefs)
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].PostedDaysAgo < scored[j].PostedDaysAgo
	})
	if len(scored) > Size {
		scored = scored[:Size]
	}
	return scored
}

// Selector generates and reads snapshots for a fixed catalog.
type Selector struct {
	Catalog []domain.JobPosting
	Scorer  rank.Scorer
	Store   store.DigestStore
}

// Generate returns the snapshot for date, computing and persisting it only
// when none exists yet. created reports whether this call did the work.
// Overwriting an existing snapshot requires the explicit Regenerate.
func (s *Selector) Generate(ctx context.Context, date string, prefs domain.Preferences) (snap Snapshot, created bool, err error) {
	snap, ok, err := s.Get(ctx, date)
	if err != nil {
		return Snapshot{}, false, err
	}
	if ok {
		return snap, false, nil
	}
	snap, err = s.Regenerate(ctx, date, prefs)
	return snap, err == nil, err
}

// Regenerate recomputes the snapshot for date and overwrites whatever is
// stored. This is the user-triggered "refresh today's digest" path.
func (s *Selector) Regenerate(ctx context.Context, date string, prefs domain.Preferences) (Snapshot, error) {
	snap := Snapshot{
		Date:    date,
		Entries: SelectTop(s.Scorer, s.Catalog, prefs),
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return Snapshot{}, err
	}
	if err := s.Store.PutDigest(ctx, date, raw); err != nil {
		return Snapshot{}, fmt.Errorf("persist digest %s: %w", date, err)
	}
	return snap, nil
}

// Get reads the stored snapshot for date. ok is false when the date has not
// been generated — distinct from a generated-but-empty snapshot.
func (s *Selector) Get(ctx context.Context, date string) (Snapshot, bool, error) {
	raw, ok, err := s.Store.GetDigest(ctx, date)
	if err != nil || !ok {
		return Snapshot{}, false, err
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode digest %s: %w", date, err)
	}
	return snap, true, nil
}
