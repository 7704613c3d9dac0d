package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"jobtrack-engine/internal/domain"
)

// Memory keeps everything in maps. Used by tests and useful as a scratch
// backend when no persistence is wanted.
type Memory struct {
	mu       sync.Mutex
	prefs    *domain.Preferences
	digests  map[string][]byte
	saved    map[string]time.Time
	statuses map[string]domain.StatusUpdate
}

func NewMemory() *Memory {
	return &Memory{
		digests:  make(map[string][]byte),
		saved:    make(map[string]time.Time),
		statuses: make(map[string]domain.StatusUpdate),
	}
}

func (m *Memory) Close() error { return nil }

func (m *Memory) GetPreferences(ctx context.Context) (domain.Preferences, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.prefs == nil {
		return domain.Preferences{}, false, nil
	}
	return *m.prefs, true, nil
}

func (m *Memory) PutPreferences(ctx context.Context, prefs domain.Preferences) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = &prefs
	return nil
}

func (m *Memory) GetDigest(ctx context.Context, date string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.digests[date]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return cp, true, nil
}

func (m *Memory) PutDigest(ctx context.Context, date string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(raw))
	copy(cp, raw)
	m.digests[date] = cp
	return nil
}

func (m *Memory) ListSaved(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.saved))
	for id := range m.saved {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := m.saved[ids[i]], m.saved[ids[j]]
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return ids[i] < ids[j]
	})
	return ids, nil
}

func (m *Memory) AddSaved(ctx context.Context, postingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.saved[postingID]; !ok {
		m.saved[postingID] = time.Now().UTC()
	}
	return nil
}

func (m *Memory) RemoveSaved(ctx context.Context, postingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.saved, postingID)
	return nil
}

func (m *Memory) RecentStatuses(ctx context.Context, limit int) ([]domain.StatusUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 50
	}
	out := make([]domain.StatusUpdate, 0, len(m.statuses))
	for _, u := range m.statuses {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].PostingID < out[j].PostingID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) PutStatus(ctx context.Context, u domain.StatusUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = time.Now().UTC()
	}
	m.statuses[u.PostingID] = u
	return nil
}
