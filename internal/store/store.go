// Package store owns everything the engine persists: the preference record,
// date-keyed digest snapshots, the application-status ledger and the saved
// shortlist. The engine core only sees these interfaces; sqlite is the
// default backend and redis an optional one.
package store

import (
	"context"

	"jobtrack-engine/internal/domain"
)

// PreferencesStore holds the single preference record. Replace-wholesale:
// Put overwrites, there is no partial patch.
type PreferencesStore interface {
	GetPreferences(ctx context.Context) (prefs domain.Preferences, ok bool, err error)
	PutPreferences(ctx context.Context, prefs domain.Preferences) error
}

// DigestStore keeps one serialized snapshot per calendar date (YYYY-MM-DD).
// Snapshots are stored and returned as raw bytes so a read after generation
// is verbatim what was written, no matter how the catalog or preferences
// change afterwards.
type DigestStore interface {
	GetDigest(ctx context.Context, date string) (raw []byte, ok bool, err error)
	PutDigest(ctx context.Context, date string, raw []byte) error
}

// SavedStore is the shortlist of posting IDs. The engine treats the IDs as
// opaque strings.
type SavedStore interface {
	ListSaved(ctx context.Context) ([]string, error)
	AddSaved(ctx context.Context, postingID string) error
	RemoveSaved(ctx context.Context, postingID string) error
}

// StatusStore is the per-posting application-status ledger. Recent returns
// entries newest-first.
type StatusStore interface {
	RecentStatuses(ctx context.Context, limit int) ([]domain.StatusUpdate, error)
	PutStatus(ctx context.Context, u domain.StatusUpdate) error
}

// Store is what the HTTP layer wires in: one backend implements all four.
type Store interface {
	PreferencesStore
	DigestStore
	SavedStore
	StatusStore
	Close() error
}
