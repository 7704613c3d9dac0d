package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"jobtrack-engine/internal/domain"
)

// SQLite is the default backend: a single-file DB in the data dir.
type SQLite struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLite, error) {
	// modernc sqlite DSN: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1) // sqlite wants a single writer
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) migrate() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	// Named slots: the preference record and one digest snapshot per date.
	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS slots (
  slot TEXT PRIMARY KEY,
  payload BLOB NOT NULL,
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS statuses (
  posting_id TEXT PRIMARY KEY,
  job_title TEXT NOT NULL,
  company TEXT NOT NULL,
  status TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_statuses_updated_at
ON statuses(updated_at DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS saved (
  posting_id TEXT PRIMARY KEY,
  saved_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

const (
	slotPreferences = "preferences"
	slotDigestPfx   = "digest:"
)

// sqlTime is fixed-width (RFC3339Nano drops trailing zeros) so ORDER BY on
// the text column matches time order down to the nanosecond.
const sqlTime = "2006-01-02T15:04:05.000000000Z07:00"

func (s *SQLite) getSlot(ctx context.Context, slot string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM slots WHERE slot = ?;`, slot).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (s *SQLite) putSlot(ctx context.Context, slot string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO slots(slot, payload, updated_at) VALUES(?,?,?)
ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at;`,
		slot, payload, time.Now().UTC().Format(sqlTime))
	return err
}

func (s *SQLite) GetPreferences(ctx context.Context) (domain.Preferences, bool, error) {
	raw, ok, err := s.getSlot(ctx, slotPreferences)
	if err != nil || !ok {
		return domain.Preferences{}, false, err
	}
	var prefs domain.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return domain.Preferences{}, false, fmt.Errorf("decode preferences slot: %w", err)
	}
	return prefs, true, nil
}

func (s *SQLite) PutPreferences(ctx context.Context, prefs domain.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return s.putSlot(ctx, slotPreferences, raw)
}

func (s *SQLite) GetDigest(ctx context.Context, date string) ([]byte, bool, error) {
	return s.getSlot(ctx, slotDigestPfx+date)
}

func (s *SQLite) PutDigest(ctx context.Context, date string, raw []byte) error {
	return s.putSlot(ctx, slotDigestPfx+date, raw)
}

func (s *SQLite) ListSaved(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT posting_id FROM saved ORDER BY saved_at DESC, posting_id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLite) AddSaved(ctx context.Context, postingID string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO saved(posting_id, saved_at) VALUES(?,?)
ON CONFLICT(posting_id) DO NOTHING;`,
		postingID, time.Now().UTC().Format(sqlTime))
	return err
}

func (s *SQLite) RemoveSaved(ctx context.Context, postingID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM saved WHERE posting_id = ?;`, postingID)
	return err
}

func (s *SQLite) RecentStatuses(ctx context.Context, limit int) ([]domain.StatusUpdate, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT posting_id, job_title, company, status, updated_at
FROM statuses
ORDER BY updated_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.StatusUpdate{}
	for rows.Next() {
		var u domain.StatusUpdate
		var status, at string
		if err := rows.Scan(&u.PostingID, &u.JobTitle, &u.Company, &status, &at); err != nil {
			return nil, err
		}
		u.Status = domain.ApplicationStatus(status)
		u.UpdatedAt, _ = time.Parse(sqlTime, at)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SQLite) PutStatus(ctx context.Context, u domain.StatusUpdate) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO statuses(posting_id, job_title, company, status, updated_at)
VALUES(?,?,?,?,?)
ON CONFLICT(posting_id) DO UPDATE SET
  job_title = excluded.job_title,
  company = excluded.company,
  status = excluded.status,
  updated_at = excluded.updated_at;`,
		u.PostingID, u.JobTitle, u.Company, string(u.Status),
		u.UpdatedAt.UTC().Format(sqlTime))
	return err
}
