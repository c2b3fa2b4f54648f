// Package sqlite backs the standalone kiosk with a single-file store.
// It implements the same repository interfaces as the postgresql
// package, including the (employee, day, type) uniqueness constraint.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS employees (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	is_active INTEGER NOT NULL DEFAULT 1,
	work_start TEXT,
	work_end TEXT,
	wage_type TEXT NOT NULL,
	base_wage TEXT NOT NULL,
	overtime_hourly_rate TEXT NOT NULL,
	face_embedding TEXT,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS attendance_events (
	id TEXT PRIMARY KEY,
	employee_id TEXT NOT NULL REFERENCES employees(id),
	ts TIMESTAMP NOT NULL,
	day TEXT NOT NULL,
	event_type TEXT NOT NULL,
	status TEXT NOT NULL,
	fine_amount TEXT NOT NULL DEFAULT '0',
	bonus_amount TEXT NOT NULL DEFAULT '0',
	admin_notes TEXT,
	photo_url TEXT,
	created_at TIMESTAMP NOT NULL
);

-- Last line of defense for the one-event-per-day invariant; the
-- policy pre-check can lose a race, this index cannot.
CREATE UNIQUE INDEX IF NOT EXISTS idx_unique_event_per_day
	ON attendance_events(employee_id, day, event_type);

CREATE INDEX IF NOT EXISTS idx_events_employee_ts
	ON attendance_events(employee_id, ts);

CREATE TABLE IF NOT EXISTS app_settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the sqlite database at path and
// applies the schema. Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single writer avoids SQLITE_BUSY under the kiosk's
	// concurrent loop and HTTP handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
