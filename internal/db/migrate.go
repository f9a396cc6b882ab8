package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Statements are idempotent so the full list
// runs on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS categories (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		name       TEXT NOT NULL,
		color      TEXT NOT NULL DEFAULT '#928374',
		created_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_user_name ON categories(user_id, name)`,

	`CREATE TABLE IF NOT EXISTS events (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		location    TEXT NOT NULL DEFAULT '',
		priority    TEXT NOT NULL DEFAULT 'medium'
		            CHECK(priority IN ('low','medium','high')),
		is_flexible INTEGER NOT NULL DEFAULT 1,
		status      TEXT NOT NULL DEFAULT 'pending'
		            CHECK(status IN ('pending','in_progress','completed','cancelled')),
		category_id TEXT REFERENCES categories(id) ON DELETE SET NULL,
		rrule       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		CHECK(end_time >= start_time)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_events_user_start ON events(user_id, start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_events_user_updated ON events(user_id, updated_at)`,

	`CREATE TABLE IF NOT EXISTS suggestions (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		type             TEXT NOT NULL
		                 CHECK(type IN ('take_break','balance_day','move_event')),
		title            TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		priority         TEXT NOT NULL DEFAULT 'medium'
		                 CHECK(priority IN ('low','medium','high')),
		status           TEXT NOT NULL DEFAULT 'pending'
		                 CHECK(status IN ('pending','accepted','rejected','expired')),
		rule_triggered   TEXT NOT NULL,
		payload          TEXT NOT NULL DEFAULT '{}',
		related_event_id TEXT,
		reference_day    TEXT NOT NULL,
		created_at       TEXT NOT NULL,
		expires_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_suggestions_user_status ON suggestions(user_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_suggestions_dedup ON suggestions(user_id, type, reference_day)`,
}
