// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means you need a C compiler installed and
// cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — no C compiler needed, works everywhere
// Go works. Tests use ":memory:" for a throwaway in-memory database.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	// Side-effect import: the driver registers itself with database/sql
	// under the name "sqlite".
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements every repository
// interface. One type, many interfaces — the service layer only ever sees
// the slice of it that it asked for.
type DB struct {
	conn *sql.DB
}

// New opens the database, applies pragmas, and runs migrations.
//
// dbPath examples:
//   - "data/settings.db" → file-based database (persistent)
//   - ":memory:"         → in-memory database (tests, lost on close)
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// An in-memory database exists per connection, so the pool must stay at
	// one connection or queries would land in empty sibling databases.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	// sql.Open doesn't connect — Ping forces an immediate connection so a
	// bad path surfaces here rather than on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress, which a web
	// server needs.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite; user_subscriptions
	// references subscription_plans, so turn them on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping reports whether the database is reachable. The health endpoint uses it.
func (db *DB) Ping() error {
	return db.conn.Ping()
}

// Conn exposes the underlying pool for callers that need raw SQL, mainly
// test fixtures seeding rows the repositories don't create.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it idempotent,
// which is all a service this size needs — no versioned migration tool.
func (db *DB) migrate() error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"user_profiles", `
			CREATE TABLE IF NOT EXISTS user_profiles (
				id         TEXT PRIMARY KEY,
				name       TEXT NOT NULL,
				role       TEXT NOT NULL,
				email      TEXT NOT NULL,
				phone      TEXT NOT NULL DEFAULT '',
				city       TEXT NOT NULL DEFAULT '',
				state      TEXT NOT NULL DEFAULT '',
				country    TEXT NOT NULL DEFAULT '',
				avatar_url TEXT NOT NULL DEFAULT '',
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			);`},
		{"privacy_settings", `
			CREATE TABLE IF NOT EXISTS privacy_settings (
				user_id                 TEXT PRIMARY KEY,
				real_time_monitoring    INTEGER NOT NULL DEFAULT 0,
				data_retention          INTEGER NOT NULL DEFAULT 0,
				detailed_reporting      INTEGER NOT NULL DEFAULT 0,
				internal_communications INTEGER NOT NULL DEFAULT 0,
				notifications           INTEGER NOT NULL DEFAULT 0,
				real_time_alerts        INTEGER NOT NULL DEFAULT 0,
				created_at              DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at              DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			);`},
		{"admin_access", `
			CREATE TABLE IF NOT EXISTS admin_access (
				id          TEXT PRIMARY KEY,
				name        TEXT NOT NULL,
				role        TEXT NOT NULL,
				email       TEXT NOT NULL UNIQUE,
				avatar_url  TEXT NOT NULL DEFAULT '',
				permissions TEXT NOT NULL DEFAULT '["read"]',
				created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			);`},
		{"subscription_plans", `
			CREATE TABLE IF NOT EXISTS subscription_plans (
				id             TEXT PRIMARY KEY,
				name           TEXT NOT NULL,
				price          REAL NOT NULL CHECK (price >= 0),
				billing_period TEXT NOT NULL CHECK (billing_period IN ('monthly', 'annually')),
				features       TEXT NOT NULL DEFAULT '[]',
				is_custom      INTEGER NOT NULL DEFAULT 0,
				created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			);`},
		{"user_subscriptions", `
			CREATE TABLE IF NOT EXISTS user_subscriptions (
				id         TEXT PRIMARY KEY,
				user_id    TEXT NOT NULL,
				plan_id    TEXT NOT NULL REFERENCES subscription_plans(id),
				status     TEXT NOT NULL CHECK (status IN ('active', 'cancelled', 'expired')),
				start_date DATETIME NOT NULL,
				end_date   DATETIME,
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_user_subscriptions_user_status
				ON user_subscriptions(user_id, status);`},
		{"enterprise_contact_requests", `
			CREATE TABLE IF NOT EXISTS enterprise_contact_requests (
				id            TEXT PRIMARY KEY,
				user_id       TEXT NOT NULL,
				company_name  TEXT NOT NULL,
				contact_email TEXT NOT NULL,
				contact_phone TEXT NOT NULL,
				requirements  TEXT NOT NULL,
				status        TEXT NOT NULL DEFAULT 'pending',
				created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			);`},
	}

	for _, s := range stmts {
		if _, err := db.conn.Exec(s.sql); err != nil {
			return fmt.Errorf("creating %s: %w", s.name, err)
		}
	}

	return nil
}

// encodeList serialises a string list to its JSON column representation.
// nil encodes as "[]" so the column never holds SQL NULL.
func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("encoding list column: %w", err)
	}
	return string(b), nil
}

// decodeList parses a JSON array column back into a string list. An empty
// column decodes to an empty list, never nil, so JSON responses render []
// instead of null.
func decodeList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decoding list column %q: %w", raw, err)
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}
