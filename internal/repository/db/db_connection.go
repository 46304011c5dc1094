package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	// Pragmas to improve reliability
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaRooms = `
CREATE TABLE IF NOT EXISTS rooms (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    room TEXT UNIQUE NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`

// One row per room; the UNIQUE constraint replaces the legacy
// "most recent row per room" dedup at read time. version backs
// optimistic concurrency on every status/energy update.
const schemaLedStatus = `
CREATE TABLE IF NOT EXISTS led_status (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    room TEXT UNIQUE NOT NULL,
    status INTEGER NOT NULL DEFAULT 0,
    timestamp TIMESTAMP NOT NULL,
    power_consumption REAL NOT NULL DEFAULT 0,
    version INTEGER NOT NULL DEFAULT 0
);
`

const schemaSchedule = `
CREATE TABLE IF NOT EXISTS schedule (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    room TEXT NOT NULL,
    action INTEGER NOT NULL DEFAULT 0,
    time TEXT NOT NULL,
    statusresult TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

const schemaReconciliationEvents = `
CREATE TABLE IF NOT EXISTS reconciliation_events (
    id TEXT PRIMARY KEY,
    room TEXT NOT NULL,
    action INTEGER NOT NULL,
    prev_status INTEGER NOT NULL,
    result TEXT NOT NULL,
    energy_delta REAL NOT NULL DEFAULT 0,
    source TEXT NOT NULL,
    occurred_at TIMESTAMP NOT NULL
);
`

const schemaUsers = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		// In case of panic, rollback to avoid leaving an open transaction
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaRooms,
		schemaLedStatus,
		schemaSchedule,
		schemaReconciliationEvents,
		schemaUsers,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
