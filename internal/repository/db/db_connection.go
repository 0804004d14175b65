package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

const schemaMachines = `
CREATE TABLE IF NOT EXISTS machines (
    id TEXT PRIMARY KEY,
    code TEXT NOT NULL,
    brand TEXT NOT NULL,
    type TEXT NOT NULL,
    capacity REAL NOT NULL,
    area INTEGER NOT NULL,
    status TEXT NOT NULL,
    downtime_reason TEXT
);
`

// rowid doubles as the append order of the log.
const schemaDowntimeEvents = `
CREATE TABLE IF NOT EXISTS downtime_events (
    id TEXT PRIMARY KEY,
    machine_id TEXT NOT NULL REFERENCES machines(id),
    start_time TIMESTAMP NOT NULL,
    end_time TIMESTAMP,
    reason TEXT NOT NULL,
    category TEXT NOT NULL,
    planned BOOLEAN NOT NULL
);
`

const schemaOpenEventIndex = `
CREATE INDEX IF NOT EXISTS idx_downtime_events_open
    ON downtime_events(machine_id) WHERE end_time IS NULL;
`

// InitDB opens/creates the SQLite file and ensures the schema exists.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Single writer keeps SQLite happy.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

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

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaMachines,
		schemaDowntimeEvents,
		schemaOpenEventIndex,
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
