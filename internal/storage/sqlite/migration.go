package sqlite

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order; the database's PRAGMA user_version
// records how many have run. Append only.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS network_actions (
		ssid       TEXT PRIMARY KEY,
		action     INTEGER NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS preferences (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);`,
}

// SchemaVersion is the user_version of a fully migrated database.
var SchemaVersion = len(migrations)

func migrate(db *sql.DB) error {
	var current int
	if err := db.QueryRow("PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("sqlite storage: read schema version: %w", err)
	}
	if current > SchemaVersion {
		return fmt.Errorf("sqlite storage: schema version %d is newer than supported %d", current, SchemaVersion)
	}

	for v := current; v < SchemaVersion; v++ {
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("sqlite storage: begin migration %d: %w", v+1, err)
		}
		if _, err := tx.Exec(migrations[v]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite storage: apply migration %d: %w", v+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("sqlite storage: bump schema version: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("sqlite storage: commit migration %d: %w", v+1, err)
		}
	}
	return nil
}
