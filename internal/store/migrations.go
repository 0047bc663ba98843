package store

import "fmt"

// migrations run in order on every start; each must be idempotent.
var migrations = []string{
	// Calibrations hold a rim-post layout as JSON along with the display
	// size it was measured against.
	`CREATE TABLE IF NOT EXISTS calibrations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		layout TEXT NOT NULL,
		width REAL NOT NULL DEFAULT 0,
		height REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_calibrations_updated_at ON calibrations(updated_at)`,
}

func (s *Store) runMigrations() error {
	for i, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
