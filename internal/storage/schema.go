package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// SchemaVersion is stamped on every saved state document.
const SchemaVersion = 1

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		// The whole character graph is one JSON document, written wholesale.
		`CREATE TABLE IF NOT EXISTS character_state (
			key TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL DEFAULT 1,
			data TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS state_backups (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL,
			reason TEXT NOT NULL,
			level INTEGER NOT NULL DEFAULT 1,
			data TEXT NOT NULL,
			created_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_state_backups_key_created_at ON state_backups(key, created_at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already present).
	alterStmts := []string{
		`ALTER TABLE state_backups ADD COLUMN note TEXT;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}
	return nil
}
