package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: Every item query is scoped to the owning user, so index
	// the owner column.
	`CREATE INDEX IF NOT EXISTS idx_items_owner ON items(owner_id)`,

	// Migration 2: The expiring-soon and expired views filter and sort on
	// expiration date within a single owner's items.
	`CREATE INDEX IF NOT EXISTS idx_items_owner_expiration
	     ON items(owner_id, expiration_date)`,
}

// Migrate ensures the schema exists and runs the migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
