package db

import (
	"fmt"
)

// RunMigrations applies any pending database migrations
func (db *DB) RunMigrations() error {
	// A file that exists but was never initialized has no table yet
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("ensuring kv table: %w", err)
	}

	// Run updated_at column migration
	if err := db.runUpdatedAtMigration(); err != nil {
		return err
	}

	return nil
}

func (db *DB) runUpdatedAtMigration() error {
	// Check if the column exists
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*)
		FROM pragma_table_info('kv')
		WHERE name = 'updated_at'
	`).Scan(&count)

	if err != nil {
		return fmt.Errorf("checking for updated_at column: %w", err)
	}

	if count > 0 {
		return nil
	}

	db.log.Info().Msg("running migration: adding updated_at column")

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	// sqlite refuses non-constant defaults in ALTER TABLE, so old rows stay NULL
	_, err = tx.Exec(`ALTER TABLE kv ADD COLUMN updated_at DATETIME`)
	if err != nil && err.Error() != "duplicate column name: updated_at" {
		return fmt.Errorf("adding updated_at column: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration: %w", err)
	}

	db.log.Info().Msg("migration completed successfully")
	return nil
}
