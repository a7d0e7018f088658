package db

import (
	"database/sql"
	"fmt"
)

// Migrate brings the schema to len(steps). steps[i] upgrades version i to
// i+1 and runs in its own transaction together with the version bump.
// Versions already applied are skipped.
func Migrate(sqlDB *sql.DB, steps []string) error {
	if _, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return err
	}

	current, err := Version(sqlDB)
	if err != nil {
		return err
	}
	if current > len(steps) {
		return fmt.Errorf("database schema version %d is newer than this build (%d)", current, len(steps))
	}

	for v := current; v < len(steps); v++ {
		err := WithTx(sqlDB, func(tx *sql.Tx) error {
			if _, err := tx.Exec(steps[v]); err != nil {
				return err
			}
			_, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, v+1)
			return err
		})
		if err != nil {
			return fmt.Errorf("migrate to version %d: %w", v+1, err)
		}
	}
	return nil
}

// Version returns the applied schema version, 0 for a fresh database.
func Version(sqlDB *sql.DB) (int, error) {
	var v sql.NullInt64
	if err := sqlDB.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&v); err != nil {
		return 0, err
	}
	return int(v.Int64), nil
}
