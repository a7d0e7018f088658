package db

import "database/sql"

// WithTx runs fn in a transaction, committing when it returns nil.
func WithTx(sqlDB *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := sqlDB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op once committed

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
