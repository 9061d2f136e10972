package store

import (
	"context"
	"database/sql"
	"fmt"
)

// RunBatch executes fn inside a single transaction. Every mutation issued
// through the passed Queries either commits as a whole or rolls back; a
// failure of any operation leaves no partial state. This is the only place
// in the system with multi-statement atomicity; single-row CRUD runs
// auto-commit.
func RunBatch(ctx context.Context, db *sql.DB, fn func(q *Queries) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(New(db).WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
