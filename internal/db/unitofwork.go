package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UnitOfWork runs a group of statements atomically. The callback gets a
// DBTX bound to the transaction; repositories scoped to it see their own
// uncommitted writes.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// TxRunner is the database/sql UnitOfWork.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner returns a UnitOfWork over database.
func NewTxRunner(database *sql.DB) *TxRunner {
	return &TxRunner{db: database}
}

// WithinTx commits when fn returns nil and rolls back otherwise, including
// when fn panics.
func (r *TxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	done := false
	defer func() {
		if done {
			return
		}
		rbErr := tx.Rollback()
		if rbErr != nil && err != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	done = true
	return nil
}
