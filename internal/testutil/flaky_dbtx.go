package testutil

import (
	"context"
	"database/sql"
	"errors"
	"sync/atomic"

	"github.com/alexanderramin/tidsplan/internal/db"
)

// ErrBusy mimics the error SQLite reports when another connection holds
// the write lock.
var ErrBusy = errors.New("database is locked (5) (SQLITE_BUSY)")

// FlakyDBTX fails the first FailFirst ExecContext calls with Err (ErrBusy
// when nil) and passes everything else through. Reads are never failed.
type FlakyDBTX struct {
	db.DBTX
	FailFirst int32
	Err       error

	calls atomic.Int32
}

// NewFlakyDBTX wraps inner so that its first n writes fail.
func NewFlakyDBTX(inner db.DBTX, n int32) *FlakyDBTX {
	return &FlakyDBTX{DBTX: inner, FailFirst: n}
}

func (f *FlakyDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.calls.Add(1) <= f.FailFirst {
		if f.Err != nil {
			return nil, f.Err
		}
		return nil, ErrBusy
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// Calls reports how many ExecContext calls were made.
func (f *FlakyDBTX) Calls() int {
	return int(f.calls.Load())
}
