package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/aionboard/internal/db"
)

// FailOnNthExecUoW injects Err on the Nth ExecContext call across all
// transactions it opens, counting from 1. Reads pass through. Set Times to
// fail that many consecutive transactions before succeeding; zero means
// only the first transaction is affected.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error
	Times  int32

	failed atomic.Int32
	txs    atomic.Int32
}

// Transactions returns how many transactions were started.
func (u *FailOnNthExecUoW) Transactions() int {
	return int(u.txs.Load())
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	u.txs.Add(1)
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	limit := u.Times
	if limit == 0 {
		limit = 1
	}
	wrapped := &failOnNthExec{DBTX: tx, failOn: u.FailOn, err: u.Err}
	if u.failed.Load() >= limit {
		wrapped.failOn = 0
	}
	if fnErr := fn(ctx, wrapped); fnErr != nil {
		_ = tx.Rollback()
		if wrapped.tripped {
			u.failed.Add(1)
		}
		return fnErr
	}
	return tx.Commit()
}

type failOnNthExec struct {
	db.DBTX
	count   atomic.Int32
	failOn  int32
	err     error
	tripped bool
}

func (f *failOnNthExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.count.Add(1)
	if n == f.failOn {
		f.tripped = true
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
