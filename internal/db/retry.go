package db

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrTransient marks an error that may succeed on retry.
var ErrTransient = errors.New("transient database error")

// IsTransient reports whether err is worth retrying: an explicit
// ErrTransient or SQLite reporting a busy or locked database.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTransient) {
		return true
	}
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	// Extended codes such as SQLITE_BUSY_SNAPSHOT carry the primary code in the low byte.
	switch sqliteErr.Code() & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

// RetryPolicy configures exponential backoff for a RetryingUnitOfWork.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	Multiplier      float64
}

// DefaultRetryPolicy is 3 attempts starting at 200ms, doubling.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, InitialInterval: 200 * time.Millisecond, Multiplier: 2}
}

// RetryingUnitOfWork re-runs a whole transaction when it fails with a
// transient error. The callback may run more than once and must not have
// side effects outside the transaction.
type RetryingUnitOfWork struct {
	inner  UnitOfWork
	policy RetryPolicy
	notify func(attempt int, err error, next time.Duration)
}

// NewRetryingUnitOfWork wraps inner. notify may be nil.
func NewRetryingUnitOfWork(inner UnitOfWork, policy RetryPolicy, notify func(attempt int, err error, next time.Duration)) *RetryingUnitOfWork {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.Multiplier < 1 {
		policy.Multiplier = 1
	}
	return &RetryingUnitOfWork{inner: inner, policy: policy, notify: notify}
}

func (u *RetryingUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = u.policy.InitialInterval
	b.Multiplier = u.policy.Multiplier
	b.RandomizationFactor = 0

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := u.inner.WithinTx(ctx, fn)
		if err != nil && !IsTransient(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(u.policy.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			if u.notify != nil {
				u.notify(attempt, err, next)
			}
		}),
	)
	return err
}
