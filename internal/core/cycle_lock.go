package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CycleLock guards the at-most-one-cycle-in-flight constraint. Acquire returns
// ErrCycleInFlight when another holder already owns the lock; otherwise it
// returns a release function that must be called when the cycle finishes.
type CycleLock interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// cycleLockKey identifies the pricing-cycle advisory lock within the database.
const cycleLockKey = int64(0x7065726973686d6b) // "perishmk"

type advisoryCycleLock struct {
	pool *pgxpool.Pool
}

// NewCycleLock constructs a CycleLock backed by a PostgreSQL session advisory
// lock. The lock is held on a dedicated pooled connection for the full cycle,
// so it also excludes cycles triggered from other processes (scheduler ticks
// and manual runs share the one key).
func NewCycleLock(pool *pgxpool.Pool) CycleLock {
	return &advisoryCycleLock{pool: pool}
}

func (l *advisoryCycleLock) Acquire(ctx context.Context) (func(), error) {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection for cycle lock: %w", err)
	}

	var locked bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", cycleLockKey).Scan(&locked); err != nil {
		conn.Release()
		return nil, fmt.Errorf("failed to take cycle advisory lock: %w", err)
	}
	if !locked {
		conn.Release()
		return nil, ErrCycleInFlight
	}

	release := func() {
		// Best effort: the lock dies with the session if the unlock fails.
		_, _ = conn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", cycleLockKey)
		conn.Release()
	}
	return release, nil
}
