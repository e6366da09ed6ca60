package core

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookup failures for records addressed by ID.
// The web adapter maps it to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrCycleInFlight is returned when a pricing cycle is requested while another
// one already holds the cycle lock. At most one cycle may run at a time.
var ErrCycleInFlight = errors.New("pricing cycle already in flight")

// InvalidDiscountError reports calculator input outside the valid domain
// (percentage outside [0,100] or a negative base price). It indicates bad rule
// or product data and aborts the cycle immediately.
type InvalidDiscountError struct {
	Reason string
}

func (e *InvalidDiscountError) Error() string {
	return fmt.Sprintf("invalid discount input: %s", e.Reason)
}

// DataSourceError wraps a failure while fetching the cycle snapshot.
// No writes have been attempted when it is returned.
type DataSourceError struct {
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("fetching pricing snapshot: %v", e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// CommitError wraps a failure while applying cycle decisions. The transaction
// has been rolled back in full; no partial application is possible.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("committing pricing decisions: %v", e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }
