package domain

import (
	"errors"
	"fmt"
)

// Validation failures, rejected before any store interaction.
var (
	ErrInvalidStatus  = errors.New("invalid resolution status")
	ErrMissingFields  = errors.New("customer name, email and feedback text are required")
	ErrRecordNotFound = errors.New("feedback record not found")
)

// StoreWriteError wraps an insert or status update rejected by the
// record store. The cache's visible state is unchanged when one occurs.
type StoreWriteError struct {
	Op  string // "insert" or "update_status"
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("store write failed (%s): %v", e.Op, e.Err)
}

func (e *StoreWriteError) Unwrap() error { return e.Err }

// StoreReadError wraps a failed fetch of the full collection. A read
// error marks the snapshot stale but never clears it.
type StoreReadError struct {
	Err error
}

func (e *StoreReadError) Error() string {
	return fmt.Sprintf("store read failed: %v", e.Err)
}

func (e *StoreReadError) Unwrap() error { return e.Err }
