// Package domain defines the core domain types and interfaces.
//
// This package contains the feedback record model, sentiment and status
// enumerations, error taxonomy, and the contracts consumed by the
// synchronization cache (RecordStore, ChangeListener). No implementation
// code - just contracts. Prevents circular imports by keeping interfaces
// on the consumer side.
package domain
