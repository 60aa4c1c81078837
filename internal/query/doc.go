// Package query derives read-only views from a feedback snapshot.
//
// All functions are pure: they take the snapshot as input and never
// mutate it. Filtering is AND across dimensions with OR-across-fields
// text search; aggregation and trend computation re-sort or re-scan as
// needed instead of assuming any snapshot ordering.
package query
