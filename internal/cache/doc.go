// Package cache implements the synchronization cache.
//
// One authoritative in-memory snapshot of the full feedback collection,
// refreshed from the record store on change notifications and after
// successful local writes. At most one fetch is in flight at a time;
// triggers arriving mid-fetch coalesce into exactly one follow-up fetch.
// Readers get the snapshot via an atomic pointer swap and never block.
package cache
