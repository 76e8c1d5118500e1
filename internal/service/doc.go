// Package service implements the inventory operations of netledger.
//
// Store is the single owner of the Record collection. It loads the whole
// collection from a repository when constructed and writes the whole
// collection back at the end of every mutating operation.
//
// # Operations
//
// Identity: Resolve maps an identifier to the first Record, in collection
// order, whose AID or name matches it case-insensitively. No uniqueness is
// enforced on either key, so later duplicates are unreachable by lookup.
//
// Mutation: AddEntry, DeleteEntry and ApplyUpdate. Every change to a field
// appends one AuditEntry to the Record's history; history is never edited.
//
// Import: Import and ImportRows merge tabular rows, skipping any row whose
// AID already resolves.
//
// Queries: Search, ListBuildings, GetAll and ActivityLog return copies, so
// callers can never reach into the stored history.
//
// # Event System
//
// Mutations are published on an EventBus. Publishing never blocks; slow
// subscribers miss events.
//
// # Concurrency
//
// Store is not safe for concurrent use. The design assumes one process
// working on one in-memory copy; the last writer to storage wins.
package service
