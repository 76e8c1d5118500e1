// Package repository defines the durable storage interface for netledger.
//
// A Repository persists two things: the ordered collection of Records
// (each with its full history) and the small Settings object. Both are
// always read and written whole; there is no incremental persistence.
//
// # Implementations
//
// The jsonfile subpackage keeps each object in an indented JSON file and is
// the default. The sqlite subpackage keeps the same data in a SQLite
// database using WAL mode.
//
// # Missing and Corrupt Data
//
// A missing file or empty database is not an error: Load returns an empty
// collection. Data that cannot be decoded is reported with an error
// wrapping ErrCorrupt so callers can decide to start empty.
package repository
