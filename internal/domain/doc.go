// Package domain defines the core types for the netledger circuit inventory.
//
// This package contains the entities that describe one network circuit and
// the trail of changes made to it. It has no storage or transport
// dependencies.
//
// # Core Types
//
// Record represents one inventory entry: its two identifiers (AID and name),
// location and addressing attributes, bandwidth, lifecycle status and the
// install date.
//
// AuditEntry is one immutable line of a Record's history. Whole-record
// events (creation, import) carry the field sentinel "all" and no values;
// field changes carry the previous and the new value.
//
// ActivityEntry is an AuditEntry copied out of its Record and tagged with
// the owner's name and AID, used when histories of many records are listed
// together.
//
// Settings is the small key-value object persisted next to the records.
//
// # History
//
// History is append-only. Entries are never edited or removed, and the
// slice order is the order in which the changes were made.
package domain
