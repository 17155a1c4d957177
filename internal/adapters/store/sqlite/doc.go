// Package sqlite implements the durable state store on SQLite.
//
// The database runs in WAL mode so the monitor process and short-lived
// screening processes can read and write concurrently. Every operation
// touches exactly one row, which gives per-key atomicity without any
// multi-key transaction.
package sqlite
