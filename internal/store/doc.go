// Package store persists tracks, their edition triples, and undo/redo
// snapshots in a SQLite database under the configured data directory.
//
// Writers serialize through a file lock next to the database so two CLI
// invocations never interleave edits on the same file.
package store
