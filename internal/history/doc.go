// Package history records export runs in a small SQLite ledger so the CLI
// can list what was produced, from which manifest, and with which audio
// track.
//
// The database lives at config.HistoryPath(). The schema is versioned; a
// database written by a different version is rejected with
// ErrSchemaMismatch rather than migrated.
package history
