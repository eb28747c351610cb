// Package history keeps a SQLite ledger of conversion runs: what went in,
// where the book went, how the run ended, and where its pipeline log lives.
//
// The CLI records a row per run (Begin before the pipeline starts, Finish
// once it returns) and exposes it through "audiobind history". The ledger is
// informational only; a failure to write it is logged and never fails a run.
//
// The schema is created on first open. A database written by a different
// schema version is rejected with ErrSchemaMismatch rather than migrated.
package history
