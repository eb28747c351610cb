// Package logging assembles structured slog loggers and formatting helpers used
// across audiobind.
//
// It owns the console/JSON handlers, level parsing, and output plumbing, and
// exposes context-aware helpers so pipeline code can tag records with run IDs,
// stage names, and the input being processed. Retention pruning for relocated
// pipeline logs lives here too. NewNop provides a logger for tests and wiring
// code that cannot fail.
package logging
