// Package logs locates relocated pipeline logs and reads them with bounded
// memory, powering `audiobind log`.
//
// Pipeline logs are named <run-id>.log inside the configured log directory.
// Resolve accepts a full run ID or any unique prefix of one.
package logs
