// Package preflight provides readiness checks for the external tools,
// filesystem paths, and services audiobind depends on.
//
// The CLI "audiobind check" command prints every result. Rip mode also runs
// the drive and ripping-tool checks before touching the disc so a missing
// cdparanoia is reported up front rather than as a spawn failure mid-run.
//
// Each check is gated by its config toggle; disabled features are skipped.
package preflight
