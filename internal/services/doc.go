// Package services defines shared utilities consumed by the pipeline stages
// and the command layer.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and the input being
//     processed so log records can be correlated.
//   - Structured error markers plus the Wrap helper. Every failure a stage can
//     produce matches exactly one marker via errors.Is, which is how the CLI
//     and the run history classify failures.
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
