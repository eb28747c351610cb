// Package config loads, normalizes, and validates audiobind configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MUSICBRAINZ_USER_AGENT. The Config type centralizes every knob the CLI and
// the conversion pipeline need, so tool names, the transcode profile, and the
// log/work directories are resolved in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
