// Package deps resolves the external executables audiobind depends on and
// reports whether each one is usable on the current host.
package deps
