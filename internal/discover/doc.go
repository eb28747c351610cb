// Package discover finds source audio files and derives the names used when
// no explicit chapter title is supplied.
//
// Collection walks a folder recursively in lexical order, which is the order
// chapters appear in the book. Fallback names come from file stems, or from
// embedded title tags when enabled.
package discover
