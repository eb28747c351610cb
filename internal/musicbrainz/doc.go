// Package musicbrainz resolves an audio CD's disc ID to release and track
// titles through the MusicBrainz web service.
//
// Lookup is best effort. Network errors, HTTP errors, decode failures, and
// empty results are logged and reported through the boolean result rather
// than as errors, so a missing lookup never stops a rip.
package musicbrainz
