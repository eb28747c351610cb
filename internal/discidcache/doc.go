// Package discidcache remembers which MusicBrainz release a ripped CD
// resolved to, keyed by the disc's MusicBrainz disc ID.
//
// Re-ripping a disc from a multi-disc audiobook (or retrying a failed rip)
// then skips the network lookup entirely. The cache is a small JSON array on
// disk so it can be inspected or edited by hand.
//
// The cache is disabled by default. Enable it in config.toml:
//
//	[disc_id_cache]
//	enabled = true
//	path = "~/.cache/audiobind/discid_cache.json"
//
// Manage it from the CLI:
//
//	audiobind discid list
//	audiobind discid remove <number>
//	audiobind discid clear
package discidcache
