// Package merge produces the final book from normalized intermediates.
//
// It writes a concat demuxer manifest and runs a single ffmpeg pass that
// concatenates with stream copy and maps chapters and global tags from the
// FFMETADATA document. Stream copy is only valid because every intermediate
// shares one encoding profile.
package merge
