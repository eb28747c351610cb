// Package disc handles audio CDs: reading the table of contents with
// cd-discid, computing the MusicBrainz disc ID, ripping tracks to WAV with
// cdparanoia, and waiting for media through udev netlink events.
package disc
