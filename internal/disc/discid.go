package disc

import (
	"crypto/sha1" //nolint:gosec
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"audiobind/internal/services"
)

const maxTracks = 99

// TOC is an audio CD table of contents in CD frames (1/75 s), including the
// 150-frame lead-in.
type TOC struct {
	FirstTrack int
	LastTrack  int
	Leadout    int
	Offsets    []int
}

// ID identifies a disc for metadata lookup.
type ID struct {
	MusicBrainz string
	TOC         TOC
}

// ParseTOC parses "cd-discid --musicbrainz" output:
// "<ntracks> <offset1> ... <offsetN> <leadout>".
func ParseTOC(output string) (TOC, error) {
	fields := strings.Fields(output)
	if len(fields) < 3 {
		return TOC{}, services.Wrap(services.ErrParse, "disc", "parse toc", fmt.Sprintf("unexpected output %q", strings.TrimSpace(output)), nil)
	}
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			return TOC{}, services.Wrap(services.ErrParse, "disc", "parse toc", fmt.Sprintf("bad field %q", f), err)
		}
		values[i] = v
	}
	tracks := values[0]
	if tracks < 1 || tracks > maxTracks || len(values) != tracks+2 {
		return TOC{}, services.Wrap(services.ErrParse, "disc", "parse toc", fmt.Sprintf("track count %d does not match %d offsets", tracks, len(values)-2), nil)
	}
	toc := TOC{
		FirstTrack: 1,
		LastTrack:  tracks,
		Offsets:    values[1 : tracks+1],
		Leadout:    values[tracks+1],
	}
	for i, off := range toc.Offsets {
		if off >= toc.Leadout || (i > 0 && off <= toc.Offsets[i-1]) {
			return TOC{}, services.Wrap(services.ErrParse, "disc", "parse toc", "offsets are not increasing", nil)
		}
	}
	return toc, nil
}

// MusicBrainzID computes the MusicBrainz disc ID: SHA-1 over the hex-encoded
// first track, last track, lead-out, and 99 track offsets, base64 encoded with
// the URL-safe substitutions MusicBrainz uses.
func (t TOC) MusicBrainzID() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%02X", t.FirstTrack)
	fmt.Fprintf(&b, "%02X", t.LastTrack)
	fmt.Fprintf(&b, "%08X", t.Leadout)
	for i := 0; i < maxTracks; i++ {
		offset := 0
		if i < len(t.Offsets) {
			offset = t.Offsets[i]
		}
		fmt.Fprintf(&b, "%08X", offset)
	}
	sum := sha1.Sum([]byte(b.String())) //nolint:gosec
	encoded := base64.StdEncoding.EncodeToString(sum[:])
	return strings.NewReplacer("+", ".", "/", "_", "=", "-").Replace(encoded)
}

// Query returns the toc parameter value for fuzzy lookups:
// "first+last+leadout+offset1+...".
func (t TOC) Query() string {
	parts := make([]string, 0, len(t.Offsets)+3)
	parts = append(parts, strconv.Itoa(t.FirstTrack), strconv.Itoa(t.LastTrack), strconv.Itoa(t.Leadout))
	for _, off := range t.Offsets {
		parts = append(parts, strconv.Itoa(off))
	}
	return strings.Join(parts, "+")
}

// Tracks returns the number of audio tracks.
func (t TOC) Tracks() int {
	return t.LastTrack - t.FirstTrack + 1
}
