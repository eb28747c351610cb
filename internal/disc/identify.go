package disc

import (
	"context"
	"io"
	"strings"

	"audiobind/internal/runner"
)

// Identify reads the disc's table of contents with cd-discid and computes its
// MusicBrainz disc ID.
func Identify(ctx context.Context, r runner.Output, binary, device string, log io.Writer) (ID, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "cd-discid"
	}
	if log == nil {
		log = io.Discard
	}
	out, err := r.Output(ctx, runner.Command{Binary: binary, Args: []string{"--musicbrainz", device}}, log)
	if err != nil {
		return ID{}, err
	}
	toc, err := ParseTOC(string(out))
	if err != nil {
		return ID{}, err
	}
	return ID{MusicBrainz: toc.MusicBrainzID(), TOC: toc}, nil
}
