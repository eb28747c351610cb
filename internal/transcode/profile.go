package transcode

import (
	"fmt"

	"audiobind/internal/media"
	"audiobind/internal/services"
)

// Profile is the encoder configuration applied to a source file. All supported
// formats share one profile so the merge stage can stream-copy.
type Profile struct {
	Codec     string
	Bitrate   string
	Extension string
}

// DefaultProfile is the AAC 64 kbit/s profile written to .m4a intermediates.
var DefaultProfile = Profile{Codec: "aac", Bitrate: "64k", Extension: ".m4a"}

// Profiles maps each supported format tag to its profile.
type Profiles map[media.Format]Profile

// UniformProfiles assigns p to every supported format.
func UniformProfiles(p Profile) Profiles {
	out := make(Profiles, len(media.SupportedFormats()))
	for _, f := range media.SupportedFormats() {
		out[f] = p
	}
	return out
}

// Lookup returns the profile for input or *UnsupportedFormatError.
func (p Profiles) Lookup(input media.Input) (Profile, error) {
	profile, ok := p[input.Format]
	if !ok {
		return Profile{}, &UnsupportedFormatError{Path: input.Path, Format: input.Format}
	}
	return profile, nil
}

// UnsupportedFormatError reports a source whose extension has no profile.
type UnsupportedFormatError struct {
	Path   string
	Format media.Format
}

func (e *UnsupportedFormatError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("unsupported format: %s has no extension", e.Path)
	}
	return fmt.Sprintf("unsupported format %q: %s", string(e.Format), e.Path)
}

func (e *UnsupportedFormatError) Unwrap() error { return services.ErrUnsupportedFormat }
