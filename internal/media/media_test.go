package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"audiobind/internal/media"
)

func TestFormatFromPathIsCaseInsensitive(t *testing.T) {
	cases := map[string]media.Format{
		"/books/01 Intro.MP3": media.FormatMP3,
		"track.Flac":          media.FormatFLAC,
		"a.b.ogg":             media.FormatOGG,
		"noext":               "",
		"cover.jpg":           "jpg",
	}
	for path, want := range cases {
		assert.Equal(t, want, media.FormatFromPath(path), path)
	}
}

func TestSupported(t *testing.T) {
	for _, f := range media.SupportedFormats() {
		assert.True(t, f.Supported(), f)
	}
	assert.False(t, media.Format("aiff").Supported())
	assert.False(t, media.Format("").Supported())
	assert.Len(t, media.SupportedFormats(), 6)
}

func TestInputStem(t *testing.T) {
	in := media.NewInput("/books/Dune/03 - The Desert.opus")
	assert.Equal(t, media.FormatOpus, in.Format)
	assert.Equal(t, "03 - The Desert", in.Stem())
}
