package media

import (
	"path/filepath"
	"slices"
	"strings"
)

// Format is the lower-cased file extension without its leading dot.
type Format string

// Supported source formats. Every one of them shares the same transcode profile.
const (
	FormatOGG  Format = "ogg"
	FormatMP3  Format = "mp3"
	FormatWAV  Format = "wav"
	FormatFLAC Format = "flac"
	FormatM4A  Format = "m4a"
	FormatOpus Format = "opus"
)

var supported = []Format{FormatOGG, FormatMP3, FormatWAV, FormatFLAC, FormatM4A, FormatOpus}

// SupportedFormats returns the accepted source formats in a stable order.
func SupportedFormats() []Format {
	return slices.Clone(supported)
}

// Supported reports whether f is an accepted source format.
func (f Format) Supported() bool {
	return slices.Contains(supported, f)
}

// FormatFromPath derives the format tag from a path's extension.
func FormatFromPath(path string) Format {
	return Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")))
}

// Input is one source audio file. It is not modified after collection.
type Input struct {
	Path   string
	Format Format
}

// NewInput builds an Input with its format derived from the extension.
func NewInput(path string) Input {
	return Input{Path: path, Format: FormatFromPath(path)}
}

// Stem returns the file name without directory or extension.
func (i Input) Stem() string {
	base := filepath.Base(i.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
