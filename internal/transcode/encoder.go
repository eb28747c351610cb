package transcode

import (
	"context"
	"io"
	"strings"

	"audiobind/internal/runner"
)

// Encoder converts one source file into an intermediate.
type Encoder interface {
	Encode(ctx context.Context, input, output string, p Profile, log io.Writer) error
}

// FFmpegEncoder encodes through the ffmpeg CLI.
type FFmpegEncoder struct {
	Binary string
	Runner runner.Runner
}

// NewFFmpegEncoder builds an encoder for the given ffmpeg binary.
func NewFFmpegEncoder(binary string, r runner.Runner) *FFmpegEncoder {
	return &FFmpegEncoder{Binary: binary, Runner: r}
}

// Encode runs ffmpeg -i <in> -c:a <codec> -b:a <bitrate> -vn <out>.
func (e *FFmpegEncoder) Encode(ctx context.Context, input, output string, p Profile, log io.Writer) error {
	binary := strings.TrimSpace(e.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	r := e.Runner
	if r == nil {
		r = runner.New()
	}
	return r.Run(ctx, runner.Command{
		Binary: binary,
		Args:   EncodeArgs(input, output, p),
	}, log)
}

// EncodeArgs returns the ffmpeg argument list for one normalization.
func EncodeArgs(input, output string, p Profile) []string {
	return []string{"-i", input, "-c:a", p.Codec, "-b:a", p.Bitrate, "-vn", output}
}
