package merge

import (
	"context"
	"io"
	"strings"

	"audiobind/internal/runner"
)

// Muxer concatenates intermediates and applies chapter metadata in one pass.
type Muxer interface {
	Concat(ctx context.Context, manifest, metadata, output string, log io.Writer) error
}

// FFmpegMuxer muxes through the ffmpeg concat demuxer with stream copy.
type FFmpegMuxer struct {
	Binary    string
	Runner    runner.Runner
	Overwrite bool
}

// NewFFmpegMuxer builds a muxer for the given ffmpeg binary.
func NewFFmpegMuxer(binary string, r runner.Runner, overwrite bool) *FFmpegMuxer {
	return &FFmpegMuxer{Binary: binary, Runner: r, Overwrite: overwrite}
}

func (m *FFmpegMuxer) Concat(ctx context.Context, manifest, metadata, output string, log io.Writer) error {
	binary := strings.TrimSpace(m.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	r := m.Runner
	if r == nil {
		r = runner.New()
	}
	return r.Run(ctx, runner.Command{Binary: binary, Args: ConcatArgs(manifest, metadata, output, m.Overwrite)}, log)
}

// ConcatArgs returns the ffmpeg argument list for the final merge.
func ConcatArgs(manifest, metadata, output string, overwrite bool) []string {
	args := make([]string, 0, 16)
	if overwrite {
		args = append(args, "-y")
	}
	return append(args,
		"-f", "concat",
		"-safe", "0",
		"-i", manifest,
		"-i", metadata,
		"-map_metadata", "1",
		"-map_chapters", "1",
		"-c", "copy",
		output,
	)
}
