package ffprobe

import (
	"context"
	"io"
	"math"
	"strconv"
	"strings"

	"audiobind/internal/runner"
)

// Prober measures media durations with ffprobe. It holds no per-call state.
type Prober struct {
	Binary string
	Runner runner.Output
	// Log receives the command header and ffprobe's stderr; nil discards it.
	Log io.Writer
}

// NewProber builds a prober for the given ffprobe binary.
func NewProber(binary string, r runner.Output, log io.Writer) *Prober {
	return &Prober{Binary: binary, Runner: r, Log: log}
}

// ProbeDuration returns the duration of path in seconds.
func (p *Prober) ProbeDuration(ctx context.Context, path string) (float64, error) {
	binary := strings.TrimSpace(p.Binary)
	if binary == "" {
		binary = "ffprobe"
	}
	r := p.Runner
	if r == nil {
		r = runner.New()
	}
	log := p.Log
	if log == nil {
		log = io.Discard
	}

	cmd := runner.Command{
		Binary: binary,
		Args: []string{
			"-v", "error",
			"-show_entries", "format=duration",
			"-of", "default=noprint_wrappers=1:nokey=1",
			path,
		},
	}
	out, err := r.Output(ctx, cmd, log)
	if err != nil {
		return 0, &ProbeError{Kind: ExecutionFailed, Path: path, Err: err}
	}
	return ParseDuration(path, string(out))
}

// ParseDuration parses the bare seconds value ffprobe prints for
// format=duration. Non-numeric, negative, and non-finite values are rejected.
func ParseDuration(path, output string) (float64, error) {
	text := strings.TrimSpace(output)
	seconds, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &ProbeError{Kind: ParseFailed, Path: path, Output: text, Err: err}
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return 0, &ProbeError{Kind: ParseFailed, Path: path, Output: text}
	}
	return seconds, nil
}
