package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"audiobind/internal/runner"
	"audiobind/internal/services"
)

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
	raw     []byte
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index         int    `json:"index"`
	CodecName     string `json:"codec_name"`
	CodecType     string `json:"codec_type"`
	Duration      string `json:"duration"`
	BitRate       string `json:"bit_rate"`
	SampleRate    string `json:"sample_rate"`
	Channels      int    `json:"channels"`
	ChannelLayout string `json:"channel_layout"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string            `json:"filename"`
	NBStreams  int               `json:"nb_streams"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	BitRate    string            `json:"bit_rate"`
	FormatName string            `json:"format_name"`
	Tags       map[string]string `json:"tags"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON response.
func Inspect(ctx context.Context, r runner.Output, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe inspect: empty path")
	}

	cmd := runner.Command{
		Binary: binary,
		Args:   []string{"-v", "error", "-hide_banner", "-show_format", "-show_streams", "-of", "json", "--", path},
	}
	output, err := r.Output(ctx, cmd, io.Discard)
	if err != nil {
		return Result{}, &ProbeError{Kind: ExecutionFailed, Path: path, Err: err}
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, &ProbeError{Kind: ParseFailed, Path: path, Err: err}
	}
	result.raw = append([]byte(nil), output...)
	return result, nil
}

// RawJSON returns the raw ffprobe JSON payload.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

// AudioStreams returns the audio streams in container order.
func (r Result) AudioStreams() []Stream {
	var out []Stream
	for _, stream := range r.Streams {
		if strings.EqualFold(stream.CodecType, "audio") {
			out = append(out, stream)
		}
	}
	return out
}

// DurationSeconds returns the container duration in seconds, 0 when absent,
// or NaN when unparsable.
func (r Result) DurationSeconds() float64 {
	return parseFloat(r.Format.Duration)
}

// SizeBytes returns the reported container size in bytes, or 0 when unavailable.
func (r Result) SizeBytes() int64 {
	size := parseFloat(r.Format.Size)
	if math.IsNaN(size) || size < 0 {
		return 0
	}
	return int64(size)
}

// BitRate returns the container bitrate in bits per second, or 0 when unavailable.
func (r Result) BitRate() int64 {
	rate := parseFloat(r.Format.BitRate)
	if math.IsNaN(rate) || rate < 0 {
		return 0
	}
	return int64(rate)
}

// Tag returns a container tag by case-insensitive key.
func (r Result) Tag(key string) string {
	for k, v := range r.Format.Tags {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func parseFloat(value string) float64 {
	cleaned := strings.TrimSpace(value)
	if cleaned == "" {
		return 0
	}
	if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return parsed
	}
	return math.NaN()
}

// ErrorKind distinguishes probe failures.
type ErrorKind int

const (
	// ExecutionFailed covers a probe that could not start or exited non-zero.
	ExecutionFailed ErrorKind = iota
	// ParseFailed covers output that is not a usable duration.
	ParseFailed
)

func (k ErrorKind) String() string {
	if k == ParseFailed {
		return "parse failed"
	}
	return "execution failed"
}

// ProbeError reports a failed duration probe for one file.
type ProbeError struct {
	Kind   ErrorKind
	Path   string
	Output string
	Err    error
}

func (e *ProbeError) Error() string {
	msg := fmt.Sprintf("probe %s: %s", e.Path, e.Kind)
	if e.Output != "" {
		msg += fmt.Sprintf(" (output %q)", e.Output)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProbeError) Unwrap() []error {
	marker := services.ErrExecution
	if e.Kind == ParseFailed {
		marker = services.ErrParse
	}
	if e.Err == nil {
		return []error{marker}
	}
	return []error{marker, e.Err}
}
