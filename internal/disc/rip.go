package disc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"audiobind/internal/discover"
	"audiobind/internal/logging"
	"audiobind/internal/media"
	"audiobind/internal/runner"
	"audiobind/internal/services"
)

// Ripper extracts audio tracks from a CD.
type Ripper struct {
	Binary string
	Runner runner.Runner
	Logger *slog.Logger
}

// NewRipper builds a cdparanoia ripper.
func NewRipper(binary string, r runner.Runner, logger *slog.Logger) *Ripper {
	return &Ripper{Binary: binary, Runner: r, Logger: logging.NewComponentLogger(logger, "ripper")}
}

// Rip runs "cdparanoia -d <device> -B" inside outDir and returns the ripped
// WAV files in track order. outDir must not already contain WAV files.
func (rp *Ripper) Rip(ctx context.Context, device, outDir string, log io.Writer) ([]string, error) {
	binary := strings.TrimSpace(rp.Binary)
	if binary == "" {
		binary = "cdparanoia"
	}
	r := rp.Runner
	if r == nil {
		r = runner.New()
	}
	if log == nil {
		log = io.Discard
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrIO, "rip", "create output folder", outDir, err)
	}
	// Tracks are collected by globbing outDir, so leftovers from an earlier
	// rip would be merged into this book.
	existing, err := discover.Files(outDir, media.FormatWAV)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, services.Wrap(services.ErrValidation, "rip", "",
			fmt.Sprintf("%s already holds %d WAV tracks; rip into an empty folder", outDir, len(existing)), nil)
	}

	if rp.Logger != nil {
		rp.Logger.Info("ripping disc",
			logging.String("device", device),
			logging.String("dest", outDir),
			logging.String(logging.FieldEventType, "rip_start"),
		)
	}
	if err := r.Run(ctx, runner.Command{Binary: binary, Args: []string{"-d", device, "-B"}, Dir: outDir}, log); err != nil {
		return nil, fmt.Errorf("rip %s: %w", device, err)
	}

	tracks, err := discover.Files(outDir, media.FormatWAV)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, services.Wrap(services.ErrNoMediaFiles, "rip", "", "cdparanoia produced no tracks in "+outDir, nil)
	}
	return tracks, nil
}
