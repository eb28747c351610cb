package transcode

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"audiobind/internal/logging"
	"audiobind/internal/media"
	"audiobind/internal/services"
)

// Intermediate is a normalized file in the run's working area.
type Intermediate struct {
	Index  int
	Path   string
	Source media.Input
}

// Progress reports per-file transcode progress.
type Progress struct {
	Index int
	Total int
	Path  string
	Done  bool
}

// Stage normalizes every source file into a uniform intermediate.
type Stage struct {
	Encoder  Encoder
	Profiles Profiles
	Log      io.Writer
	Logger   *slog.Logger
}

// NewStage builds a transcode stage applying profile to every supported format.
func NewStage(encoder Encoder, profile Profile, log io.Writer, logger *slog.Logger) *Stage {
	return &Stage{
		Encoder:  encoder,
		Profiles: UniformProfiles(profile),
		Log:      log,
		Logger:   logging.NewComponentLogger(logger, "transcode"),
	}
}

// Normalize encodes inputs in order into workDir as 0000<ext>, 0001<ext>, ...
// Every format is checked before the first encode. The first encoder failure
// stops the stage and nothing after it is attempted.
func (s *Stage) Normalize(ctx context.Context, inputs []media.Input, workDir string, progress func(Progress)) ([]Intermediate, error) {
	profiles := make([]Profile, len(inputs))
	for i, input := range inputs {
		p, err := s.Profiles.Lookup(input)
		if err != nil {
			return nil, err
		}
		profiles[i] = p
	}

	logger := s.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	log := s.Log
	if log == nil {
		log = io.Discard
	}

	out := make([]Intermediate, 0, len(inputs))
	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dest := filepath.Join(workDir, IntermediateName(i, profiles[i].Extension))
		if progress != nil {
			progress(Progress{Index: i, Total: len(inputs), Path: input.Path})
		}
		fileCtx := services.WithInput(ctx, input.Path)
		logging.WithContext(fileCtx, logger).Debug("encoding file",
			logging.Int("index", i),
			logging.String("output", dest),
		)
		if err := s.Encoder.Encode(fileCtx, input.Path, dest, profiles[i], log); err != nil {
			return nil, fmt.Errorf("encode %s: %w", input.Path, err)
		}
		out = append(out, Intermediate{Index: i, Path: dest, Source: input})
		if progress != nil {
			progress(Progress{Index: i, Total: len(inputs), Path: input.Path, Done: true})
		}
	}
	return out, nil
}

// IntermediateName returns the ordinal file name for index i.
func IntermediateName(i int, ext string) string {
	return fmt.Sprintf("%04d%s", i, ext)
}

// Paths returns the intermediate paths in order.
func Paths(files []Intermediate) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}
