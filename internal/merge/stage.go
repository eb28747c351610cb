package merge

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"audiobind/internal/logging"
	"audiobind/internal/services"
)

// ManifestName is the concat list written next to the intermediates.
const ManifestName = "concat.txt"

// Stage joins the intermediates into the final book.
type Stage struct {
	Muxer  Muxer
	Log    io.Writer
	Logger *slog.Logger
}

// NewStage builds a merge stage.
func NewStage(muxer Muxer, log io.Writer, logger *slog.Logger) *Stage {
	return &Stage{Muxer: muxer, Log: log, Logger: logging.NewComponentLogger(logger, "merge")}
}

// Merge writes the manifest beside the first intermediate and invokes the
// muxer once. An empty intermediate list fails before any subprocess runs.
func (s *Stage) Merge(ctx context.Context, intermediates []string, chapterDocPath, outputPath string) error {
	if len(intermediates) == 0 {
		return services.Wrap(services.ErrValidation, "merging", "", "no intermediate files to merge", nil)
	}
	manifest := filepath.Join(filepath.Dir(intermediates[0]), ManifestName)
	if err := WriteManifest(manifest, intermediates); err != nil {
		return services.Wrap(services.ErrIO, "merging", "manifest", "", err)
	}

	log := s.Log
	if log == nil {
		log = io.Discard
	}
	if s.Logger != nil {
		logging.WithContext(ctx, s.Logger).Debug("merging intermediates",
			logging.Int("files", len(intermediates)),
			logging.String("output", outputPath),
		)
	}
	return s.Muxer.Concat(ctx, manifest, chapterDocPath, outputPath, log)
}
