package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"audiobind/internal/config"
	"audiobind/internal/discover"
	"audiobind/internal/history"
	"audiobind/internal/logging"
	"audiobind/internal/media"
	"audiobind/internal/notifications"
	"audiobind/internal/pipeline"
	"audiobind/internal/transcode"
)

// bookDefaults are metadata suggestions from a lookup; flags win over them.
type bookDefaults struct {
	Title     string
	Artist    string
	Overrides []string
}

// runConvert converts folder. A conversion failure is reported with the log
// path and still exits 0; setup failures (bad folder, no files) return errors.
func runConvert(cmd *cobra.Command, ctx *commandContext, folder string, opts runOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	folder, err = filepath.Abs(folder)
	if err != nil {
		return fmt.Errorf("resolve input folder: %w", err)
	}
	inputs, err := discover.CollectMediaFiles(folder)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Found %d audio files in %s\n", len(inputs), folder)

	job, err := buildJob(cfg, inputs, opts, filepath.Base(folder), bookDefaults{}, logger)
	if err != nil {
		return err
	}
	result, err := executeJob(cmd, cfg, logger, opts, job, runMeta{Mode: history.ModeConvert, Input: folder})
	if err != nil {
		reportFailure(cmd.ErrOrStderr(), result, err)
		return nil
	}
	return nil
}

// buildJob assembles a pipeline job from discovered inputs, flags, config,
// and lookup defaults.
func buildJob(cfg *config.Config, inputs []media.Input, opts runOptions, baseName string, defaults bookDefaults, logger *slog.Logger) (pipeline.Job, error) {
	overrides := defaults.Overrides
	if path := strings.TrimSpace(opts.chapterTitles); path != "" {
		titles, err := discover.ReadTitleFile(path)
		if err != nil {
			return pipeline.Job{}, err
		}
		overrides = titles
	}

	var info discover.BookInfo
	if cfg.Chapters.UseTags {
		info = discover.ReadBookInfo(inputs)
	}
	title, _ := lo.Coalesce(strings.TrimSpace(opts.title), defaults.Title, info.Title, baseName)
	artist, _ := lo.Coalesce(strings.TrimSpace(opts.artist), defaults.Artist, info.Artist)

	output := strings.TrimSpace(opts.output)
	if output == "" {
		output = cfg.OutputPath(baseName)
	}
	output, err := filepath.Abs(output)
	if err != nil {
		return pipeline.Job{}, fmt.Errorf("resolve output path: %w", err)
	}

	return pipeline.Job{
		RunID:          uuid.NewString(),
		Inputs:         inputs,
		TitleOverrides: overrides,
		FallbackNames: discover.FallbackNames(inputs, discover.NameOptions{
			UseTags:    cfg.Chapters.UseTags,
			CleanNames: cfg.Chapters.CleanNames,
		}, logger),
		Output: output,
		Title:  title,
		Artist: artist,
	}, nil
}

// runMeta describes a run for the history ledger.
type runMeta struct {
	Mode   history.Mode
	Input  string
	DiscID string
}

// executeJob runs job with progress output and history recording, printing
// the chapter summary on success.
func executeJob(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, opts runOptions, job pipeline.Job, meta runMeta) (pipeline.Result, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	recorder := openRecorder(cfg, logger)
	defer recorder.Close()
	recorder.begin(ctx, job, meta)

	progress := newProgressReporter(out)
	orchestrator := pipeline.New(pipelineOptions(cfg, opts), logger, pipeline.WithReporter(progress))
	result, err := orchestrator.Run(ctx, job)
	progress.finish()
	recorder.finish(ctx, job.RunID, result, err)

	if err != nil {
		logger.Debug("conversion failed",
			logging.String(logging.FieldRunID, result.RunID),
			logging.Error(err),
		)
		notify(ctx, cfg, logger, func(svc notifications.Service) error {
			return svc.NotifyFailure(ctx, job.Title, err)
		})
		return result, err
	}
	renderSummary(out, result)
	notify(ctx, cfg, logger, func(svc notifications.Service) error {
		return svc.NotifyBookCompleted(ctx, job.Title, result.Output, len(result.Chapters.Chapters), result.Elapsed)
	})
	return result, nil
}

// notify delivers one ntfy message; failures are logged and never change
// the run's outcome.
func notify(ctx context.Context, cfg *config.Config, logger *slog.Logger, send func(notifications.Service) error) {
	if cfg.Notifications.NtfyTopic == "" {
		return
	}
	if err := send(notifications.NewService(cfg)); err != nil {
		logging.WarnWithContext(logger, "notification failed", "notification_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "no push message for this run"),
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic"),
		)
	}
}

func pipelineOptions(cfg *config.Config, opts runOptions) pipeline.Options {
	return pipeline.Options{
		WorkRoot:      cfg.Paths.WorkDir,
		LogDir:        cfg.Paths.LogDir,
		RetentionDays: cfg.Logging.RetentionDays,
		KeepWorkDir:   opts.keepWorkDir || cfg.Paths.KeepWorkDir,
		Overwrite:     opts.overwrite || cfg.Encoding.Overwrite,
		Profile: transcode.Profile{
			Codec:     cfg.Encoding.Codec,
			Bitrate:   cfg.Encoding.Bitrate,
			Extension: cfg.Encoding.IntermediateExt,
		},
		FFmpeg:  cfg.Tools.FFmpeg,
		FFprobe: cfg.Tools.FFprobe,
	}
}

func reportFailure(w io.Writer, result pipeline.Result, err error) {
	fmt.Fprintf(w, "Conversion failed: %v\n", err)
	if result.LogPath != "" {
		fmt.Fprintf(w, "Pipeline log: %s\n", result.LogPath)
	}
}
