package main

import (
	"context"
	"log/slog"

	"audiobind/internal/config"
	"audiobind/internal/history"
	"audiobind/internal/logging"
	"audiobind/internal/pipeline"
	"audiobind/internal/services"
)

// runRecorder writes runs to the history ledger. A nil store turns every
// method into a no-op; ledger errors are logged and never fail a run.
type runRecorder struct {
	store  *history.Store
	logger *slog.Logger
}

func openRecorder(cfg *config.Config, logger *slog.Logger) *runRecorder {
	rec := &runRecorder{logger: logger}
	if !cfg.History.Enabled {
		return rec
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logging.WarnWithContext(logger, "history ledger unavailable", "history_open_failed",
			logging.Error(err),
			logging.String("path", cfg.History.Path),
			logging.String(logging.FieldImpact, "this run will not appear in `audiobind history`"),
		)
		return rec
	}
	rec.store = store
	return rec
}

func (r *runRecorder) begin(ctx context.Context, job pipeline.Job, meta runMeta) {
	if r.store == nil {
		return
	}
	err := r.store.Begin(ctx, history.Run{
		RunID:  job.RunID,
		Mode:   meta.Mode,
		Input:  meta.Input,
		Output: job.Output,
		State:  string(pipeline.StateIdle),
		DiscID: meta.DiscID,
	})
	if err != nil {
		r.warn("history begin failed", err)
	}
}

func (r *runRecorder) finish(ctx context.Context, runID string, result pipeline.Result, runErr error) {
	if r.store == nil {
		return
	}
	outcome := history.Outcome{
		State:        string(result.State),
		LogPath:      result.LogPath,
		ChapterCount: len(result.Chapters.Chapters),
		DurationMS:   result.Chapters.TotalMillis(),
	}
	if runErr != nil {
		outcome.FailureKind = services.FailureKind(runErr)
		outcome.ErrorMessage = runErr.Error()
	}
	// Record even when ctx was cancelled so interrupted runs show as failed.
	if err := r.store.Finish(context.WithoutCancel(ctx), runID, outcome); err != nil {
		r.warn("history finish failed", err)
	}
}

func (r *runRecorder) Close() {
	if r.store != nil {
		_ = r.store.Close()
	}
}

func (r *runRecorder) warn(msg string, err error) {
	logging.WarnWithContext(r.logger, msg, "history_write_failed",
		logging.Error(err),
		logging.String(logging.FieldImpact, "run history is incomplete"),
	)
}
