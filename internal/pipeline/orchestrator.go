package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"audiobind/internal/chapters"
	"audiobind/internal/logging"
	"audiobind/internal/media/ffprobe"
	"audiobind/internal/merge"
	"audiobind/internal/runner"
	"audiobind/internal/services"
	"audiobind/internal/transcode"
	"audiobind/internal/workarea"
)

const (
	pipelineLogName = "pipeline.log"
	chapterDocName  = "chapters.ffmeta"
)

// DurationProber measures one file.
type DurationProber interface {
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

// Options are the run settings shared by every job an Orchestrator executes.
type Options struct {
	// WorkRoot is the parent of per-run working areas; empty uses os.TempDir.
	WorkRoot string
	// LogDir receives the pipeline log before the working area is removed.
	LogDir        string
	RetentionDays int
	KeepWorkDir   bool
	Overwrite     bool
	Profile       transcode.Profile
	FFmpeg        string
	FFprobe       string
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithEncoder replaces the ffmpeg encoder.
func WithEncoder(enc transcode.Encoder) Option {
	return func(o *Orchestrator) {
		if enc != nil {
			o.encoder = enc
		}
	}
}

// WithMuxer replaces the ffmpeg muxer.
func WithMuxer(m merge.Muxer) Option {
	return func(o *Orchestrator) {
		if m != nil {
			o.muxer = m
		}
	}
}

// WithProber replaces the ffprobe prober. The factory receives the run's
// pipeline log.
func WithProber(factory func(log io.Writer) DurationProber) Option {
	return func(o *Orchestrator) {
		if factory != nil {
			o.newProber = factory
		}
	}
}

// WithReporter routes progress events to r.
func WithReporter(r Reporter) Option {
	return func(o *Orchestrator) {
		o.reporter = r
	}
}

// Orchestrator drives Transcoding, Probing, BuildingMetadata, and Merging in
// order for one job at a time.
type Orchestrator struct {
	opts      Options
	logger    *slog.Logger
	encoder   transcode.Encoder
	muxer     merge.Muxer
	newProber func(io.Writer) DurationProber
	reporter  Reporter
}

// New builds an orchestrator backed by ffmpeg and ffprobe unless options
// override the adapters.
func New(opts Options, logger *slog.Logger, options ...Option) *Orchestrator {
	if opts.Profile == (transcode.Profile{}) {
		opts.Profile = transcode.DefaultProfile
	}
	r := runner.New()
	o := &Orchestrator{
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "pipeline"),
		encoder: transcode.NewFFmpegEncoder(opts.FFmpeg, r),
		muxer:   merge.NewFFmpegMuxer(opts.FFmpeg, r, opts.Overwrite),
		newProber: func(log io.Writer) DurationProber {
			return ffprobe.NewProber(opts.FFprobe, r, log)
		},
	}
	for _, apply := range options {
		apply(o)
	}
	return o
}

type run struct {
	id     string
	job    Job
	state  State
	log    *runner.Log
	work   string
	logger *slog.Logger
}

// Run executes job to completion. The first failure is returned as
// *StageError and no later stage runs. The pipeline log is relocated to the
// log directory and the working area removed before Run returns.
func (o *Orchestrator) Run(ctx context.Context, job Job) (result Result, err error) {
	started := time.Now()
	id := job.RunID
	if id == "" {
		id = uuid.NewString()
	}
	r := &run{id: id, job: job, state: StateIdle}
	ctx = services.WithRunID(ctx, r.id)
	r.logger = logging.WithContext(ctx, o.logger)
	result = Result{RunID: r.id, State: StateIdle, Output: job.Output}

	defer func() {
		result.Elapsed = time.Since(started)
		result.State = r.state
		if err != nil {
			var stageErr *StageError
			if !errors.As(err, &stageErr) {
				err = &StageError{Stage: r.state, Err: err}
			}
			r.state = StateFailed
			result.State = StateFailed
			o.emit(Event{RunID: r.id, State: StateFailed, Message: err.Error()})
		}
	}()

	if err := job.validate(); err != nil {
		return result, err
	}
	if err := o.checkOutput(job.Output); err != nil {
		return result, err
	}

	lock := flock.New(job.Output + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return result, services.Wrap(services.ErrIO, "", "lock output", job.Output, err)
	}
	if !locked {
		return result, services.Wrap(services.ErrIO, "", "lock output", "another run is writing "+job.Output, nil)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	if r.work, err = os.MkdirTemp(o.opts.WorkRoot, workarea.Prefix+"*"); err != nil {
		return result, services.Wrap(services.ErrIO, "", "create working area", "", err)
	}
	result.WorkDir = r.work
	if r.log, err = runner.OpenLog(filepath.Join(r.work, pipelineLogName)); err != nil {
		_ = os.RemoveAll(r.work)
		return result, services.Wrap(services.ErrIO, "", "open pipeline log", "", err)
	}
	result.LogPath = r.log.Path()
	defer func() {
		result.LogPath = o.teardown(r)
	}()

	r.log.Printf("audiobind run %s started %s", r.id, started.Format(time.RFC3339))
	r.log.Printf("output: %s (%d inputs)", job.Output, len(job.Inputs))
	r.logger.Info("conversion started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.Int("inputs", len(job.Inputs)),
		logging.String("output", job.Output),
	)

	doc, err := o.execute(ctx, r)
	if err != nil {
		r.log.Printf("run failed in %s: %v", r.state, err)
		return result, err
	}
	result.Chapters = doc
	o.transition(r, StateDone)
	r.log.Printf("run finished in %s", time.Since(started).Round(time.Millisecond))
	r.logger.Info("conversion finished",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("chapters", len(doc.Chapters)),
		logging.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

func (o *Orchestrator) execute(ctx context.Context, r *run) (chapters.Document, error) {
	o.transition(r, StateTranscoding)
	stage := transcode.NewStage(o.encoder, o.opts.Profile, r.log, r.logger)
	intermediates, err := stage.Normalize(services.WithStage(ctx, string(StateTranscoding)), r.job.Inputs, r.work, func(p transcode.Progress) {
		o.emit(Event{RunID: r.id, State: StateTranscoding, Index: p.Index, Total: p.Total, Path: p.Path, Done: p.Done})
	})
	if err != nil {
		return chapters.Document{}, &StageError{Stage: StateTranscoding, Err: err}
	}

	o.transition(r, StateProbing)
	prober := o.newProber(r.log)
	probeCtx := services.WithStage(ctx, string(StateProbing))
	durations := make([]float64, 0, len(intermediates))
	for i, file := range intermediates {
		d, err := prober.ProbeDuration(probeCtx, file.Path)
		if err != nil {
			return chapters.Document{}, &StageError{Stage: StateProbing, Err: err}
		}
		durations = append(durations, d)
		o.emit(Event{RunID: r.id, State: StateProbing, Index: i, Total: len(intermediates), Path: file.Source.Path, Done: true})
	}

	o.transition(r, StateBuildingMetadata)
	doc := chapters.Build(durations, r.job.TitleOverrides, r.job.fallbackNames())
	doc.Title = r.job.Title
	doc.Artist = r.job.Artist
	docPath := filepath.Join(r.work, chapterDocName)
	if err := doc.WriteFile(docPath); err != nil {
		return chapters.Document{}, &StageError{Stage: StateBuildingMetadata, Err: services.Wrap(services.ErrIO, "", "", "", err)}
	}
	r.log.Printf("chapter metadata: %d chapters, %d ms", len(doc.Chapters), doc.TotalMillis())

	o.transition(r, StateMerging)
	if err := o.mergeInto(ctx, r, transcode.Paths(intermediates), docPath); err != nil {
		return chapters.Document{}, &StageError{Stage: StateMerging, Err: err}
	}
	return doc, nil
}

// mergeInto muxes into a hidden sibling of the output and renames it into
// place once the muxer succeeds, so a failed merge never leaves or clobbers
// a book at the output path.
func (o *Orchestrator) mergeInto(ctx context.Context, r *run, intermediates []string, docPath string) error {
	partial := partialPath(r.job.Output)
	if err := os.Remove(partial); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrIO, "", "remove stale partial output", partial, err)
	}
	merger := merge.NewStage(o.muxer, r.log, r.logger)
	if err := merger.Merge(services.WithStage(ctx, string(StateMerging)), intermediates, docPath, partial); err != nil {
		_ = os.Remove(partial)
		return err
	}
	if err := os.Rename(partial, r.job.Output); err != nil {
		_ = os.Remove(partial)
		return services.Wrap(services.ErrIO, "", "move output into place", r.job.Output, err)
	}
	return nil
}

// partialPath keeps the output extension so ffmpeg still picks the right muxer.
func partialPath(output string) string {
	dir, base := filepath.Split(output)
	ext := filepath.Ext(base)
	return filepath.Join(dir, "."+strings.TrimSuffix(base, ext)+".partial"+ext)
}

func (o *Orchestrator) checkOutput(output string) error {
	info, err := os.Stat(output)
	switch {
	case err == nil && info.IsDir():
		return services.Wrap(services.ErrIO, "", "check output", output+" is a directory", nil)
	case err == nil && !o.opts.Overwrite:
		return services.Wrap(services.ErrIO, "", "check output", output+" already exists", nil)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return services.Wrap(services.ErrIO, "", "check output", "", err)
	}
	if dir := filepath.Dir(output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return services.Wrap(services.ErrIO, "", "create output directory", "", err)
		}
	}
	return nil
}

// teardown relocates the pipeline log, prunes expired logs, and removes the
// working area. It returns the final log location.
func (o *Orchestrator) teardown(r *run) string {
	logDir := o.opts.LogDir
	if logDir == "" {
		logDir = os.TempDir()
	}
	logPath, err := r.log.Relocate(logDir, r.id+".log")
	if err != nil {
		logging.WarnWithContext(r.logger, "pipeline log relocation failed; keeping working area", "log_relocate_failed",
			logging.Error(err),
			logging.String("path", logPath),
			logging.String(logging.FieldImpact, "intermediate files remain on disk"),
			logging.String(logging.FieldErrorHint, fmt.Sprintf("check permissions on %s", logDir)),
		)
		return logPath
	}
	logging.CleanupOldLogs(r.logger, o.opts.RetentionDays, logging.RetentionTarget{
		Dir:     logDir,
		Pattern: "*.log",
		Exclude: []string{logPath},
	})

	if o.opts.KeepWorkDir {
		r.logger.Info("working area kept", logging.String("path", r.work))
		return logPath
	}
	if err := os.RemoveAll(r.work); err != nil {
		logging.WarnWithContext(r.logger, "working area cleanup failed", "workdir_cleanup_failed",
			logging.Error(err),
			logging.String("path", r.work),
			logging.String(logging.FieldImpact, "intermediate files remain on disk"),
		)
	}
	return logPath
}

func (o *Orchestrator) transition(r *run, next State) {
	r.logger.Debug("state transition",
		logging.String("from", string(r.state)),
		logging.String("to", string(next)),
	)
	r.state = next
	if r.log != nil && !next.Terminal() {
		r.log.Printf("== %s ==", next)
	}
	o.emit(Event{RunID: r.id, State: next})
}

func (o *Orchestrator) emit(e Event) {
	if o.reporter != nil {
		o.reporter.Report(e)
	}
}
