package preflight

import (
	"context"
	"os"
	"strings"

	"audiobind/internal/config"
	"audiobind/internal/deps"
	"audiobind/internal/runner"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Options selects which optional checks apply.
type Options struct {
	// Rip adds the optical drive and ripping tools.
	Rip bool
}

// RunAll executes every check that applies to cfg. Feature checks are skipped
// when the feature is disabled.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckDirectoryAccess("Work directory", workRoot(cfg)),
	}
	if dir := strings.TrimSpace(cfg.Paths.OutputDir); dir != "" {
		results = append(results, CheckDirectoryAccess("Output directory", dir))
	}
	if opts.Rip {
		results = append(results, CheckDevice("Optical drive", cfg.Rip.Device))
	}
	if cfg.MusicBrainz.Enabled && opts.Rip {
		results = append(results, CheckMusicBrainz(ctx, cfg.MusicBrainz.BaseURL, cfg.MusicBrainz.UserAgent))
	}
	return results
}

// Requirements lists the external tools for cfg. The ripping tools are
// optional unless opts.Rip is set.
func Requirements(cfg *config.Config, opts Options) []deps.Requirement {
	return []deps.Requirement{
		{Name: "FFmpeg", Command: cfg.Tools.FFmpeg, Description: "Required for transcoding and merging"},
		{Name: "FFprobe", Command: cfg.Tools.FFprobe, Description: "Required for duration probing"},
		{Name: "cd-discid", Command: cfg.Tools.CDDiscID, Description: "Required to identify audio CDs", Optional: !opts.Rip},
		{Name: "cdparanoia", Command: cfg.Tools.CDParanoia, Description: "Required to rip audio CDs", Optional: !opts.Rip},
	}
}

// CheckSystemDeps resolves Requirements and reports tool versions.
func CheckSystemDeps(ctx context.Context, cfg *config.Config, opts Options) []deps.Status {
	statuses := deps.CheckBinaries(Requirements(cfg, opts))
	deps.AttachVersions(ctx, runner.New(), statuses, map[string]string{
		strings.TrimSpace(cfg.Tools.FFmpeg):     "-version",
		strings.TrimSpace(cfg.Tools.FFprobe):    "-version",
		strings.TrimSpace(cfg.Tools.CDParanoia): "--version",
	})
	return statuses
}

func workRoot(cfg *config.Config) string {
	if dir := strings.TrimSpace(cfg.Paths.WorkDir); dir != "" {
		return dir
	}
	return os.TempDir()
}
