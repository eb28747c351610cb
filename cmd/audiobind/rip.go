package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"audiobind/internal/config"
	"audiobind/internal/deps"
	"audiobind/internal/disc"
	"audiobind/internal/discidcache"
	"audiobind/internal/history"
	"audiobind/internal/media"
	"audiobind/internal/musicbrainz"
	"audiobind/internal/notifications"
	"audiobind/internal/preflight"
	"audiobind/internal/runner"
	"audiobind/internal/services"
)

// runRip rips the disc in device into opts.ripCD and converts the tracks.
// Every failure, including a failed conversion, returns an error.
func runRip(cmd *cobra.Command, ctx *commandContext, opts runOptions, device string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}
	out := cmd.OutOrStdout()

	device = lo.Ternary(strings.TrimSpace(device) == "", cfg.Rip.Device, strings.TrimSpace(device))
	outFolder, err := filepath.Abs(opts.ripCD)
	if err != nil {
		return fmt.Errorf("resolve output folder: %w", err)
	}

	if missing := deps.Missing(deps.CheckBinaries(preflight.Requirements(cfg, preflight.Options{Rip: true}))); len(missing) > 0 {
		names := lo.Map(missing, func(s deps.Status, _ int) string { return s.Command })
		return services.Wrap(services.ErrConfiguration, "", "check tools", "missing "+strings.Join(names, ", "), nil)
	}

	if opts.wait || cfg.Rip.WaitForMedia {
		fmt.Fprintf(out, "Waiting for a disc in %s...\n", device)
		if err := disc.WaitForMedia(runCtx, device, logger); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(outFolder, 0o755); err != nil {
		return services.Wrap(services.ErrIO, "", "create output folder", outFolder, err)
	}
	ripLog, err := runner.OpenLog(filepath.Join(cfg.Paths.LogDir, "rip-"+time.Now().Format("20060102-150405")+".log"))
	if err != nil {
		return services.Wrap(services.ErrIO, "", "open rip log", "", err)
	}
	defer ripLog.Close()

	r := runner.New()
	id, err := disc.Identify(runCtx, r, cfg.Tools.CDDiscID, device, ripLog)
	if err != nil {
		return fmt.Errorf("identify disc: %w (log: %s)", err, ripLog.Path())
	}
	fmt.Fprintf(out, "Disc ID: %s (%d tracks)\n", id.MusicBrainz, id.TOC.Tracks())

	release, found := lookupRelease(runCtx, cfg, logger, id)
	printRelease(out, release, found)

	fmt.Fprintf(out, "Ripping %s into %s...\n", device, outFolder)
	tracks, err := disc.NewRipper(cfg.Tools.CDParanoia, r, logger).Rip(runCtx, device, outFolder, ripLog)
	if err != nil {
		return fmt.Errorf("rip disc: %w (log: %s)", err, ripLog.Path())
	}
	fmt.Fprintf(out, "Ripped %d tracks\n", len(tracks))
	notify(runCtx, cfg, logger, func(svc notifications.Service) error {
		return svc.NotifyRipCompleted(runCtx, release.Title, len(tracks))
	})

	defaults := bookDefaults{}
	if found {
		defaults.Title = release.Title
		defaults.Artist = release.Artist
		if cfg.Chapters.ApplyDiscTitles {
			defaults.Overrides = release.Tracks
		}
	}
	inputs := lo.Map(tracks, func(path string, _ int) media.Input { return media.NewInput(path) })
	if strings.TrimSpace(opts.output) == "" {
		opts.output = outFolder + cfg.Encoding.OutputExt
	}
	job, err := buildJob(cfg, inputs, opts, filepath.Base(outFolder), defaults, logger)
	if err != nil {
		return err
	}

	result, err := executeJob(cmd, cfg, logger, opts, job, runMeta{Mode: history.ModeRip, Input: device, DiscID: id.MusicBrainz})
	if err != nil {
		reportFailure(cmd.ErrOrStderr(), result, err)
		return &reportedError{err: err}
	}
	return nil
}

// lookupRelease resolves id through the disc ID cache and MusicBrainz,
// whichever are enabled.
func lookupRelease(ctx context.Context, cfg *config.Config, logger *slog.Logger, id disc.ID) (musicbrainz.Release, bool) {
	resolver := &musicbrainz.Resolver{Logger: logger}
	if cfg.DiscIDCache.Enabled {
		resolver.Cache = discidcache.NewCache(cfg.DiscIDCache.Path, logger)
	}
	if cfg.MusicBrainz.Enabled {
		resolver.Source = musicbrainz.New(musicbrainz.Options{
			BaseURL:   cfg.MusicBrainz.BaseURL,
			UserAgent: cfg.MusicBrainz.UserAgent,
			Timeout:   time.Duration(cfg.MusicBrainz.TimeoutSeconds) * time.Second,
		}, logger)
	}
	return resolver.Lookup(ctx, id)
}

func printRelease(out io.Writer, release musicbrainz.Release, found bool) {
	if !found {
		fmt.Fprintln(out, "No MusicBrainz match; chapters will use file names")
		return
	}
	fmt.Fprintf(out, "Release: %s", release.Title)
	if release.Artist != "" {
		fmt.Fprintf(out, " by %s", release.Artist)
	}
	fmt.Fprintln(out)
	for i, track := range release.Tracks {
		fmt.Fprintf(out, "  %2d. %s\n", i+1, track)
	}
}
