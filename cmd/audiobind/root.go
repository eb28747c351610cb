package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// runOptions are the flags shared by convert and rip mode.
type runOptions struct {
	ripCD         string
	output        string
	chapterTitles string
	title         string
	artist        string
	overwrite     bool
	keepWorkDir   bool
	wait          bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var jsonFlag bool
	var opts runOptions

	ctx := newCommandContext(&configFlag, &jsonFlag)

	rootCmd := &cobra.Command{
		Use:   "audiobind [input_folder]",
		Short: "Bind a folder of audio tracks or an audio CD into a chaptered m4b",
		Long: `Bind a folder of audio tracks or an audio CD into a chaptered m4b.

Convert a folder (searched recursively, files ordered by path):
  audiobind ~/Audiobooks/Dune

Rip an audio CD, look it up in MusicBrainz, and convert it:
  audiobind --rip-cd ~/Audiobooks/Dune-Disc1 [device]

Each input becomes one chapter. The pipeline log is kept in the configured
log directory and its path is printed at the end of every run.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.ripCD != "" {
				device := ""
				if len(args) == 1 {
					device = args[0]
				}
				return runRip(cmd, ctx, opts, device)
			}
			if len(args) == 0 {
				_ = cmd.Usage()
				return errors.New("an input folder or --rip-cd <output_folder> is required")
			}
			return runConvert(cmd, ctx, args[0], opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print machine-readable JSON where supported")

	flags := rootCmd.Flags()
	flags.StringVar(&opts.ripCD, "rip-cd", "", "Rip an audio CD into this folder, then convert it")
	flags.StringVarP(&opts.output, "output", "o", "", "Output book path (default <folder name><output_ext>)")
	flags.StringVar(&opts.chapterTitles, "chapter-titles", "", "File with one chapter title per line")
	flags.StringVar(&opts.title, "title", "", "Book title tag")
	flags.StringVar(&opts.artist, "artist", "", "Book artist tag")
	flags.BoolVar(&opts.overwrite, "overwrite", false, "Replace an existing output file")
	flags.BoolVar(&opts.keepWorkDir, "keep-work-dir", false, "Keep intermediate files after the run")
	flags.BoolVar(&opts.wait, "wait", false, "Rip mode: wait until a disc is inserted")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newDiscIDCommand(ctx))
	rootCmd.AddCommand(newProbeCommand(ctx))
	rootCmd.AddCommand(newLogCommand(ctx))
	rootCmd.AddCommand(newCleanCommand(ctx))

	return rootCmd
}
