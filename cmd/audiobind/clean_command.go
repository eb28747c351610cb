package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"audiobind/internal/workarea"
)

func newCleanCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove working areas left behind by earlier runs",
		Long: `Remove working areas left behind by earlier runs.

Working areas survive when --keep-work-dir is used or when a run is killed
before it can tidy up. Only directories named audiobind-* under
paths.work_dir (or the system temp directory) are considered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			root := workarea.Root(cfg.Paths.WorkDir)
			result := workarea.CleanStale(cmd.Context(), root, olderThan, dryRun, logger)

			if ctx.JSONMode() {
				errs := make([]map[string]string, 0, len(result.Errors))
				for _, e := range result.Errors {
					errs = append(errs, map[string]string{"path": e.Path, "error": e.Error.Error()})
				}
				removed := result.Removed
				if removed == nil {
					removed = []string{}
				}
				return writeJSON(cmd, map[string]any{"root": root, "dry_run": dryRun, "removed": removed, "errors": errs})
			}

			out := cmd.OutOrStdout()
			verb := "Removed"
			if dryRun {
				verb = "Would remove"
			}
			for _, path := range result.Removed {
				fmt.Fprintf(out, "%s %s\n", verb, path)
			}
			for _, e := range result.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed %s: %v\n", e.Path, e.Error)
			}
			fmt.Fprintf(out, "%s %d working areas under %s\n", verb, len(result.Removed), root)
			if len(result.Errors) > 0 {
				return fmt.Errorf("%d working areas could not be removed", len(result.Errors))
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 24*time.Hour, "Only remove working areas untouched for this long")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List what would be removed without deleting")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List working areas with their size and age",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dirs, err := workarea.List(workarea.Root(cfg.Paths.WorkDir))
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				if dirs == nil {
					dirs = []workarea.Dir{}
				}
				return writeJSON(cmd, dirs)
			}
			out := cmd.OutOrStdout()
			if len(dirs) == 0 {
				fmt.Fprintln(out, "No working areas found")
				return nil
			}
			rows := make([][]string, 0, len(dirs))
			for _, d := range dirs {
				rows = append(rows, []string{d.Path, d.ModTime.Local().Format("2006-01-02 15:04"), fmt.Sprintf("%.1f MiB", float64(d.Size)/(1<<20))})
			}
			fmt.Fprintln(out, renderTable([]string{"Path", "Modified", "Size"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight}))
			return nil
		},
	})
	return cmd
}
