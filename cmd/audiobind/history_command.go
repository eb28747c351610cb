package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"audiobind/internal/history"
)

var errNoHistory = errors.New("run history is disabled (history.enabled = false)")

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversion runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				if runs == nil {
					runs = []history.Run{}
				}
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortRunID(run.RunID),
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					string(run.Mode),
					runStateLabel(run),
					filepath.Base(run.Output),
					strconv.Itoa(run.ChapterCount),
					formatMillis(run.DurationMS),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Started", "Mode", "State", "Output", "Chapters", "Length"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show (0 for all)")

	historyCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded run",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{"removed": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs\n", n)
			return nil
		},
	})

	return historyCmd
}

func openHistory(ctx *commandContext) (*history.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, errNoHistory
	}
	return history.Open(cfg.History.Path)
}

func runStateLabel(run history.Run) string {
	switch {
	case !run.Finished():
		return "interrupted"
	case run.FailureKind != "":
		return run.State + " (" + run.FailureKind + ")"
	default:
		return run.State
	}
}

// shortRunID keeps enough of a run ID to pass to `audiobind log`.
func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
