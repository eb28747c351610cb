package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"audiobind/internal/logs"
)

func newLogCommand(ctx *commandContext) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "log <run-id>",
		Short: "Print the pipeline log of a finished run",
		Long: `Print the pipeline log of a finished run.

The run ID is shown by 'audiobind history'; any unique prefix is accepted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := logs.Resolve(cfg.Paths.LogDir, args[0])
			if err != nil {
				return err
			}
			content, err := logs.Tail(path, lines)
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				if content == nil {
					content = []string{}
				}
				return writeJSON(cmd, map[string]any{"path": path, "lines": content})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s\n", path)
			for _, line := range content {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Show only the last N lines (0 for all)")
	return cmd
}
