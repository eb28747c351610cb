package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"audiobind/internal/config"
	"audiobind/internal/deps"
	"audiobind/internal/notifications"
	"audiobind/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var rip bool
	var sendTest bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify external tools, directories, and services",
		Long: `Verify that the tools, directories, and services a run depends on are usable.

Pass --rip to treat cd-discid and cdparanoia as required and to check the
optical drive and MusicBrainz. Pass --notify to send a test ntfy message.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts := preflight.Options{Rip: rip}
			statuses := preflight.CheckSystemDeps(cmd.Context(), cfg, opts)
			results := preflight.RunAll(cmd.Context(), cfg, opts)
			if sendTest {
				results = append(results, checkNotifications(cmd.Context(), cfg))
			}

			failed := len(deps.Missing(statuses))
			for _, r := range results {
				if !r.Passed {
					failed++
				}
			}

			if ctx.JSONMode() {
				if err := writeJSON(cmd, map[string]any{"tools": statuses, "checks": results}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				toolRows := make([][]string, 0, len(statuses))
				for _, s := range statuses {
					detail := s.Version
					if !s.Available {
						detail = s.Detail
					}
					toolRows = append(toolRows, []string{s.Name, s.Command, statusLabel(s.Available, s.Optional), detail})
				}
				fmt.Fprintln(out, renderTable([]string{"Tool", "Command", "Status", "Detail"}, toolRows, nil))

				checkRows := make([][]string, 0, len(results))
				for _, r := range results {
					checkRows = append(checkRows, []string{r.Name, statusLabel(r.Passed, false), r.Detail})
				}
				fmt.Fprintln(out, renderTable([]string{"Check", "Status", "Detail"}, checkRows, nil))
			}

			if failed > 0 {
				return fmt.Errorf("%d preflight check(s) failed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&rip, "rip", false, "Include CD ripping requirements")
	cmd.Flags().BoolVar(&sendTest, "notify", false, "Send a test notification to notifications.ntfy_topic")
	return cmd
}

func checkNotifications(ctx context.Context, cfg *config.Config) preflight.Result {
	result := preflight.Result{Name: "Notifications"}
	if cfg.Notifications.NtfyTopic == "" {
		result.Detail = "notifications.ntfy_topic is not set"
		return result
	}
	if err := notifications.NewService(cfg).TestNotification(ctx); err != nil {
		result.Detail = err.Error()
		return result
	}
	result.Passed = true
	result.Detail = "test message sent to " + cfg.Notifications.NtfyTopic
	return result
}

func statusLabel(ok, optional bool) string {
	switch {
	case ok:
		return "ok"
	case optional:
		return "missing (optional)"
	default:
		return "FAILED"
	}
}
