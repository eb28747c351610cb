package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"audiobind/internal/discidcache"
)

func newDiscIDCommand(ctx *commandContext) *cobra.Command {
	discidCmd := &cobra.Command{
		Use:   "discid",
		Short: "Inspect and manage the disc ID cache",
		Long: `Inspect and manage the disc ID cache.

The disc ID cache stores the MusicBrainz release (title, artist, track
titles) resolved for each ripped CD so re-rips skip the network lookup.

Commands:
  list     - List all cached discs
  remove   - Remove a specific entry by number (see 'list' for numbers)
  clear    - Remove all cached entries`,
	}

	discidCmd.AddCommand(newDiscIDListCommand(ctx))
	discidCmd.AddCommand(newDiscIDRemoveCommand(ctx))
	discidCmd.AddCommand(newDiscIDClearCommand(ctx))

	return discidCmd
}

func newDiscIDListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all cached discs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openDiscIDCache(ctx)
			if err != nil {
				return err
			}
			entries := cache.List()
			if ctx.JSONMode() {
				if entries == nil {
					entries = []discidcache.Entry{}
				}
				return writeJSON(cmd, entries)
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "Disc ID cache: empty")
				return nil
			}
			fmt.Fprintf(out, "Disc ID cache: %d entries\n\n", len(entries))
			for i, entry := range entries {
				title := entry.Title
				if entry.Artist != "" {
					title = fmt.Sprintf("%s - %s", entry.Artist, entry.Title)
				}
				cachedAt := "unknown"
				if !entry.CachedAt.IsZero() {
					cachedAt = entry.CachedAt.Local().Format("2006-01-02")
				}
				fmt.Fprintf(out, "  %d. %s\n", i+1, title)
				fmt.Fprintf(out, "     Disc: %s | Tracks: %d | Cached: %s\n\n", shortDiscID(entry.DiscID), len(entry.Tracks), cachedAt)
			}
			return nil
		},
	}
}

func newDiscIDRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <number>",
		Short: "Remove a specific cache entry by number",
		Long: `Remove a specific cache entry by its number from 'audiobind discid list'.

Example:
  audiobind discid list        # Shows numbered list of cached discs
  audiobind discid remove 2    # Removes entry #2 from the list`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openDiscIDCache(ctx)
			if err != nil {
				return err
			}

			var entryNum int
			if _, err := fmt.Sscanf(args[0], "%d", &entryNum); err != nil || entryNum < 1 {
				return fmt.Errorf("invalid entry number: %s (must be a positive integer)", args[0])
			}
			entries := cache.List()
			if entryNum > len(entries) {
				return fmt.Errorf("entry %d out of range (only %d entries exist)", entryNum, len(entries))
			}
			entry := entries[entryNum-1]
			if err := cache.Remove(entry.DiscID); err != nil {
				return err
			}

			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{"removed": true, "entry": entryNum, "title": entry.Title})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed disc ID cache entry %d (%s)\n", entryNum, entry.Title)
			return nil
		},
	}
}

func newDiscIDClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := openDiscIDCache(ctx)
			if err != nil {
				return err
			}
			count := cache.Count()
			if count > 0 {
				if err := cache.Clear(); err != nil {
					return fmt.Errorf("clear cache: %w", err)
				}
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{"removed": count})
			}
			if count == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Disc ID cache is already empty")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d disc ID cache entries\n", count)
			return nil
		},
	}
}

func openDiscIDCache(ctx *commandContext) (*discidcache.Cache, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.DiscIDCache.Enabled {
		return nil, errors.New("disc ID cache is disabled (set disc_id_cache.enabled = true)")
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	return discidcache.NewCache(cfg.DiscIDCache.Path, logger), nil
}

// shortDiscID keeps the first 8 and last 4 characters of long IDs.
func shortDiscID(id string) string {
	if len(id) > 16 {
		return id[:8] + "..." + id[len(id)-4:]
	}
	return id
}
