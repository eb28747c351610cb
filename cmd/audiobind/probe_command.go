package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"audiobind/internal/media"
	"audiobind/internal/media/ffprobe"
	"audiobind/internal/runner"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Show duration, format, and audio streams for one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := args[0]
			result, err := ffprobe.Inspect(cmd.Context(), runner.New(), cfg.Tools.FFprobe, path)
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				_, err := cmd.OutOrStdout().Write(result.RawJSON())
				return err
			}

			out := cmd.OutOrStdout()
			format := media.FormatFromPath(path)
			fmt.Fprintf(out, "File:      %s\n", path)
			fmt.Fprintf(out, "Container: %s (supported input: %s)\n", result.Format.FormatName, yesNo(format.Supported()))
			fmt.Fprintf(out, "Duration:  %s\n", formatMillis(int64(result.DurationSeconds()*1000+0.5)))
			fmt.Fprintf(out, "Size:      %d bytes\n", result.SizeBytes())
			if br := result.BitRate(); br > 0 {
				fmt.Fprintf(out, "Bitrate:   %d kb/s\n", br/1000)
			}
			for _, key := range []string{"title", "album", "artist"} {
				if v := result.Tag(key); v != "" {
					fmt.Fprintf(out, "Tag %-6s %s\n", key+":", v)
				}
			}

			streams := result.AudioStreams()
			rows := make([][]string, 0, len(streams))
			for _, s := range streams {
				rows = append(rows, []string{strconv.Itoa(s.Index), s.CodecName, s.SampleRate, strconv.Itoa(s.Channels), s.ChannelLayout})
			}
			fmt.Fprintln(out, renderTable([]string{"Stream", "Codec", "Sample rate", "Channels", "Layout"}, rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft}))
			return nil
		},
	}
}
