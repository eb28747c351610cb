package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"audiobind/internal/chapters"
	"audiobind/internal/pipeline"
)

func renderSummary(out io.Writer, result pipeline.Result) {
	doc := result.Chapters
	fmt.Fprintln(out, renderChapterTable(doc))
	fmt.Fprintf(out, "Wrote %s (%d chapters, %s) in %s\n",
		result.Output, len(doc.Chapters), formatMillis(doc.TotalMillis()), result.Elapsed.Round(time.Millisecond))
	if result.LogPath != "" {
		fmt.Fprintf(out, "Pipeline log: %s\n", result.LogPath)
	}
}

func renderChapterTable(doc chapters.Document) string {
	rows := make([][]string, 0, len(doc.Chapters))
	for _, ch := range doc.Chapters {
		rows = append(rows, []string{
			strconv.Itoa(ch.Index + 1),
			ch.Title,
			formatMillis(ch.StartMillis),
			formatMillis(ch.EndMillis - ch.StartMillis),
		})
	}
	return renderTable([]string{"#", "Chapter", "Start", "Length"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight})
}

// formatMillis renders ms as H:MM:SS.mmm.
func formatMillis(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	h := ms / 3_600_000
	m := ms / 60_000 % 60
	s := ms / 1000 % 60
	return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, ms%1000)
}
