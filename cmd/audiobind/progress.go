package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"audiobind/internal/pipeline"
)

// progressReporter renders pipeline events: a progress bar for transcoding
// on a terminal, plain lines otherwise.
type progressReporter struct {
	out         io.Writer
	interactive bool
	bar         *progressbar.ProgressBar
}

func newProgressReporter(out io.Writer) *progressReporter {
	return &progressReporter{out: out, interactive: isTerminal(out)}
}

func (p *progressReporter) Report(e pipeline.Event) {
	switch {
	case e.State == pipeline.StateTranscoding && e.Total > 0:
		p.transcodeProgress(e)
	case e.Total == 0 && !e.State.Terminal() && e.State != pipeline.StateIdle:
		p.finish()
		fmt.Fprintln(p.out, stateLabel(e.State))
	}
}

func (p *progressReporter) transcodeProgress(e pipeline.Event) {
	name := filepath.Base(e.Path)
	if !p.interactive {
		if !e.Done {
			fmt.Fprintf(p.out, "  [%d/%d] %s\n", e.Index+1, e.Total, name)
		}
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(e.Total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription("transcoding"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)
	}
	if e.Done {
		_ = p.bar.Add(1)
		return
	}
	p.bar.Describe(name)
}

// finish closes any open progress bar.
func (p *progressReporter) finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
	p.bar = nil
}

func stateLabel(state pipeline.State) string {
	switch state {
	case pipeline.StateTranscoding:
		return "Transcoding..."
	case pipeline.StateProbing:
		return "Probing durations..."
	case pipeline.StateBuildingMetadata:
		return "Writing chapter metadata..."
	case pipeline.StateMerging:
		return "Merging..."
	default:
		return string(state)
	}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
