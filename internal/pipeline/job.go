package pipeline

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"audiobind/internal/chapters"
	"audiobind/internal/media"
	"audiobind/internal/services"
)

// Job is one conversion request. A Job is consumed by a single Run.
type Job struct {
	// RunID names the run and its relocated log; empty generates a UUID.
	RunID  string
	Inputs []media.Input
	// TitleOverrides win over FallbackNames index by index.
	TitleOverrides []string
	// FallbackNames default to the input file stems when nil.
	FallbackNames []string
	Output        string
	Title         string
	Artist        string
}

// Result summarizes a run. LogPath is set whether the run succeeded or not.
type Result struct {
	RunID    string
	State    State
	Output   string
	Chapters chapters.Document
	LogPath  string
	WorkDir  string
	Elapsed  time.Duration
}

func (j Job) validate() error {
	if len(j.Inputs) == 0 {
		return services.Wrap(services.ErrNoMediaFiles, "", "validate job", "no input files", nil)
	}
	if strings.TrimSpace(j.Output) == "" {
		return services.Wrap(services.ErrValidation, "", "validate job", "output path is required", nil)
	}
	if lo.ContainsBy(j.Inputs, func(in media.Input) bool { return strings.TrimSpace(in.Path) == "" }) {
		return services.Wrap(services.ErrValidation, "", "validate job", "input with empty path", nil)
	}
	return nil
}

func (j Job) fallbackNames() []string {
	if j.FallbackNames != nil {
		return j.FallbackNames
	}
	return lo.Map(j.Inputs, func(in media.Input, _ int) string { return in.Stem() })
}
