package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"audiobind/internal/services"
)

// Command describes one external tool invocation.
type Command struct {
	Binary string
	Args   []string
	// Dir is the working directory; empty inherits the caller's.
	Dir string
}

// String renders the command line as written to the log header.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Binary)
	for _, arg := range c.Args {
		if arg == "" || strings.ContainsAny(arg, " \t'\"") {
			arg = fmt.Sprintf("%q", arg)
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// Runner executes commands, streaming their output into log.
type Runner interface {
	Run(ctx context.Context, cmd Command, log io.Writer) error
}

// Output is implemented by runners that can also capture stdout separately,
// which the prober needs for parsing.
type Output interface {
	Output(ctx context.Context, cmd Command, log io.Writer) ([]byte, error)
}

// ProcessError reports a failed external tool invocation.
type ProcessError struct {
	Binary   string
	Reason   string
	Detail   string
	ExitCode int
	Err      error
	spawn    bool
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Binary, e.Reason)
	if e.ExitCode != 0 {
		msg = fmt.Sprintf("%s (exit %d)", msg, e.ExitCode)
	}
	if e.Detail != "" {
		msg += "; " + e.Detail
	}
	if e.Err != nil && e.spawn {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the taxonomy marker and the underlying cause.
func (e *ProcessError) Unwrap() []error {
	marker := services.ErrExecution
	if e.spawn {
		marker = services.ErrSpawn
	}
	if e.Err == nil {
		return []error{marker}
	}
	return []error{marker, e.Err}
}

// Spawn reports whether the process never started.
func (e *ProcessError) Spawn() bool { return e.spawn }

// CommandRunner is the os/exec backed Runner.
type CommandRunner struct{}

// New returns the default runner.
func New() CommandRunner { return CommandRunner{} }

// Run launches cmd, writes a "$ command" header plus stdout and stderr to log,
// and waits for it to exit.
func (CommandRunner) Run(ctx context.Context, cmd Command, log io.Writer) error {
	sink := newSyncWriter(log)
	writeHeader(sink, cmd)
	return run(ctx, cmd, sink, sink)
}

// Output behaves like Run but returns stdout instead of logging it. Stderr
// still goes to log.
func (CommandRunner) Output(ctx context.Context, cmd Command, log io.Writer) ([]byte, error) {
	sink := newSyncWriter(log)
	writeHeader(sink, cmd)
	var stdout strings.Builder
	if err := run(ctx, cmd, &stdout, sink); err != nil {
		return nil, err
	}
	return []byte(stdout.String()), nil
}

func run(ctx context.Context, cmd Command, stdout, stderr io.Writer) error {
	proc := exec.CommandContext(ctx, cmd.Binary, cmd.Args...) //nolint:gosec
	proc.Dir = cmd.Dir
	proc.Stdout = stdout
	proc.Stderr = stderr

	if err := proc.Start(); err != nil {
		return &ProcessError{Binary: cmd.Binary, Reason: "spawn failed", Err: err, spawn: true}
	}
	if err := proc.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ProcessError{
				Binary:   cmd.Binary,
				Reason:   "non-zero exit",
				Detail:   "see log",
				ExitCode: exitErr.ExitCode(),
				Err:      err,
			}
		}
		return &ProcessError{Binary: cmd.Binary, Reason: "wait failed", Detail: "see log", Err: err}
	}
	return nil
}

func writeHeader(w io.Writer, cmd Command) {
	_, _ = fmt.Fprintf(w, "$ %s\n", cmd)
}

// syncWriter serializes writes from the stdout and stderr copy goroutines
// os/exec starts when the streams are not *os.File.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newSyncWriter(w io.Writer) *syncWriter {
	if w == nil {
		w = io.Discard
	}
	if sw, ok := w.(*syncWriter); ok {
		return sw
	}
	return &syncWriter{w: w}
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
