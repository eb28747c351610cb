// Package runner executes external tools and captures their output into the
// pipeline log.
//
// Every subprocess the pipeline launches goes through Runner so the command
// line, stdout, and stderr of each invocation land in one append-only file.
// Success is decided by exit status alone. Start failures and non-zero exits
// come back as *ProcessError, which matches services.ErrSpawn or
// services.ErrExecution respectively.
package runner
