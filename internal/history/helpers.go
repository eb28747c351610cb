package history

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

const runColumns = "id, run_id, mode, input, output, state, failure_kind, error_message, log_path, chapter_count, duration_ms, disc_id, started_at, finished_at"

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run          Run
		mode         string
		failureKind  sql.NullString
		errorMessage sql.NullString
		logPath      sql.NullString
		discID       sql.NullString
		startedRaw   string
		finishedRaw  sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.RunID,
		&mode,
		&run.Input,
		&run.Output,
		&run.State,
		&failureKind,
		&errorMessage,
		&logPath,
		&run.ChapterCount,
		&run.DurationMS,
		&discID,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}
	run.Mode = Mode(mode)
	run.FailureKind = failureKind.String
	run.ErrorMessage = errorMessage.String
	run.LogPath = logPath.String
	run.DiscID = discID.String
	if t, err := time.Parse(time.RFC3339Nano, startedRaw); err == nil {
		run.StartedAt = t
	}
	if finishedRaw.Valid {
		if t, err := time.Parse(time.RFC3339Nano, finishedRaw.String); err == nil {
			run.FinishedAt = t
		}
	}
	return &run, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	})
	return res, err
}
