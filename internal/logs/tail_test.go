package logs_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audiobind/internal/logs"
)

func writeLog(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestTailLastLines(t *testing.T) {
	path := writeLog(t, t.TempDir(), "run.log", "a\nb\nc\n")

	lines, err := logs.Tail(path, 2)
	if err != nil {
		t.Fatalf("tail returned error: %v", err)
	}
	if len(lines) != 2 || lines[0] != "b" || lines[1] != "c" {
		t.Fatalf("unexpected lines: %#v", lines)
	}
}

func TestTailShortFileAndUnlimited(t *testing.T) {
	path := writeLog(t, t.TempDir(), "run.log", "only\nlines\n")

	lines, err := logs.Tail(path, 10)
	if err != nil || strings.Join(lines, ",") != "only,lines" {
		t.Fatalf("limit above length: %#v, %v", lines, err)
	}
	lines, err = logs.Tail(path, 0)
	if err != nil || len(lines) != 2 {
		t.Fatalf("unlimited tail: %#v, %v", lines, err)
	}
}

func TestTailMissingFile(t *testing.T) {
	if _, err := logs.Tail(filepath.Join(t.TempDir(), "missing.log"), 5); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	first := writeLog(t, dir, "1b4e28ba-2fa1-11d2-883f-0016d3cca427.log", "x\n")
	writeLog(t, dir, "1b4e99aa-0000-0000-0000-000000000000.log", "y\n")
	writeLog(t, dir, "9f000000-0000-0000-0000-000000000000.log", "z\n")

	got, err := logs.Resolve(dir, "1b4e28ba-2fa1-11d2-883f-0016d3cca427")
	if err != nil || got != first {
		t.Fatalf("exact resolve = %q, %v", got, err)
	}
	got, err = logs.Resolve(dir, "1b4e28")
	if err != nil || got != first {
		t.Fatalf("prefix resolve = %q, %v", got, err)
	}
	got, err = logs.Resolve(dir, first)
	if err != nil || got != first {
		t.Fatalf("path resolve = %q, %v", got, err)
	}
	if _, err := logs.Resolve(dir, "1b4e"); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Fatalf("expected ambiguous prefix error, got %v", err)
	}
	if _, err := logs.Resolve(dir, "deadbeef"); !errors.Is(err, logs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := logs.Resolve(dir, " "); err == nil {
		t.Fatal("expected error for empty reference")
	}
}
