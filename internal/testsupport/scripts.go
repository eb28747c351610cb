package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteScript writes an executable /bin/sh script named name into dir and
// returns its path.
func WriteScript(t testing.TB, dir, name, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

// StubFFmpeg writes an ffmpeg stand-in that logs its arguments to stderr and
// writes a placeholder file at its final argument when given more than one.
func StubFFmpeg(t testing.TB, dir string) string {
	t.Helper()
	return WriteScript(t, dir, "ffmpeg", `for last; do :; done
echo "ffmpeg $*" >&2
if [ $# -gt 1 ]; then echo data > "$last"; fi`)
}

// StubFFprobe writes an ffprobe stand-in that prints duration for any file.
func StubFFprobe(t testing.TB, dir, duration string) string {
	t.Helper()
	return WriteScript(t, dir, "ffprobe", "echo "+duration)
}
