package workarea

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"audiobind/internal/logging"
)

func makeDir(t *testing.T, root, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(filepath.Join(path, "0000.m4a"), []byte("12345"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	stamp := time.Now().Add(-age)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	return path
}

func TestListIgnoresForeignDirectories(t *testing.T) {
	root := t.TempDir()
	older := makeDir(t, root, Prefix+"old", 2*time.Hour)
	newer := makeDir(t, root, Prefix+"new", time.Minute)
	makeDir(t, root, "someone-else", 3*time.Hour)

	dirs, err := List(root)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(dirs) != 2 {
		t.Fatalf("expected 2 working areas, got %d", len(dirs))
	}
	if dirs[0].Path != older || dirs[1].Path != newer {
		t.Fatalf("unexpected order: %s, %s", dirs[0].Path, dirs[1].Path)
	}
	if dirs[0].Size != 5 {
		t.Fatalf("expected size 5, got %d", dirs[0].Size)
	}
}

func TestListMissingRoot(t *testing.T) {
	for _, root := range []string{"", "  ", filepath.Join(t.TempDir(), "missing")} {
		dirs, err := List(root)
		if err != nil || dirs != nil {
			t.Errorf("List(%q) = %v, %v; want nil, nil", root, dirs, err)
		}
	}
}

func TestCleanStaleRemovesOnlyOldWorkingAreas(t *testing.T) {
	root := t.TempDir()
	stale := makeDir(t, root, Prefix+"stale", 48*time.Hour)
	fresh := makeDir(t, root, Prefix+"fresh", time.Minute)
	foreign := makeDir(t, root, "other-tool", 48*time.Hour)

	result := CleanStale(context.Background(), root, 24*time.Hour, false, logging.NewNop())
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Removed) != 1 || result.Removed[0] != stale {
		t.Fatalf("unexpected removals: %v", result.Removed)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale working area still present: %v", err)
	}
	for _, keep := range []string{fresh, foreign} {
		if _, err := os.Stat(keep); err != nil {
			t.Fatalf("%s should remain: %v", keep, err)
		}
	}
}

func TestCleanStaleDryRunKeepsDirectories(t *testing.T) {
	root := t.TempDir()
	stale := makeDir(t, root, Prefix+"stale", 48*time.Hour)

	result := CleanStale(context.Background(), root, time.Hour, true, nil)
	if len(result.Removed) != 1 || result.Removed[0] != stale {
		t.Fatalf("dry run should report %s, got %v", stale, result.Removed)
	}
	if _, err := os.Stat(stale); err != nil {
		t.Fatalf("dry run removed directory: %v", err)
	}
}

func TestRootFallsBackToTempDir(t *testing.T) {
	if got := Root(" "); got != os.TempDir() {
		t.Fatalf("Root(\"\") = %q, want %q", got, os.TempDir())
	}
	if got := Root("/srv/work"); got != "/srv/work" {
		t.Fatalf("Root = %q", got)
	}
}
