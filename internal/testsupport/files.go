package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteInputs creates placeholder audio files (relative names, nested
// directories allowed) under dir and returns their absolute paths in the
// order given. Contents are irrelevant to the stubbed tools.
func WriteInputs(t testing.TB, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		paths = append(paths, path)
	}
	return paths
}
