package workarea

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"audiobind/internal/logging"
)

// Prefix names every per-run working area created by the pipeline.
const Prefix = "audiobind-"

// Dir describes one working area left under the work root.
type Dir struct {
	Name    string
	Path    string
	ModTime time.Time
	Size    int64
}

// CleanResult contains the outcome of a cleanup pass.
type CleanResult struct {
	Removed []string
	Errors  []CleanupError
}

// CleanupError pairs a directory path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// Root returns the directory working areas are created in.
func Root(workDir string) string {
	if dir := strings.TrimSpace(workDir); dir != "" {
		return dir
	}
	return os.TempDir()
}

// List returns the working areas under root, oldest first. Directories that
// do not carry Prefix are ignored since root may be shared (e.g. /tmp).
func List(root string) ([]Dir, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var dirs []Dir
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), Prefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		path := filepath.Join(root, entry.Name())
		size, _ := dirSize(path)
		dirs = append(dirs, Dir{Name: entry.Name(), Path: path, ModTime: info.ModTime(), Size: size})
	}
	sort.Slice(dirs, func(i, j int) bool {
		if dirs[i].ModTime.Equal(dirs[j].ModTime) {
			return dirs[i].Name < dirs[j].Name
		}
		return dirs[i].ModTime.Before(dirs[j].ModTime)
	})
	return dirs, nil
}

// CleanStale removes working areas under root last modified before maxAge
// ago. With dryRun set the candidates are reported in Removed but kept.
func CleanStale(ctx context.Context, root string, maxAge time.Duration, dryRun bool, logger *slog.Logger) CleanResult {
	result := CleanResult{}
	if logger == nil {
		logger = logging.NewNop()
	}

	dirs, err := List(root)
	if err != nil {
		result.Errors = append(result.Errors, CleanupError{Path: root, Error: err})
		return result
	}

	cutoff := time.Now().Add(-maxAge)
	for _, dir := range dirs {
		if ctx.Err() != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dir.Path, Error: ctx.Err()})
			return result
		}
		if !dir.ModTime.Before(cutoff) {
			continue
		}
		if dryRun {
			result.Removed = append(result.Removed, dir.Path)
			continue
		}
		if err := os.RemoveAll(dir.Path); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: dir.Path, Error: err})
			logger.Warn("failed to remove stale working area",
				logging.String("path", dir.Path),
				logging.Error(err),
				logging.String(logging.FieldEventType, "workarea_cleanup_failed"),
				logging.String(logging.FieldErrorHint, "check paths.work_dir permissions"),
				logging.String(logging.FieldImpact, "disk space not reclaimed"),
			)
			continue
		}
		result.Removed = append(result.Removed, dir.Path)
		logger.Info("removed stale working area",
			logging.String("path", dir.Path),
			logging.Duration("age", time.Since(dir.ModTime)),
			logging.String(logging.FieldEventType, "workarea_cleanup"),
		)
	}
	return result
}

func dirSize(path string) (int64, error) {
	var size int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // best effort
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}
