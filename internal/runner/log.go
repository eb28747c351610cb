package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Log is the append-only pipeline log. It is safe for concurrent writers.
type Log struct {
	mu   sync.Mutex
	path string
	file *os.File
}

// OpenLog creates or opens path for appending. Existing content is never
// truncated.
func OpenLog(path string) (*Log, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open pipeline log: %w", err)
	}
	return &Log{path: path, file: file}, nil
}

// Path returns the current location of the log file.
func (l *Log) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}

func (l *Log) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return 0, os.ErrClosed
	}
	return l.file.Write(p)
}

// Printf appends a formatted line.
func (l *Log) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(l, format+"\n", args...)
}

// Close flushes and closes the file. Closing twice is a no-op.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Relocate closes the log and moves it to dir/name, creating dir when needed.
// The move falls back to copy and remove when a rename crosses filesystems.
func (l *Log) Relocate(dir, name string) (string, error) {
	if err := l.Close(); err != nil {
		return l.Path(), fmt.Errorf("close pipeline log: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return l.Path(), fmt.Errorf("create log directory: %w", err)
	}
	src := l.Path()
	dst := filepath.Join(dir, name)
	if err := os.Rename(src, dst); err != nil {
		if err := copyFile(src, dst); err != nil {
			return src, fmt.Errorf("relocate pipeline log: %w", err)
		}
		_ = os.Remove(src)
	}
	l.mu.Lock()
	l.path = dst
	l.mu.Unlock()
	return dst, nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, out.Close())
	}()
	_, err = io.Copy(out, in)
	return err
}
