package logs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound reports that no pipeline log matches a run reference.
var ErrNotFound = errors.New("pipeline log not found")

// Tail returns the last limit lines of path. A limit of zero or less returns
// every line.
func Tail(path string, limit int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()
	return lastLines(file, limit)
}

func lastLines(r io.Reader, limit int) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if limit <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log file: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, limit)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	lines := make([]string, count)
	if count == limit {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Resolve finds the pipeline log for ref in logDir. ref may be a run ID, a
// unique prefix of one, or a path to an existing file.
func Resolve(logDir, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("run ID is required")
	}
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return ref, nil
	}

	exact := filepath.Join(logDir, ref+".log")
	if info, err := os.Stat(exact); err == nil && !info.IsDir() {
		return exact, nil
	}

	matches, err := filepath.Glob(filepath.Join(logDir, globEscape(ref)+"*.log"))
	if err != nil {
		return "", fmt.Errorf("search log directory: %w", err)
	}
	sort.Strings(matches)
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("run ID prefix %q is ambiguous (%d logs match)", ref, len(matches))
	}
}

func globEscape(value string) string {
	return strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`).Replace(value)
}
