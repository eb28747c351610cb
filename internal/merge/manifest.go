package merge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteManifest writes a concat demuxer list with one absolute path per line.
func WriteManifest(path string, files []string) error {
	var b strings.Builder
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", file, err)
		}
		b.WriteString("file ")
		b.WriteString(quote(abs))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// quote wraps value in single quotes, closing and escaping any embedded quote.
func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
