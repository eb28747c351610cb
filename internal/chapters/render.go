package chapters

import (
	"fmt"
	"io"
	"os"
	"strings"
)

const header = ";FFMETADATA1"

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"=", `\=`,
	";", `\;`,
	"#", `\#`,
	"\n", "\\\n",
)

// Render returns the document in FFMETADATA1 form with millisecond offsets.
func (d Document) Render() string {
	var b strings.Builder
	_, _ = d.WriteTo(&b)
	return b.String()
}

// WriteTo writes the rendered document to w.
func (d Document) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	if d.Title != "" {
		fmt.Fprintf(&b, "title=%s\n", escape(d.Title))
	}
	if d.Artist != "" {
		fmt.Fprintf(&b, "artist=%s\n", escape(d.Artist))
	}
	for _, ch := range d.Chapters {
		b.WriteString("[CHAPTER]\n")
		b.WriteString("TIMEBASE=1/1000\n")
		fmt.Fprintf(&b, "START=%d\n", ch.StartMillis)
		fmt.Fprintf(&b, "END=%d\n", ch.EndMillis)
		fmt.Fprintf(&b, "title=%s\n", escape(ch.Title))
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// WriteFile renders the document to path, replacing any existing file.
func (d Document) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(d.Render()), 0o644); err != nil {
		return fmt.Errorf("write chapter metadata: %w", err)
	}
	return nil
}

func escape(value string) string {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	return escaper.Replace(value)
}
