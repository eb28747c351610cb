package discover

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/dhowden/tag"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"audiobind/internal/logging"
	"audiobind/internal/media"
)

// NameOptions controls fallback chapter name derivation.
type NameOptions struct {
	UseTags    bool
	CleanNames bool
}

// BookInfo is album-level metadata read from the first tagged input.
type BookInfo struct {
	Title  string
	Artist string
}

var trackPrefix = regexp.MustCompile(`(?i)^\s*(?:(?:track|disc|cd)\s*)?\d+\s*(?:[-._)\]:]+\s*|\s+)`)

// FallbackNames returns one chapter name per input: the embedded title tag
// when UseTags is set and the tag is present, otherwise the file stem,
// optionally cleaned.
func FallbackNames(inputs []media.Input, opts NameOptions, logger *slog.Logger) []string {
	return lo.Map(inputs, func(in media.Input, _ int) string {
		if opts.UseTags {
			if meta, err := readTags(in.Path); err == nil && strings.TrimSpace(meta.Title()) != "" {
				return strings.TrimSpace(meta.Title())
			} else if err != nil && logger != nil {
				logger.Debug("tag read failed; using file name",
					logging.String(logging.FieldInput, in.Path),
					logging.Error(err),
				)
			}
		}
		if opts.CleanNames {
			return CleanName(in.Stem())
		}
		return in.Stem()
	})
}

// ReadBookInfo returns album and artist tags from the first input that has
// them. Missing tags yield empty fields.
func ReadBookInfo(inputs []media.Input) BookInfo {
	for _, in := range inputs {
		meta, err := readTags(in.Path)
		if err != nil {
			continue
		}
		info := BookInfo{
			Title:  strings.TrimSpace(meta.Album()),
			Artist: strings.TrimSpace(lo.Ternary(meta.AlbumArtist() != "", meta.AlbumArtist(), meta.Artist())),
		}
		if info.Title != "" || info.Artist != "" {
			return info
		}
	}
	return BookInfo{}
}

func readTags(path string) (tag.Metadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return tag.ReadFrom(file)
}

// CleanName strips a leading track number and separators, turns underscores
// into spaces, and title-cases the rest. A name that would become empty is
// returned unchanged.
func CleanName(stem string) string {
	name := trackPrefix.ReplaceAllString(stem, "")
	name = strings.Join(strings.Fields(strings.ReplaceAll(name, "_", " ")), " ")
	if name == "" {
		return stem
	}
	return cases.Title(language.Und, cases.NoLower).String(name)
}

// ReadTitleFile reads chapter title overrides, one per line. Blank lines are
// kept so positions stay aligned with inputs.
func ReadTitleFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chapter titles: %w", err)
	}
	defer file.Close()

	var titles []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		titles = append(titles, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read chapter titles: %w", err)
	}
	return titles, nil
}
