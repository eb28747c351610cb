package chapters

import (
	"fmt"
	"math"
	"strings"
)

// Chapter is one contiguous span of the finished book.
type Chapter struct {
	Index       int
	Title       string
	Start       float64
	End         float64
	StartMillis int64
	EndMillis   int64
}

// Document is the chapter metadata handed to the muxer.
type Document struct {
	Title    string
	Artist   string
	Chapters []Chapter
}

// Build lays durations end to end. The chapter title for index i is the first
// non-blank of overrides[i], fallbacks[i], then "Chapter i+1". Either list may
// be shorter than durations. Titles are trimmed, and a blank override counts
// as absent so a title file can skip a chapter with an empty line.
func Build(durations []float64, overrides, fallbacks []string) Document {
	doc := Document{Chapters: make([]Chapter, 0, len(durations))}
	cursor := 0.0
	for i, d := range durations {
		end := cursor + d
		doc.Chapters = append(doc.Chapters, Chapter{
			Index:       i,
			Title:       pickTitle(i, overrides, fallbacks),
			Start:       cursor,
			End:         end,
			StartMillis: toMillis(cursor),
			EndMillis:   toMillis(end),
		})
		cursor = end
	}
	return doc
}

func pickTitle(i int, overrides, fallbacks []string) string {
	if i < len(overrides) {
		if title := strings.TrimSpace(overrides[i]); title != "" {
			return title
		}
	}
	if i < len(fallbacks) {
		if title := strings.TrimSpace(fallbacks[i]); title != "" {
			return title
		}
	}
	return fmt.Sprintf("Chapter %d", i+1)
}

func toMillis(seconds float64) int64 {
	return int64(math.Round(seconds * 1000))
}

// TotalMillis returns the end offset of the last chapter.
func (d Document) TotalMillis() int64 {
	if len(d.Chapters) == 0 {
		return 0
	}
	return d.Chapters[len(d.Chapters)-1].EndMillis
}

// Titles returns the chapter titles in order.
func (d Document) Titles() []string {
	out := make([]string, len(d.Chapters))
	for i, ch := range d.Chapters {
		out[i] = ch.Title
	}
	return out
}
