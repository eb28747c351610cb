package chapters_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiobind/internal/chapters"
)

func TestBuildTwoFiles(t *testing.T) {
	doc := chapters.Build([]float64{5.0, 3.2}, nil, []string{"a", "b"})

	require.Len(t, doc.Chapters, 2)
	assert.Equal(t, int64(0), doc.Chapters[0].StartMillis)
	assert.Equal(t, int64(5000), doc.Chapters[0].EndMillis)
	assert.Equal(t, "a", doc.Chapters[0].Title)
	assert.Equal(t, int64(5000), doc.Chapters[1].StartMillis)
	assert.Equal(t, int64(8200), doc.Chapters[1].EndMillis)
	assert.Equal(t, "b", doc.Chapters[1].Title)
	assert.Equal(t, int64(8200), doc.TotalMillis())
}

func TestBuildStartsArePrefixSums(t *testing.T) {
	durations := []float64{1.5, 0, 2.25, 10.001, 0.0004}
	doc := chapters.Build(durations, nil, nil)

	require.Len(t, doc.Chapters, len(durations))
	sum := 0.0
	for i, ch := range doc.Chapters {
		assert.Equal(t, i, ch.Index)
		assert.InDelta(t, sum, ch.Start, 1e-9)
		sum += durations[i]
		assert.InDelta(t, sum, ch.End, 1e-9)
		if i > 0 {
			assert.Equal(t, doc.Chapters[i-1].End, ch.Start)
			assert.Equal(t, doc.Chapters[i-1].EndMillis, ch.StartMillis)
			assert.GreaterOrEqual(t, ch.Start, doc.Chapters[i-1].Start)
		}
	}
}

func TestBuildRoundsToNearestMillisecond(t *testing.T) {
	doc := chapters.Build([]float64{1.0006, 1.0}, nil, nil)
	assert.Equal(t, int64(1001), doc.Chapters[0].EndMillis)
	assert.Equal(t, int64(2001), doc.Chapters[1].EndMillis)
}

func TestBuildTitlePrecedence(t *testing.T) {
	overrides := []string{"Prologue", "  "}
	fallbacks := []string{"01", "02", ""}
	doc := chapters.Build([]float64{1, 1, 1, 1}, overrides, fallbacks)

	assert.Equal(t, []string{"Prologue", "02", "Chapter 3", "Chapter 4"}, doc.Titles())
}

func TestBuildTrimsTitlesAndSkipsBlankOverrides(t *testing.T) {
	overrides := []string{"  Part One \t", "", " \t "}
	fallbacks := []string{"01", " Track 2 ", "03"}
	doc := chapters.Build([]float64{1, 1, 1}, overrides, fallbacks)

	assert.Equal(t, []string{"Part One", "Track 2", "03"}, doc.Titles())
}

func TestBuildEmpty(t *testing.T) {
	doc := chapters.Build(nil, []string{"unused"}, nil)
	assert.Empty(t, doc.Chapters)
	assert.Equal(t, ";FFMETADATA1\n", doc.Render())
	assert.Equal(t, int64(0), doc.TotalMillis())
}

func TestRenderFormat(t *testing.T) {
	doc := chapters.Build([]float64{5.0, 3.2}, nil, []string{"a", "b"})
	doc.Title = "Dune"
	doc.Artist = "Frank Herbert"

	want := strings.Join([]string{
		";FFMETADATA1",
		"title=Dune",
		"artist=Frank Herbert",
		"[CHAPTER]",
		"TIMEBASE=1/1000",
		"START=0",
		"END=5000",
		"title=a",
		"[CHAPTER]",
		"TIMEBASE=1/1000",
		"START=5000",
		"END=8200",
		"title=b",
		"",
	}, "\n")
	assert.Equal(t, want, doc.Render())
}

func TestRenderEscapesSpecialCharacters(t *testing.T) {
	doc := chapters.Build([]float64{1}, []string{`a=b;c#d\e`}, nil)
	assert.Contains(t, doc.Render(), `title=a\=b\;c\#d\\e`+"\n")

	doc = chapters.Build([]float64{1}, nil, nil)
	doc.Title = "line one\nline two"
	assert.Contains(t, doc.Render(), "title=line one\\\nline two\n")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapters.ffmeta")
	doc := chapters.Build([]float64{2}, nil, nil)
	require.NoError(t, doc.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Render(), string(data))
}
