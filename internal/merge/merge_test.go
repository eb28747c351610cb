package merge_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiobind/internal/merge"
	"audiobind/internal/runner"
	"audiobind/internal/services"
)

type recordingMuxer struct {
	calls    int
	manifest string
	metadata string
	output   string
}

func (m *recordingMuxer) Concat(_ context.Context, manifest, metadata, output string, _ io.Writer) error {
	m.calls++
	m.manifest, m.metadata, m.output = manifest, metadata, output
	return nil
}

func TestWriteManifestQuotesPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "list.txt")
	require.NoError(t, merge.WriteManifest(path, []string{"/work/0000.m4a", "/work/it's.m4a"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file '/work/0000.m4a'\nfile '/work/it'\\''s.m4a'\n", string(data))
}

func TestWriteManifestMakesPathsAbsolute(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "list.txt")
	require.NoError(t, merge.WriteManifest(path, []string{"0000.m4a"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file '"+filepath.Join(dir, "0000.m4a")+"'\n", string(data))
}

func TestMergeWritesManifestAndInvokesMuxerOnce(t *testing.T) {
	workDir := t.TempDir()
	files := []string{filepath.Join(workDir, "0000.m4a"), filepath.Join(workDir, "0001.m4a")}
	muxer := &recordingMuxer{}
	stage := merge.NewStage(muxer, nil, nil)

	require.NoError(t, stage.Merge(context.Background(), files, "/work/chapters.ffmeta", "/out/book.m4b"))

	assert.Equal(t, 1, muxer.calls)
	assert.Equal(t, filepath.Join(workDir, merge.ManifestName), muxer.manifest)
	assert.Equal(t, "/work/chapters.ffmeta", muxer.metadata)
	assert.Equal(t, "/out/book.m4b", muxer.output)

	data, err := os.ReadFile(muxer.manifest)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "file '"))
}

func TestMergeEmptyIsValidationError(t *testing.T) {
	muxer := &recordingMuxer{}
	err := merge.NewStage(muxer, nil, nil).Merge(context.Background(), nil, "meta", "out.m4b")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Zero(t, muxer.calls)
}

func TestConcatArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"-f", "concat", "-safe", "0", "-i", "m.txt", "-i", "c.ffmeta", "-map_metadata", "1", "-map_chapters", "1", "-c", "copy", "out.m4b"},
		merge.ConcatArgs("m.txt", "c.ffmeta", "out.m4b", false))
	assert.Equal(t, "-y", merge.ConcatArgs("m.txt", "c.ffmeta", "out.m4b", true)[0])
}

func TestFFmpegMuxerPropagatesExitStatus(t *testing.T) {
	script := filepath.Join(t.TempDir(), "ffmpeg")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho 'Invalid data' >&2\nexit 1\n"), 0o755))

	var log strings.Builder
	err := merge.NewFFmpegMuxer(script, runner.New(), false).Concat(context.Background(), "m", "c", "o", &log)
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrExecution)
	assert.Contains(t, log.String(), "-map_chapters 1")
	assert.Contains(t, log.String(), "Invalid data")
}
