package runner_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiobind/internal/runner"
)

func TestOpenLogNeverTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.log")
	require.NoError(t, os.WriteFile(path, []byte("earlier\n"), 0o644))

	log, err := runner.OpenLog(path)
	require.NoError(t, err)
	log.Printf("later %d", 2)
	require.NoError(t, log.Close())
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "earlier\nlater 2\n", string(data))
}

func TestWriteAfterCloseFails(t *testing.T) {
	log, err := runner.OpenLog(filepath.Join(t.TempDir(), "pipeline.log"))
	require.NoError(t, err)
	require.NoError(t, log.Close())

	_, err = log.Write([]byte("x"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestRelocateMovesLog(t *testing.T) {
	workDir := t.TempDir()
	logDir := filepath.Join(t.TempDir(), "logs")
	log, err := runner.OpenLog(filepath.Join(workDir, "pipeline.log"))
	require.NoError(t, err)
	log.Printf("hello")

	dst, err := log.Relocate(logDir, "run-1.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(logDir, "run-1.log"), dst)
	assert.Equal(t, dst, log.Path())

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	_, err = os.Stat(filepath.Join(workDir, "pipeline.log"))
	assert.True(t, os.IsNotExist(err))
}
