package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomStdLoggerWritesMessages(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewCustomStdLogger(DefaultConfig(Options{Output: &buf}))
	require.NoError(t, err)

	log.Info("normalized heading", "case", "upper")
	require.NoError(t, log.Close())

	assert.Contains(t, buf.String(), "normalized heading")
}

func TestOpenLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "naco.log")
	log, closeLog, err := OpenLogger(path, Options{JSON: true})
	require.NoError(t, err)

	log.Warn("fixture mismatch", "line", 3)
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fixture mismatch")
}

func TestOpenLoggerWithoutPathUsesOutput(t *testing.T) {
	var buf bytes.Buffer
	log, closeLog, err := OpenLogger("", Options{Output: &buf})
	require.NoError(t, err)

	FromExisting(log).Info("stream finished", "lines", 2)
	require.NoError(t, closeLog())
	assert.Contains(t, buf.String(), "stream finished")
}

func TestOpenLoggerBadPath(t *testing.T) {
	_, _, err := OpenLogger(filepath.Join(t.TempDir(), "missing", "naco.log"), Options{})
	assert.Error(t, err)
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	log.Debug("ignored")
	log.Error("ignored", "k", "v")
	assert.NoError(t, log.Close())
	assert.Equal(t, NopLogger{}, FromExisting(nil))
}
