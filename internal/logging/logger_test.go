package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ena63/pyshell/internal/config"
)

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LoggingConfig{Level: "info", Format: "console"}, &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("serial: port opened")
	require.NoError(t, log.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "serial: port opened")
}

func TestNewJSONDebug(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LoggingConfig{Level: "DEBUG", Format: "json"}, &buf)
	require.NoError(t, err)

	log.Debug("serial: sending")
	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Contains(t, buf.String(), `"msg":"serial: sending"`)
}

func TestNewRollingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bmacshell.log")
	var buf bytes.Buffer
	log, err := New(config.LoggingConfig{
		Level: "info",
		File:  config.LumberjackConfig{Filename: path, MaxSizeMB: 1},
	}, &buf)
	require.NoError(t, err)

	log.Info("written twice")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written twice")
	assert.Contains(t, buf.String(), "written twice")
}

func TestNewBadLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"}, nil)
	assert.Error(t, err)
}
