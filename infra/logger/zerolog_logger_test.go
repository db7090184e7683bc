package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.DebugLevel, "")
	defer SetOutput(os.Stderr, zerolog.InfoLevel, "json")

	l := NewZerologLogger("test")
	require.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Infow("info", map[string]any{"hour": 18})
	l.Warnf("warn")
	l.Errorf("error")
	assert.Contains(t, buf.String(), "info test")
	assert.Contains(t, buf.String(), "component=test")
}

func TestZerologLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, zerolog.InfoLevel, "json")
	defer SetOutput(os.Stderr, zerolog.InfoLevel, "json")

	l := New("ingest")
	l.Debugf("hidden")
	l.Infow("measure added", map[string]any{"hour": 18})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ingest", entry["component"])
	assert.Equal(t, "measure added", entry["message"])
	assert.EqualValues(t, 18, entry["hour"])
}

func TestConfigureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tw.log")
	closeFn, err := Configure(Options{Level: "warn", Format: "json", File: path, MaxSizeMB: 1})
	require.NoError(t, err)
	defer SetOutput(os.Stderr, zerolog.InfoLevel, "json")

	l := New("file")
	l.Infof("dropped")
	l.Warnf("kept")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
	assert.NotContains(t, string(data), "dropped")
}

func TestConfigureRejectsUnknownLevel(t *testing.T) {
	_, err := Configure(Options{Level: "loud"})
	assert.Error(t, err)
}
