package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/fieldkeeper/internal/config"
)

func TestNew_TextToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(config.Log{Level: "warn", Format: "text"}, &buf)
	require.NoError(t, err)
	defer func() { require.NoError(t, closer.Close()) }()

	logger.Info("hidden")
	logger.Warn("Queue persisted", "pending", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=\"Queue persisted\"")
	assert.Contains(t, out, "pending=2")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(config.Log{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("Drain finished", "completed", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Drain finished", entry["msg"])
	assert.Equal(t, "DEBUG", entry["level"])
	assert.EqualValues(t, 3, entry["completed"])
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "client.log")
	logger, closer, err := New(config.Log{Level: "info", Format: "text", File: path, MaxSizeMB: 1}, nil)
	require.NoError(t, err)

	logger.Info("Offline service initialized")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Offline service initialized")
}

func TestNew_Errors(t *testing.T) {
	_, _, err := New(config.Log{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, _, err = New(config.Log{Level: "info", Format: "xml"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
