package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"trace":   slog.LevelDebug - 2,
		"unknown": slog.LevelInfo,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseLevel(raw), raw)
	}
}

func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(&buf, Config{Level: "info", Format: "json"})
	logger.Debug("hidden")
	logger.Info("visible", slog.String("view", "products"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"view":"products"`)
}

func TestOpenDailyFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "logs")
	at := time.Date(2024, time.May, 2, 23, 0, 0, 0, time.UTC)
	var console bytes.Buffer
	file, writer, err := OpenDailyFile(dir, at, &console)
	require.NoError(t, err)
	defer file.Close()

	_, err = writer.Write([]byte("line\n"))
	require.NoError(t, err)
	assert.Equal(t, "line\n", console.String())

	content, err := os.ReadFile(filepath.Join(dir, "2024-05-02.log"))
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(content))
}
