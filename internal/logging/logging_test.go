package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/stellarhub/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		err  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRing_KeepsNewestLines(t *testing.T) {
	ring := NewRing(3, slog.LevelDebug)
	logger := slog.New(ring)
	for _, msg := range []string{"one", "two", "three", "four"} {
		logger.Info(msg)
	}

	lines := ring.Lines()
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "two")
	assert.Contains(t, lines[2], "four")
	assert.Equal(t, lines[1:], ring.Tail(2))
}

func TestRing_FormatsAttrsAndGroups(t *testing.T) {
	ring := NewRing(10, slog.LevelInfo)
	logger := slog.New(ring).With("component", "hub").WithGroup("window")
	logger.Info("window added", "name", "Log panel", "count", 2)
	logger.Debug("hidden")

	lines := ring.Lines()
	require.Len(t, lines, 1)
	line := lines[0]
	assert.Contains(t, line, "INFO window added")
	assert.Contains(t, line, "component=hub")
	assert.Contains(t, line, `window.name="Log panel"`)
	assert.Contains(t, line, "window.count=2")
}

func TestRing_Notify(t *testing.T) {
	ring := NewRing(4, slog.LevelInfo)
	calls := 0
	ring.SetNotify(func() { calls++ })
	slog.New(ring).Warn("careful")
	assert.Equal(t, 1, calls)
}

func TestFanout_RespectsEachLevel(t *testing.T) {
	var sb strings.Builder
	text := slog.NewTextHandler(&sb, &slog.HandlerOptions{Level: slog.LevelWarn})
	ring := NewRing(4, slog.LevelDebug)
	logger := slog.New(Fanout(text, ring))

	logger.Debug("quiet")
	logger.Warn("loud")

	assert.Len(t, ring.Lines(), 2)
	assert.NotContains(t, sb.String(), "quiet")
	assert.Contains(t, sb.String(), "loud")
}

func TestRotatingFile_Rotates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hub.log")
	f, err := OpenRotatingFile(path, 10, 2)
	require.NoError(t, err)
	defer f.Close()

	for _, chunk := range []string{"aaaaaaaa\n", "bbbbbbbb\n", "cccccccc\n", "dddddddd\n"} {
		_, err := f.Write([]byte(chunk))
		require.NoError(t, err)
	}

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "dddddddd\n", string(current))

	first, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, "cccccccc\n", string(first))

	second, err := os.ReadFile(path + ".2")
	require.NoError(t, err)
	assert.Equal(t, "bbbbbbbb\n", string(second))

	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err))
}

func TestNew_WritesToConfiguredFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(t.TempDir(), "stellarhub.log")
	cfg.LogLevel = "debug"

	logger, ring, closer, err := New(cfg)
	require.NoError(t, err)
	logger.Debug("window added", "name", "keys")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=\"window added\"")
	require.Len(t, ring.Lines(), 1)
}
