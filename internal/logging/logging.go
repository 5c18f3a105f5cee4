// Package logging builds the process logger: text records go to a rotating
// log file (the terminal belongs to the UI) and to an in-memory Ring that the
// Log panel renders.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/1broseidon/stellarhub/internal/config"
)

const (
	defaultMaxSizeMB = 5
	defaultMaxFiles  = 3
)

// ParseLevel maps the config names debug, info, warning and error to slog
// levels. "warn" is accepted as well.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// DefaultLogPath returns ~/.local/share/stellarhub/stellarhub.log.
func DefaultLogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "stellarhub", "stellarhub.log"), nil
}

// New builds the logger described by cfg. The returned closer releases the
// log file.
func New(cfg *config.Config) (*slog.Logger, *Ring, io.Closer, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}

	path := cfg.LogFile
	if path == "" {
		if path, err = DefaultLogPath(); err != nil {
			return nil, nil, nil, err
		}
	}
	if path, err = config.ExpandHome(path); err != nil {
		return nil, nil, nil, err
	}

	file, err := OpenRotatingFile(path, defaultMaxSizeMB*1024*1024, defaultMaxFiles)
	if err != nil {
		return nil, nil, nil, err
	}

	ring := NewRing(DefaultRingSize, level)
	text := slog.NewTextHandler(file, &slog.HandlerOptions{Level: level})
	return slog.New(Fanout(text, ring)), ring, file, nil
}

// Fanout returns a handler that passes every record to each handler that
// accepts its level.
func Fanout(handlers ...slog.Handler) slog.Handler {
	return fanout(append([]slog.Handler(nil), handlers...))
}

type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
