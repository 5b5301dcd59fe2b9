package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ParseLevel maps a config level name to a slog level. Unknown names mean
// info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup installs a text handler writing to path as the default slog logger.
// When verbose is set, records are also written to stderr. The returned
// closer flushes and closes the log file.
func Setup(path, level string, verbose bool) (*slog.Logger, io.Closer, error) {
	lvl := ParseLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	var closer io.Closer = nopCloser{}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}
	if verbose {
		w = io.MultiWriter(w, os.Stderr)
	}

	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(log)
	return log, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
