// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup installs a logger writing to stdout as the slog default and returns it.
// Level is one of debug, info, warn or error; format is json or text. Unknown values fall back
// to info and json, and a warning is logged.
func Setup(level, format string) *slog.Logger {
	logger, warnings := New(os.Stdout, level, format)
	slog.SetDefault(logger)
	for _, w := range warnings {
		logger.Warn(w)
	}
	return logger
}

// New returns a logger writing to w, together with warnings about options that could not be
// parsed.
func New(w io.Writer, level, format string) (*slog.Logger, []string) {
	var warnings []string
	lvl, ok := parseLevel(level)
	if !ok {
		warnings = append(warnings, "could not parse logger level "+level)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(format) {
	case "", "json":
		return slog.New(slog.NewJSONHandler(w, opts)), warnings
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), warnings
	default:
		warnings = append(warnings, "could not parse logger format "+format)
		return slog.New(slog.NewJSONHandler(w, opts)), warnings
	}
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "", "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
