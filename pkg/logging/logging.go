// Package logging configures the process-wide slog handle. Diagnostics are a
// side channel: they go to stderr or to LOG_FILE, never to stdout, which
// carries only NDJSON output.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Verbosity levels, matching the LOG_LEVEL environment variable.
const (
	LevelSilent = 0
	LevelInfo   = 1
	LevelDebug  = 2

	logFileMode = 0600
	logDirMode  = 0700
)

// Setup configures the default logger from the LOG_LEVEL and LOG_FILE
// environment variables. Unset or unparsable LOG_LEVEL means silent.
func Setup() error {
	level := 0
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			level = n
		}
	}
	return Configure(level, os.Getenv("LOG_FILE"))
}

// Configure installs the default logger for the given verbosity and optional
// file sink. Level <= 0 silences logging entirely; without a file the sink
// is stderr.
func Configure(level int, file string) error {
	if level <= LevelSilent {
		slog.SetDefault(slog.New(silentHandler{}))
		return nil
	}

	lev := slog.LevelInfo
	if level >= LevelDebug {
		lev = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	if file != "" {
		if dir := filepath.Dir(file); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, logDirMode); err != nil {
				return fmt.Errorf("creating log directory %s: %w", dir, err)
			}
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFileMode)
		if err != nil {
			return fmt.Errorf("opening log file %s: %w", file, err)
		}
		w = f
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lev})
	slog.SetDefault(slog.New(h))
	return nil
}

// ForceDebug raises the default logger to debug on stderr, used by the
// --debug CLI flag.
func ForceDebug() {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(h))
}

// silentHandler drops every record.
type silentHandler struct{}

func (silentHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (silentHandler) Handle(context.Context, slog.Record) error { return nil }
func (h silentHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h silentHandler) WithGroup(string) slog.Handler           { return h }
