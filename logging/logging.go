// Package logging builds the structured loggers used by the cspath binaries.
//
// The library packages (core, csp, dijkstra) never log; loaders accept an
// optional *slog.Logger and the CLI and daemon create one here.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Accepted formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	// ErrUnknownLevel indicates a level name other than debug, info, warn or error.
	ErrUnknownLevel = errors.New("logging: unknown level")

	// ErrUnknownFormat indicates a format other than text or json.
	ErrUnknownFormat = errors.New("logging: unknown format")
)

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to slog levels.
// An empty name is info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

// New returns a logger writing to w at the given level, in text or JSON.
// An empty format is text.
func New(level, format string, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
