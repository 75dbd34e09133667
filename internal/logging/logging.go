// SPDX-License-Identifier: MPL-2.0

// Package logging builds the process logger. Call sites use log/slog; the
// handler is a charmbracelet/log logger so terminal output matches the rest
// of the CLI styling.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// New returns an slog.Logger writing to w at the named level
// ("debug", "info", "warn" or "error", case-insensitive).
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	handler := log.NewWithOptions(w, log.Options{
		Prefix: "buildenv",
		Level:  lvl,
	})
	return slog.New(handler), nil
}

// ParseLevel parses a level name. The empty string selects DefaultLevel.
func ParseLevel(level string) (log.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
