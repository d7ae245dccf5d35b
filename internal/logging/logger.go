// Copyright (c) 2025 tumblr-repl
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
// Embedding zerolog.Logger exposes the full zerolog API.
type Logger struct {
	zerolog.Logger
}

// NewLogger constructs a JSON logger writing to w at the given level.
// Unknown level names fall back to info.
func NewLogger(w io.Writer, level string) *Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	l := zerolog.New(w).Level(lvl).With().
		Str("role", "repl").
		Timestamp().
		Logger()
	return &Logger{l}
}

// NewFileLogger opens (or creates) the log file in dir and returns a logger
// for it along with a close function.
func NewFileLogger(dir, level string) (*Logger, func() error, error) {
	f, err := os.OpenFile(filepath.Join(dir, "repl.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return NewLogger(f, level), f.Close, nil
}

// Nop returns a *Logger that discards all log output.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}
