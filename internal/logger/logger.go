// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logger provides the process-wide structured logger for plainlaw.
//
// The terminal UI owns the screen, so interactive sessions log to a file;
// one-shot commands log to stderr.
package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	mu     sync.RWMutex
	global = newDefault(os.Stderr)
	closer io.Closer
)

func newDefault(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix: "plainlaw",
	})
	l.SetLevel(log.InfoLevel)
	return l
}

// Options controls Configure. Empty fields keep the defaults.
type Options struct {
	// Level is one of debug, info, warn, error. Falls back to
	// PLAINLAW_LOG_LEVEL and then info.
	Level string
	// File redirects output to a file (created 0600, appended).
	File string
	// Timestamps enables the time column.
	Timestamps bool
}

// Configure rebuilds the global logger from opts.
func Configure(opts Options) error {
	level := opts.Level
	if level == "" {
		level = os.Getenv("PLAINLAW_LOG_LEVEL")
	}

	var out io.Writer = os.Stderr
	var c io.Closer
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0700); err != nil {
			return err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		out = f
		c = f
	}

	l := newDefault(out)
	l.SetLevel(ParseLevel(level))
	l.SetReportTimestamp(opts.Timestamps)

	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		closer.Close()
	}
	global = l
	closer = c
	return nil
}

// SetOutput points the global logger at w. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	level := global.GetLevel()
	global = newDefault(w)
	global.SetLevel(level)
}

// Close releases a log file opened by Configure.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	global = newDefault(os.Stderr)
	return err
}

// ParseLevel converts a level name to a log.Level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// L returns the current global logger.
func L() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	L().Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	L().Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	L().Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	L().Error(msg, keyvals...)
}

// NewStyledLogger returns a component logger that shares the global level
// and output but carries its own prefix, e.g. "gemini" or "controller".
func NewStyledLogger(prefix string) *log.Logger {
	parent := L()

	styles := log.DefaultStyles()
	styles.Prefix = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styles.Values["err"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	styles.Keys["phase"] = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))

	l := parent.WithPrefix(prefix)
	l.SetStyles(styles)
	return l
}
