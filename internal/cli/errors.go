// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates a configuration file or settings error
	ExitConfigError = 3
	// ExitRequestError indicates that one or more simplifications failed
	ExitRequestError = 5
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "history", "storage")
	Action  string // Action being performed (e.g., "clear", "open")
	Reason  string // Human-readable reason
	Err     error  // Underlying error (if any)
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed: %s: %v", e.Command, e.Action, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s failed: %s", e.Command, e.Action, e.Reason)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UsageError represents invalid input to a command.
type UsageError struct {
	Command string
	Reason  string
	Example string
}

func (e *UsageError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Command, e.Reason)
	if e.Example != "" {
		msg += fmt.Sprintf("\nExample: %s", e.Example)
	}
	return msg
}

// ConfigError wraps a configuration load or validation failure.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// RequestError reports simplifications that ended in an apology.
type RequestError struct {
	Failed int
}

func (e *RequestError) Error() string {
	if e.Failed == 1 {
		return "1 request failed"
	}
	return fmt.Sprintf("%d requests failed", e.Failed)
}

// =============================================================================
// ERROR CONSTRUCTION HELPERS
// =============================================================================

// NewCommandError creates a new command error.
func NewCommandError(command, action, reason string, err error) error {
	return &CommandError{Command: command, Action: action, Reason: reason, Err: err}
}

// NewUsageError creates a new usage error.
func NewUsageError(command, reason, example string) error {
	return &UsageError{Command: command, Reason: reason, Example: example}
}

// NewConfigError wraps err as a configuration error.
func NewConfigError(err error) error {
	return &ConfigError{Err: err}
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError prints err to w.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	s := newStyles(w)
	fmt.Fprintf(w, "%s %s\n", s.Error.Render("[ERROR]"), err.Error())
}

// GetExitCode determines the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return ExitConfigError
	}
	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return ExitRequestError
	}
	return ExitGeneralError
}
