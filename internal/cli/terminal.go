// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"os"

	"golang.org/x/term"
)

// DefaultTerminalWidth is the fallback width when detection fails.
const DefaultTerminalWidth = 80

// isTerminal reports whether v is an *os.File attached to a terminal.
// Readers and writers that are not files, such as test buffers, are never
// terminals.
func isTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of v, or DefaultTerminalWidth.
func terminalWidth(v interface{}) int {
	f, ok := v.(*os.File)
	if !ok {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return width
}

// requireTTY returns a usage error unless stdin and stdout are terminals.
func (a *App) requireTTY(operation, alternative string) error {
	if isTerminal(a.Stdin) && isTerminal(a.Stdout) {
		return nil
	}
	return NewUsageError(operation, "requires an interactive terminal", alternative)
}
