// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/plainlaw/internal/prompt"
	"github.com/jeranaias/plainlaw/internal/ui/styles"
)

// =============================================================================
// WELCOME PLACEHOLDER
// =============================================================================

// Welcome is shown in place of an empty transcript. It is never stored.
type Welcome struct {
	Width int
	theme *styles.Theme
}

// NewWelcome creates the placeholder.
func NewWelcome(theme *styles.Theme) Welcome {
	return Welcome{Width: 80, theme: theme}
}

// SetWidth sets the available width.
func (w *Welcome) SetWidth(width int) {
	w.Width = width
}

// View renders the greeting and quick-start hints.
func (w Welcome) View() string {
	inner := w.Width - 8
	if inner < 20 {
		inner = 20
	}

	title := w.theme.WelcomeTitle.Render("Welcome to plainlaw")
	body := lipgloss.NewStyle().Width(inner).Render(prompt.Greeting)
	hints := strings.Join([]string{
		w.hint("Enter", "send"),
		w.hint("Shift+Enter", "new line"),
		w.hint("/upload <file>", "simplify files"),
		w.hint("Ctrl+T", "toggle theme"),
		w.hint("/help", "all commands"),
	}, "  ")

	return w.theme.Welcome.Render(lipgloss.JoinVertical(lipgloss.Left, title, body, "", hints))
}

func (w Welcome) hint(key, desc string) string {
	return w.theme.HelpKey.Render(key) + " " + w.theme.Help.Render(desc)
}
