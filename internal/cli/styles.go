// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/plainlaw/internal/ui/styles"
)

// cliStyles are the shared output styles for line-mode commands. They are
// bound to a renderer for the target writer, so piped output and NO_COLOR
// get plain text.
type cliStyles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Dim     lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	User    lipgloss.Style
	Bot     lipgloss.Style
}

func newStyles(w io.Writer) cliStyles {
	r := lipgloss.NewRenderer(w)
	return cliStyles{
		Title:   r.NewStyle().Bold(true).Foreground(styles.Navy),
		Label:   r.NewStyle().Foreground(styles.TextSecondary).Width(12),
		Dim:     r.NewStyle().Foreground(styles.TextMuted),
		Success: r.NewStyle().Foreground(styles.Emerald),
		Error:   r.NewStyle().Bold(true).Foreground(styles.Rose),
		User:    r.NewStyle().Bold(true).Foreground(styles.UserBubbleBorder),
		Bot:     r.NewStyle().Bold(true).Foreground(styles.Navy),
	}
}
