// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/plainlaw/internal/ui/components"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the chat view.
// Layout: header + transcript + typing line + [help] + input + footer.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	parts := []string{
		m.header.View(),
		m.viewport.View(),
		m.renderTyping(),
	}
	if m.showHelp {
		parts = append(parts, m.renderFullHelp())
	}
	parts = append(parts, m.renderInput(), m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderTyping() string {
	if !m.typing.IsActive() {
		return ""
	}
	return " " + m.typing.View()
}

func (m Model) renderInput() string {
	style := m.theme.InputBorder
	if m.ctrl.Busy() {
		style = m.theme.InputBorderBusy
	}
	return style.Width(m.width - 2).Render(m.input.View())
}

// renderFooter shows the status (or key hints) on the left and the char
// counter on the right.
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.status != "" && m.statusErr:
		left = m.theme.StatusErr.Render(m.status)
	case m.status != "":
		left = m.theme.Status.Render(m.status)
	default:
		left = m.help.ShortHelpView(m.keyMap.ShortHelp())
	}

	right := components.CharCounter(m.input.Value(), m.theme)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + right
}
