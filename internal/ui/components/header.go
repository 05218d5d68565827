// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/plainlaw/internal/ui/styles"
	"github.com/jeranaias/plainlaw/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the one-line title bar.
type Header struct {
	Title    string
	Subtitle string
	Width    int
	Busy     bool
	Messages int
	theme    *styles.Theme
}

// NewHeader creates a header with the default title.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title:    "plainlaw",
		Subtitle: "Legal Document Simplifier",
		Width:    80,
		theme:    theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the header: title on the left, status on the right.
func (h *Header) View() string {
	left := h.theme.HeaderTitle.Render(h.Title) + " " + h.theme.Status.Render(h.Subtitle)

	var right []string
	if h.Busy {
		right = append(right, "working")
	}
	if h.Messages > 0 {
		right = append(right, pluralize(h.Messages, "message"))
	}
	right = append(right, "theme: "+h.theme.Mode.String())
	rightView := h.theme.HeaderMeta.Render(strings.Join(right, " | "))

	inner := h.Width - 2
	gap := inner - lipgloss.Width(left) - lipgloss.Width(rightView)
	if gap < 1 {
		left = util.TruncateWidth(h.Title, inner-lipgloss.Width(rightView)-1)
		left = h.theme.HeaderTitle.Render(left)
		gap = inner - lipgloss.Width(left) - lipgloss.Width(rightView)
		if gap < 1 {
			gap = 1
		}
	}

	return h.theme.Header.Width(h.Width).Render(left + strings.Repeat(" ", gap) + rightView)
}

func pluralize(n int, word string) string {
	s := strconv.Itoa(n) + " " + word
	if n != 1 {
		s += "s"
	}
	return s
}

