// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/plainlaw/internal/controller"
	"github.com/jeranaias/plainlaw/internal/model"
	"github.com/jeranaias/plainlaw/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one transcript entry.
type MessageBubble struct {
	Message       model.Message
	Width         int
	ShowTimestamp bool
	Markdown      *MarkdownRenderer
	theme         *styles.Theme
}

// NewMessageBubble creates a bubble for msg. A nil markdown renderer
// draws bot text as-is.
func NewMessageBubble(msg model.Message, theme *styles.Theme, md *MarkdownRenderer) *MessageBubble {
	return &MessageBubble{
		Message:       msg,
		Width:         80,
		ShowTimestamp: true,
		Markdown:      md,
		theme:         theme,
	}
}

// SetWidth sets the bubble width.
func (b *MessageBubble) SetWidth(width int) {
	b.Width = width
}

// IsError reports whether the message is an apology.
func (b *MessageBubble) IsError() bool {
	return controller.IsApology(b.Message)
}

// View renders the sender line and the bubble.
func (b *MessageBubble) View() string {
	if b.Message.IsUser {
		return b.renderUser()
	}
	return b.renderBot()
}

func (b *MessageBubble) contentWidth() int {
	w := b.Width - 10
	if w < 20 {
		w = 20
	}
	return w
}

func (b *MessageBubble) renderUser() string {
	content := b.Message.Text
	if content == "" {
		content = " "
	}
	bubble := b.theme.UserBubble.
		Width(b.contentWidth()).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, b.senderLine(b.theme.SenderUser), bubble)
}

func (b *MessageBubble) renderBot() string {
	style := b.theme.BotBubble
	content := b.Message.Text
	switch {
	case b.IsError():
		style = b.theme.ErrorBubble
	case b.Markdown != nil:
		content = b.Markdown.Render(content, b.theme.GlamourStyle(), b.contentWidth()-2)
	}
	if content == "" {
		content = " "
	}

	bubble := style.Width(b.contentWidth()).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, b.senderLine(b.theme.SenderBot), bubble)
}

func (b *MessageBubble) senderLine(style lipgloss.Style) string {
	line := style.Render(b.Message.Sender())
	if b.ShowTimestamp && !b.Message.Timestamp.IsZero() {
		line += " " + b.theme.Timestamp.Render(b.Message.Timestamp.Format("15:04"))
	}
	return line
}

// RenderTranscript renders msgs separated by blank lines.
func RenderTranscript(msgs []model.Message, width int, theme *styles.Theme, md *MarkdownRenderer) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		b := NewMessageBubble(m, theme, md)
		b.SetWidth(width)
		parts = append(parts, b.View())
	}
	return strings.Join(parts, "\n\n")
}
