// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/plainlaw/internal/util"
)

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single chat entry. Values are never modified after
// construction; the conversation hands out copies.
type Message struct {
	// ID identifies the message within a running process. Not persisted.
	ID string

	// Text is the literal content: user input, an upload notice, the
	// model's reply, or an apology.
	Text string

	// IsUser is true for user-authored messages, false for bot messages.
	IsUser bool

	// Timestamp is set at construction. Not persisted.
	Timestamp time.Time
}

// NewUserMessage creates a user-authored message.
func NewUserMessage(text string) Message {
	return newMessage(text, true)
}

// NewBotMessage creates a bot-authored message.
func NewBotMessage(text string) Message {
	return newMessage(text, false)
}

func newMessage(text string, isUser bool) Message {
	return Message{
		ID:        uuid.NewString(),
		Text:      text,
		IsUser:    isUser,
		Timestamp: time.Now(),
	}
}

// Sender returns a display label for the author.
func (m Message) Sender() string {
	if m.IsUser {
		return "You"
	}
	return "plainlaw"
}

// Preview returns the text truncated to maxLen runes.
func (m Message) Preview(maxLen int) string {
	return util.TruncateRunes(m.Text, maxLen)
}

// IsEmpty returns true if the message has no text.
func (m Message) IsEmpty() bool {
	return len(m.Text) == 0
}
