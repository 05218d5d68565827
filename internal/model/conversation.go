// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "sync"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the ordered transcript of a chat. Messages can only be
// appended; the whole transcript can be cleared. Safe for concurrent use.
type Conversation struct {
	mu       sync.RWMutex
	messages []Message
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{messages: make([]Message, 0)}
}

// NewConversationFrom creates a conversation holding a copy of msgs.
func NewConversationFrom(msgs []Message) *Conversation {
	c := NewConversation()
	c.messages = append(c.messages, msgs...)
	return c
}

// Append adds a message at the end of the transcript.
func (c *Conversation) Append(msg Message) {
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
}

// Messages returns a snapshot of the transcript in order.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// IsEmpty returns true if the conversation has no messages.
func (c *Conversation) IsEmpty() bool {
	return c.Len() == 0
}

// Last returns the most recent message and whether one exists.
func (c *Conversation) Last() (Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.messages) == 0 {
		return Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// Clear removes every message.
func (c *Conversation) Clear() {
	c.mu.Lock()
	c.messages = make([]Message, 0)
	c.mu.Unlock()
}
