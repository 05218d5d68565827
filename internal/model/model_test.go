// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sync"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessages(t *testing.T) {
	u := NewUserMessage("hello")
	b := NewBotMessage("hi")

	if !u.IsUser || b.IsUser {
		t.Errorf("IsUser = %v/%v, want true/false", u.IsUser, b.IsUser)
	}
	if u.ID == "" || u.ID == b.ID {
		t.Errorf("expected distinct non-empty IDs, got %q and %q", u.ID, b.ID)
	}
	if u.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
	if u.Sender() != "You" || b.Sender() != "plainlaw" {
		t.Errorf("Sender() = %q/%q", u.Sender(), b.Sender())
	}
}

func TestMessage_Preview(t *testing.T) {
	m := NewUserMessage("the party of the first part")
	if got := m.Preview(10); got != "the par..." {
		t.Errorf("Preview(10) = %q", got)
	}
	if got := m.Preview(100); got != m.Text {
		t.Errorf("Preview(100) = %q", got)
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_AppendOrder(t *testing.T) {
	c := NewConversation()
	c.Append(NewUserMessage("one"))
	c.Append(NewBotMessage("two"))
	c.Append(NewUserMessage("three"))

	msgs := c.Messages()
	if len(msgs) != 3 {
		t.Fatalf("Len = %d, want 3", len(msgs))
	}
	for i, want := range []string{"one", "two", "three"} {
		if msgs[i].Text != want {
			t.Errorf("msgs[%d] = %q, want %q", i, msgs[i].Text, want)
		}
	}
	last, ok := c.Last()
	if !ok || last.Text != "three" {
		t.Errorf("Last() = %q, %v", last.Text, ok)
	}
}

func TestConversation_MessagesIsCopy(t *testing.T) {
	c := NewConversation()
	c.Append(NewUserMessage("original"))

	snap := c.Messages()
	snap[0].Text = "mutated"

	if got := c.Messages()[0].Text; got != "original" {
		t.Errorf("stored message changed through snapshot: %q", got)
	}
}

func TestConversation_Clear(t *testing.T) {
	c := NewConversationFrom([]Message{NewUserMessage("a"), NewBotMessage("b")})
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
	c.Clear()
	if !c.IsEmpty() {
		t.Errorf("Len after Clear = %d", c.Len())
	}
	if _, ok := c.Last(); ok {
		t.Error("Last() on empty conversation returned ok")
	}
}

func TestConversation_ConcurrentAppend(t *testing.T) {
	c := NewConversation()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Append(NewUserMessage("x"))
			_ = c.Messages()
		}()
	}
	wg.Wait()
	if c.Len() != 50 {
		t.Errorf("Len = %d, want 50", c.Len())
	}
}

// =============================================================================
// THEME TESTS
// =============================================================================

func TestTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{"light", ThemeLight, false},
		{"dark", ThemeDark, false},
		{" DARK ", ThemeDark, false},
		{"sepia", ThemeLight, true},
		{"", ThemeLight, true},
	}
	for _, tc := range tests {
		got, err := ParseTheme(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseTheme(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseTheme(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Error("Toggle is not an involution")
	}
	if ThemeDark.String() != "dark" || ThemeLight.String() != "light" {
		t.Error("String() mismatch")
	}
	var zero Theme
	if zero != DefaultTheme {
		t.Error("zero Theme should be the default")
	}
}
