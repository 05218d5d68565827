// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/plainlaw/internal/model"
	"github.com/jeranaias/plainlaw/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme(model.ThemeLight)
}

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestNewHeader(t *testing.T) {
	h := NewHeader(testTheme())
	if h.Title != "plainlaw" {
		t.Errorf("NewHeader() Title = %q, want %q", h.Title, "plainlaw")
	}
	if h.Width != 80 {
		t.Errorf("NewHeader() Width = %d, want 80", h.Width)
	}
}

func TestHeaderView(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetWidth(100)
	h.Messages = 3

	view := h.View()
	for _, want := range []string{"plainlaw", "3 messages", "theme: light"} {
		if !strings.Contains(view, want) {
			t.Errorf("Header.View() missing %q in %q", want, view)
		}
	}
	if strings.Contains(view, "working") {
		t.Error("Header.View() shows working while idle")
	}

	h.Busy = true
	if !strings.Contains(h.View(), "working") {
		t.Error("Header.View() should show working while busy")
	}
}

func TestHeaderNarrow(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetWidth(30)
	if w := lipgloss.Width(h.View()); w > 30 {
		t.Errorf("Header.View() width = %d, want <= 30", w)
	}
}

func TestPluralize(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "1 message"},
		{2, "2 messages"},
		{0, "0 messages"},
	}
	for _, tc := range tests {
		if got := pluralize(tc.n, "message"); got != tc.want {
			t.Errorf("pluralize(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

// =============================================================================
// MESSAGE BUBBLE TESTS
// =============================================================================

func TestMessageBubbleUser(t *testing.T) {
	msg := model.NewUserMessage("The lessee shall indemnify")
	b := NewMessageBubble(msg, testTheme(), nil)
	b.SetWidth(80)

	view := b.View()
	if !strings.Contains(view, "You") {
		t.Errorf("user bubble missing sender: %q", view)
	}
	if !strings.Contains(view, "The lessee shall indemnify") {
		t.Errorf("user bubble missing text: %q", view)
	}
	if b.IsError() {
		t.Error("user message should never be an error")
	}
}

func TestMessageBubbleBot(t *testing.T) {
	msg := model.NewBotMessage("**Summary:** you pay for damage")
	b := NewMessageBubble(msg, testTheme(), NewMarkdownRenderer())
	b.SetWidth(80)

	view := b.View()
	if !strings.Contains(view, "plainlaw") {
		t.Errorf("bot bubble missing sender: %q", view)
	}
	if !strings.Contains(view, "Summary") {
		t.Errorf("bot bubble missing text: %q", view)
	}
}

func TestMessageBubbleApology(t *testing.T) {
	msg := model.NewBotMessage("Sorry, I encountered an error: boom. Please try again.")
	b := NewMessageBubble(msg, testTheme(), NewMarkdownRenderer())
	if !b.IsError() {
		t.Error("apology should be detected as error")
	}
	if !strings.Contains(b.View(), "boom") {
		t.Error("apology text should be rendered verbatim")
	}
}

func TestMessageBubbleTimestamp(t *testing.T) {
	msg := model.NewUserMessage("hi")
	msg.Timestamp = time.Date(2025, 1, 2, 13, 45, 0, 0, time.Local)

	b := NewMessageBubble(msg, testTheme(), nil)
	if !strings.Contains(b.View(), "13:45") {
		t.Error("expected timestamp in sender line")
	}

	b.ShowTimestamp = false
	if strings.Contains(b.View(), "13:45") {
		t.Error("timestamp should be hidden")
	}
}

func TestRenderTranscript(t *testing.T) {
	msgs := []model.Message{
		model.NewUserMessage("first"),
		model.NewBotMessage("second"),
	}
	out := RenderTranscript(msgs, 80, testTheme(), nil)
	first := strings.Index(out, "first")
	second := strings.Index(out, "second")
	if first < 0 || second < 0 || first > second {
		t.Errorf("transcript order wrong: %q", out)
	}
	if RenderTranscript(nil, 80, testTheme(), nil) != "" {
		t.Error("empty transcript should render nothing")
	}
}

// =============================================================================
// MARKDOWN TESTS
// =============================================================================

func TestMarkdownRendererCaches(t *testing.T) {
	md := NewMarkdownRenderer()
	md.Render("one", "notty", 60)
	md.Render("two", "notty", 60)
	md.Render("three", "notty", 70)
	if len(md.cache) != 2 {
		t.Errorf("cache size = %d, want 2", len(md.cache))
	}
}

func TestMarkdownRendererFallback(t *testing.T) {
	md := NewMarkdownRenderer()
	got := md.Render("plain *text*", "no-such-style", 60)
	if got != "plain *text*" {
		t.Errorf("Render() with bad style = %q, want input unchanged", got)
	}
}

// =============================================================================
// WELCOME TESTS
// =============================================================================

func TestWelcomeView(t *testing.T) {
	w := NewWelcome(testTheme())
	w.SetWidth(100)
	view := w.View()
	for _, want := range []string{"Welcome to plainlaw", "/upload", "Enter"} {
		if !strings.Contains(view, want) {
			t.Errorf("Welcome.View() missing %q", want)
		}
	}
}

// =============================================================================
// TYPING INDICATOR TESTS
// =============================================================================

func TestTypingIndicatorLifecycle(t *testing.T) {
	ti := NewTypingIndicator(testTheme())
	if ti.IsActive() {
		t.Fatal("new indicator should be inactive")
	}
	if ti.View() != "" {
		t.Error("inactive indicator should render nothing")
	}

	if cmd := ti.Start("Reading file"); cmd == nil {
		t.Error("Start() should return a tick command")
	}
	if !ti.IsActive() {
		t.Error("indicator should be active after Start")
	}
	if !strings.Contains(ti.View(), "Reading file...") {
		t.Errorf("View() = %q, want message", ti.View())
	}

	ti.Stop()
	if ti.IsActive() {
		t.Error("indicator should be inactive after Stop")
	}
}

func TestTypingIndicatorKeepsDefaultMessage(t *testing.T) {
	ti := NewTypingIndicator(testTheme())
	ti.Start("")
	if !strings.Contains(ti.View(), "Simplifying...") {
		t.Errorf("View() = %q, want default message", ti.View())
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{5 * time.Second, "5s"},
		{59 * time.Second, "59s"},
		{60 * time.Second, "1m 0s"},
		{125 * time.Second, "2m 5s"},
	}
	for _, tc := range tests {
		if got := formatElapsed(tc.d); got != tc.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

// =============================================================================
// CHAR COUNTER TESTS
// =============================================================================

func TestCharCounter(t *testing.T) {
	theme := testTheme()
	tests := []struct {
		text string
		want string
	}{
		{"", "0 / 10000"},
		{"hello", "5 / 10000"},
		{strings.Repeat("a", 8500), "8500 / 10000"},
		{strings.Repeat("a", 9500), "9500 / 10000"},
		{"  hello\n\n", "5 / 10000"},
		{strings.Repeat(" ", 500) + strings.Repeat("a", 8900), "8900 / 10000"},
	}
	for _, tc := range tests {
		if got := CharCounter(tc.text, theme); !strings.Contains(got, tc.want) {
			t.Errorf("CharCounter(len %d) = %q, want %q", len(tc.text), got, tc.want)
		}
	}
}
