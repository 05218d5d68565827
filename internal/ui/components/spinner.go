// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/plainlaw/internal/ui/styles"
)

// =============================================================================
// TYPING INDICATOR
// =============================================================================

// TypingIndicator is shown while a reply is pending.
type TypingIndicator struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	active    bool
	theme     *styles.Theme
}

// NewTypingIndicator creates an inactive indicator with ASCII frames.
func NewTypingIndicator(theme *styles.Theme) TypingIndicator {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	return TypingIndicator{
		spinner: s,
		message: "Simplifying",
		theme:   theme,
	}
}

// Start activates the indicator and returns the first tick.
func (t *TypingIndicator) Start(message string) tea.Cmd {
	if message != "" {
		t.message = message
	}
	t.active = true
	t.startTime = time.Now()
	return t.spinner.Tick
}

// Stop deactivates the indicator.
func (t *TypingIndicator) Stop() {
	t.active = false
}

// IsActive returns whether the indicator is running.
func (t *TypingIndicator) IsActive() bool {
	return t.active
}

// Elapsed returns the time since Start.
func (t *TypingIndicator) Elapsed() time.Duration {
	if t.startTime.IsZero() {
		return 0
	}
	return time.Since(t.startTime)
}

// Update advances the animation. Ticks are dropped while inactive.
func (t TypingIndicator) Update(msg tea.Msg) (TypingIndicator, tea.Cmd) {
	if !t.active {
		return t, nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return t, cmd
}

// View renders the indicator, or nothing while inactive.
func (t TypingIndicator) View() string {
	if !t.active {
		return ""
	}
	return t.theme.Spinner.Render(t.spinner.View()) + " " +
		t.theme.Status.Render(t.message+"...") +
		t.theme.Timestamp.Render(" ("+formatElapsed(t.Elapsed())+")")
}

// formatElapsed formats a duration for display.
func formatElapsed(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 60 {
		return strconv.Itoa(seconds) + "s"
	}
	return strconv.Itoa(seconds/60) + "m " + strconv.Itoa(seconds%60) + "s"
}
