// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/plainlaw/internal/model"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Mode is the active light/dark preference.
	Mode model.Theme

	// ColorProfile is the detected terminal color capability.
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderMeta  lipgloss.Style

	// Transcript
	UserBubble  lipgloss.Style
	BotBubble   lipgloss.Style
	ErrorBubble lipgloss.Style
	SenderUser  lipgloss.Style
	SenderBot   lipgloss.Style
	Timestamp   lipgloss.Style

	// Welcome placeholder
	Welcome      lipgloss.Style
	WelcomeTitle lipgloss.Style

	// Input area
	InputBorder      lipgloss.Style
	InputBorderBusy  lipgloss.Style
	CharCount        lipgloss.Style
	CharCountWarning lipgloss.Style
	CharCountDanger  lipgloss.Style

	// Status and help
	Spinner   lipgloss.Style
	Status    lipgloss.Style
	StatusErr lipgloss.Style
	Help      lipgloss.Style
	HelpKey   lipgloss.Style
}

// NewTheme creates a theme for mode and applies it.
func NewTheme(mode model.Theme) *Theme {
	profile := termenv.EnvColorProfile()
	if termenv.EnvNoColor() {
		profile = termenv.Ascii
	}
	lipgloss.SetColorProfile(profile)

	t := &Theme{ColorProfile: profile}
	t.initStyles()
	t.Apply(mode)
	return t
}

// Apply switches the palette. AdaptiveColors resolve against Lip Gloss's
// background flag, so existing styles pick up the change on next render.
func (t *Theme) Apply(mode model.Theme) {
	t.Mode = mode
	lipgloss.SetHasDarkBackground(mode.IsDark())
}

// GlamourStyle returns the glamour standard style name matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.ColorProfile == termenv.Ascii {
		return "notty"
	}
	return t.Mode.String()
}

// SetSize updates the layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Navy)

	t.HeaderMeta = lipgloss.NewStyle().
		Foreground(Gold)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1).
		MarginLeft(4)

	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1).
		MarginRight(4)

	t.ErrorBubble = t.BotBubble.
		BorderForeground(ErrorBubbleBorder)

	t.SenderUser = lipgloss.NewStyle().
		Bold(true).
		Foreground(UserBubbleBorder).
		MarginLeft(4)

	t.SenderBot = lipgloss.NewStyle().
		Bold(true).
		Foreground(Navy)

	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Welcome = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 2)

	t.WelcomeTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Navy).
		MarginBottom(1)

	t.InputBorder = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Navy)

	t.InputBorderBusy = t.InputBorder.
		BorderForeground(Overlay)

	t.CharCount = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.CharCountWarning = lipgloss.NewStyle().
		Foreground(Amber)

	t.CharCountDanger = lipgloss.NewStyle().
		Bold(true).
		Foreground(Rose)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Gold)

	t.Status = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StatusErr = lipgloss.NewStyle().
		Foreground(Rose)

	t.Help = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextSecondary)
}
