// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jeranaias/plainlaw/internal/controller"
	"github.com/jeranaias/plainlaw/internal/logger"
	"github.com/jeranaias/plainlaw/internal/model"
	"github.com/jeranaias/plainlaw/internal/ui/components"
	"github.com/jeranaias/plainlaw/internal/ui/styles"
)

// Input height limits, in lines.
const (
	minInputHeight = 1
	maxInputHeight = 8
)

// ThemeStore persists the light/dark preference. *session.State
// implements it.
type ThemeStore interface {
	Theme() model.Theme
	SetTheme(model.Theme) error
	ToggleTheme() (model.Theme, error)
}

// Options tune the chat view.
type Options struct {
	// Markdown renders bot replies through glamour.
	Markdown bool
	// Context is the parent of every request context. Defaults to
	// context.Background.
	Context context.Context
	// Notice is shown as an error status on start, e.g. a missing API key.
	Notice string
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	ctrl   *controller.Controller
	themes ThemeStore
	ctx    context.Context

	// Styling
	theme    *styles.Theme
	markdown *components.MarkdownRenderer

	// Dimensions
	width  int
	height int
	ready  bool

	// UI Components
	header   *components.Header
	welcome  components.Welcome
	typing   components.TypingIndicator
	viewport viewport.Model
	input    textarea.Model
	help     help.Model
	keyMap   KeyMap

	cancelMgr *cancelManager

	// Status line
	status    string
	statusErr bool
	showHelp  bool

	log *log.Logger
}

// New creates a chat model over ctrl. The theme is read from themes.
func New(ctrl *controller.Controller, themes ThemeStore, opts Options) Model {
	theme := styles.NewTheme(themes.Theme())

	ta := textarea.New()
	ta.Placeholder = "Paste or type legal text to simplify..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = maxInputHeight
	ta.SetHeight(minInputHeight)
	ta.KeyMap.InsertNewline.SetKeys("shift+enter", "alt+enter", "ctrl+j")
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ta.Focus()

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	var md *components.MarkdownRenderer
	if opts.Markdown {
		md = components.NewMarkdownRenderer()
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := Model{
		ctrl:      ctrl,
		themes:    themes,
		ctx:       ctx,
		theme:     theme,
		markdown:  md,
		header:    components.NewHeader(theme),
		welcome:   components.NewWelcome(theme),
		typing:    components.NewTypingIndicator(theme),
		viewport:  vp,
		input:     ta,
		help:      help.New(),
		keyMap:    DefaultKeyMap(),
		cancelMgr: newCancelManager(),
		log:       logger.NewStyledLogger("tui"),
	}
	m.styleHelp()
	m.refresh()
	if opts.Notice != "" {
		m.setStatus(opts.Notice, true)
	}
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Theme returns the active theme mode.
func (m Model) Theme() model.Theme {
	return m.theme.Mode
}

// Status returns the footer status text.
func (m Model) Status() string {
	return m.status
}

// =============================================================================
// LAYOUT
// =============================================================================

// layout sizes the viewport and input for the current window.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	m.theme.SetSize(m.width, m.height)
	m.header.SetWidth(m.width)
	m.welcome.SetWidth(m.width)

	m.input.SetWidth(m.width - 4)
	m.fitInput()

	const (
		headerHeight = 1
		typingHeight = 1
		footerHeight = 1
		inputBorder  = 2
	)
	vpHeight := m.height - headerHeight - typingHeight - footerHeight - inputBorder - m.input.Height()
	if m.showHelp {
		vpHeight -= lipgloss.Height(m.renderFullHelp())
	}
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = vpHeight
	m.help.Width = m.width
}

// fitInput grows the input with its content up to maxInputHeight.
func (m *Model) fitInput() {
	h := m.input.LineCount()
	if h < minInputHeight {
		h = minInputHeight
	}
	if h > maxInputHeight {
		h = maxInputHeight
	}
	m.input.SetHeight(h)
}

// refresh re-renders the transcript and scrolls to the bottom.
func (m *Model) refresh() {
	msgs := m.ctrl.Messages()
	m.header.Messages = len(msgs)
	m.header.Busy = m.ctrl.Busy()

	if len(msgs) == 0 {
		m.viewport.SetContent(m.welcome.View())
	} else {
		m.viewport.SetContent(components.RenderTranscript(msgs, m.viewport.Width, m.theme, m.markdown))
	}
	m.viewport.GotoBottom()
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) styleHelp() {
	m.help.Styles.ShortKey = m.theme.HelpKey
	m.help.Styles.ShortDesc = m.theme.Help
	m.help.Styles.ShortSeparator = m.theme.Help
	m.help.Styles.FullKey = m.theme.HelpKey
	m.help.Styles.FullDesc = m.theme.Help
	m.help.Styles.FullSeparator = m.theme.Help
}

// applyTheme switches the palette and re-renders everything.
func (m *Model) applyTheme(mode model.Theme) {
	m.theme.Apply(mode)
	m.styleHelp()
	m.refresh()
}
