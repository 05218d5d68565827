// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/plainlaw/internal/controller"
	"github.com/jeranaias/plainlaw/internal/ingest"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.typing, cmd = m.typing.Update(msg)
		return m, cmd

	case ReplyMsg:
		return m.handleDone("")

	case UploadDoneMsg:
		return m.handleDone(pluralFiles(msg.Files) + " processed")

	case AppendedMsg:
		m.refresh()
		return m, nil

	case StatusMsg:
		m.setStatus(msg.Text, msg.Error)
		return m, nil

	case ConfigReloadedMsg:
		if msg.Configured {
			m.setStatus("Configuration reloaded", false)
		} else {
			m.setStatus("Configuration reloaded: API key not set", true)
		}
		return m, nil
	}

	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.cancelMgr.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Cancel):
		if m.ctrl.Busy() && m.cancelMgr.cancel() {
			m.setStatus("Cancelling request...", false)
		} else if m.showHelp {
			m.showHelp = false
			m.layout()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleTheme):
		return m.toggleTheme()

	case key.Matches(msg, m.keyMap.Clear):
		return m.clearChat()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Top):
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keyMap.Bottom):
		m.viewport.GotoBottom()
		return m, nil

	case key.Matches(msg, m.keyMap.Send):
		return m.submitInput()
	}

	// Input is disabled while a request is pending.
	if m.ctrl.Busy() {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	before := m.input.Height()
	m.fitInput()
	if m.input.Height() != before {
		m.layout()
	}
	return m, cmd
}

// =============================================================================
// SUBMISSION
// =============================================================================

// submitInput sends the input, or runs it as a slash command.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	if m.ctrl.Busy() {
		m.setStatus("Still working on the previous request", true)
		return m, nil
	}

	text := m.input.Value()
	if name, args, ok := parseCommand(text); ok {
		if handler, found := commandHandlers[name]; found {
			m.input.Reset()
			m.fitInput()
			m.layout()
			return handler(&m, args)
		}
	}

	if _, err := m.ctrl.Begin(text); err != nil {
		if !errors.Is(err, controller.ErrEmptyInput) {
			m.setStatus(err.Error(), true)
		}
		return m, nil
	}

	m.input.Reset()
	ctrl := m.ctrl
	return m.startRequest("Simplifying", func(ctx context.Context) tea.Msg {
		return ReplyMsg{Message: ctrl.Finish(ctx, text)}
	})
}

// startUpload expands paths and runs them as one upload batch.
func (m Model) startUpload(args []string) (tea.Model, tea.Cmd) {
	paths := ingest.ExpandPaths(args)
	sources := make([]ingest.Source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, ingest.FromPath(p))
	}

	if err := m.ctrl.BeginUpload(sources); err != nil {
		if errors.Is(err, controller.ErrNoFiles) {
			m.setStatus("Usage: /upload <file> [file...]", true)
		} else {
			m.setStatus(err.Error(), true)
		}
		return m, nil
	}

	m.log.Debug("upload started", "files", len(sources))
	ctrl := m.ctrl
	return m.startRequest("Processing "+pluralFiles(len(sources)), func(ctx context.Context) tea.Msg {
		ctrl.RunUpload(ctx, sources)
		return UploadDoneMsg{Files: len(sources)}
	})
}

// startRequest disables input, shows the typing indicator and schedules run
// with a cancellable request context.
func (m Model) startRequest(label string, run func(context.Context) tea.Msg) (tea.Model, tea.Cmd) {
	m.input.Blur()
	m.fitInput()
	m.showHelp = false
	m.setStatus("", false)
	m.layout()
	m.refresh()

	ctx, release := m.cancelMgr.begin(m.ctx)
	tick := m.typing.Start(label)
	task := func() tea.Msg {
		defer release()
		return run(ctx)
	}
	return m, tea.Batch(tick, task)
}

// handleDone re-enables input once a request has finished.
func (m Model) handleDone(status string) (tea.Model, tea.Cmd) {
	m.typing.Stop()
	cmd := m.input.Focus()
	m.setStatus(status, false)
	m.refresh()
	return m, cmd
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return strconv.Itoa(n) + " files"
}

// parseCommand splits "/name args..." input. Multi-line input is never a
// command.
func parseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") || strings.Contains(text, "\n") {
		return "", nil, false
	}
	fields := strings.Fields(text)
	name := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
	if name == "" {
		return "", nil, false
	}
	return name, fields[1:], true
}
