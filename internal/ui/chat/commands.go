// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/plainlaw/internal/model"
)

// =============================================================================
// COMMAND HANDLER REGISTRY
// =============================================================================

// CommandHandler handles one slash command.
type CommandHandler func(m *Model, args []string) (tea.Model, tea.Cmd)

// commandHandlers maps command names to their handler functions.
var commandHandlers = map[string]CommandHandler{
	"upload": handleUploadCommand,
	"up":     handleUploadCommand,
	"clear":  handleClearCommand,
	"theme":  handleThemeCommand,
	"help":   handleHelpCommand,
	"h":      handleHelpCommand,
	"?":      handleHelpCommand,
	"quit":   handleQuitCommand,
	"q":      handleQuitCommand,
	"exit":   handleQuitCommand,
}

// Commands returns the help lines for the slash commands.
func Commands() []string {
	return []string{
		"/upload <file...>  simplify files (globs and ~ allowed)",
		"/clear             clear the chat history",
		"/theme [light|dark] switch theme (toggles with no argument)",
		"/help              show this help",
		"/quit              exit plainlaw",
	}
}

func handleUploadCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	return m.startUpload(args)
}

func handleClearCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	return m.clearChat()
}

func handleThemeCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		return m.toggleTheme()
	}
	mode, err := model.ParseTheme(args[0])
	if err != nil {
		m.setStatus(err.Error(), true)
		return *m, nil
	}
	if err := m.themes.SetTheme(mode); err != nil {
		m.log.Warn("failed to save theme", "err", err)
	}
	m.applyTheme(mode)
	m.setStatus("Theme: "+mode.String(), false)
	return *m, nil
}

func handleHelpCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	m.showHelp = !m.showHelp
	m.layout()
	return *m, nil
}

func handleQuitCommand(m *Model, args []string) (tea.Model, tea.Cmd) {
	m.cancelMgr.cancel()
	return *m, tea.Quit
}

// =============================================================================
// SHARED ACTIONS
// =============================================================================

func (m Model) clearChat() (tea.Model, tea.Cmd) {
	if m.ctrl.Busy() {
		m.setStatus("Cannot clear while a request is pending", true)
		return m, nil
	}
	if err := m.ctrl.Clear(); err != nil {
		m.setStatus("Failed to clear history: "+err.Error(), true)
		return m, nil
	}
	m.setStatus("Chat cleared", false)
	m.refresh()
	return m, nil
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	mode, err := m.themes.ToggleTheme()
	if err != nil {
		m.log.Warn("failed to save theme", "err", err)
	}
	m.applyTheme(mode)
	m.setStatus("Theme: "+mode.String(), false)
	return m, nil
}

func (m Model) renderFullHelp() string {
	keys := m.help.FullHelpView(m.keyMap.FullHelp())
	cmds := m.theme.Help.Render(strings.Join(Commands(), "\n"))
	return keys + "\n\n" + cmds
}
