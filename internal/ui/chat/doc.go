// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the main chat view for the plainlaw TUI.

The chat package is a Bubble Tea model over a controller.Controller. It owns
no transcript state of its own: every render reads the controller's message
snapshot.

# Key Components

## Model (model.go)

The Model struct holds the UI widgets: a textarea for legal text, a viewport
for the transcript, a typing indicator and the header.

## Update Loop (update.go)

Each user action becomes one tea.Cmd. The user's message is appended
synchronously in Update; the bot reply is appended by the Cmd once the
request finishes and reported back as a ReplyMsg.

## Commands (commands.go)

Slash commands: /upload, /clear, /theme, /help and /quit. Input starting
with an unknown slash word is sent as ordinary text so that signature
lines such as "/s/ Jane Doe" still work.

# Usage

	m := chat.New(ctrl, state, chat.Options{Markdown: true})
	p := tea.NewProgram(m, tea.WithAltScreen())
	ctrl.OnAppend(chat.AppendNotifier(p.Send))
	_, err := p.Run()
*/
package chat
