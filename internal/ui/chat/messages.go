// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/plainlaw/internal/model"
)

// =============================================================================
// REQUEST MESSAGES
// =============================================================================

// ReplyMsg reports that a typed submission finished. Message is the bot
// reply or apology, already in the transcript.
type ReplyMsg struct {
	Message model.Message
}

// UploadDoneMsg reports that an upload batch finished.
type UploadDoneMsg struct {
	Files int
}

// AppendedMsg reports a transcript append made outside Update, such as the
// per-file messages of an upload batch.
type AppendedMsg struct {
	Message model.Message
}

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// StatusMsg sets the footer status line.
type StatusMsg struct {
	Text  string
	Error bool
}

// ConfigReloadedMsg reports that the config file changed on disk.
type ConfigReloadedMsg struct {
	Configured bool
}

// AppendNotifier adapts a program's Send to controller.OnAppend. Sends run
// on their own goroutine because appends also happen inside Update, where
// a blocking Send would deadlock the event loop.
func AppendNotifier(send func(tea.Msg)) func(model.Message) {
	return func(msg model.Message) {
		go send(AppendedMsg{Message: msg})
	}
}
