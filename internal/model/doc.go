// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript.
//
// # Key Types
//
//   - Message: one immutable chat entry, authored by the user or the bot
//   - Conversation: ordered, append-only sequence of messages
//   - Theme: light or dark presentation preference
//
// # Usage
//
//	conv := model.NewConversation()
//	conv.Append(model.NewUserMessage("The lessee shall indemnify..."))
//	conv.Append(model.NewBotMessage("You must cover the landlord's costs if..."))
//	for _, m := range conv.Messages() {
//	    fmt.Println(m.Sender(), m.Text)
//	}
package model
