// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the plainlaw TUI.
//
// Components are plain render helpers; the chat model owns all state.
//
// # Key Types
//
//   - Header: title bar with theme indicator and busy state
//   - MessageBubble: one transcript entry; bot text rendered as markdown
//   - MarkdownRenderer: cached glamour renderer keyed by style and width
//   - Welcome: placeholder shown while the transcript is empty
//   - TypingIndicator: spinner shown while a reply is pending
//   - CharCounter: input length with warning tiers
package components
