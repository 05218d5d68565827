// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package controller drives a chat turn from input to reply.
//
// The controller is a two-phase state machine. In PhaseIdle a non-empty
// submission appends the user's message and moves to PhaseAwaiting; the
// generator is then called and its reply, or an apology carrying the
// failure text, is appended as a bot message before returning to
// PhaseIdle and persisting the transcript.
//
// Only one request is in flight at a time. A submission or upload that
// arrives while Awaiting is rejected with ErrBusy and has no side effect,
// so the transcript always alternates in submission order.
//
// # Usage
//
// Synchronous, for the CLI:
//
//	ctl := controller.New(client, state)
//	reply, err := ctl.Submit(ctx, text)
//
// Split, for the TUI (Begin inside Update, Finish inside a tea.Cmd):
//
//	userMsg, err := ctl.Begin(text)
//	...
//	botMsg := ctl.Finish(ctx, text)
package controller
