// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the plainlaw command line.
//
// Running plainlaw with no subcommand starts the terminal UI. The other
// commands share the same config, store and controller:
//
//	plainlaw                      Start the chat UI
//	plainlaw simplify [files...]  Simplify files, or stdin when piped
//	plainlaw repl                 Line-mode chat with input history
//	plainlaw history [show|clear] Inspect or clear the saved transcript
//	plainlaw history export       Write the transcript as md, json or html
//	plainlaw theme [show|toggle|light|dark]
//	plainlaw config [show|path|init]
//	plainlaw version
//
// Global flags: --config, --log-level, --log-file, --store.
package cli
