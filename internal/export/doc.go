// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a saved transcript out as a standalone document.
//
// # Key Types
//
//   - Format: output format (Markdown, JSON, HTML)
//   - Exporter: renders a list of messages in one format
//   - Options: title, theme and metadata switches
//
// # Usage
//
//	exp, err := export.New(export.FormatHTML, export.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	path, err := export.ToFile(msgs, exp, "./exports")
package export
