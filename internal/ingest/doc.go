// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ingest turns uploaded files into text for the generation request.
//
// Images become a self-describing data URI; everything else is decoded as
// text. The package only reads; the order of processing and the handling of
// failures within a batch belong to the controller.
//
// # Key Types
//
//   - Source: a named, typed, openable file
//   - ReadError: a file could not be read
//
// # Usage
//
//	src := ingest.FromPath("contract.txt")
//	text, err := ingest.Read(src)
package ingest
