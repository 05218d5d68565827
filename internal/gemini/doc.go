// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the HTTP client for the generateContent endpoint.
//
// Every call composes the fixed simplification prompt around the caller's
// text, issues exactly one POST, and returns the first candidate's text.
// There are no retries, no backoff and no client-side timeout; the caller
// cancels through the context.
//
// # Key Types
//
//   - Client: issues generateContent requests
//   - ClientConfig: endpoint and credential
//   - ClientError: typed failure (Configuration, Transport, ResponseFormat)
//   - GenerateRequest / GenerateResponse: wire format
//
// # Usage
//
//	client := gemini.NewClientWithConfig(&gemini.ClientConfig{APIKey: key})
//	text, err := client.Generate(ctx, "The lessor hereby demises...")
//	if gemini.IsNotConfigured(err) {
//	    fmt.Println("set PLAINLAW_API_KEY")
//	}
package gemini
