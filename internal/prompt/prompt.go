// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt builds the text sent to the generation endpoint.
package prompt

// SystemPrompt is the fixed instruction block prepended to every request.
const SystemPrompt = `You are a legal document simplifier. Your task is to rewrite legal documents in plain, easy-to-understand language for non-lawyers.

Rules:
- Always be clear, concise, and accurate
- Use simple words instead of complex legal terms
- Break down complex sentences into shorter ones
- Explain any remaining legal terms in parentheses
- Maintain the original meaning and intent
- Do not give legal advice or opinions
- Focus only on simplifying the text provided
- If the text is not legal content, politely explain that you only simplify legal documents`

// Separator sits between SystemPrompt and the user's text.
const Separator = "\n\nPlease simplify this legal text:\n\n"

// Greeting is shown in place of an empty transcript.
const Greeting = "Hello! I'm your Legal Document Simplifier. Paste a legal document or section in the box below, and I'll rewrite it in plain, easy-to-understand language. I don't provide legal advice, just clear explanations of legal text."

// Compose returns the request text for input. The input is used verbatim:
// typed text, decoded file content, or an image data URI.
func Compose(input string) string {
	return SystemPrompt + Separator + input
}
