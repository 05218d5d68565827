// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

// Generation parameters. Fixed for every request.
const (
	Temperature     = 0.3
	TopK            = 40
	TopP            = 0.95
	MaxOutputTokens = 2048
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// Part is one piece of content. Only text parts are sent.
type Part struct {
	Text string `json:"text"`
}

// Content groups the parts of one turn.
type Content struct {
	Parts []Part `json:"parts"`
}

// GenerationConfig holds the sampling parameters.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// GenerateRequest is the body of a generateContent call.
type GenerateRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

// NewGenerateRequest builds the request for an already composed prompt.
func NewGenerateRequest(prompt string) GenerateRequest {
	return GenerateRequest{
		Contents: []Content{{Parts: []Part{{Text: prompt}}}},
		GenerationConfig: GenerationConfig{
			Temperature:     Temperature,
			TopK:            TopK,
			TopP:            TopP,
			MaxOutputTokens: MaxOutputTokens,
		},
	}
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// The response path is read through pointers so that an absent segment
// can be told apart from an empty one.

// ResponsePart is a part of a candidate's content.
type ResponsePart struct {
	Text *string `json:"text"`
}

// ResponseContent is a candidate's content.
type ResponseContent struct {
	Parts []ResponsePart `json:"parts"`
}

// Candidate is one generated alternative.
type Candidate struct {
	Content      *ResponseContent `json:"content"`
	FinishReason string           `json:"finishReason,omitempty"`
}

// GenerateResponse is the decoded body of a successful call.
type GenerateResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// FirstText returns candidates[0].content.parts[0].text and whether every
// segment of that path was present.
func (r *GenerateResponse) FirstText() (string, bool) {
	if r == nil || len(r.Candidates) == 0 {
		return "", false
	}
	content := r.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}
	text := content.Parts[0].Text
	if text == nil {
		return "", false
	}
	return *text, true
}
