// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/plainlaw/internal/controller"
	"github.com/jeranaias/plainlaw/internal/model"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports the transcript as an indented JSON document.
type JSONExporter struct {
	options *Options
}

type jsonDocument struct {
	Title     string        `json:"title"`
	Theme     string        `json:"theme"`
	Exported  string        `json:"exported"`
	Generator string        `json:"generator"`
	Messages  []jsonMessage `json:"messages"`
}

type jsonMessage struct {
	Sender string `json:"sender"`
	IsUser bool   `json:"is_user"`
	Error  bool   `json:"error,omitempty"`
	Text   string `json:"text"`
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts the transcript to JSON.
func (e *JSONExporter) Export(msgs []model.Message) ([]byte, error) {
	if err := validate(msgs); err != nil {
		return nil, err
	}

	doc := jsonDocument{
		Title:     e.options.Title,
		Theme:     e.options.Theme.String(),
		Exported:  e.options.now().Format(time.RFC3339),
		Generator: "plainlaw",
		Messages:  make([]jsonMessage, 0, len(msgs)),
	}
	for _, msg := range msgs {
		doc.Messages = append(doc.Messages, jsonMessage{
			Sender: msg.Sender(),
			IsUser: msg.IsUser,
			Error:  controller.IsApology(msg),
			Text:   msg.Text,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
