// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/jeranaias/plainlaw/internal/controller"
	"github.com/jeranaias/plainlaw/internal/model"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports the transcript as a self-contained HTML page.
type HTMLExporter struct {
	options  *Options
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{
		options:  opts,
		markdown: goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:   bluemonday.UGCPolicy(),
	}
}

// Export converts the transcript to HTML. Replies are rendered from
// Markdown and sanitized; user text is escaped verbatim.
func (e *HTMLExporter) Export(msgs []model.Message) ([]byte, error) {
	if err := validate(msgs); err != nil {
		return nil, err
	}

	var sb strings.Builder
	title := html.EscapeString(e.options.Title)

	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", title))
	sb.WriteString("    <meta name=\"generator\" content=\"plainlaw\">\n")
	sb.WriteString(css)
	sb.WriteString("</head>\n")
	sb.WriteString(fmt.Sprintf("<body class=\"%s-theme\">\n", e.options.Theme.String()))
	sb.WriteString("    <div class=\"container\">\n")

	if e.options.IncludeMetadata {
		sb.WriteString("        <header class=\"header\">\n")
		sb.WriteString(fmt.Sprintf("            <h1>%s</h1>\n", title))
		sb.WriteString(fmt.Sprintf("            <div class=\"metadata\">%d messages, exported %s</div>\n",
			len(msgs), e.options.now().Format(time.RFC1123)))
		sb.WriteString("        </header>\n")
	}

	sb.WriteString("        <main class=\"conversation\">\n")
	for _, msg := range msgs {
		body, err := e.renderMessage(msg)
		if err != nil {
			return nil, err
		}
		sb.WriteString(body)
	}
	sb.WriteString("        </main>\n")
	sb.WriteString("        <footer class=\"footer\">Generated by plainlaw. Not legal advice.</footer>\n")
	sb.WriteString("    </div>\n</body>\n</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

func (e *HTMLExporter) renderMessage(msg model.Message) (string, error) {
	class := "bot-message"
	switch {
	case msg.IsUser:
		class = "user-message"
	case controller.IsApology(msg):
		class = "error-message"
	}

	var content string
	if msg.IsUser {
		content = "<pre>" + html.EscapeString(msg.Text) + "</pre>"
	} else {
		var buf bytes.Buffer
		if err := e.markdown.Convert([]byte(msg.Text), &buf); err != nil {
			return "", fmt.Errorf("render reply: %w", err)
		}
		content = string(e.policy.SanitizeBytes(buf.Bytes()))
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("            <div class=\"message %s\">\n", class))
	sb.WriteString(fmt.Sprintf("                <div class=\"role-label\">%s</div>\n", html.EscapeString(roleLabel(msg))))
	sb.WriteString("                <div class=\"message-content\">")
	sb.WriteString(content)
	sb.WriteString("</div>\n")
	sb.WriteString("            </div>\n")
	return sb.String(), nil
}

const css = `    <style>
        body { margin: 0; font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; line-height: 1.5; }
        .light-theme { background: #f7f7f5; color: #1f2328; }
        .dark-theme { background: #1e1e2e; color: #cdd6f4; }
        .container { max-width: 820px; margin: 0 auto; padding: 24px; }
        .header h1 { margin-bottom: 4px; }
        .metadata, .footer { font-size: 0.85em; opacity: 0.7; }
        .message { border-radius: 8px; padding: 12px 16px; margin: 12px 0; }
        .light-theme .user-message { background: #e3ecfa; }
        .light-theme .bot-message { background: #ffffff; border: 1px solid #d0d7de; }
        .light-theme .error-message { background: #fdecea; border: 1px solid #e5534b; }
        .dark-theme .user-message { background: #313244; }
        .dark-theme .bot-message { background: #181825; border: 1px solid #45475a; }
        .dark-theme .error-message { background: #3b1f26; border: 1px solid #f38ba8; }
        .role-label { font-weight: 600; margin-bottom: 6px; }
        .message-content pre { white-space: pre-wrap; word-wrap: break-word; margin: 0; font-family: inherit; }
        .footer { margin-top: 32px; text-align: center; }
    </style>
`
