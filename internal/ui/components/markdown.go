// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders bot replies with glamour. Renderers are costly
// to build, so one is cached per style and wrap width.
type MarkdownRenderer struct {
	mu    sync.Mutex
	cache map[rendererKey]*glamour.TermRenderer
}

type rendererKey struct {
	style string
	width int
}

// NewMarkdownRenderer creates an empty renderer cache.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{cache: make(map[rendererKey]*glamour.TermRenderer)}
}

// Render converts text to styled terminal output. On any glamour failure
// the plain text is returned.
func (m *MarkdownRenderer) Render(text, style string, width int) string {
	if width < 20 {
		width = 20
	}
	r, err := m.renderer(style, width)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func (m *MarkdownRenderer) renderer(style string, width int) (*glamour.TermRenderer, error) {
	key := rendererKey{style: style, width: width}

	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.cache[key]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	m.cache[key] = r
	return r, nil
}
