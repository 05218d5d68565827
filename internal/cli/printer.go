// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"

	"github.com/jeranaias/plainlaw/internal/controller"
	"github.com/jeranaias/plainlaw/internal/model"
	"github.com/jeranaias/plainlaw/internal/ui/components"
)

// transcriptPrinter writes messages to a line-mode output.
type transcriptPrinter struct {
	w        io.Writer
	s        cliStyles
	md       *components.MarkdownRenderer
	mdStyle  string
	width    int
	echoUser bool
}

// newPrinter creates a printer for w. Markdown is rendered only when
// markdown is set and w is a terminal.
func newPrinter(w io.Writer, theme model.Theme, markdown, echoUser bool) *transcriptPrinter {
	p := &transcriptPrinter{
		w:        w,
		s:        newStyles(w),
		mdStyle:  theme.String(),
		width:    terminalWidth(w),
		echoUser: echoUser,
	}
	if markdown && isTerminal(w) {
		p.md = components.NewMarkdownRenderer()
	}
	return p
}

// Print writes msg. User messages are skipped unless echoUser is set.
func (p *transcriptPrinter) Print(msg model.Message) {
	switch {
	case msg.IsUser:
		if p.echoUser {
			fmt.Fprintln(p.w, p.s.User.Render(msg.Text))
		}
	case controller.IsApology(msg):
		fmt.Fprintln(p.w, p.s.Error.Render(msg.Text))
		fmt.Fprintln(p.w)
	default:
		text := msg.Text
		if p.md != nil {
			text = p.md.Render(text, p.mdStyle, p.width-4)
		}
		fmt.Fprintln(p.w, text)
		fmt.Fprintln(p.w)
	}
}

// PrintLabeled writes msg under a sender label, as history and the REPL do.
func (p *transcriptPrinter) PrintLabeled(msg model.Message) {
	label := p.s.Bot.Render(msg.Sender())
	if msg.IsUser {
		label = p.s.User.Render(msg.Sender())
	}
	fmt.Fprintln(p.w, label)
	if msg.IsUser {
		fmt.Fprintln(p.w, msg.Text)
		fmt.Fprintln(p.w)
		return
	}
	p.Print(msg)
}
