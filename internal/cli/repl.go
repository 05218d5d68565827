// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/plainlaw/internal/config"
	"github.com/jeranaias/plainlaw/internal/controller"
	"github.com/jeranaias/plainlaw/internal/ingest"
	"github.com/jeranaias/plainlaw/internal/logger"
	"github.com/jeranaias/plainlaw/internal/model"
	"github.com/jeranaias/plainlaw/internal/prompt"
)

const (
	replPrompt         = "plainlaw> "
	replContinuePrompt = "     ...> "
)

func (a *App) replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Line-mode chat with input history",
		Long: `repl is a plain line-mode alternative to the chat UI. End a line with a
backslash to continue it on the next line. Commands: /upload, /clear,
/theme, /history, /help and /quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd.Context())
		},
	}
}

func (a *App) runREPL(ctx context.Context) error {
	if err := a.requireTTY("repl", "cat lease.txt | plainlaw simplify"); err != nil {
		return err
	}

	rt, err := a.open(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	src := newLinerSource(replHistoryFile())
	defer src.Close()

	r := newREPLSession(rt, a.Stdout)
	if !rt.Client.Configured() {
		fmt.Fprintln(a.Stdout, r.s.Error.Render(noKeyHint))
	}
	return r.loop(ctx, src)
}

// noKeyHint is printed when no API key is configured.
const noKeyHint = "No API key configured: set PLAINLAW_API_KEY or run \"plainlaw config init\"."

// =============================================================================
// LINE SOURCE
// =============================================================================

// lineSource supplies REPL input one line at a time.
type lineSource interface {
	ReadLine(prompt string) (string, error)
}

// linerSource provides line editing and history navigation.
type linerSource struct {
	line        *liner.State
	historyFile string
}

func newLinerSource(historyFile string) *linerSource {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	src := &linerSource{line: line, historyFile: historyFile}
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	return src
}

// ReadLine reads one line and records it in history.
func (l *linerSource) ReadLine(prompt string) (string, error) {
	input, err := l.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		l.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history with owner-only permissions and restores the terminal.
func (l *linerSource) Close() {
	if err := os.MkdirAll(filepath.Dir(l.historyFile), 0700); err == nil {
		if f, err := os.OpenFile(l.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			l.line.WriteHistory(f)
			f.Close()
		}
	}
	l.line.Close()
}

func replHistoryFile() string {
	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "repl_history")
}

// =============================================================================
// SESSION
// =============================================================================

type replSession struct {
	rt      *Runtime
	out     io.Writer
	s       cliStyles
	printer *transcriptPrinter
}

func newREPLSession(rt *Runtime, out io.Writer) *replSession {
	markdown := rt.Config != nil && rt.Config.UI.Markdown
	r := &replSession{
		rt:      rt,
		out:     out,
		s:       newStyles(out),
		printer: newPrinter(out, rt.State.Theme(), markdown, false),
	}
	rt.Controller.OnAppend(r.printer.Print)
	return r
}

// loop reads until EOF, Ctrl+C at the prompt, or /quit.
func (r *replSession) loop(ctx context.Context, src lineSource) error {
	fmt.Fprintln(r.out, r.s.Title.Render("plainlaw"))
	fmt.Fprintln(r.out, prompt.Greeting)
	fmt.Fprintln(r.out, r.s.Dim.Render("Type /help for commands."))
	fmt.Fprintln(r.out)

	for {
		input, err := readInput(src)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(r.out)
				return nil
			}
			return err
		}
		if !r.handle(ctx, input) {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// readInput joins backslash-continued lines.
func readInput(src lineSource) (string, error) {
	var lines []string
	p := replPrompt
	for {
		line, err := src.ReadLine(p)
		if err != nil {
			if len(lines) > 0 && errors.Is(err, io.EOF) {
				return strings.Join(lines, "\n"), nil
			}
			return "", err
		}
		if strings.HasSuffix(line, "\\") {
			lines = append(lines, strings.TrimSuffix(line, "\\"))
			p = replContinuePrompt
			continue
		}
		lines = append(lines, line)
		return strings.Join(lines, "\n"), nil
	}
}

// handle runs one input and reports whether the REPL should continue.
func (r *replSession) handle(ctx context.Context, input string) bool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return true
	}

	if strings.HasPrefix(trimmed, "/") && !strings.Contains(trimmed, "\n") {
		fields := strings.Fields(trimmed)
		name := strings.ToLower(strings.TrimPrefix(fields[0], "/"))
		if cont, ok := r.command(ctx, name, fields[1:]); ok {
			return cont
		}
	}

	reqCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	if _, err := r.rt.Controller.Submit(reqCtx, input); err != nil {
		r.errorf("%v", err)
	}
	return true
}

// command runs a slash command. ok is false for unknown names, which are
// then sent as ordinary text.
func (r *replSession) command(ctx context.Context, name string, args []string) (cont, ok bool) {
	switch name {
	case "quit", "exit", "q":
		return false, true

	case "help", "h", "?":
		fmt.Fprintln(r.out, strings.Join([]string{
			"/upload <file...>   simplify files (globs and ~ allowed)",
			"/clear              clear the saved history",
			"/theme [light|dark] show or set the theme",
			"/history            print the transcript",
			"/quit               exit",
			"End a line with \\ to continue on the next line.",
		}, "\n"))

	case "clear":
		if err := r.rt.Controller.Clear(); err != nil {
			r.errorf("failed to clear history: %v", err)
		} else {
			fmt.Fprintln(r.out, r.s.Success.Render("History cleared."))
		}

	case "theme":
		r.theme(args)

	case "history":
		for _, msg := range r.rt.Controller.Messages() {
			r.printer.PrintLabeled(msg)
		}

	case "upload", "up":
		r.upload(ctx, args)

	default:
		return true, false
	}
	return true, true
}

func (r *replSession) theme(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Theme: %s\n", r.rt.State.Theme())
		return
	}
	t, err := model.ParseTheme(args[0])
	if err != nil {
		r.errorf("%v", err)
		return
	}
	if err := r.rt.State.SetTheme(t); err != nil {
		r.errorf("failed to save theme: %v", err)
		return
	}
	r.printer.mdStyle = t.String()
	fmt.Fprintf(r.out, "Theme: %s\n", t)
}

func (r *replSession) upload(ctx context.Context, args []string) {
	paths := ingest.ExpandPaths(args)
	sources := make([]ingest.Source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, ingest.FromPath(p))
	}

	r.printer.echoUser = true
	defer func() { r.printer.echoUser = false }()

	reqCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	if err := r.rt.Controller.Upload(reqCtx, sources); err != nil {
		if errors.Is(err, controller.ErrNoFiles) {
			r.errorf("usage: /upload <file> [file...]")
			return
		}
		r.errorf("%v", err)
		return
	}
	logger.Debug("repl upload finished", "files", len(sources))
}

func (r *replSession) errorf(format string, args ...interface{}) {
	fmt.Fprintln(r.out, r.s.Error.Render(fmt.Sprintf(format, args...)))
}
