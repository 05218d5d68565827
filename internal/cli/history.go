// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/plainlaw/internal/export"
	"github.com/jeranaias/plainlaw/internal/storage"
)

func (a *App) historyCommand() *cobra.Command {
	var (
		asJSON bool
		limit  int
	)

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the saved transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHistoryShow(asJSON, limit)
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "print the stored JSON records")
	show.Flags().IntVarP(&limit, "limit", "n", 0, "only the last N messages (0 for all)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHistoryClear()
		},
	}

	var (
		format string
		output string
		title  string
	)
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the saved transcript as Markdown, JSON or HTML",
		Example: `  plainlaw history export > lease.md
  plainlaw history export -f html -o lease.html
  plainlaw history export -f json -o ./exports/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHistoryExport(format, output, title)
		},
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", "md", "output format: md, json or html")
	exportCmd.Flags().StringVarP(&output, "output", "o", "-", "file or directory to write (- for stdout)")
	exportCmd.Flags().StringVar(&title, "title", "", "document title")

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect, clear or export the saved transcript",
		Args:  cobra.NoArgs,
		RunE:  show.RunE,
	}
	cmd.Flags().AddFlagSet(show.Flags())
	cmd.AddCommand(show, clearCmd, exportCmd)
	return cmd
}

func (a *App) runHistoryShow(asJSON bool, limit int) error {
	if limit < 0 {
		return NewUsageError("history", "--limit must not be negative", "plainlaw history show -n 10")
	}

	rt, err := a.open(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	msgs := rt.Controller.Messages()
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}

	if asJSON {
		raw, err := storage.EncodeHistory(msgs)
		if err != nil {
			return NewCommandError("history", "show", "cannot encode history", err)
		}
		fmt.Fprintln(a.Stdout, raw)
		return nil
	}

	if len(msgs) == 0 {
		fmt.Fprintln(a.Stdout, newStyles(a.Stdout).Dim.Render("No saved messages."))
		return nil
	}
	p := newPrinter(a.Stdout, rt.State.Theme(), rt.Config.UI.Markdown, true)
	for _, msg := range msgs {
		p.PrintLabeled(msg)
	}
	return nil
}

func (a *App) runHistoryClear() error {
	rt, err := a.open(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	n := len(rt.Controller.Messages())
	if err := rt.Controller.Clear(); err != nil {
		return NewCommandError("history", "clear", "cannot delete saved history", err)
	}
	fmt.Fprintln(a.Stdout, newStyles(a.Stdout).Success.Render(fmt.Sprintf("Cleared %d messages.", n)))
	return nil
}

func (a *App) runHistoryExport(format, output, title string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return NewUsageError("history export", err.Error(), "plainlaw history export -f html -o transcript.html")
	}

	rt, err := a.open(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	opts := export.DefaultOptions()
	opts.Theme = rt.State.Theme()
	if strings.TrimSpace(title) != "" {
		opts.Title = title
	}
	exp, err := export.New(f, opts)
	if err != nil {
		return NewCommandError("history", "export", "cannot create exporter", err)
	}

	msgs := rt.Controller.Messages()
	if len(msgs) == 0 {
		return NewCommandError("history", "export", "nothing to export", export.ErrEmpty)
	}

	switch {
	case output == "" || output == "-":
		data, err := exp.Export(msgs)
		if err != nil {
			return NewCommandError("history", "export", "export failed", err)
		}
		_, err = a.Stdout.Write(data)
		return err
	case isDir(output):
		path, err := export.ToFile(msgs, exp, output, opts)
		if err != nil {
			return NewCommandError("history", "export", "export failed", err)
		}
		a.reportExport(path, len(msgs))
		return nil
	default:
		data, err := exp.Export(msgs)
		if err != nil {
			return NewCommandError("history", "export", "export failed", err)
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return NewCommandError("history", "export", "cannot write "+output, err)
		}
		a.reportExport(output, len(msgs))
		return nil
	}
}

func (a *App) reportExport(path string, n int) {
	msg := fmt.Sprintf("Exported %d messages to %s", n, path)
	fmt.Fprintln(a.Stdout, newStyles(a.Stdout).Success.Render(msg))
}

// isDir reports whether path names an existing directory or ends with a
// separator.
func isDir(path string) bool {
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(os.PathSeparator)) {
		return true
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
