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

	"github.com/spf13/cobra"

	"github.com/jeranaias/plainlaw/internal/controller"
	"github.com/jeranaias/plainlaw/internal/ingest"
	"github.com/jeranaias/plainlaw/internal/model"
)

func (a *App) simplifyCommand() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "simplify [files...]",
		Short: "Simplify files or piped text and print the result",
		Long: `Simplify sends each file, or standard input when no files are given,
and prints the plain-English version. Results are added to the saved
history just like in the chat UI.`,
		Example: `  plainlaw simplify lease.txt
  plainlaw simplify ~/contracts/*.txt
  cat clause.txt | plainlaw simplify --raw > clause.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSimplify(cmd.Context(), args, raw)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print replies as plain text without markdown rendering")
	return cmd
}

func (a *App) runSimplify(ctx context.Context, args []string, raw bool) error {
	if len(args) == 0 && isTerminal(a.Stdin) {
		return NewUsageError("simplify", "no input: pass files or pipe text on stdin",
			"cat lease.txt | plainlaw simplify")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	rt, err := a.open(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	printer := newPrinter(a.Stdout, rt.State.Theme(), rt.Config.UI.Markdown && !raw, len(args) > 0)
	failed := 0
	rt.Controller.OnAppend(func(msg model.Message) {
		if controller.IsApology(msg) {
			failed++
		}
		printer.Print(msg)
	})

	if len(args) == 0 {
		data, err := io.ReadAll(a.Stdin)
		if err != nil {
			return NewCommandError("simplify", "read", "cannot read standard input", err)
		}
		if _, err := rt.Controller.Submit(ctx, string(data)); err != nil {
			if errors.Is(err, controller.ErrEmptyInput) {
				return NewUsageError("simplify", "standard input was empty", "")
			}
			return err
		}
	} else {
		paths := ingest.ExpandPaths(args)
		sources := make([]ingest.Source, 0, len(paths))
		for _, p := range paths {
			sources = append(sources, ingest.FromPath(p))
		}
		if err := rt.Controller.Upload(ctx, sources); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("simplify interrupted: %w", err)
		}
	}

	if failed > 0 {
		return &RequestError{Failed: failed}
	}
	return nil
}
