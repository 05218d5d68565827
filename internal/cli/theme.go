// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/plainlaw/internal/model"
)

func (a *App) themeCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [show|toggle|light|dark]",
		Short:     "Show or change the saved theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"show", "toggle", "light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "show"
			if len(args) == 1 {
				action = args[0]
			}
			return a.runTheme(action)
		},
	}
}

func (a *App) runTheme(action string) error {
	var target model.Theme
	switch action {
	case "show", "toggle":
	default:
		t, err := model.ParseTheme(action)
		if err != nil {
			return NewUsageError("theme", err.Error(), "plainlaw theme dark")
		}
		target = t
	}

	rt, err := a.open(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	switch action {
	case "show":
	case "toggle":
		if _, err := rt.State.ToggleTheme(); err != nil {
			return NewCommandError("theme", "toggle", "cannot save theme", err)
		}
	default:
		if err := rt.State.SetTheme(target); err != nil {
			return NewCommandError("theme", "set", "cannot save theme", err)
		}
	}

	fmt.Fprintln(a.Stdout, rt.State.Theme())
	return nil
}
