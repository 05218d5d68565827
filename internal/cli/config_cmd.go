// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeranaias/plainlaw/internal/config"
)

func (a *App) configCommand() *cobra.Command {
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (API key redacted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := a.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.Stdout, cfg.String())
			return nil
		},
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.configPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.Stdout, p)
			return nil
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConfigInit(force)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
		Args:  cobra.NoArgs,
		RunE:  show.RunE,
	}
	cmd.AddCommand(show, path, initCmd)
	return cmd
}

func (a *App) configPath() (string, error) {
	if a.Options.ConfigPath != "" {
		return a.Options.ConfigPath, nil
	}
	p, err := config.ConfigPath()
	if err != nil {
		return "", NewConfigError(err)
	}
	return p, nil
}

func (a *App) runConfigInit(force bool) error {
	p, err := a.configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(p); err == nil && !force {
		return NewUsageError("config init", p+" already exists", "plainlaw config init --force")
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return NewConfigError(err)
	}

	if err := config.SaveTOML(config.Default(), p); err != nil {
		return NewConfigError(err)
	}
	s := newStyles(a.Stdout)
	fmt.Fprintln(a.Stdout, s.Success.Render("Wrote "+p))
	fmt.Fprintf(a.Stdout, "Set your key under [api] or export %s.\n", config.EnvAPIKey)
	return nil
}
