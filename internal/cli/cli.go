// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Build information, set with -ldflags at release time.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GlobalOptions are the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
	Store      string
}

// App carries the streams and global flags for one invocation.
type App struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Options GlobalOptions
}

// NewApp creates an App bound to the process streams.
func NewApp() *App {
	return &App{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// RootCommand builds the command tree.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "plainlaw",
		Short: "Turn legal text into plain English",
		Long: `plainlaw rewrites contracts, leases and other legal documents in plain
English. Start it with no arguments for the chat UI, or use "plainlaw
simplify" in scripts and pipelines.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context())
		},
	}
	root.SetIn(a.Stdin)
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.Options.ConfigPath, "config", "", "config file (default ~/.plainlaw/config.toml)")
	pf.StringVar(&a.Options.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.Options.LogFile, "log-file", "", "write logs to this file")
	pf.StringVar(&a.Options.Store, "store", "", "state backend: sqlite, file or memory")

	root.AddCommand(
		a.simplifyCommand(),
		a.replCommand(),
		a.historyCommand(),
		a.themeCommand(),
		a.configCommand(),
		a.versionCommand(),
	)
	return root
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	return NewApp().Run(ctx, args)
}

// Run executes args against a and returns the exit code. Errors are
// printed to a.Stderr.
func (a *App) Run(ctx context.Context, args []string) int {
	root := a.RootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		DisplayError(a.Stderr, err)
		return GetExitCode(err)
	}
	return ExitSuccess
}
