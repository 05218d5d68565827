// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			s := newStyles(a.Stdout)
			fmt.Fprintf(a.Stdout, "%s v%s\n", s.Title.Render("plainlaw"), Version)
			fmt.Fprintf(a.Stdout, "%s%s\n", s.Label.Render("Commit:"), GitCommit)
			fmt.Fprintf(a.Stdout, "%s%s\n", s.Label.Render("Built:"), BuildDate)
			fmt.Fprintf(a.Stdout, "%s%s %s/%s\n", s.Label.Render("Go:"), runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}
