// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texeldock/main.go
// Summary: texeldock command: interactive docking workspace plus layout and preset management.
// Usage: `texeldock run` opens the workspace; `texeldock layout|preset ...` manage stored layouts.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/framegrace/texeldock/internal/cli"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "texeldock",
		Short:   "Docking tabbed workspace for the terminal",
		Version: version,
		Long: `texeldock arranges panels as tabs in a split tree and in floating windows.
Drag a tab onto an edge to split, onto a tab bar to regroup, or outside to float it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.LayoutCmd())
	rootCmd.AddCommand(cli.PresetCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
