// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/cli/preset.go
// Summary: The `preset` commands: named layouts stored inside a slot's record.

package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/framegrace/texeldock/dock"
)

// PresetCmd returns the `preset` command tree.
func PresetCmd() *cobra.Command {
	var slot string
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage named layout presets",
		Long: `Presets are named layouts kept alongside the layout in a slot.
Applying a preset replaces the slot's layout; the next run opens it.`,
	}
	cmd.PersistentFlags().StringVar(&slot, "slot", "", "Slot whose presets to use (default from config)")
	cmd.AddCommand(presetListCmd(&slot))
	cmd.AddCommand(presetSaveCmd(&slot))
	cmd.AddCommand(presetApplyCmd(&slot))
	cmd.AddCommand(presetDeleteCmd(&slot))
	return cmd
}

// editPresets loads the slot into a headless workspace, runs fn and saves
// the captured result.
func editPresets(ctx context.Context, cmd *cobra.Command, slot string, fn func(e *env, ws *dock.Workspace) error) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	name := e.slotName(slot)
	rec, err := e.loadRecord(ctx, name, false)
	if err != nil {
		return err
	}
	ws, report, err := e.headless(rec)
	if err != nil {
		return fmt.Errorf("failed to load slot %q: %w", name, err)
	}
	defer closeContents(ws)
	printWarnings(cmd.ErrOrStderr(), report)

	if err := fn(e, ws); err != nil {
		return err
	}
	if err := e.store.Save(ctx, name, ws.Capture()); err != nil {
		return fmt.Errorf("failed to save slot %q: %w", name, err)
	}
	return nil
}

func presetListCmd(slot *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			rec, err := e.loadRecord(cmd.Context(), e.slotName(*slot), false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(rec.NamedPresets) == 0 {
				fmt.Fprintln(out, "No presets")
				return nil
			}
			names := make([]string, 0, len(rec.NamedPresets))
			for name := range rec.NamedPresets {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Fprintf(out, "Found %d preset(s):\n\n", len(names))
			for _, name := range names {
				p := rec.NamedPresets[name]
				fmt.Fprintf(out, "  %s  %s\n",
					color.New(color.FgHiGreen).Sprintf("%-16s", name),
					color.New(color.FgCyan).Sprintf("%d tabs, %d windows", countTabs(p), len(p.FloatingWindows)))
			}
			return nil
		},
	}
}

func presetSaveCmd(slot *string) *cobra.Command {
	return &cobra.Command{
		Use:   "save [name]",
		Short: "Save the slot's current layout as a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			err := editPresets(cmd.Context(), cmd, *slot, func(_ *env, ws *dock.Workspace) error {
				return ws.SavePreset(name)
			})
			if err != nil {
				return fmt.Errorf("failed to save preset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved preset %s\n", name)
			return nil
		},
	}
}

func presetApplyCmd(slot *string) *cobra.Command {
	return &cobra.Command{
		Use:   "apply [name]",
		Short: "Replace the slot's layout with a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			var report dock.LoadReport
			err := editPresets(cmd.Context(), cmd, *slot, func(e *env, ws *dock.Workspace) error {
				var err error
				report, err = ws.ApplyPreset(name, e.reg)
				return err
			})
			if err != nil {
				return fmt.Errorf("failed to apply preset: %w", err)
			}
			printWarnings(cmd.ErrOrStderr(), report)
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Applied preset %s: %d tabs, %d windows\n", name, report.Tabs, report.Windows)
			return nil
		},
	}
}

func presetDeleteCmd(slot *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			err := editPresets(cmd.Context(), cmd, *slot, func(_ *env, ws *dock.Workspace) error {
				if !ws.DeletePreset(name) {
					return fmt.Errorf("%w: no preset %q", dock.ErrInvalidTarget, name)
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to delete preset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted preset %s\n", name)
			return nil
		},
	}
}
