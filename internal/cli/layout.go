// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/cli/layout.go
// Summary: The `layout` commands: export, import, list and delete stored layouts.

package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/framegrace/texeldock/storage"
)

// LayoutCmd returns the `layout` command tree.
func LayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Export, import and manage stored layouts",
	}
	cmd.AddCommand(layoutExportCmd())
	cmd.AddCommand(layoutImportCmd())
	cmd.AddCommand(layoutListCmd())
	cmd.AddCommand(layoutDeleteCmd())
	return cmd
}

// resolveFormat prefers the flag, then the file extension.
func resolveFormat(flag, path string) (storage.Format, error) {
	if flag != "" {
		return storage.ParseFormat(flag)
	}
	if path != "" {
		return storage.FormatForPath(path), nil
	}
	return storage.FormatJSON, nil
}

func layoutExportCmd() *cobra.Command {
	var slot, format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a stored layout as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveFormat(format, output)
			if err != nil {
				return err
			}
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			name := e.slotName(slot)
			rec, err := e.store.Load(cmd.Context(), name)
			if err != nil {
				return fmt.Errorf("failed to load slot %q: %w", name, err)
			}
			data, err := storage.Encode(rec, f)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %s (%d tabs) to %s\n", name, countTabs(rec), output)
			return nil
		},
	}
	cmd.Flags().StringVar(&slot, "slot", "", "Slot to export (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json or yaml (default from --output, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func layoutImportCmd() *cobra.Command {
	var slot, format string
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Load a JSON or YAML layout into a slot",
		Long: `Load a layout file, rebuild it to check it, and store the result.
Tabs whose content type is unknown are dropped with a warning.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := resolveFormat(format, path)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			rec, err := storage.Decode(data, f)
			if err != nil {
				return err
			}

			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			ws, report, err := e.headless(rec)
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", path, err)
			}
			defer closeContents(ws)
			printWarnings(cmd.ErrOrStderr(), report)

			name := e.slotName(slot)
			if err := e.store.Save(cmd.Context(), name, ws.Capture()); err != nil {
				return fmt.Errorf("failed to save slot %q: %w", name, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %s into %s: %d tabs, %d windows, %d skipped\n",
				path, name, report.Tabs, report.Windows, report.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&slot, "slot", "", "Slot to write (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format: json or yaml (default from the extension)")
	return cmd
}

func layoutListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored layout slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			slots, err := e.store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list slots: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(slots) == 0 {
				fmt.Fprintln(out, "No saved layouts")
				return nil
			}
			def := e.slotName("")
			for _, s := range slots {
				marker := ""
				if s.Slot == def {
					marker = color.New(color.FgHiMagenta).Sprint(" [default]")
				}
				fmt.Fprintf(out, "%-16s v%d  %s%s\n",
					color.New(color.FgCyan).Sprint(s.Slot), s.Version,
					s.UpdatedAt.Local().Format("2006-01-02 15:04"), marker)
			}
			return nil
		},
	}
}

func layoutDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [slot]",
		Short: "Delete a stored layout slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.Close()
			if err := e.store.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("failed to delete slot %q: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted slot %s\n", args[0])
			return nil
		},
	}
}
