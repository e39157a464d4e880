// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/cli/env.go
// Summary: Shared setup for CLI commands: config, layout store, content registry and headless workspaces.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"

	// Built-in content types register themselves in init.
	_ "github.com/framegrace/texeldock/apps/clock"
	_ "github.com/framegrace/texeldock/apps/command"
	_ "github.com/framegrace/texeldock/apps/notes"
	_ "github.com/framegrace/texeldock/apps/source"

	"github.com/framegrace/texeldock/config"
	"github.com/framegrace/texeldock/defaults"
	"github.com/framegrace/texeldock/dock"
	"github.com/framegrace/texeldock/registry"
	"github.com/framegrace/texeldock/storage"
)

type env struct {
	cfg   config.Config
	store storage.LayoutStore
	reg   *registry.Registry
}

func openEnv() (*env, error) {
	cfg := config.System()
	if err := config.Err(); err != nil {
		log.Printf("Config: Using defaults after load error: %v", err)
	}
	root, err := config.Root()
	if err != nil {
		return nil, fmt.Errorf("resolve config directory: %w", err)
	}
	store, err := storage.Open(cfg, root)
	if err != nil {
		return nil, fmt.Errorf("open layout store: %w", err)
	}

	reg := registry.New()
	registry.RegisterBuiltIns(reg)
	if cfg.GetBool("", "manifestScan", true) {
		if dir, err := config.ManifestDir(); err == nil {
			if err := reg.Scan(dir); err != nil {
				log.Printf("Registry: %v", err)
			}
		}
	}
	return &env{cfg: cfg, store: store, reg: reg}, nil
}

func (e *env) Close() error { return e.store.Close() }

// slotName returns the explicit slot or the configured default slot.
func (e *env) slotName(slot string) string {
	if slot != "" {
		return slot
	}
	return e.cfg.GetString("", "defaultSlot", storage.AutosaveSlot)
}

func starterLayout() (dock.LayoutRecord, error) {
	data, err := defaults.Layout()
	if err != nil {
		return dock.LayoutRecord{}, fmt.Errorf("read starter layout: %w", err)
	}
	return storage.Decode(data, storage.FormatJSON)
}

// loadRecord returns the layout in slot, or the starter layout when the
// slot is empty or fresh is set. A slot written by a newer texeldock fails
// with dock.ErrUnsupportedVersion even when fresh is set, so the caller
// never replaces it.
func (e *env) loadRecord(ctx context.Context, slot string, fresh bool) (dock.LayoutRecord, error) {
	rec, err := e.store.Load(ctx, slot)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		log.Printf("CLI: Slot %q is empty, using the starter layout", slot)
		return starterLayout()
	case err != nil:
		return dock.LayoutRecord{}, fmt.Errorf("load slot %q: %w", slot, err)
	case rec.Version > dock.LayoutVersion:
		return dock.LayoutRecord{}, fmt.Errorf("slot %q: %w: record version %d, supported up to %d",
			slot, dock.ErrUnsupportedVersion, rec.Version, dock.LayoutVersion)
	case fresh:
		return starterLayout()
	}
	return rec, nil
}

// headless rebuilds rec in a workspace that is never drawn. Content is
// constructed but background work only starts once a host wires refresh.
func (e *env) headless(rec dock.LayoutRecord) (*dock.Workspace, dock.LoadReport, error) {
	ws := dock.NewWorkspace(dock.TerminalSettings(), nil)
	report, err := ws.Apply(rec, e.reg)
	if err != nil {
		return nil, report, err
	}
	return ws, report, nil
}

// closeContents lets every content release its resources.
func closeContents(ws *dock.Workspace) {
	for _, t := range ws.Tabs() {
		if t.Content != nil {
			t.Content.OnClose()
		}
	}
}

func printWarnings(w io.Writer, report dock.LoadReport) {
	warn := color.New(color.FgYellow)
	for _, err := range report.Warnings {
		fmt.Fprintf(w, "%s %v\n", warn.Sprint("!"), err)
	}
}

// countTabs counts every tab in rec, docked and floating.
func countTabs(rec dock.LayoutRecord) int {
	var walk func(n *dock.NodeRecord) int
	walk = func(n *dock.NodeRecord) int {
		if n == nil {
			return 0
		}
		return len(n.Tabs) + walk(n.Left) + walk(n.Right)
	}
	total := walk(rec.Root)
	for _, w := range rec.FloatingWindows {
		total += len(w.Tabs)
	}
	return total
}
