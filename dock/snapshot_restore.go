// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/snapshot_restore.go
// Summary: Rebuilds a workspace from a LayoutRecord and manages named presets.
// Usage: Apply hydrates tabs through a ContentFactory; the live layout is only replaced at the end.

package dock

import (
	"errors"
	"fmt"
	"log"
	"sort"
)

// ContentFactory rebuilds a tab from its record. Unknown content types fail
// with ErrUnknownContentType.
type ContentFactory interface {
	Construct(rec TabRecord) (*Tab, error)
}

// LoadReport summarises a load. Warnings are non-fatal: skipped tabs,
// clamped ratios, malformed nodes.
type LoadReport struct {
	Warnings []error
	Tabs     int
	Skipped  int
	Windows  int
}

func (r *LoadReport) warn(err error) {
	r.Warnings = append(r.Warnings, err)
	log.Printf("LayoutLoader: %v", err)
}

type layoutBuilder struct {
	factory ContentFactory
	legacy  bool
	report  LoadReport
}

func (b *layoutBuilder) tab(rec TabRecord) *Tab {
	t, err := b.factory.Construct(rec)
	if err != nil {
		b.report.Skipped++
		if errors.Is(err, ErrUnknownContentType) {
			b.report.warn(fmt.Errorf("skipping tab %q: %w", rec.Title, err))
		} else {
			b.report.warn(fmt.Errorf("skipping tab %q (%s): %w", rec.Title, rec.ContentType, err))
		}
		return nil
	}
	if t == nil {
		b.report.Skipped++
		b.report.warn(fmt.Errorf("skipping tab %q: factory returned no tab", rec.Title))
		return nil
	}
	if t.ContentType == "" {
		t.ContentType = rec.ContentType
	}
	if rec.Title != "" {
		t.Title = rec.Title
	}
	t.Closable = rec.Closable || b.legacy
	t.Pinned = rec.Pinned
	b.report.Tabs++
	return t
}

func (b *layoutBuilder) group(recs []TabRecord, active int) TabGroup {
	var g TabGroup
	for _, rec := range recs {
		if t := b.tab(rec); t != nil {
			g.Tabs = append(g.Tabs, t)
		}
	}
	if len(g.Tabs) > 0 {
		g.Active = clampInt(active, 0, len(g.Tabs)-1)
	}
	return g
}

// node builds a subtree depth-first. Empty leaves are dropped and splits
// that lose a child collapse into the other.
func (b *layoutBuilder) node(rec *NodeRecord) *Node {
	if rec == nil {
		return nil
	}
	switch rec.Kind {
	case KindLeaf, "":
		if rec.Left != nil || rec.Right != nil {
			break
		}
		g := b.group(rec.Tabs, rec.Active)
		if g.Len() == 0 {
			return nil
		}
		return &Node{ID: newNodeID(), Group: g}
	case KindSplit:
	default:
		b.report.warn(fmt.Errorf("%w: unknown node kind %q", ErrInvalidTarget, rec.Kind))
		return nil
	}

	dir, ok := ParseDirection(rec.Direction)
	if !ok {
		b.report.warn(fmt.Errorf("unknown split direction %q, using horizontal", rec.Direction))
	}
	ratio, warn := clampRatio(rec.Ratio)
	if warn != nil {
		b.report.warn(warn)
	}
	n := &Node{
		ID:        newNodeID(),
		Direction: dir,
		Ratio:     ratio,
		Left:      b.node(rec.Left),
		Right:     b.node(rec.Right),
	}
	return normalize(n)
}

func (b *layoutBuilder) windows(recs []WindowRecord, m *FloatingWindowManager) {
	for _, wr := range recs {
		g := b.group(wr.Tabs, wr.Active)
		if g.Len() == 0 {
			continue
		}
		win := m.Create(wr.Position, wr.Size, g.Tabs...)
		win.Group.Active = g.Active
		win.Resizable = wr.Resizable || b.legacy
		win.Minimized = wr.Minimized
		win.AlwaysOnTop = wr.AlwaysOnTop
		b.report.Windows++
	}
}

// Apply replaces the layout with rec, including its presets. A record newer
// than LayoutVersion fails with ErrUnsupportedVersion and leaves the
// workspace untouched. Content that cannot be rebuilt is skipped with a
// warning in the report.
func (w *Workspace) Apply(rec LayoutRecord, f ContentFactory) (LoadReport, error) {
	return w.apply(rec, f, true)
}

func (w *Workspace) apply(rec LayoutRecord, f ContentFactory, withPresets bool) (LoadReport, error) {
	if rec.Version > LayoutVersion {
		return LoadReport{}, fmt.Errorf("%w: record version %d, supported up to %d", ErrUnsupportedVersion, rec.Version, LayoutVersion)
	}
	if f == nil {
		return LoadReport{}, fmt.Errorf("%w: no content factory", ErrInvalidTarget)
	}

	b := &layoutBuilder{factory: f, legacy: rec.Version < 2}
	root := b.node(rec.Root)
	wm := NewFloatingWindowManager(w.settings, w.measure)
	b.windows(rec.FloatingWindows, wm)

	next := NewDockTree(w.settings, w.measure)
	next.root = root
	if err := next.Validate(); err != nil {
		return b.report, fmt.Errorf("rebuilt layout is invalid: %w", err)
	}

	old := w.Tabs()
	if prev := w.FocusedTab(); prev != nil && prev.Content != nil {
		prev.Content.OnBlur()
	}
	w.tree, w.windows = next, wm
	w.drag = DragState{}
	w.menu = nil
	w.splitDrag = 0
	w.focused, w.hoverTab, w.pressClose, w.pressMiddle = 0, 0, 0, 0
	if withPresets {
		w.presets = make(map[string]LayoutRecord, len(rec.NamedPresets))
		for name, p := range rec.NamedPresets {
			p.NamedPresets = nil
			w.presets[name] = p
		}
	}
	for _, t := range old {
		if t.Content != nil {
			t.Content.OnClose()
		}
	}
	w.relayout()
	w.refocus(nil)
	log.Printf("LayoutLoader: applied version %d layout: %d tabs, %d windows, %d skipped", rec.Version, b.report.Tabs, b.report.Windows, b.report.Skipped)
	return b.report, nil
}

// SavePreset stores the current layout (without presets) under name,
// replacing any preset with that name.
func (w *Workspace) SavePreset(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty preset name", ErrInvalidTarget)
	}
	w.presets[name] = w.captureLayout()
	return nil
}

// SetPreset stores rec under name. Nested presets are dropped.
func (w *Workspace) SetPreset(name string, rec LayoutRecord) error {
	if name == "" {
		return fmt.Errorf("%w: empty preset name", ErrInvalidTarget)
	}
	rec.NamedPresets = nil
	w.presets[name] = rec
	return nil
}

// Preset returns the stored preset.
func (w *Workspace) Preset(name string) (LayoutRecord, bool) {
	rec, ok := w.presets[name]
	return rec, ok
}

// ApplyPreset replaces the current layout with a preset. Presets themselves
// are kept.
func (w *Workspace) ApplyPreset(name string, f ContentFactory) (LoadReport, error) {
	rec, ok := w.presets[name]
	if !ok {
		return LoadReport{}, fmt.Errorf("%w: no preset %q", ErrInvalidTarget, name)
	}
	return w.apply(rec, f, false)
}

// DeletePreset removes a preset, reporting whether it existed.
func (w *Workspace) DeletePreset(name string) bool {
	_, ok := w.presets[name]
	delete(w.presets, name)
	return ok
}

// PresetNames lists presets in name order.
func (w *Workspace) PresetNames() []string {
	names := make([]string, 0, len(w.presets))
	for name := range w.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
