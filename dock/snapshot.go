// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/snapshot.go
// Summary: Serializable layout records and capture of a live workspace.
// Usage: Capture produces a LayoutRecord for storage; see snapshot_restore.go for loading.

package dock

// LayoutVersion is the record format written by Capture. Version 1 records
// predate the closable and resizable flags.
const LayoutVersion = 2

// Node kinds in NodeRecord.Kind.
const (
	KindLeaf  = "leaf"
	KindSplit = "split"
)

// LayoutRecord is the persisted form of a workspace.
type LayoutRecord struct {
	Version         int                     `json:"version" yaml:"version"`
	Root            *NodeRecord             `json:"root,omitempty" yaml:"root,omitempty"`
	FloatingWindows []WindowRecord          `json:"floating_windows,omitempty" yaml:"floating_windows,omitempty"`
	NamedPresets    map[string]LayoutRecord `json:"named_presets,omitempty" yaml:"named_presets,omitempty"`
}

// NodeRecord captures a leaf (tabs, active) or a split (direction, ratio,
// children). Bounds are informational; layout is recomputed on load.
type NodeRecord struct {
	Kind      string      `json:"kind" yaml:"kind"`
	Tabs      []TabRecord `json:"tabs,omitempty" yaml:"tabs,omitempty"`
	Active    int         `json:"active,omitempty" yaml:"active,omitempty"`
	Bounds    *Rect       `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Direction string      `json:"direction,omitempty" yaml:"direction,omitempty"`
	Ratio     float64     `json:"ratio,omitempty" yaml:"ratio,omitempty"`
	Left      *NodeRecord `json:"left,omitempty" yaml:"left,omitempty"`
	Right     *NodeRecord `json:"right,omitempty" yaml:"right,omitempty"`
}

// WindowRecord captures one floating window.
type WindowRecord struct {
	Position    Point       `json:"position" yaml:"position"`
	Size        Size        `json:"size" yaml:"size"`
	Tabs        []TabRecord `json:"tabs" yaml:"tabs"`
	Active      int         `json:"active,omitempty" yaml:"active,omitempty"`
	Resizable   bool        `json:"resizable" yaml:"resizable"`
	Minimized   bool        `json:"minimized,omitempty" yaml:"minimized,omitempty"`
	AlwaysOnTop bool        `json:"always_on_top,omitempty" yaml:"always_on_top,omitempty"`
}

// TabRecord captures a tab and its content's opaque data.
type TabRecord struct {
	ContentType string                 `json:"content_type" yaml:"content_type"`
	Title       string                 `json:"title,omitempty" yaml:"title,omitempty"`
	Closable    bool                   `json:"closable" yaml:"closable"`
	Pinned      bool                   `json:"pinned,omitempty" yaml:"pinned,omitempty"`
	ContentData map[string]interface{} `json:"content_data,omitempty" yaml:"content_data,omitempty"`
}

// Capture serializes the tree, floating windows and presets.
func (w *Workspace) Capture() LayoutRecord {
	rec := w.captureLayout()
	if len(w.presets) > 0 {
		rec.NamedPresets = make(map[string]LayoutRecord, len(w.presets))
		for name, p := range w.presets {
			rec.NamedPresets[name] = p
		}
	}
	return rec
}

// captureLayout is Capture without presets.
func (w *Workspace) captureLayout() LayoutRecord {
	rec := LayoutRecord{Version: LayoutVersion, Root: captureNode(w.tree.Root())}
	for _, win := range w.windows.Ordered() {
		rec.FloatingWindows = append(rec.FloatingWindows, WindowRecord{
			Position:    win.Position,
			Size:        win.Size,
			Tabs:        captureTabs(win.Group.Tabs),
			Active:      win.Group.Active,
			Resizable:   win.Resizable,
			Minimized:   win.Minimized,
			AlwaysOnTop: win.AlwaysOnTop,
		})
	}
	return rec
}

func captureNode(n *Node) *NodeRecord {
	if n == nil {
		return nil
	}
	var bounds *Rect
	if !n.Bounds.Empty() {
		b := n.Bounds
		bounds = &b
	}
	if n.IsLeaf() {
		return &NodeRecord{
			Kind:   KindLeaf,
			Tabs:   captureTabs(n.Group.Tabs),
			Active: n.Group.Active,
			Bounds: bounds,
		}
	}
	return &NodeRecord{
		Kind:      KindSplit,
		Bounds:    bounds,
		Direction: n.Direction.String(),
		Ratio:     n.Ratio,
		Left:      captureNode(n.Left),
		Right:     captureNode(n.Right),
	}
}

func captureTabs(tabs []*Tab) []TabRecord {
	out := make([]TabRecord, 0, len(tabs))
	for _, t := range tabs {
		out = append(out, CaptureTab(t))
	}
	return out
}

// CaptureTab records one tab. Content implementing SnapshotProvider
// supplies its data, and the content type when the tab has none.
func CaptureTab(t *Tab) TabRecord {
	rec := TabRecord{
		ContentType: t.ContentType,
		Title:       t.Title,
		Closable:    t.Closable,
		Pinned:      t.Pinned,
	}
	if rec.Title == "" {
		rec.Title = t.DisplayTitle()
	}
	if sp, ok := t.Content.(SnapshotProvider); ok {
		kind, data := sp.SnapshotMetadata()
		if rec.ContentType == "" {
			rec.ContentType = kind
		}
		rec.ContentData = data
	}
	return rec
}
