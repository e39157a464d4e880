// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/workspace.go
// Summary: Top-level docking workspace: tree, floating windows, focus and tab operations.
// Usage: Hosts create one Workspace and drive it from their event loop.

package dock

import (
	"fmt"
	"log"
)

// TabLocation names a tab's container and index. Exactly one of Leaf and
// Window is set.
type TabLocation struct {
	Leaf   NodeID
	Window WindowID
	Index  int
}

func (l TabLocation) source() DragSource {
	return DragSource{Node: l.Leaf, Window: l.Window}
}

// Workspace is one docking instance. It is single threaded: every method
// must be called from the host loop.
type Workspace struct {
	tree     *DockTree
	windows  *FloatingWindowManager
	settings Settings
	measure  TextMeasurer

	dragger DragController
	drag    DragState

	presets map[string]LayoutRecord

	viewport Rect
	dockArea Rect

	focused     TabID
	hoverTab    TabID
	pressClose  TabID
	pressMiddle TabID
	splitDrag   NodeID
	menu        *contextMenu
}

// NewWorkspace returns an empty workspace. A nil measurer selects the
// settings' default.
func NewWorkspace(s Settings, m TextMeasurer) *Workspace {
	if m == nil {
		m = s.Measurer()
	}
	return &Workspace{
		tree:     NewDockTree(s, m),
		windows:  NewFloatingWindowManager(s, m),
		settings: s,
		measure:  m,
		dragger:  DragController{Threshold: s.DragThreshold},
		presets:  make(map[string]LayoutRecord),
	}
}

// Tree exposes the dock tree for queries.
func (w *Workspace) Tree() *DockTree { return w.tree }

// Windows exposes the floating window manager for queries.
func (w *Workspace) Windows() *FloatingWindowManager { return w.windows }

// Settings returns the active settings.
func (w *Workspace) Settings() Settings { return w.settings }

// DragState returns the current drag context.
func (w *Workspace) DragState() DragState { return w.drag }

// SetSettings swaps the settings and relays out.
func (w *Workspace) SetSettings(s Settings, m TextMeasurer) {
	if m == nil {
		m = s.Measurer()
	}
	w.settings, w.measure = s, m
	w.dragger.Threshold = s.DragThreshold
	w.tree.SetSettings(s, m)
	w.windows.SetSettings(s, m)
	w.relayout()
}

// Layout sets the viewport (whole surface) and the dock area inside it,
// then recomputes all geometry.
func (w *Workspace) Layout(viewport, dockArea Rect) {
	w.viewport, w.dockArea = viewport, dockArea
	w.relayout()
}

func (w *Workspace) relayout() {
	w.tree.RecalcLayout(w.dockArea)
	w.windows.Layout()
}

// FindTab locates a tab anywhere in the workspace.
func (w *Workspace) FindTab(id TabID) (*Tab, TabLocation, bool) {
	if n, i, ok := w.tree.FindTab(id); ok {
		return n.Group.Tabs[i], TabLocation{Leaf: n.ID, Index: i}, true
	}
	if win, i, ok := w.windows.FindTab(id); ok {
		return win.Group.Tabs[i], TabLocation{Window: win.ID, Index: i}, true
	}
	return nil, TabLocation{}, false
}

func (w *Workspace) group(loc TabLocation) *TabGroup {
	if loc.Window != 0 {
		if win := w.windows.Get(loc.Window); win != nil {
			return &win.Group
		}
		return nil
	}
	if n := w.tree.Node(loc.Leaf); n != nil && n.IsLeaf() {
		return &n.Group
	}
	return nil
}

// Tabs returns every tab, tree first then windows bottom to top.
func (w *Workspace) Tabs() []*Tab {
	var out []*Tab
	for _, n := range w.tree.Leaves() {
		out = append(out, n.Group.Tabs...)
	}
	for _, win := range w.windows.Ordered() {
		out = append(out, win.Group.Tabs...)
	}
	return out
}

// FocusedTab returns the tab with keyboard focus, or nil.
func (w *Workspace) FocusedTab() *Tab {
	t, _, ok := w.FindTab(w.focused)
	if !ok {
		return nil
	}
	return t
}

func (w *Workspace) setFocus(t *Tab) {
	var id TabID
	if t != nil {
		id = t.ID
	}
	if id == w.focused {
		return
	}
	if prev := w.FocusedTab(); prev != nil && prev.Content != nil {
		prev.Content.OnBlur()
	}
	w.focused = id
	if t != nil && t.Content != nil {
		t.Content.OnFocus()
	}
}

// refocus moves focus to a surviving tab after the focused one left.
func (w *Workspace) refocus(hint *TabGroup) {
	if w.FocusedTab() != nil {
		return
	}
	w.focused = 0
	if hint != nil {
		if t := hint.ActiveTab(); t != nil {
			w.setFocus(t)
			return
		}
	}
	if leaves := w.tree.Leaves(); len(leaves) > 0 {
		w.setFocus(leaves[0].Group.ActiveTab())
		return
	}
	if ordered := w.windows.Ordered(); len(ordered) > 0 {
		w.setFocus(ordered[len(ordered)-1].Group.ActiveTab())
	}
}

// AddTab docks tab into the focused leaf, or the first leaf, creating the
// root when the tree is empty. The tab becomes active and focused.
func (w *Workspace) AddTab(tab *Tab) (TabLocation, error) {
	if tab == nil {
		return TabLocation{}, fmt.Errorf("%w: nil tab", ErrInvalidTarget)
	}
	var loc TabLocation
	if _, fl, ok := w.FindTab(w.focused); ok && fl.Leaf != 0 {
		g := w.group(fl)
		loc = TabLocation{Leaf: fl.Leaf, Index: g.Insert(g.Len(), tab)}
	} else {
		leaf := w.tree.AddTab(tab)
		loc = TabLocation{Leaf: leaf, Index: w.tree.Node(leaf).Group.IndexOf(tab.ID)}
	}
	w.relayout()
	w.setFocus(tab)
	return loc, nil
}

// AddTabToLeaf inserts tab into leaf at index (clamped).
func (w *Workspace) AddTabToLeaf(leaf NodeID, at int, tab *Tab) error {
	if err := w.tree.InsertTab(leaf, at, tab); err != nil {
		return err
	}
	w.relayout()
	w.setFocus(tab)
	return nil
}

// AddFloatingTab opens a new floating window holding tab.
func (w *Workspace) AddFloatingTab(tab *Tab, pos Point, size Size) (WindowID, error) {
	if tab == nil {
		return 0, fmt.Errorf("%w: nil tab", ErrInvalidTarget)
	}
	win := w.windows.Create(pos, size, tab)
	w.setFocus(tab)
	return win.ID, nil
}

// removeAt detaches the tab at loc, collapsing or destroying an emptied
// container. It does not touch focus.
func (w *Workspace) removeAt(loc TabLocation) (*Tab, error) {
	if loc.Window != 0 {
		t, _, err := w.windows.RemoveTab(loc.Window, loc.Index)
		return t, err
	}
	return w.tree.RemoveTab(loc.Leaf, loc.Index)
}

// CloseTab closes a tab. It reports false without error when the tab is
// not closable, the content refuses (CanClose) or vetoes (OnClose).
func (w *Workspace) CloseTab(id TabID) (bool, error) {
	t, loc, ok := w.FindTab(id)
	if !ok {
		return false, fmt.Errorf("%w: %s not found", ErrInvalidTarget, id)
	}
	if !t.Closable {
		return false, nil
	}
	if t.Content != nil {
		if !t.Content.CanClose() || !t.Content.OnClose() {
			log.Printf("Workspace: close of %s vetoed by content", id)
			return false, nil
		}
	}
	if _, err := w.removeAt(loc); err != nil {
		return false, err
	}
	if w.focused == id {
		w.focused = 0
	}
	if w.hoverTab == id {
		w.hoverTab = 0
	}
	w.relayout()
	w.refocus(w.group(loc))
	return true, nil
}

func (w *Workspace) closeMany(tabs []*Tab) int {
	closed := 0
	for _, t := range tabs {
		ok, err := w.CloseTab(t.ID)
		if err != nil {
			log.Printf("Workspace: close %s: %v", t.ID, err)
			continue
		}
		if ok {
			closed++
		}
	}
	return closed
}

// CloseOthers closes every closable, unpinned tab sharing a container with
// id. It returns how many were closed.
func (w *Workspace) CloseOthers(id TabID) (int, error) {
	_, loc, ok := w.FindTab(id)
	if !ok {
		return 0, fmt.Errorf("%w: %s not found", ErrInvalidTarget, id)
	}
	return w.closeMany(w.group(loc).bulkClosable(id)), nil
}

// CloseAll closes every closable, unpinned tab in the container holding id.
func (w *Workspace) CloseAll(id TabID) (int, error) {
	_, loc, ok := w.FindTab(id)
	if !ok {
		return 0, fmt.Errorf("%w: %s not found", ErrInvalidTarget, id)
	}
	return w.closeMany(w.group(loc).bulkClosable(0)), nil
}

// SetPinned pins or unpins a tab.
func (w *Workspace) SetPinned(id TabID, pinned bool) error {
	t, _, ok := w.FindTab(id)
	if !ok {
		return fmt.Errorf("%w: %s not found", ErrInvalidTarget, id)
	}
	t.Pinned = pinned
	w.relayout()
	return nil
}

// ActivateTab makes a tab active in its container, raises its window and
// focuses it.
func (w *Workspace) ActivateTab(id TabID) error {
	t, loc, ok := w.FindTab(id)
	if !ok {
		return fmt.Errorf("%w: %s not found", ErrInvalidTarget, id)
	}
	if t.Disabled {
		return nil
	}
	g := w.group(loc)
	if err := g.Activate(loc.Index); err != nil {
		return err
	}
	if loc.Window != 0 {
		if err := w.windows.Raise(loc.Window); err != nil {
			return err
		}
	}
	g.EnsureVisible(loc.Index, w.settings)
	w.setFocus(t)
	return nil
}

// MoveTab moves a tab to target using the same all-or-nothing path as a
// drag-and-drop commit.
func (w *Workspace) MoveTab(id TabID, target DropTarget) error {
	return w.commit(id, &target)
}

// Detach moves a tab into a new floating window offset from its current
// container.
func (w *Workspace) Detach(id TabID) (WindowID, error) {
	t, loc, ok := w.FindTab(id)
	if !ok {
		return 0, fmt.Errorf("%w: %s not found", ErrInvalidTarget, id)
	}
	origin := w.dockArea.Origin()
	if g := w.group(loc); g != nil {
		origin = g.Bar().Origin()
	}
	step := w.settings.TabBarHeight
	pos := origin.Add(Point{X: step, Y: step})
	size := t.ContentSize()
	if size.W <= 0 || size.H <= 0 {
		size = w.settings.DefaultWindowSize
	} else {
		size.H += w.settings.TabBarHeight
	}
	target := DropTarget{Kind: NewFloatingWindow, Position: pos, Size: size}
	if err := w.commit(id, &target); err != nil {
		return 0, err
	}
	win, _, _ := w.windows.FindTab(id)
	if win == nil {
		return 0, fmt.Errorf("%w: %s was not re-homed", ErrInvalidTarget, id)
	}
	return win.ID, nil
}

// validateTarget checks that target can receive the tab at src without
// mutating anything.
func (w *Workspace) validateTarget(src TabLocation, target *DropTarget) error {
	if target == nil {
		return fmt.Errorf("%w: no target", ErrInvalidTarget)
	}
	switch target.Kind {
	case TabGroupInsert, SplitCreate:
		if target.Kind == TabGroupInsert && target.Leaf == 0 {
			if !w.tree.Empty() {
				return fmt.Errorf("%w: dock area is not empty", ErrInvalidTarget)
			}
			return nil
		}
		n := w.tree.Node(target.Leaf)
		if n == nil || !n.IsLeaf() {
			return fmt.Errorf("%w: %s is not a leaf", ErrInvalidTarget, target.Leaf)
		}
		if src.Leaf == n.ID && n.Group.Len() == 1 {
			return fmt.Errorf("%w: %s would be emptied by the move", ErrInvalidTarget, n.ID)
		}
	case FloatingWindowInsert:
		win := w.windows.Get(target.Window)
		if win == nil {
			return fmt.Errorf("%w: %s does not exist", ErrInvalidTarget, target.Window)
		}
		if src.Window == win.ID && win.Group.Len() == 1 {
			return fmt.Errorf("%w: %s would be destroyed by the move", ErrInvalidTarget, win.ID)
		}
	case NewFloatingWindow:
	default:
		return fmt.Errorf("%w: unknown drop kind %d", ErrInvalidTarget, target.Kind)
	}
	return nil
}

// commit moves tab id to target. Targets are validated before the tab is
// detached; if insertion still fails the tab is re-homed in a new floating
// window and the error is returned.
func (w *Workspace) commit(id TabID, target *DropTarget) error {
	_, src, ok := w.FindTab(id)
	if !ok {
		return fmt.Errorf("%w: %s not found", ErrInvalidTarget, id)
	}
	if err := w.validateTarget(src, target); err != nil {
		return err
	}
	tab, err := w.removeAt(src)
	if err != nil {
		return err
	}

	idx := target.Index
	sameGroup := (src.Leaf != 0 && src.Leaf == target.Leaf && target.Kind == TabGroupInsert) ||
		(src.Window != 0 && src.Window == target.Window && target.Kind == FloatingWindowInsert)
	if sameGroup && idx > src.Index {
		idx--
	}

	switch target.Kind {
	case TabGroupInsert:
		if target.Leaf == 0 {
			w.tree.AddTab(tab)
		} else {
			err = w.tree.InsertTab(target.Leaf, idx, tab)
		}
	case SplitCreate:
		var res SplitResult
		if target.NewFirst {
			res, err = w.tree.SplitBefore(target.Leaf, target.Direction, target.Ratio, tab)
		} else {
			res, err = w.tree.Split(target.Leaf, target.Direction, target.Ratio, tab)
		}
		if res.Warning != nil {
			log.Printf("Workspace: move %s: %v", id, res.Warning)
		}
	case FloatingWindowInsert:
		err = w.windows.InsertTab(target.Window, idx, tab)
		if err == nil {
			err = w.windows.Raise(target.Window)
		}
	case NewFloatingWindow:
		w.windows.Create(target.Position, target.Size, tab)
	}
	if err != nil {
		size := w.settings.DefaultWindowSize
		w.windows.Create(target.Position, size, tab)
		log.Printf("Workspace: move %s to %s failed, re-homed in a floating window: %v", id, target.Kind, err)
		w.relayout()
		w.setFocus(tab)
		return fmt.Errorf("move %s: %w", id, err)
	}
	w.relayout()
	w.setFocus(tab)
	return nil
}

// Resolve returns the drop target for the current drag at p.
func (w *Workspace) Resolve(st DragState, p Point) *DropTarget {
	return ResolveDropTarget(p, DropQuery{
		Tree:        w.tree,
		Windows:     w.windows,
		Settings:    w.settings,
		Tab:         st.Tab,
		Source:      st.Source,
		SourceIndex: st.OriginalIndex,
		GrabOffset:  st.GrabOffset,
		ContentSize: st.ContentSize,
	})
}

// BeginDrag starts dragging tab id as if pressed at p.
func (w *Workspace) BeginDrag(id TabID, p Point) error {
	t, loc, ok := w.FindTab(id)
	if !ok {
		return fmt.Errorf("%w: %s not found", ErrInvalidTarget, id)
	}
	r, _ := w.group(loc).TabRect(loc.Index)
	w.drag = w.dragger.Begin(t, loc.source(), loc.Index, r, p)
	return nil
}

// CancelDrag aborts any drag in progress.
func (w *Workspace) CancelDrag() {
	w.drag, _ = w.dragger.Cancel(w.drag)
}

func (w *Workspace) applyDragOutcome(out DragOutcome) {
	switch out.Kind {
	case OutcomeClick:
		if err := w.ActivateTab(out.Tab); err != nil {
			log.Printf("Workspace: activate %s: %v", out.Tab, err)
		}
	case OutcomeCommit:
		if err := w.commit(out.Tab, out.Target); err != nil {
			log.Printf("Workspace: drop of %s: %v", out.Tab, err)
		}
	}
}
