// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/workspace_input.go
// Summary: Pointer and key routing for the workspace, including the tab context menu.
// Usage: Hosts call HandlePointer and HandleKey once per input event.

package dock

import (
	"fmt"
	"log"
	"math"
)

type contextMenu struct {
	tab   TabID
	items []MenuItem
	rect  Rect
	hover int
}

func (m *contextMenu) itemRect(i int, h float64) Rect {
	return Rect{X: m.rect.X, Y: m.rect.Y + float64(i)*h, W: m.rect.W, H: h}
}

func (m *contextMenu) itemAt(p Point, h float64) int {
	if !m.rect.Contains(p) || h <= 0 {
		return -1
	}
	i := int((p.Y - m.rect.Y) / h)
	if i < 0 || i >= len(m.items) {
		return -1
	}
	return i
}

// ContextMenu returns the open menu's items and rect.
func (w *Workspace) ContextMenu() ([]MenuItem, Rect, bool) {
	if w.menu == nil {
		return nil, Rect{}, false
	}
	return w.menu.items, w.menu.rect, true
}

// OpenContextMenu opens the tab menu for id at p: Close, Close Others,
// Pin/Unpin and Detach, followed by the content's own items.
func (w *Workspace) OpenContextMenu(id TabID, p Point) error {
	t, loc, ok := w.FindTab(id)
	if !ok {
		return fmt.Errorf("%w: %s not found", ErrInvalidTarget, id)
	}
	pinLabel := "Pin"
	if t.Pinned {
		pinLabel = "Unpin"
	}
	soleFloating := loc.Window != 0 && w.group(loc).Len() == 1
	items := []MenuItem{
		{Label: "Close", Disabled: !t.ShowsClose(), Action: func() { _, err := w.CloseTab(id); w.logErr(err) }},
		{Label: "Close Others", Action: func() { _, err := w.CloseOthers(id); w.logErr(err) }},
		{Label: pinLabel, Action: func() { w.logErr(w.SetPinned(id, !t.Pinned)) }},
		{Label: "Detach", Disabled: soleFloating, Action: func() { _, err := w.Detach(id); w.logErr(err) }},
	}
	if t.Content != nil {
		items = append(items, t.Content.ContextMenuItems()...)
	}

	h := w.settings.MenuItemHeight
	r := Rect{X: p.X, Y: p.Y, W: w.settings.MenuWidth, H: h * float64(len(items))}
	if !w.viewport.Empty() {
		r.X = math.Max(w.viewport.X, math.Min(r.X, w.viewport.Right()-r.W))
		r.Y = math.Max(w.viewport.Y, math.Min(r.Y, w.viewport.Bottom()-r.H))
	}
	w.menu = &contextMenu{tab: id, items: items, rect: r, hover: -1}
	return nil
}

// CloseContextMenu dismisses the menu.
func (w *Workspace) CloseContextMenu() { w.menu = nil }

func (w *Workspace) logErr(err error) {
	if err != nil {
		log.Printf("Workspace: Action failed: %v", err)
	}
}

func (w *Workspace) runMenuItem(i int) {
	m := w.menu
	w.menu = nil
	if i < 0 || i >= len(m.items) {
		return
	}
	it := m.items[i]
	if it.Disabled || it.Action == nil {
		return
	}
	it.Action()
}

// HandlePointer routes a pointer event. It reports whether the workspace
// consumed it.
func (w *Workspace) HandlePointer(ev PointerEvent) bool {
	if w.drag.Dragging() {
		var out DragOutcome
		w.drag, out = w.dragger.Step(w.drag, ev, w.Resolve)
		w.applyDragOutcome(out)
		return true
	}
	if w.splitDrag != 0 {
		w.handleSplitDrag(ev)
		return true
	}
	if w.windows.Interacting() != nil {
		switch ev.Action {
		case PointerMove:
			w.windows.Drag(ev.Pos)
		case PointerUp, PointerLeave:
			w.windows.End()
		}
		return true
	}
	if w.menu != nil {
		if w.handleMenuPointer(ev) {
			return true
		}
	}

	switch ev.Action {
	case PointerMove:
		w.hoverTab = w.tabAt(ev.Pos)
		return w.forward(ev)
	case PointerLeave:
		w.hoverTab = 0
		return false
	case PointerWheel:
		return w.handleWheel(ev)
	case PointerDown:
		return w.handlePress(ev)
	case PointerUp:
		return w.handleRelease(ev)
	}
	return false
}

func (w *Workspace) handleSplitDrag(ev PointerEvent) {
	switch ev.Action {
	case PointerMove:
		r, err := w.tree.RatioAt(w.splitDrag, ev.Pos)
		if err != nil {
			w.splitDrag = 0
			return
		}
		if _, err := w.tree.SetRatio(w.splitDrag, r); err == nil {
			w.tree.RecalcLayout(w.dockArea)
		}
	case PointerUp, PointerLeave:
		w.splitDrag = 0
	}
}

func (w *Workspace) handleMenuPointer(ev PointerEvent) bool {
	h := w.settings.MenuItemHeight
	i := w.menu.itemAt(ev.Pos, h)
	switch ev.Action {
	case PointerMove:
		w.menu.hover = i
		return i >= 0
	case PointerDown:
		if i >= 0 {
			w.runMenuItem(i)
		} else {
			w.menu = nil
		}
		return true
	case PointerUp, PointerWheel:
		return i >= 0
	}
	return false
}

// groupAt returns the tab group whose bar or content is under p, topmost
// first, plus its source.
func (w *Workspace) groupAt(p Point) (*TabGroup, DragSource, bool) {
	if win := w.windows.WindowAt(p); win != nil {
		return &win.Group, DragSource{Window: win.ID}, true
	}
	if id, ok := w.tree.FindLeafAt(p); ok {
		return &w.tree.Node(id).Group, DragSource{Node: id}, true
	}
	return nil, DragSource{}, false
}

func (w *Workspace) tabAt(p Point) TabID {
	g, _, ok := w.groupAt(p)
	if !ok {
		return 0
	}
	if hit := g.HitTest(p); hit.Part == PartBody || hit.Part == PartClose {
		return g.Tabs[hit.Index].ID
	}
	return 0
}

// contentAt returns the active tab whose content rect contains p.
func (w *Workspace) contentAt(p Point) *Tab {
	if win := w.windows.WindowAt(p); win != nil {
		if win.Minimized || !win.Content.Contains(p) {
			return nil
		}
		return win.Group.ActiveTab()
	}
	if id, ok := w.tree.FindLeafAt(p); ok {
		n := w.tree.Node(id)
		if n.Content.Contains(p) {
			return n.Group.ActiveTab()
		}
	}
	return nil
}

func (w *Workspace) forward(ev PointerEvent) bool {
	t := w.contentAt(ev.Pos)
	if t == nil || t.Content == nil || t.Disabled {
		return false
	}
	return t.Content.HandleEvent(ev) == Handled
}

func (w *Workspace) handleWheel(ev PointerEvent) bool {
	g, _, ok := w.groupAt(ev.Pos)
	if ok && g.Bar().Contains(ev.Pos) {
		delta := ev.WheelDY
		if delta == 0 {
			delta = ev.WheelDX
		}
		g.ScrollBy(delta*w.settings.ScrollStep, w.settings)
		return true
	}
	return w.forward(ev)
}

func (w *Workspace) handlePress(ev PointerEvent) bool {
	p := ev.Pos
	if win := w.windows.WindowAt(p); win != nil {
		if err := w.windows.Raise(win.ID); err != nil {
			return false
		}
		hit := w.windows.HitTest(win, p)
		switch hit.Part {
		case WindowPartBorder:
			if ev.Button == ButtonPrimary {
				ok, err := w.windows.BeginResize(win.ID, hit.Edges, p)
				return ok && err == nil
			}
			return true
		case WindowPartTabBar:
			if hit.Tab.Part == PartEmpty && ev.Button == ButtonPrimary {
				return w.windows.BeginMove(win.ID, p) == nil
			}
			return w.pressTab(ev, &win.Group, DragSource{Window: win.ID}, hit.Tab)
		default:
			w.setFocus(win.Group.ActiveTab())
			return w.forward(ev)
		}
	}

	if id, ok := w.tree.SplitterAt(p); ok {
		if ev.Button == ButtonPrimary {
			w.splitDrag = id
		}
		return true
	}
	id, ok := w.tree.FindLeafAt(p)
	if !ok {
		return false
	}
	n := w.tree.Node(id)
	if hit := n.Group.HitTest(p); hit.Part != PartNone {
		return w.pressTab(ev, &n.Group, DragSource{Node: id}, hit)
	}
	w.setFocus(n.Group.ActiveTab())
	return w.forward(ev)
}

func (w *Workspace) pressTab(ev PointerEvent, g *TabGroup, src DragSource, hit TabHit) bool {
	switch hit.Part {
	case PartScrollLeft:
		g.ScrollBy(-w.settings.ScrollStep, w.settings)
		return true
	case PartScrollRight:
		g.ScrollBy(w.settings.ScrollStep, w.settings)
		return true
	case PartEmpty, PartNone:
		return true
	}
	t := g.Tabs[hit.Index]
	if t.Disabled {
		return true
	}
	switch ev.Button {
	case ButtonPrimary:
		if hit.Part == PartClose {
			w.pressClose = t.ID
			return true
		}
		r, _ := g.TabRect(hit.Index)
		w.drag = w.dragger.Begin(t, src, hit.Index, r, ev.Pos)
	case ButtonMiddle:
		w.pressMiddle = t.ID
	case ButtonSecondary:
		if err := w.OpenContextMenu(t.ID, ev.Pos); err != nil {
			log.Printf("Workspace: context menu: %v", err)
		}
	}
	return true
}

func (w *Workspace) handleRelease(ev PointerEvent) bool {
	closeID, middleID := w.pressClose, w.pressMiddle
	w.pressClose, w.pressMiddle = 0, 0
	if closeID == 0 && middleID == 0 {
		return w.forward(ev)
	}
	g, _, ok := w.groupAt(ev.Pos)
	if !ok {
		return true
	}
	hit := g.HitTest(ev.Pos)
	if hit.Index < 0 {
		return true
	}
	tab := g.Tabs[hit.Index]
	id := tab.ID
	switch {
	case !tab.ShowsClose():
	case closeID != 0 && id == closeID && hit.Part == PartClose,
		middleID != 0 && id == middleID:
		if _, err := w.CloseTab(id); err != nil {
			log.Printf("Workspace: close %s: %v", id, err)
		}
	}
	return true
}

// HandleKey routes a key event: the open menu first, then the focused
// content, then workspace shortcuts.
func (w *Workspace) HandleKey(ev KeyEvent) bool {
	if w.menu != nil {
		return w.handleMenuKey(ev)
	}
	if w.drag.Dragging() && ev.Key == "Esc" {
		w.CancelDrag()
		return true
	}
	t := w.FocusedTab()
	if t != nil && t.Content != nil && !t.Disabled {
		if t.Content.HandleEvent(ev) == Handled {
			return true
		}
	}
	if t == nil {
		return false
	}
	switch {
	case ev.Key == "Ctrl+W":
		if !t.ShowsClose() {
			return true
		}
		if _, err := w.CloseTab(t.ID); err != nil {
			log.Printf("Workspace: close %s: %v", t.ID, err)
		}
		return true
	case ev.Mods&ModCtrl == 0:
		return false
	case ev.Key == "PgDn":
		return w.cycle(t.ID, 1)
	case ev.Key == "PgUp":
		return w.cycle(t.ID, -1)
	}
	return false
}

func (w *Workspace) cycle(id TabID, step int) bool {
	_, loc, ok := w.FindTab(id)
	if !ok {
		return false
	}
	g := w.group(loc)
	n := g.Len()
	if n < 2 {
		return true
	}
	next := ((loc.Index+step)%n + n) % n
	w.logErr(w.ActivateTab(g.Tabs[next].ID))
	return true
}

func (w *Workspace) handleMenuKey(ev KeyEvent) bool {
	m := w.menu
	switch ev.Key {
	case "Esc":
		w.menu = nil
	case "Up":
		m.hover = w.nextEnabled(m.hover, -1)
	case "Down":
		m.hover = w.nextEnabled(m.hover, 1)
	case "Enter":
		w.runMenuItem(m.hover)
	}
	return true
}

func (w *Workspace) nextEnabled(from, step int) int {
	items := w.menu.items
	n := len(items)
	if n == 0 {
		return -1
	}
	i := from
	for range items {
		i = ((i+step)%n + n) % n
		if !items[i].Disabled {
			return i
		}
	}
	return from
}
