// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/render.go
// Summary: Draws the workspace onto a Surface.
// Usage: Called by the host once per frame after Layout.

package dock

const (
	pinIcon         = '⚲'
	closeIcon       = '×'
	dirtyIcon       = '●'
	scrollLeftIcon  = '◂'
	scrollRightIcon = '▸'
)

// Render draws the dock tree, floating windows bottom to top, the drag
// preview and the context menu, in that order.
func (w *Workspace) Render(s Surface) {
	s.FillRect(w.dockArea, PaintBackground)
	w.tree.Walk(func(n *Node, _ int) {
		if !n.IsLeaf() {
			p := PaintSplitter
			if n.ID == w.splitDrag {
				p = PaintSplitterActive
			}
			s.FillRect(n.Splitter, p)
			return
		}
		w.renderGroup(s, &n.Group)
		w.renderContent(s, n.Group.ActiveTab(), n.Content)
	})

	for _, win := range w.windows.Ordered() {
		w.renderWindow(s, win)
	}

	if w.drag.Dragging() && w.drag.Armed {
		w.renderDrag(s)
	}
	if w.menu != nil {
		w.renderMenu(s)
	}
}

func (w *Workspace) renderContent(s Surface, t *Tab, r Rect) {
	if t == nil || t.Content == nil || r.Empty() {
		return
	}
	s.PushClip(r)
	t.Content.Render(s, r)
	s.PopClip()
}

func (w *Workspace) renderWindow(s Surface, win *FloatingWindow) {
	b := win.Bounds()
	s.FillRect(b, PaintBackground)
	frame := PaintWindowFrame
	if win.Group.IndexOf(w.focused) >= 0 {
		frame = PaintWindowFrameFocused
	}
	w.renderGroup(s, &win.Group)
	if win.Minimized {
		return
	}
	w.renderContent(s, win.Group.ActiveTab(), win.Content)
	// The tab bar is the top edge; the frame runs inside the other three.
	top := b.Y + win.barHeight
	tr := Point{X: b.Right() - 1, Y: top}
	bl := Point{X: b.X, Y: b.Bottom() - 1}
	br := Point{X: b.Right() - 1, Y: b.Bottom() - 1}
	s.DrawLine(Point{X: b.X, Y: top}, bl, frame)
	s.DrawLine(bl, br, frame)
	s.DrawLine(br, tr, frame)
}

func tabPaint(v TabVisual) Paint {
	switch v {
	case TabStateActive:
		return PaintTabActive
	case TabStateHovered:
		return PaintTabHovered
	case TabStateDisabled:
		return PaintTabDisabled
	}
	return PaintTabDefault
}

func (w *Workspace) renderGroup(s Surface, g *TabGroup) {
	bar := g.Bar()
	if bar.Empty() {
		return
	}
	st := w.settings
	s.FillRect(bar, PaintTabBar)
	s.PushClip(g.viewport)
	for i, t := range g.Tabs {
		r, ok := g.TabRect(i)
		if !ok {
			continue
		}
		s.FillRect(r, tabPaint(g.VisualState(i, t.ID == w.hoverTab)))

		x := r.X + st.TabPadding/2
		if t.Pinned {
			s.DrawIcon(Point{X: x, Y: r.Y}, pinIcon, PaintTabText)
			x += w.measure.MeasureText("M")
		} else if ic := t.icon(); ic != 0 {
			s.DrawIcon(Point{X: x, Y: r.Y}, ic, PaintTabText)
			x += w.measure.MeasureText("M")
		}
		end := r.Right() - st.TabPadding/2
		if t.ShowsClose() {
			end = r.Right() - st.CloseButtonWidth
		}
		if t.Dirty() {
			end -= st.DirtyMarkerWidth
			s.DrawIcon(Point{X: end, Y: r.Y}, dirtyIcon, PaintDirtyMarker)
		}
		text := PaintTabText
		if t.Disabled {
			text = PaintTabDisabled
		}
		if maxW := end - x; maxW > 0 {
			s.DrawText(Point{X: x, Y: r.Y}, truncateText(w.measure, t.DisplayTitle(), maxW), text, maxW)
		}
		if t.ShowsClose() && i < len(g.slots) {
			c := g.slots[i].close
			s.DrawIcon(c.Origin(), closeIcon, PaintTabCloseButton)
		}
	}
	s.PopClip()

	if g.Overflow() {
		l, r := g.ScrollButtons()
		s.FillRect(l, PaintScrollButton)
		s.DrawIcon(l.Origin(), scrollLeftIcon, PaintTabText)
		s.FillRect(r, PaintScrollButton)
		s.DrawIcon(r.Origin(), scrollRightIcon, PaintTabText)
	}
}

func (w *Workspace) renderDrag(s Surface) {
	if t := w.drag.Target; t != nil {
		s.FillRect(t.Zone, PaintDropPreview)
	}
	ghost := w.drag.GhostRect()
	s.FillRect(ghost, PaintDragGhost)
	if tab, _, ok := w.FindTab(w.drag.Tab); ok {
		pad := w.settings.TabPadding / 2
		s.DrawText(Point{X: ghost.X + pad, Y: ghost.Y}, tab.DisplayTitle(), PaintTabText, ghost.W-2*pad)
	}
}

func (w *Workspace) renderMenu(s Surface) {
	m := w.menu
	s.FillRect(m.rect, PaintMenu)
	h := w.settings.MenuItemHeight
	pad := w.settings.TabPadding / 2
	for i, it := range m.items {
		r := m.itemRect(i, h)
		if i == m.hover && !it.Disabled {
			s.FillRect(r, PaintTabHovered)
		}
		p := PaintMenuText
		if it.Disabled {
			p = PaintMenuDisabled
		}
		s.DrawText(Point{X: r.X + pad, Y: r.Y}, it.Label, p, r.W-2*pad)
	}
}
