// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/tabgroup.go
// Summary: Ordered tab list with active selection, tab-bar layout, scrolling and hit testing.
// Usage: Embedded in leaf nodes and floating windows.

package dock

import (
	"fmt"
	"math"
)

// TabPart names the region of a tab bar under the pointer.
type TabPart int

const (
	PartNone TabPart = iota
	PartBody
	PartClose
	PartScrollLeft
	PartScrollRight
	// PartEmpty is tab-bar background with no tab under it.
	PartEmpty
)

// TabHit is the result of a tab-bar hit test. Index is -1 unless Part is
// PartBody or PartClose.
type TabHit struct {
	Index int
	Part  TabPart
}

// TabVisual is the background state of a tab. Exactly one applies, with
// precedence active > hovered > default > disabled.
type TabVisual int

const (
	TabStateDefault TabVisual = iota
	TabStateActive
	TabStateHovered
	TabStateDisabled
)

type tabSlot struct {
	rect  Rect
	close Rect
}

// TabGroup is an ordered list of tabs with an active index. The active index
// is always a valid index, or 0 while the group is empty.
type TabGroup struct {
	Tabs   []*Tab
	Active int

	scroll      float64
	bar         Rect
	viewport    Rect
	overflow    bool
	scrollLeft  Rect
	scrollRight Rect
	slots       []tabSlot
}

// Len returns the number of tabs.
func (g *TabGroup) Len() int { return len(g.Tabs) }

// ActiveTab returns the active tab or nil when empty.
func (g *TabGroup) ActiveTab() *Tab {
	if len(g.Tabs) == 0 {
		return nil
	}
	return g.Tabs[clampInt(g.Active, 0, len(g.Tabs)-1)]
}

// IndexOf returns the index of the tab with id, or -1.
func (g *TabGroup) IndexOf(id TabID) int {
	for i, t := range g.Tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Insert places tab at index (clamped to [0, len]) and activates it.
// It returns the index actually used.
func (g *TabGroup) Insert(at int, tab *Tab) int {
	at = clampInt(at, 0, len(g.Tabs))
	g.Tabs = append(g.Tabs, nil)
	copy(g.Tabs[at+1:], g.Tabs[at:])
	g.Tabs[at] = tab
	g.Active = at
	g.slots = nil
	return at
}

// Remove detaches the tab at index and returns it. An invalid index leaves
// the group unchanged.
func (g *TabGroup) Remove(index int) (*Tab, error) {
	if index < 0 || index >= len(g.Tabs) {
		return nil, fmt.Errorf("%w: index %d, group has %d tabs", ErrIndexOutOfRange, index, len(g.Tabs))
	}
	tab := g.Tabs[index]
	copy(g.Tabs[index:], g.Tabs[index+1:])
	g.Tabs[len(g.Tabs)-1] = nil
	g.Tabs = g.Tabs[:len(g.Tabs)-1]

	switch {
	case len(g.Tabs) == 0:
		g.Active = 0
	case index < g.Active:
		g.Active--
	case g.Active >= len(g.Tabs):
		g.Active = len(g.Tabs) - 1
	}
	g.slots = nil
	return tab, nil
}

// Activate selects the tab at index.
func (g *TabGroup) Activate(index int) error {
	if index < 0 || index >= len(g.Tabs) {
		return fmt.Errorf("%w: index %d, group has %d tabs", ErrIndexOutOfRange, index, len(g.Tabs))
	}
	g.Active = index
	return nil
}

// VisualState resolves the background state of tab i.
func (g *TabGroup) VisualState(i int, hovered bool) TabVisual {
	switch {
	case i == g.Active:
		return TabStateActive
	case hovered:
		return TabStateHovered
	case i >= 0 && i < len(g.Tabs) && !g.Tabs[i].Disabled:
		return TabStateDefault
	default:
		return TabStateDisabled
	}
}

// Overflow reports whether the tabs are wider than the bar.
func (g *TabGroup) Overflow() bool { return g.overflow }

// ScrollOffset returns the current uniform scroll offset.
func (g *TabGroup) ScrollOffset() float64 { return g.scroll }

// Bar returns the tab bar rectangle from the last layout.
func (g *TabGroup) Bar() Rect { return g.bar }

// TabRect returns the on-screen rect of tab i from the last layout.
func (g *TabGroup) TabRect(i int) (Rect, bool) {
	if i < 0 || i >= len(g.slots) {
		return Rect{}, false
	}
	return g.slots[i].rect, true
}

// ScrollButtons returns the left/right scroll affordances. Both are empty
// when the bar does not overflow.
func (g *TabGroup) ScrollButtons() (left, right Rect) {
	return g.scrollLeft, g.scrollRight
}

func naturalTabWidth(t *Tab, s Settings, m TextMeasurer) float64 {
	w := m.MeasureText(t.DisplayTitle()) + s.TabPadding
	if t.ShowsClose() {
		w += s.CloseButtonWidth
	}
	if t.Pinned || t.icon() != 0 {
		w += m.MeasureText("M")
	}
	if t.Dirty() {
		w += s.DirtyMarkerWidth
	}
	return clampFloat(w, s.TabMinWidth, s.TabMaxWidth)
}

// layout computes tab rects inside bar. It must run after any change to the
// bar size, tab list or titles.
func (g *TabGroup) layout(bar Rect, s Settings, m TextMeasurer) {
	g.bar = bar
	g.slots = make([]tabSlot, len(g.Tabs))
	total := 0.0
	for i, t := range g.Tabs {
		w := naturalTabWidth(t, s, m)
		g.slots[i].rect.W = w
		total += w
	}

	g.overflow = total > bar.W && len(g.Tabs) > 0
	if g.overflow {
		sbw := math.Min(s.ScrollButtonWidth, bar.W/2)
		g.scrollLeft = Rect{X: bar.X, Y: bar.Y, W: sbw, H: bar.H}
		g.scrollRight = Rect{X: bar.Right() - sbw, Y: bar.Y, W: sbw, H: bar.H}
		g.viewport = Rect{X: bar.X + sbw, Y: bar.Y, W: math.Max(0, bar.W-2*sbw), H: bar.H}
	} else {
		g.scrollLeft, g.scrollRight = Rect{}, Rect{}
		g.viewport = bar
	}
	g.clampScroll()
	g.positionSlots(s)
}

func (g *TabGroup) maxScroll() float64 {
	if !g.overflow {
		return 0
	}
	total := 0.0
	for _, sl := range g.slots {
		total += sl.rect.W
	}
	return math.Max(0, total-g.viewport.W)
}

func (g *TabGroup) clampScroll() {
	g.scroll = clampFloat(g.scroll, 0, g.maxScroll())
}

func (g *TabGroup) positionSlots(s Settings) {
	x := g.viewport.X - g.scroll
	for i := range g.slots {
		r := &g.slots[i].rect
		r.X, r.Y, r.H = x, g.bar.Y, g.bar.H
		g.slots[i].close = Rect{}
		if i < len(g.Tabs) && g.Tabs[i].ShowsClose() {
			cw := math.Min(s.CloseButtonWidth, r.W)
			g.slots[i].close = Rect{X: r.Right() - cw, Y: r.Y, W: cw, H: r.H}
		}
		x += r.W
	}
}

// ScrollBy shifts the tabs by delta; positive scrolls toward the end.
// It is a no-op without overflow.
func (g *TabGroup) ScrollBy(delta float64, s Settings) {
	if !g.overflow {
		return
	}
	g.scroll += delta
	g.clampScroll()
	g.positionSlots(s)
}

// EnsureVisible scrolls so that tab i is fully inside the viewport.
func (g *TabGroup) EnsureVisible(i int, s Settings) {
	if !g.overflow || i < 0 || i >= len(g.slots) {
		return
	}
	r := g.slots[i].rect
	switch {
	case r.X < g.viewport.X:
		g.scroll -= g.viewport.X - r.X
	case r.Right() > g.viewport.Right():
		g.scroll += r.Right() - g.viewport.Right()
	default:
		return
	}
	g.clampScroll()
	g.positionSlots(s)
}

// HitTest resolves which part of the bar is under p.
func (g *TabGroup) HitTest(p Point) TabHit {
	if !g.bar.Contains(p) {
		return TabHit{Index: -1, Part: PartNone}
	}
	if g.overflow {
		if g.scrollLeft.Contains(p) {
			return TabHit{Index: -1, Part: PartScrollLeft}
		}
		if g.scrollRight.Contains(p) {
			return TabHit{Index: -1, Part: PartScrollRight}
		}
	}
	if !g.viewport.Contains(p) {
		return TabHit{Index: -1, Part: PartEmpty}
	}
	for i, sl := range g.slots {
		if !sl.rect.Contains(p) {
			continue
		}
		if sl.close.Contains(p) {
			return TabHit{Index: i, Part: PartClose}
		}
		return TabHit{Index: i, Part: PartBody}
	}
	return TabHit{Index: -1, Part: PartEmpty}
}

// InsertIndexAt returns where a tab dropped at x would land, comparing x
// against tab midpoints.
func (g *TabGroup) InsertIndexAt(x float64) int {
	for i, sl := range g.slots {
		if x < sl.rect.X+sl.rect.W/2 {
			return i
		}
	}
	return len(g.Tabs)
}

// bulkClosable returns the tabs a bulk close may remove: closable, unpinned
// tabs other than keep (pass 0 to keep none).
func (g *TabGroup) bulkClosable(keep TabID) []*Tab {
	var out []*Tab
	for _, t := range g.Tabs {
		if t.ID == keep || t.Pinned || !t.Closable {
			continue
		}
		out = append(out, t)
	}
	return out
}
