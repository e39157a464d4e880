// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package dock

import (
	"errors"
	"testing"
)

func groupOf(titles ...string) *TabGroup {
	g := &TabGroup{}
	for _, title := range titles {
		tab, _ := newFakeTab(title)
		g.Insert(g.Len(), tab)
	}
	g.Active = 0
	return g
}

func TestRemoveActiveFirstTabKeepsActiveInRange(t *testing.T) {
	g := groupOf("A", "B", "C")
	tab, err := g.Remove(0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if tab.Title != "A" {
		t.Fatalf("removed %q", tab.Title)
	}
	if joined(g) != "B,C" || g.Active != 0 {
		t.Fatalf("tabs=%s active=%d", joined(g), g.Active)
	}
}

func TestRemoveAdjustsActive(t *testing.T) {
	g := groupOf("A", "B", "C")
	g.Active = 2
	g.Remove(0)
	if g.Active != 1 || g.ActiveTab().Title != "C" {
		t.Fatalf("active should follow C, got %d", g.Active)
	}
	g.Remove(1)
	if g.Active != 0 || g.ActiveTab().Title != "B" {
		t.Fatalf("active should clamp to B, got %d", g.Active)
	}
	g.Remove(0)
	if g.Len() != 0 || g.Active != 0 || g.ActiveTab() != nil {
		t.Fatalf("empty group should reset active")
	}
	if _, err := g.Remove(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("err = %v", err)
	}
}

func TestInsertClampsAndActivates(t *testing.T) {
	g := groupOf("A", "B")
	c, _ := newFakeTab("C")
	if at := g.Insert(99, c); at != 2 {
		t.Fatalf("insert index = %d, want 2", at)
	}
	d, _ := newFakeTab("D")
	if at := g.Insert(-3, d); at != 0 {
		t.Fatalf("insert index = %d, want 0", at)
	}
	if joined(g) != "D,A,B,C" || g.Active != 0 {
		t.Fatalf("tabs=%s active=%d", joined(g), g.Active)
	}
	if err := g.Activate(4); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("activate out of range: %v", err)
	}
}

func TestVisualStatePrecedence(t *testing.T) {
	g := groupOf("A", "B", "C")
	g.Tabs[2].Disabled = true
	cases := []struct {
		index   int
		hovered bool
		want    TabVisual
	}{
		{0, true, TabStateActive},
		{0, false, TabStateActive},
		{1, true, TabStateHovered},
		{1, false, TabStateDefault},
		{2, true, TabStateHovered},
		{2, false, TabStateDisabled},
	}
	for _, c := range cases {
		if got := g.VisualState(c.index, c.hovered); got != c.want {
			t.Fatalf("VisualState(%d, %v) = %v, want %v", c.index, c.hovered, got, c.want)
		}
	}
}

func TestLayoutClampsTabWidths(t *testing.T) {
	s := DefaultSettings()
	g := groupOf("A", "A very long title that will not fit in the maximum tab width")
	g.layout(Rect{W: 800, H: 24}, s, s.Measurer())
	r0, _ := g.TabRect(0)
	r1, _ := g.TabRect(1)
	if r0.W != s.TabMinWidth || r1.W != s.TabMaxWidth {
		t.Fatalf("widths = %v/%v", r0.W, r1.W)
	}
	if r1.X != r0.Right() {
		t.Fatalf("tabs should be contiguous")
	}
	if g.Overflow() {
		t.Fatalf("unexpected overflow")
	}
}

func TestHitTestParts(t *testing.T) {
	s := DefaultSettings()
	g := groupOf("A", "B")
	g.Tabs[1].Pinned = true
	g.layout(Rect{X: 0, Y: 0, W: 400, H: 24}, s, s.Measurer())

	cases := []struct {
		p    Point
		want TabHit
	}{
		{Point{X: 10, Y: 5}, TabHit{Index: 0, Part: PartBody}},
		{Point{X: 70, Y: 5}, TabHit{Index: 0, Part: PartClose}},
		{Point{X: 150, Y: 5}, TabHit{Index: 1, Part: PartBody}},
		{Point{X: 300, Y: 5}, TabHit{Index: -1, Part: PartEmpty}},
		{Point{X: 10, Y: 30}, TabHit{Index: -1, Part: PartNone}},
	}
	for _, c := range cases {
		if got := g.HitTest(c.p); got != c.want {
			t.Fatalf("HitTest(%v) = %+v, want %+v", c.p, got, c.want)
		}
	}
}

func TestOverflowScrollIsClamped(t *testing.T) {
	s := DefaultSettings()
	g := groupOf("A", "B", "C", "D", "E")
	g.layout(Rect{W: 200, H: 24}, s, s.Measurer())
	if !g.Overflow() {
		t.Fatalf("five 80-wide tabs should overflow a 200 bar")
	}
	left, right := g.ScrollButtons()
	if left.W != s.ScrollButtonWidth || right.X != 200-s.ScrollButtonWidth {
		t.Fatalf("scroll buttons %+v %+v", left, right)
	}
	if hit := g.HitTest(Point{X: 5, Y: 5}); hit.Part != PartScrollLeft {
		t.Fatalf("left button hit = %+v", hit)
	}
	if hit := g.HitTest(Point{X: 195, Y: 5}); hit.Part != PartScrollRight {
		t.Fatalf("right button hit = %+v", hit)
	}

	g.ScrollBy(-50, s)
	if g.ScrollOffset() != 0 {
		t.Fatalf("scroll below zero: %v", g.ScrollOffset())
	}
	g.ScrollBy(10000, s)
	// 400 of tabs in a 168 viewport.
	if g.ScrollOffset() != 232 {
		t.Fatalf("scroll = %v, want 232", g.ScrollOffset())
	}
	last, _ := g.TabRect(4)
	if last.Right() != 184 {
		t.Fatalf("last tab should end at the viewport edge, got %v", last.Right())
	}

	g.EnsureVisible(0, s)
	first, _ := g.TabRect(0)
	if g.ScrollOffset() != 0 || first.X != s.ScrollButtonWidth {
		t.Fatalf("first tab not visible: scroll=%v x=%v", g.ScrollOffset(), first.X)
	}
}

func TestScrollWithoutOverflowIsNoop(t *testing.T) {
	s := DefaultSettings()
	g := groupOf("A")
	g.layout(Rect{W: 400, H: 24}, s, s.Measurer())
	g.ScrollBy(40, s)
	if g.ScrollOffset() != 0 {
		t.Fatalf("scroll = %v", g.ScrollOffset())
	}
}

func TestInsertIndexAtUsesMidpoints(t *testing.T) {
	s := DefaultSettings()
	g := groupOf("A", "B", "C")
	g.layout(Rect{W: 400, H: 24}, s, s.Measurer())
	cases := map[float64]int{0: 0, 39: 0, 41: 1, 119: 1, 121: 2, 200: 3, 390: 3}
	for x, want := range cases {
		if got := g.InsertIndexAt(x); got != want {
			t.Fatalf("InsertIndexAt(%v) = %d, want %d", x, got, want)
		}
	}
}

func TestBulkClosableSkipsPinnedAndKept(t *testing.T) {
	g := groupOf("A", "B", "C", "D")
	g.Tabs[1].Pinned = true
	g.Tabs[3].Closable = false
	got := g.bulkClosable(g.Tabs[0].ID)
	if len(got) != 1 || got[0].Title != "C" {
		t.Fatalf("bulkClosable = %v", got)
	}
}
