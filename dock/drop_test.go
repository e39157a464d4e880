// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package dock

import "testing"

// dropFixture is a horizontal split of an 804x624 area: leaf "left" holds
// A and B over x 0..400, leaf "right" holds C over x 404..804. The tab bar
// is 24 high, so both content rects are 600 high starting at y 24.
type dropFixture struct {
	tree        *DockTree
	windows     *FloatingWindowManager
	s           Settings
	left, right NodeID
	a, b, c     *Tab
}

func newDropFixture(t *testing.T) *dropFixture {
	t.Helper()
	s := DefaultSettings()
	f := &dropFixture{s: s}
	f.tree = NewDockTree(s, nil)
	f.windows = NewFloatingWindowManager(s, nil)
	f.a, _ = newFakeTab("A")
	f.b, _ = newFakeTab("B")
	f.c, _ = newFakeTab("C")
	f.left = f.tree.AddTab(f.a)
	f.tree.AddTab(f.b)
	res, err := f.tree.Split(f.left, Horizontal, 0.5, f.c)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	f.right = res.Leaf
	f.tree.RecalcLayout(Rect{W: 804, H: 624})
	return f
}

func (f *dropFixture) query(tab *Tab) DropQuery {
	q := DropQuery{Tree: f.tree, Windows: f.windows, Settings: f.s, Tab: tab.ID}
	if leaf, idx, ok := f.tree.FindTab(tab.ID); ok {
		q.Source = DragSource{Node: leaf.ID}
		q.SourceIndex = idx
	} else if w, idx, ok := f.windows.FindTab(tab.ID); ok {
		q.Source = DragSource{Window: w.ID}
		q.SourceIndex = idx
	}
	return q
}

func TestDropEdgeStripsCreateSplits(t *testing.T) {
	f := newDropFixture(t)
	q := f.query(f.c)
	cases := []struct {
		name     string
		p        Point
		dir      Direction
		newFirst bool
		zone     Rect
	}{
		{"left", Point{X: 50, Y: 300}, Horizontal, true, Rect{X: 0, Y: 0, W: 200, H: 624}},
		{"right", Point{X: 350, Y: 300}, Horizontal, false, Rect{X: 200, Y: 0, W: 200, H: 624}},
		{"top", Point{X: 200, Y: 60}, Vertical, true, Rect{X: 0, Y: 0, W: 400, H: 312}},
		{"bottom", Point{X: 200, Y: 600}, Vertical, false, Rect{X: 0, Y: 312, W: 400, H: 312}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ResolveDropTarget(c.p, q)
			if got == nil || got.Kind != SplitCreate {
				t.Fatalf("target = %+v, want split", got)
			}
			if got.Leaf != f.left || got.Direction != c.dir || got.NewFirst != c.newFirst {
				t.Fatalf("target = %+v", got)
			}
			if got.Ratio != 0.5 || got.Zone != c.zone {
				t.Fatalf("ratio=%v zone=%+v, want zone %+v", got.Ratio, got.Zone, c.zone)
			}
		})
	}
}

func TestDropCornerPrefersNearestStrip(t *testing.T) {
	f := newDropFixture(t)
	got := ResolveDropTarget(Point{X: 10, Y: 30}, f.query(f.c))
	if got == nil || got.Kind != SplitCreate || got.Direction != Vertical || !got.NewFirst {
		t.Fatalf("corner target = %+v, want top split", got)
	}
}

func TestDropCenterInsertsAtEnd(t *testing.T) {
	f := newDropFixture(t)
	got := ResolveDropTarget(Point{X: 200, Y: 300}, f.query(f.c))
	if got == nil || got.Kind != TabGroupInsert || got.Leaf != f.left || got.Index != 2 {
		t.Fatalf("target = %+v", got)
	}
}

func TestDropOnTabBarUsesMidpoints(t *testing.T) {
	f := newDropFixture(t)
	got := ResolveDropTarget(Point{X: 100, Y: 10}, f.query(f.c))
	if got == nil || got.Kind != TabGroupInsert || got.Index != 1 || got.Leaf != f.left {
		t.Fatalf("target = %+v", got)
	}
	if got.Zone != f.tree.Node(f.left).Group.Bar() {
		t.Fatalf("zone = %+v", got.Zone)
	}
}

func TestDropOnOwnGroupNoops(t *testing.T) {
	f := newDropFixture(t)
	qa := f.query(f.a)
	if got := ResolveDropTarget(Point{X: 10, Y: 10}, qa); got != nil {
		t.Fatalf("drop before itself should be nil, got %+v", got)
	}
	if got := ResolveDropTarget(Point{X: 100, Y: 10}, qa); got != nil {
		t.Fatalf("drop after itself should be nil, got %+v", got)
	}
	if got := ResolveDropTarget(Point{X: 200, Y: 300}, qa); got != nil {
		t.Fatalf("drop on own center should be nil, got %+v", got)
	}
	got := ResolveDropTarget(Point{X: 150, Y: 10}, qa)
	if got == nil || got.Index != 2 {
		t.Fatalf("reorder to the end = %+v", got)
	}
	// A two-tab leaf may split itself.
	if got := ResolveDropTarget(Point{X: 350, Y: 300}, qa); got == nil || got.Kind != SplitCreate {
		t.Fatalf("self split = %+v", got)
	}
	// A single-tab leaf may not.
	if got := ResolveDropTarget(Point{X: 760, Y: 300}, f.query(f.c)); got != nil {
		t.Fatalf("single-tab self split should be nil, got %+v", got)
	}
}

func TestDropOnSplitterIsNil(t *testing.T) {
	f := newDropFixture(t)
	if got := ResolveDropTarget(Point{X: 402, Y: 300}, f.query(f.a)); got != nil {
		t.Fatalf("splitter target = %+v", got)
	}
}

func TestDropOutsideOpensWindow(t *testing.T) {
	f := newDropFixture(t)
	q := f.query(f.a)
	q.GrabOffset = Point{X: 30, Y: 10}
	q.ContentSize = Size{W: 400, H: 600}
	got := ResolveDropTarget(Point{X: 900, Y: 300}, q)
	if got == nil || got.Kind != NewFloatingWindow {
		t.Fatalf("target = %+v", got)
	}
	if got.Position != (Point{X: 870, Y: 290}) || got.Size != (Size{W: 400, H: 624}) {
		t.Fatalf("window at %+v size %+v", got.Position, got.Size)
	}

	q.ContentSize = Size{}
	got = ResolveDropTarget(Point{X: 900, Y: 300}, q)
	if got.Size != f.s.DefaultWindowSize {
		t.Fatalf("unknown content size should use the default, got %+v", got.Size)
	}
}

func TestDropPrefersFloatingWindow(t *testing.T) {
	f := newDropFixture(t)
	d, _ := newFakeTab("D")
	w := f.windows.Create(Point{X: 100, Y: 100}, Size{W: 300, H: 200}, d)

	got := ResolveDropTarget(Point{X: 200, Y: 200}, f.query(f.c))
	if got == nil || got.Kind != FloatingWindowInsert || got.Window != w.ID || got.Index != 1 {
		t.Fatalf("target = %+v", got)
	}
	got = ResolveDropTarget(Point{X: 110, Y: 110}, f.query(f.c))
	if got == nil || got.Kind != FloatingWindowInsert || got.Index != 0 {
		t.Fatalf("bar target = %+v", got)
	}
	// The only tab of a window cannot be dropped back into it.
	if got := ResolveDropTarget(Point{X: 200, Y: 200}, f.query(d)); got != nil {
		t.Fatalf("self window drop = %+v", got)
	}
}

func TestDropOnEmptyTreeTargetsRoot(t *testing.T) {
	tree := NewDockTree(DefaultSettings(), nil)
	tree.RecalcLayout(Rect{W: 400, H: 300})
	tab, _ := newFakeTab("A")
	got := ResolveDropTarget(Point{X: 10, Y: 10}, DropQuery{Tree: tree, Settings: DefaultSettings(), Tab: tab.ID})
	if got == nil || got.Kind != TabGroupInsert || got.Leaf != 0 {
		t.Fatalf("target = %+v", got)
	}
}
