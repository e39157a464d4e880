// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/drop.go
// Summary: Resolves where a dragged tab would land for a pointer position.
// Usage: Pure read-only query used by the drag controller every pointer move.

package dock

import "math"

// DropKind identifies the kind of destination a drag resolves to.
type DropKind int

const (
	// TabGroupInsert inserts into a leaf's tab group. Leaf 0 targets an
	// empty dock area and creates the root leaf.
	TabGroupInsert DropKind = iota
	// SplitCreate splits a leaf and puts the tab in the new half.
	SplitCreate
	// FloatingWindowInsert inserts into an existing floating window.
	FloatingWindowInsert
	// NewFloatingWindow opens a new window around the tab.
	NewFloatingWindow
)

func (k DropKind) String() string {
	switch k {
	case TabGroupInsert:
		return "tab-group-insert"
	case SplitCreate:
		return "split-create"
	case FloatingWindowInsert:
		return "floating-window-insert"
	case NewFloatingWindow:
		return "new-floating-window"
	}
	return "unknown"
}

// DropTarget is a resolved drop destination. Zone is the preview rectangle.
type DropTarget struct {
	Kind   DropKind
	Leaf   NodeID
	Window WindowID
	Index  int

	// SplitCreate.
	Direction Direction
	Ratio     float64
	NewFirst  bool

	// NewFloatingWindow.
	Position Point
	Size     Size

	Zone Rect
}

// DragSource names the container a dragged tab came from. Exactly one of
// Node and Window is set.
type DragSource struct {
	Node   NodeID
	Window WindowID
}

// DropQuery is everything the resolver reads.
type DropQuery struct {
	Tree     *DockTree
	Windows  *FloatingWindowManager
	Settings Settings

	Tab         TabID
	Source      DragSource
	SourceIndex int
	GrabOffset  Point
	ContentSize Size
}

type edgeZone struct {
	rect      Rect
	dir       Direction
	newFirst  bool
	highlight Rect
}

// ResolveDropTarget returns the destination under p, or nil when p is over
// a splitter or the drop would not change anything.
func ResolveDropTarget(p Point, q DropQuery) *DropTarget {
	if q.Windows != nil {
		if w := q.Windows.WindowAt(p); w != nil {
			return resolveWindow(p, q, w)
		}
	}
	if q.Tree != nil && q.Tree.Bounds().Contains(p) {
		if q.Tree.Empty() {
			return &DropTarget{Kind: TabGroupInsert, Zone: q.Tree.Bounds()}
		}
		id, ok := q.Tree.FindLeafAt(p)
		if !ok {
			return nil
		}
		return resolveLeaf(p, q, q.Tree.Node(id))
	}
	return newWindowTarget(p, q)
}

func resolveWindow(p Point, q DropQuery, w *FloatingWindow) *DropTarget {
	t := &DropTarget{Kind: FloatingWindowInsert, Window: w.ID}
	if w.Group.Bar().Contains(p) {
		t.Index = w.Group.InsertIndexAt(p.X)
		t.Zone = w.Group.Bar()
	} else {
		t.Index = w.Group.Len()
		t.Zone = w.Bounds()
	}
	if q.Source.Window == w.ID && isNoop(q, w.Group.Len(), t.Index) {
		return nil
	}
	return t
}

func resolveLeaf(p Point, q DropQuery, n *Node) *DropTarget {
	own := q.Source.Node == n.ID
	if n.Group.Bar().Contains(p) {
		idx := n.Group.InsertIndexAt(p.X)
		if own && isNoop(q, n.Group.Len(), idx) {
			return nil
		}
		return &DropTarget{Kind: TabGroupInsert, Leaf: n.ID, Index: idx, Zone: n.Group.Bar()}
	}
	if !n.Content.Contains(p) {
		return nil
	}

	if z, ok := pickEdge(p, n, q.Settings.EdgeFraction); ok {
		if own && n.Group.Len() == 1 {
			return nil
		}
		return &DropTarget{
			Kind:      SplitCreate,
			Leaf:      n.ID,
			Direction: z.dir,
			Ratio:     0.5,
			NewFirst:  z.newFirst,
			Zone:      z.highlight,
		}
	}
	if own {
		return nil
	}
	return &DropTarget{Kind: TabGroupInsert, Leaf: n.ID, Index: n.Group.Len(), Zone: n.Content}
}

// pickEdge returns the edge strip under p. Corners fall in two strips; the
// one whose centre is nearer wins.
func pickEdge(p Point, n *Node, fraction float64) (edgeZone, bool) {
	c := n.Content
	d := fraction * math.Min(c.W, c.H)
	if d <= 0 {
		return edgeZone{}, false
	}
	b := n.Bounds
	zones := [...]edgeZone{
		{rect: Rect{X: c.X, Y: c.Y, W: d, H: c.H}, dir: Horizontal, newFirst: true,
			highlight: Rect{X: b.X, Y: b.Y, W: b.W / 2, H: b.H}},
		{rect: Rect{X: c.Right() - d, Y: c.Y, W: d, H: c.H}, dir: Horizontal,
			highlight: Rect{X: b.X + b.W/2, Y: b.Y, W: b.W / 2, H: b.H}},
		{rect: Rect{X: c.X, Y: c.Y, W: c.W, H: d}, dir: Vertical, newFirst: true,
			highlight: Rect{X: b.X, Y: b.Y, W: b.W, H: b.H / 2}},
		{rect: Rect{X: c.X, Y: c.Bottom() - d, W: c.W, H: d}, dir: Vertical,
			highlight: Rect{X: b.X, Y: b.Y + b.H/2, W: b.W, H: b.H / 2}},
	}
	best, found := edgeZone{}, false
	bestDist := math.Inf(1)
	for _, z := range zones {
		if !z.rect.Contains(p) {
			continue
		}
		if dist := p.Dist(z.rect.Center()); dist < bestDist {
			best, bestDist, found = z, dist, true
		}
	}
	return best, found
}

// isNoop reports whether inserting the dragged tab at idx of its own group
// (of size n) would leave the group as it is.
func isNoop(q DropQuery, n, idx int) bool {
	if n == 1 {
		return true
	}
	return idx == q.SourceIndex || idx == q.SourceIndex+1
}

func newWindowTarget(p Point, q DropQuery) *DropTarget {
	size := q.ContentSize
	if size.W <= 0 || size.H <= 0 {
		size = q.Settings.DefaultWindowSize
	} else {
		size.H += q.Settings.TabBarHeight
	}
	size.W = math.Max(size.W, q.Settings.MinWindowSize.W)
	size.H = math.Max(size.H, q.Settings.MinWindowSize.H)
	pos := p.Sub(q.GrabOffset)
	return &DropTarget{
		Kind:     NewFloatingWindow,
		Position: pos,
		Size:     size,
		Zone:     Rect{X: pos.X, Y: pos.Y, W: size.W, H: size.H},
	}
}
