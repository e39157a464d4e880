// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/tree.go
// Summary: Recursive Leaf/Split partition of the dock area.
// Usage: Owned by Workspace; structural edits go through DockTree methods only.

package dock

import (
	"fmt"
	"log"
	"math"
	"strings"
)

// Direction is the axis a split divides.
type Direction int

const (
	// Horizontal places the children side by side; the ratio divides width.
	Horizontal Direction = iota
	// Vertical stacks the children; the ratio divides height.
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseDirection parses the String form of a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "horizontal", "h":
		return Horizontal, true
	case "vertical", "v":
		return Vertical, true
	}
	return Horizontal, false
}

// Node is either a leaf (a tab group) or a split with exactly two children.
// Children are owned by their parent; there are no parent pointers.
type Node struct {
	ID NodeID

	// Leaf state.
	Group TabGroup

	// Split state.
	Direction Direction
	Ratio     float64
	Left      *Node
	Right     *Node

	// Geometry from the last RecalcLayout.
	Bounds   Rect
	Content  Rect // leaves only
	Splitter Rect // splits only
}

// IsLeaf reports whether n is a tab container.
func (n *Node) IsLeaf() bool { return n.Left == nil && n.Right == nil }

func newLeaf(tabs ...*Tab) *Node {
	n := &Node{ID: newNodeID()}
	for _, t := range tabs {
		n.Group.Insert(n.Group.Len(), t)
	}
	n.Group.Active = 0
	return n
}

// SplitResult describes a successful split.
type SplitResult struct {
	Split NodeID
	Leaf  NodeID
	Ratio float64
	// Warning wraps ErrDegenerateSplit when the requested ratio was clamped.
	Warning error
}

// DockTree owns the root node and the layout settings.
type DockTree struct {
	root     *Node
	settings Settings
	measure  TextMeasurer
	bounds   Rect
}

// NewDockTree returns an empty tree.
func NewDockTree(s Settings, m TextMeasurer) *DockTree {
	if m == nil {
		m = s.Measurer()
	}
	return &DockTree{settings: s, measure: m}
}

// Root returns the root node, or nil for an empty tree.
func (t *DockTree) Root() *Node { return t.root }

// Empty reports whether the tree has no leaves.
func (t *DockTree) Empty() bool { return t.root == nil }

// Bounds returns the rectangle passed to the last RecalcLayout.
func (t *DockTree) Bounds() Rect { return t.bounds }

// SetSettings replaces the layout settings. Call RecalcLayout afterwards.
func (t *DockTree) SetSettings(s Settings, m TextMeasurer) {
	t.settings = s
	if m != nil {
		t.measure = m
	}
}

// path returns the nodes from the root down to id, or nil.
func (t *DockTree) path(id NodeID) []*Node {
	var walk func(n *Node, acc []*Node) []*Node
	walk = func(n *Node, acc []*Node) []*Node {
		if n == nil {
			return nil
		}
		acc = append(acc, n)
		if n.ID == id {
			return acc
		}
		if found := walk(n.Left, acc); found != nil {
			return found
		}
		return walk(n.Right, acc)
	}
	return walk(t.root, make([]*Node, 0, 8))
}

// Node returns the node with id, or nil.
func (t *DockTree) Node(id NodeID) *Node {
	p := t.path(id)
	if p == nil {
		return nil
	}
	return p[len(p)-1]
}

// Walk visits every node depth-first, parents before children.
func (t *DockTree) Walk(fn func(n *Node, depth int)) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if n == nil {
			return
		}
		fn(n, depth)
		walk(n.Left, depth+1)
		walk(n.Right, depth+1)
	}
	walk(t.root, 0)
}

// Leaves returns every leaf in left-to-right order.
func (t *DockTree) Leaves() []*Node {
	var out []*Node
	t.Walk(func(n *Node, _ int) {
		if n.IsLeaf() {
			out = append(out, n)
		}
	})
	return out
}

// FindTab locates the leaf holding tab id.
func (t *DockTree) FindTab(id TabID) (*Node, int, bool) {
	for _, leaf := range t.Leaves() {
		if i := leaf.Group.IndexOf(id); i >= 0 {
			return leaf, i, true
		}
	}
	return nil, -1, false
}

func (t *DockTree) leafPath(id NodeID) ([]*Node, error) {
	p := t.path(id)
	if p == nil {
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidTarget, id)
	}
	if !p[len(p)-1].IsLeaf() {
		return nil, fmt.Errorf("%w: %s is not a leaf", ErrInvalidTarget, id)
	}
	return p, nil
}

// replaceChild swaps old (the last node of path) for repl in its parent.
func (t *DockTree) replaceChild(path []*Node, old, repl *Node) {
	if len(path) <= 1 {
		t.root = repl
		return
	}
	parent := path[len(path)-2]
	if parent.Left == old {
		parent.Left = repl
	} else {
		parent.Right = repl
	}
}

// RecalcLayout recomputes bounds top-down. It must run after any structural
// edit before the next render.
func (t *DockTree) RecalcLayout(r Rect) {
	t.bounds = r
	t.layoutNode(t.root, r)
}

func (t *DockTree) layoutNode(n *Node, r Rect) {
	if n == nil {
		return
	}
	n.Bounds = r
	if n.IsLeaf() {
		barH := math.Min(t.settings.TabBarHeight, r.H)
		bar := Rect{X: r.X, Y: r.Y, W: r.W, H: barH}
		n.Content = Rect{X: r.X, Y: r.Y + barH, W: r.W, H: r.H - barH}
		n.Splitter = Rect{}
		n.Group.layout(bar, t.settings, t.measure)
		for _, tab := range n.Group.Tabs {
			tab.contentSize = n.Content.Size()
		}
		return
	}

	n.Content = Rect{}
	var first, second Rect
	switch n.Direction {
	case Horizontal:
		sw := math.Min(t.settings.SplitterWidth, r.W)
		avail := r.W - sw
		lw := t.snap(avail * n.Ratio)
		first = Rect{X: r.X, Y: r.Y, W: lw, H: r.H}
		n.Splitter = Rect{X: r.X + lw, Y: r.Y, W: sw, H: r.H}
		second = Rect{X: r.X + lw + sw, Y: r.Y, W: avail - lw, H: r.H}
	default:
		sw := math.Min(t.settings.SplitterWidth, r.H)
		avail := r.H - sw
		th := t.snap(avail * n.Ratio)
		first = Rect{X: r.X, Y: r.Y, W: r.W, H: th}
		n.Splitter = Rect{X: r.X, Y: r.Y + th, W: r.W, H: sw}
		second = Rect{X: r.X, Y: r.Y + th + sw, W: r.W, H: avail - th}
	}
	t.layoutNode(n.Left, first)
	t.layoutNode(n.Right, second)
}

func (t *DockTree) snap(v float64) float64 {
	if t.settings.SnapToGrid {
		return math.Round(v)
	}
	return v
}

// FindLeafAt returns the deepest leaf whose bounds contain p.
func (t *DockTree) FindLeafAt(p Point) (NodeID, bool) {
	n := t.root
	for n != nil {
		if !n.Bounds.Contains(p) {
			return 0, false
		}
		if n.IsLeaf() {
			return n.ID, true
		}
		switch {
		case n.Left.Bounds.Contains(p):
			n = n.Left
		case n.Right.Bounds.Contains(p):
			n = n.Right
		default:
			return 0, false
		}
	}
	return 0, false
}

// SplitterAt returns the split whose splitter strip contains p.
func (t *DockTree) SplitterAt(p Point) (NodeID, bool) {
	n := t.root
	for n != nil && !n.IsLeaf() {
		if n.Splitter.Contains(p) {
			return n.ID, true
		}
		switch {
		case n.Left.Bounds.Contains(p):
			n = n.Left
		case n.Right.Bounds.Contains(p):
			n = n.Right
		default:
			return 0, false
		}
	}
	return 0, false
}

func clampRatio(ratio float64) (float64, error) {
	if math.IsNaN(ratio) {
		return 0.5, fmt.Errorf("%w: ratio NaN replaced with 0.5", ErrDegenerateSplit)
	}
	clamped := clampFloat(ratio, MinSplitRatio, MaxSplitRatio)
	if clamped != ratio {
		return clamped, fmt.Errorf("%w: ratio %.3f clamped to %.3f", ErrDegenerateSplit, ratio, clamped)
	}
	return ratio, nil
}

// Split replaces leaf target with a split whose first child is the original
// leaf and whose second child is a new leaf holding tab.
func (t *DockTree) Split(target NodeID, dir Direction, ratio float64, tab *Tab) (SplitResult, error) {
	return t.split(target, dir, ratio, tab, false)
}

// SplitBefore is Split with the new leaf placed first (left or top).
func (t *DockTree) SplitBefore(target NodeID, dir Direction, ratio float64, tab *Tab) (SplitResult, error) {
	return t.split(target, dir, ratio, tab, true)
}

func (t *DockTree) split(target NodeID, dir Direction, ratio float64, tab *Tab, newFirst bool) (SplitResult, error) {
	if tab == nil {
		return SplitResult{}, fmt.Errorf("%w: split of %s needs a tab for the new leaf", ErrInvalidTarget, target)
	}
	path, err := t.leafPath(target)
	if err != nil {
		return SplitResult{}, err
	}
	leaf := path[len(path)-1]
	clamped, warn := clampRatio(ratio)
	if warn != nil {
		log.Printf("DockTree: split of %s: %v", target, warn)
	}

	fresh := newLeaf(tab)
	split := &Node{ID: newNodeID(), Direction: dir, Ratio: clamped}
	if newFirst {
		split.Left, split.Right = fresh, leaf
	} else {
		split.Left, split.Right = leaf, fresh
	}
	t.replaceChild(path, leaf, split)
	return SplitResult{Split: split.ID, Leaf: fresh.ID, Ratio: clamped, Warning: warn}, nil
}

// InsertTab inserts tab into leaf node at index (clamped) and activates it.
func (t *DockTree) InsertTab(node NodeID, at int, tab *Tab) error {
	if tab == nil {
		return fmt.Errorf("%w: nil tab", ErrInvalidTarget)
	}
	path, err := t.leafPath(node)
	if err != nil {
		return err
	}
	path[len(path)-1].Group.Insert(at, tab)
	return nil
}

// RemoveTab detaches the tab at index from leaf node and hands ownership to
// the caller. A leaf left empty collapses into its sibling. On error the
// tree is unchanged.
func (t *DockTree) RemoveTab(node NodeID, index int) (*Tab, error) {
	path, err := t.leafPath(node)
	if err != nil {
		return nil, err
	}
	tab, err := path[len(path)-1].Group.Remove(index)
	if err != nil {
		return nil, fmt.Errorf("remove tab from %s: %w", node, err)
	}
	t.collapse(path)
	return tab, nil
}

// collapse removes an empty leaf at the end of path, promoting its sibling
// into the grandparent, and repeats while the promoted node is itself empty.
func (t *DockTree) collapse(path []*Node) {
	for len(path) > 0 {
		n := path[len(path)-1]
		if !n.IsLeaf() || n.Group.Len() > 0 {
			return
		}
		if len(path) == 1 {
			t.root = nil
			return
		}
		parent := path[len(path)-2]
		sibling := parent.Left
		if sibling == n {
			sibling = parent.Right
		}
		t.replaceChild(path[:len(path)-1], parent, sibling)
		path = append(path[:len(path)-2], sibling)
	}
}

// SetRatio updates a split's ratio, clamping it. It returns the value used.
func (t *DockTree) SetRatio(split NodeID, ratio float64) (float64, error) {
	n := t.Node(split)
	if n == nil || n.IsLeaf() {
		return 0, fmt.Errorf("%w: %s is not a split", ErrInvalidTarget, split)
	}
	clamped, _ := clampRatio(ratio)
	n.Ratio = clamped
	return clamped, nil
}

// RatioAt converts a pointer position into the ratio that would put the
// splitter of split under the pointer.
func (t *DockTree) RatioAt(split NodeID, p Point) (float64, error) {
	n := t.Node(split)
	if n == nil || n.IsLeaf() {
		return 0, fmt.Errorf("%w: %s is not a split", ErrInvalidTarget, split)
	}
	var avail, offset float64
	if n.Direction == Horizontal {
		avail = n.Bounds.W - n.Splitter.W
		offset = p.X - n.Bounds.X - n.Splitter.W/2
	} else {
		avail = n.Bounds.H - n.Splitter.H
		offset = p.Y - n.Bounds.Y - n.Splitter.H/2
	}
	if avail <= 0 {
		return n.Ratio, nil
	}
	r, _ := clampRatio(offset / avail)
	return r, nil
}

// AddTab puts tab into the first leaf, creating the root leaf for an empty
// tree. It returns the leaf used.
func (t *DockTree) AddTab(tab *Tab) NodeID {
	if t.root == nil {
		t.root = newLeaf(tab)
		return t.root.ID
	}
	leaves := t.Leaves()
	leaf := leaves[0]
	leaf.Group.Insert(leaf.Group.Len(), tab)
	return leaf.ID
}

// Validate checks the structural invariants: acyclic, every split has two
// children, ratios in range, no empty leaves, unique IDs, valid active
// indexes.
func (t *DockTree) Validate() error {
	seenNodes := make(map[*Node]bool)
	ids := make(map[NodeID]bool)
	tabs := make(map[TabID]bool)
	var check func(n *Node) error
	check = func(n *Node) error {
		if seenNodes[n] {
			return fmt.Errorf("cycle at %s", n.ID)
		}
		seenNodes[n] = true
		if ids[n.ID] {
			return fmt.Errorf("duplicate node id %s", n.ID)
		}
		ids[n.ID] = true
		if n.IsLeaf() {
			if n.Group.Len() == 0 {
				return fmt.Errorf("empty leaf %s", n.ID)
			}
			if n.Group.Active < 0 || n.Group.Active >= n.Group.Len() {
				return fmt.Errorf("leaf %s active index %d out of range", n.ID, n.Group.Active)
			}
			for _, tab := range n.Group.Tabs {
				if tab == nil {
					return fmt.Errorf("nil tab in %s", n.ID)
				}
				if tabs[tab.ID] {
					return fmt.Errorf("tab %s held twice", tab.ID)
				}
				tabs[tab.ID] = true
			}
			return nil
		}
		if n.Left == nil || n.Right == nil {
			return fmt.Errorf("split %s has a single child", n.ID)
		}
		if n.Ratio < MinSplitRatio || n.Ratio > MaxSplitRatio {
			return fmt.Errorf("split %s ratio %.3f out of range", n.ID, n.Ratio)
		}
		if err := check(n.Left); err != nil {
			return err
		}
		return check(n.Right)
	}
	if t.root == nil {
		return nil
	}
	return check(t.root)
}

// normalize collapses empty leaves and single-child splits anywhere in the
// subtree. It is used when a tree is assembled from persisted records.
func normalize(n *Node) *Node {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		if n.Group.Len() == 0 {
			return nil
		}
		return n
	}
	n.Left = normalize(n.Left)
	n.Right = normalize(n.Right)
	switch {
	case n.Left == nil:
		return n.Right
	case n.Right == nil:
		return n.Left
	}
	return n
}
