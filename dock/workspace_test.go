// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package dock

import (
	"errors"
	"testing"
)

func newTestWorkspace(t *testing.T, titles ...string) (*Workspace, []*Tab, []*fakeContent) {
	t.Helper()
	w := NewWorkspace(DefaultSettings(), nil)
	w.Layout(Rect{W: 1000, H: 800}, Rect{W: 400, H: 400})
	var tabs []*Tab
	var contents []*fakeContent
	for _, title := range titles {
		tab, c := newFakeTab(title)
		if _, err := w.AddTab(tab); err != nil {
			t.Fatalf("add %s: %v", title, err)
		}
		tabs = append(tabs, tab)
		contents = append(contents, c)
	}
	return w, tabs, contents
}

func press(w *Workspace, b PointerButton, x, y float64) {
	w.HandlePointer(PointerEvent{Action: PointerDown, Button: b, Pos: Point{X: x, Y: y}})
}

func release(w *Workspace, b PointerButton, x, y float64) {
	w.HandlePointer(PointerEvent{Action: PointerUp, Button: b, Pos: Point{X: x, Y: y}})
}

func move(w *Workspace, x, y float64) {
	w.HandlePointer(pointer(PointerMove, x, y))
}

func TestDragTabOutOpensFloatingWindow(t *testing.T) {
	w, tabs, _ := newTestWorkspace(t, "A", "B")
	leaf := w.Tree().Root()

	press(w, ButtonPrimary, 40, 12)
	if !w.DragState().Dragging() {
		t.Fatalf("press on a tab should start a drag")
	}
	move(w, 500, 500)
	if target := w.DragState().Target; target == nil || target.Kind != NewFloatingWindow {
		t.Fatalf("target = %+v", target)
	}
	release(w, ButtonPrimary, 500, 500)

	if leaf.Group.Len() != 1 || leaf.Group.Tabs[0] != tabs[1] {
		t.Fatalf("source leaf = %s", joined(&leaf.Group))
	}
	if w.Windows().Len() != 1 {
		t.Fatalf("windows = %d", w.Windows().Len())
	}
	win, idx, ok := w.Windows().FindTab(tabs[0].ID)
	if !ok || idx != 0 || win.Group.Len() != 1 {
		t.Fatalf("tab A should be alone in the new window")
	}
	if win.Position != (Point{X: 460, Y: 488}) || win.Size != (Size{W: 400, H: 400}) {
		t.Fatalf("window at %+v size %+v", win.Position, win.Size)
	}
	if w.FocusedTab() != tabs[0] {
		t.Fatalf("dropped tab should be focused")
	}
	if err := w.Tree().Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestDragTabBetweenLeavesCollapsesSource(t *testing.T) {
	w := NewWorkspace(DefaultSettings(), nil)
	a, _ := newFakeTab("A")
	b, _ := newFakeTab("B")
	c, _ := newFakeTab("C")
	w.AddTab(a)
	res, err := w.Tree().Split(w.Tree().Root().ID, Horizontal, 0.5, b)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if err := w.AddTabToLeaf(res.Leaf, 1, c); err != nil {
		t.Fatalf("add: %v", err)
	}
	w.Layout(Rect{W: 1000, H: 800}, Rect{W: 804, H: 424})

	press(w, ButtonPrimary, 20, 10)
	move(w, 300, 10)
	move(w, 500, 10)
	release(w, ButtonPrimary, 500, 10)

	root := w.Tree().Root()
	if !root.IsLeaf() || root.ID != res.Leaf {
		t.Fatalf("emptied leaf should collapse: %s", describe(root))
	}
	if joined(&root.Group) != "B,A,C" || root.Group.Active != 1 {
		t.Fatalf("tabs = %s active %d", joined(&root.Group), root.Group.Active)
	}
	if root.Bounds != (Rect{W: 804, H: 424}) {
		t.Fatalf("survivor should fill the dock area, got %+v", root.Bounds)
	}
}

func TestClickActivatesWithoutMoving(t *testing.T) {
	w, tabs, contents := newTestWorkspace(t, "A", "B")
	if w.FocusedTab() != tabs[1] {
		t.Fatalf("last added tab should be focused")
	}
	press(w, ButtonPrimary, 20, 10)
	release(w, ButtonPrimary, 21, 10)
	g := &w.Tree().Root().Group
	if g.Active != 0 || joined(g) != "A,B" {
		t.Fatalf("active=%d tabs=%s", g.Active, joined(g))
	}
	if w.FocusedTab() != tabs[0] || contents[1].blurred != 1 || contents[0].focused != 2 {
		t.Fatalf("focus hooks: A focused %d, B blurred %d", contents[0].focused, contents[1].blurred)
	}
	if w.DragState().Dragging() {
		t.Fatalf("drag should be idle")
	}
}

func TestEscapeCancelsDrag(t *testing.T) {
	w, _, _ := newTestWorkspace(t, "A", "B")
	press(w, ButtonPrimary, 20, 10)
	move(w, 600, 600)
	if !w.HandleKey(KeyEvent{Key: "Esc"}) || w.DragState().Dragging() {
		t.Fatalf("Esc should cancel the drag")
	}
	release(w, ButtonPrimary, 600, 600)
	if w.Windows().Len() != 0 || w.Tree().Root().Group.Len() != 2 {
		t.Fatalf("cancelled drag mutated the layout")
	}
}

func TestCloseButtonAndMiddleClick(t *testing.T) {
	w, tabs, _ := newTestWorkspace(t, "A", "B", "C")
	// Close button of A spans x 64..80.
	press(w, ButtonPrimary, 70, 10)
	release(w, ButtonPrimary, 70, 10)
	g := &w.Tree().Root().Group
	if joined(g) != "B,C" {
		t.Fatalf("tabs after close = %s", joined(g))
	}
	press(w, ButtonMiddle, 100, 10)
	release(w, ButtonMiddle, 100, 10)
	if joined(g) != "B" {
		t.Fatalf("tabs after middle click = %s", joined(g))
	}
	if w.FocusedTab() != tabs[1] {
		t.Fatalf("focus should move to the survivor")
	}
	// Releasing elsewhere abandons the close.
	press(w, ButtonPrimary, 70, 10)
	release(w, ButtonPrimary, 200, 200)
	if g.Len() != 1 {
		t.Fatalf("close should need a release over the button")
	}
}

func TestPinnedTabIgnoresCloseGestures(t *testing.T) {
	w, tabs, contents := newTestWorkspace(t, "A", "B")
	if err := w.SetPinned(tabs[0].ID, true); err != nil {
		t.Fatalf("pin: %v", err)
	}
	g := &w.Tree().Root().Group
	press(w, ButtonMiddle, 40, 10)
	release(w, ButtonMiddle, 40, 10)
	if joined(g) != "A,B" {
		t.Fatalf("middle click closed a pinned tab, tabs = %s", joined(g))
	}
	if err := w.ActivateTab(tabs[0].ID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if !w.HandleKey(KeyEvent{Key: "Ctrl+W", Mods: ModCtrl}) {
		t.Fatalf("Ctrl+W should still be consumed")
	}
	if joined(g) != "A,B" || contents[0].closed != 0 {
		t.Fatalf("Ctrl+W closed a pinned tab, tabs = %s", joined(g))
	}
	w.SetPinned(tabs[0].ID, false)
	press(w, ButtonMiddle, 40, 10)
	release(w, ButtonMiddle, 40, 10)
	if joined(g) != "B" {
		t.Fatalf("unpinned tab should close on middle click, tabs = %s", joined(g))
	}
}

func TestCloseTabVetoes(t *testing.T) {
	w, tabs, contents := newTestWorkspace(t, "A", "B", "C")
	contents[0].veto = true
	ok, err := w.CloseTab(tabs[0].ID)
	if ok || err != nil || contents[0].closed != 1 {
		t.Fatalf("veto: ok=%v err=%v closed=%d", ok, err, contents[0].closed)
	}
	contents[1].refuse = true
	if ok, _ := w.CloseTab(tabs[1].ID); ok || contents[1].closed != 0 {
		t.Fatalf("refusing content should not reach OnClose")
	}
	tabs[2].Closable = false
	if ok, _ := w.CloseTab(tabs[2].ID); ok {
		t.Fatalf("non-closable tab closed")
	}
	if w.Tree().Root().Group.Len() != 3 {
		t.Fatalf("tabs were removed")
	}
	if _, err := w.CloseTab(TabID(0)); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("unknown tab: %v", err)
	}
}

func TestCloseOthersSkipsPinned(t *testing.T) {
	w, tabs, _ := newTestWorkspace(t, "A", "B", "C", "D")
	w.SetPinned(tabs[1].ID, true)
	n, err := w.CloseOthers(tabs[0].ID)
	if err != nil || n != 2 {
		t.Fatalf("closed %d, %v", n, err)
	}
	if got := joined(&w.Tree().Root().Group); got != "A,B" {
		t.Fatalf("tabs = %s", got)
	}
	n, _ = w.CloseAll(tabs[0].ID)
	if n != 1 || joined(&w.Tree().Root().Group) != "B" {
		t.Fatalf("close all closed %d", n)
	}
}

func TestContextMenuKeyboard(t *testing.T) {
	w, tabs, _ := newTestWorkspace(t, "A", "B")
	press(w, ButtonSecondary, 20, 10)
	items, rect, ok := w.ContextMenu()
	if !ok {
		t.Fatalf("menu should be open")
	}
	labels := ""
	for _, it := range items {
		labels += it.Label + ";"
	}
	if labels != "Close;Close Others;Pin;Detach;Custom;" {
		t.Fatalf("labels = %s", labels)
	}
	if rect != (Rect{X: 20, Y: 10, W: 160, H: 100}) {
		t.Fatalf("menu rect = %+v", rect)
	}
	for i := 0; i < 3; i++ {
		w.HandleKey(KeyEvent{Key: "Down"})
	}
	w.HandleKey(KeyEvent{Key: "Enter"})
	if !tabs[0].Pinned {
		t.Fatalf("Pin should have run")
	}
	if _, _, open := w.ContextMenu(); open {
		t.Fatalf("menu should close after running an item")
	}

	press(w, ButtonSecondary, 20, 10)
	items, _, _ = w.ContextMenu()
	if items[2].Label != "Unpin" || !items[0].Disabled {
		t.Fatalf("pinned tab menu = %+v", items)
	}
	w.HandleKey(KeyEvent{Key: "Esc"})
	if _, _, open := w.ContextMenu(); open {
		t.Fatalf("Esc should dismiss the menu")
	}
}

func TestContextMenuPointerAndClamp(t *testing.T) {
	w, tabs, _ := newTestWorkspace(t, "A", "B")
	if err := w.OpenContextMenu(tabs[0].ID, Point{X: 990, Y: 790}); err != nil {
		t.Fatalf("open: %v", err)
	}
	_, rect, _ := w.ContextMenu()
	if rect.Right() != 1000 || rect.Bottom() != 800 {
		t.Fatalf("menu should be clamped into the viewport: %+v", rect)
	}
	// Fourth row is Detach.
	press(w, ButtonPrimary, rect.X+5, rect.Y+3*20+5)
	if w.Windows().Len() != 1 {
		t.Fatalf("Detach should open a window")
	}
	win, _, ok := w.Windows().FindTab(tabs[0].ID)
	if !ok || win.Position != (Point{X: 24, Y: 24}) {
		t.Fatalf("detached window = %+v", win)
	}
}

func TestSplitterDragResizesLive(t *testing.T) {
	w := NewWorkspace(DefaultSettings(), nil)
	a, _ := newFakeTab("A")
	b, _ := newFakeTab("B")
	w.AddTab(a)
	res, _ := w.Tree().Split(w.Tree().Root().ID, Horizontal, 0.5, b)
	w.Layout(Rect{W: 804, H: 600}, Rect{W: 804, H: 600})

	press(w, ButtonPrimary, 402, 100)
	move(w, 201, 100)
	split := w.Tree().Node(res.Split)
	if !near(split.Left.Bounds.W, 199) {
		t.Fatalf("left width = %v, want 199", split.Left.Bounds.W)
	}
	release(w, ButtonPrimary, 201, 100)
	move(w, 600, 100)
	if !near(split.Left.Bounds.W, 199) {
		t.Fatalf("splitter kept following after release")
	}
}

func TestPointerAndKeysReachContent(t *testing.T) {
	w, tabs, contents := newTestWorkspace(t, "A", "B")
	press(w, ButtonPrimary, 200, 200)
	if len(contents[1].events) != 1 {
		t.Fatalf("active content should receive the press, got %d events", len(contents[1].events))
	}
	contents[1].result = Handled
	if !w.HandleKey(KeyEvent{Key: "Rune", Rune: 'x'}) {
		t.Fatalf("handled key should be consumed")
	}
	if ev, ok := contents[1].events[len(contents[1].events)-1].(KeyEvent); !ok || ev.Rune != 'x' {
		t.Fatalf("last event = %#v", contents[1].events[len(contents[1].events)-1])
	}
	contents[1].result = Ignored
	if !w.HandleKey(KeyEvent{Key: "PgDn", Mods: ModCtrl}) {
		t.Fatalf("Ctrl+PgDn should cycle")
	}
	if w.FocusedTab() != tabs[0] {
		t.Fatalf("cycle should wrap to A")
	}
	w.HandleKey(KeyEvent{Key: "Ctrl+W", Mods: ModCtrl})
	if got := joined(&w.Tree().Root().Group); got != "B" {
		t.Fatalf("Ctrl+W should close the focused tab, tabs = %s", got)
	}
}

func TestFloatingWindowMoveByBar(t *testing.T) {
	w, _, _ := newTestWorkspace(t, "A")
	x, _ := newFakeTab("X")
	id, err := w.AddFloatingTab(x, Point{X: 500, Y: 100}, Size{W: 300, H: 200})
	if err != nil {
		t.Fatalf("add floating: %v", err)
	}
	press(w, ButtonPrimary, 700, 110)
	move(w, 650, 160)
	release(w, ButtonPrimary, 650, 160)
	if pos := w.Windows().Get(id).Position; pos != (Point{X: 450, Y: 150}) {
		t.Fatalf("window at %+v", pos)
	}
}

func TestMoveTabIntoSplit(t *testing.T) {
	w, tabs, _ := newTestWorkspace(t, "A", "B")
	leaf := w.Tree().Root().ID
	err := w.MoveTab(tabs[1].ID, DropTarget{Kind: SplitCreate, Leaf: leaf, Direction: Vertical, Ratio: 0.5})
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	root := w.Tree().Root()
	if root.IsLeaf() || root.Direction != Vertical || root.Right.Group.Tabs[0] != tabs[1] {
		t.Fatalf("tree = %s", describe(root))
	}
	// Splitting a single-tab leaf with its own tab is refused untouched.
	before := describe(root)
	err = w.MoveTab(tabs[0].ID, DropTarget{Kind: SplitCreate, Leaf: root.Left.ID, Ratio: 0.5})
	if !errors.Is(err, ErrInvalidTarget) || describe(w.Tree().Root()) != before {
		t.Fatalf("self split: %v", err)
	}
}

func TestDropIntoEmptyDockCreatesRoot(t *testing.T) {
	w := NewWorkspace(DefaultSettings(), nil)
	w.Layout(Rect{W: 1000, H: 800}, Rect{W: 400, H: 400})
	x, _ := newFakeTab("X")
	w.AddFloatingTab(x, Point{X: 500, Y: 100}, Size{W: 300, H: 200})
	if err := w.MoveTab(x.ID, DropTarget{Kind: TabGroupInsert}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if w.Tree().Empty() || w.Windows().Len() != 0 {
		t.Fatalf("tab should now be the root leaf")
	}
}

func TestRenderLayersPreviewAndMenu(t *testing.T) {
	w, tabs, contents := newTestWorkspace(t, "A", "B")
	contents[0].dirty = true
	x, _ := newFakeTab("X")
	w.AddFloatingTab(x, Point{X: 500, Y: 100}, Size{W: 300, H: 200})

	press(w, ButtonPrimary, 20, 10)
	move(w, 700, 700)
	s := &recordingSurface{}
	w.Render(s)
	if s.count(PaintDropPreview) != 1 || s.count(PaintDragGhost) != 1 {
		t.Fatalf("drag preview not drawn: %d/%d", s.count(PaintDropPreview), s.count(PaintDragGhost))
	}
	if s.count(PaintDirtyMarker) != 1 || s.count(PaintWindowFrameFocused) != 3 {
		t.Fatalf("dirty=%d frame=%d", s.count(PaintDirtyMarker), s.count(PaintWindowFrameFocused))
	}
	if s.depth != 0 {
		t.Fatalf("unbalanced clips: %d", s.depth)
	}
	w.CancelDrag()

	w.OpenContextMenu(tabs[1].ID, Point{X: 30, Y: 30})
	s = &recordingSurface{}
	w.Render(s)
	texts := s.texts()
	if last := texts[len(texts)-1]; last != "Custom" {
		t.Fatalf("menu should draw last, got %q", last)
	}
}
