// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/floating.go
// Summary: Independently positioned windows floating above the dock tree.
// Usage: Owned by Workspace. Each window has its own tab group and move/resize state.

package dock

import (
	"fmt"
	"log"
	"math"
	"sort"
)

// ResizeEdge is a bitmask of the window edges being dragged.
type ResizeEdge uint8

const (
	EdgeLeft ResizeEdge = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// WindowPart is the region of a floating window under the pointer.
type WindowPart int

const (
	WindowPartNone WindowPart = iota
	WindowPartBorder
	WindowPartTabBar
	WindowPartContent
)

// WindowHit is the result of hit testing a floating window.
type WindowHit struct {
	Part  WindowPart
	Edges ResizeEdge
	Tab   TabHit
}

type windowMode int

const (
	windowIdle windowMode = iota
	windowMoving
	windowResizing
)

// FloatingWindow is an overlapping window with its own tab list.
type FloatingWindow struct {
	ID          WindowID
	Position    Point
	Size        Size
	Group       TabGroup
	Resizable   bool
	Minimized   bool
	AlwaysOnTop bool

	// Content is the content rect from the last layout.
	Content Rect

	mode        windowMode
	grabOffset  Point
	edges       ResizeEdge
	anchorPoint Point
	anchorSize  Size
	anchorPos   Point
	stamp       uint64
	barHeight   float64
}

// Bounds returns the on-screen rect. A minimized window collapses to its
// tab bar.
func (w *FloatingWindow) Bounds() Rect {
	r := Rect{X: w.Position.X, Y: w.Position.Y, W: w.Size.W, H: w.Size.H}
	if w.Minimized {
		r.H = math.Min(w.barHeight, w.Size.H)
	}
	return r
}

// Moving reports whether the window is being moved.
func (w *FloatingWindow) Moving() bool { return w.mode == windowMoving }

// Resizing reports whether the window is being resized.
func (w *FloatingWindow) Resizing() bool { return w.mode == windowResizing }

// FloatingWindowManager owns every floating window and their stacking order.
type FloatingWindowManager struct {
	windows  []*FloatingWindow
	settings Settings
	measure  TextMeasurer
	clock    uint64
	active   *FloatingWindow
}

// NewFloatingWindowManager returns an empty manager.
func NewFloatingWindowManager(s Settings, m TextMeasurer) *FloatingWindowManager {
	if m == nil {
		m = s.Measurer()
	}
	return &FloatingWindowManager{settings: s, measure: m}
}

// SetSettings replaces the layout settings.
func (m *FloatingWindowManager) SetSettings(s Settings, tm TextMeasurer) {
	m.settings = s
	if tm != nil {
		m.measure = tm
	}
}

func (m *FloatingWindowManager) tick() uint64 {
	m.clock++
	return m.clock
}

// Len returns the number of windows.
func (m *FloatingWindowManager) Len() int { return len(m.windows) }

// Create opens a window at pos holding tabs. The size is raised to the
// configured minimum. A window never exists without tabs, so Create returns
// nil when tabs holds no tab.
func (m *FloatingWindowManager) Create(pos Point, size Size, tabs ...*Tab) *FloatingWindow {
	held := tabs[:0:0]
	for _, t := range tabs {
		if t != nil {
			held = append(held, t)
		}
	}
	if len(held) == 0 {
		return nil
	}
	w := &FloatingWindow{
		ID:        newWindowID(),
		Position:  pos,
		Size:      m.clampSize(size),
		Resizable: true,
		stamp:     m.tick(),
	}
	for _, t := range held {
		w.Group.Insert(w.Group.Len(), t)
	}
	m.windows = append(m.windows, w)
	m.layoutWindow(w)
	log.Printf("FloatingWindowManager: created %s at (%.0f,%.0f) %.0fx%.0f", w.ID, pos.X, pos.Y, w.Size.W, w.Size.H)
	return w
}

func (m *FloatingWindowManager) clampSize(s Size) Size {
	if s.W <= 0 || s.H <= 0 {
		s = m.settings.DefaultWindowSize
	}
	s.W = math.Max(s.W, m.settings.MinWindowSize.W)
	s.H = math.Max(s.H, m.settings.MinWindowSize.H)
	return s
}

// Get returns the window with id, or nil.
func (m *FloatingWindowManager) Get(id WindowID) *FloatingWindow {
	for _, w := range m.windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func (m *FloatingWindowManager) lookup(id WindowID) (*FloatingWindow, error) {
	w := m.Get(id)
	if w == nil {
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidTarget, id)
	}
	return w, nil
}

// FindTab locates the window holding tab id.
func (m *FloatingWindowManager) FindTab(id TabID) (*FloatingWindow, int, bool) {
	for _, w := range m.windows {
		if i := w.Group.IndexOf(id); i >= 0 {
			return w, i, true
		}
	}
	return nil, -1, false
}

// InsertTab adds tab to window id at index (clamped) and activates it.
func (m *FloatingWindowManager) InsertTab(id WindowID, at int, tab *Tab) error {
	if tab == nil {
		return fmt.Errorf("%w: nil tab", ErrInvalidTarget)
	}
	w, err := m.lookup(id)
	if err != nil {
		return err
	}
	w.Group.Insert(at, tab)
	m.layoutWindow(w)
	return nil
}

// RemoveTab detaches the tab at index. The window is destroyed once its
// group is empty; destroyed reports that.
func (m *FloatingWindowManager) RemoveTab(id WindowID, index int) (tab *Tab, destroyed bool, err error) {
	w, err := m.lookup(id)
	if err != nil {
		return nil, false, err
	}
	tab, err = w.Group.Remove(index)
	if err != nil {
		return nil, false, fmt.Errorf("remove tab from %s: %w", id, err)
	}
	if w.Group.Len() == 0 {
		m.remove(w)
		return tab, true, nil
	}
	m.layoutWindow(w)
	return tab, false, nil
}

// Close removes window id and returns the tabs it held, transferring their
// ownership to the caller.
func (m *FloatingWindowManager) Close(id WindowID) ([]*Tab, error) {
	w, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	tabs := append([]*Tab(nil), w.Group.Tabs...)
	m.remove(w)
	return tabs, nil
}

func (m *FloatingWindowManager) remove(w *FloatingWindow) {
	for i, cur := range m.windows {
		if cur == w {
			m.windows = append(m.windows[:i], m.windows[i+1:]...)
			break
		}
	}
	if m.active == w {
		m.active = nil
	}
	log.Printf("FloatingWindowManager: destroyed %s", w.ID)
}

// Raise makes id the most recently interacted window.
func (m *FloatingWindowManager) Raise(id WindowID) error {
	w, err := m.lookup(id)
	if err != nil {
		return err
	}
	w.stamp = m.tick()
	return nil
}

// SetAlwaysOnTop pins or unpins a window above the others.
func (m *FloatingWindowManager) SetAlwaysOnTop(id WindowID, on bool) error {
	w, err := m.lookup(id)
	if err != nil {
		return err
	}
	w.AlwaysOnTop = on
	return nil
}

// SetMinimized collapses or restores a window.
func (m *FloatingWindowManager) SetMinimized(id WindowID, on bool) error {
	w, err := m.lookup(id)
	if err != nil {
		return err
	}
	w.Minimized = on
	m.layoutWindow(w)
	return nil
}

// SetResizable toggles live resizing for a window.
func (m *FloatingWindowManager) SetResizable(id WindowID, on bool) error {
	w, err := m.lookup(id)
	if err != nil {
		return err
	}
	w.Resizable = on
	return nil
}

// Ordered returns the windows bottom to top: always-on-top windows above
// the rest, most recently interacted last within each band.
func (m *FloatingWindowManager) Ordered() []*FloatingWindow {
	out := append([]*FloatingWindow(nil), m.windows...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AlwaysOnTop != out[j].AlwaysOnTop {
			return !out[i].AlwaysOnTop
		}
		return out[i].stamp < out[j].stamp
	})
	return out
}

// WindowAt returns the topmost window containing p.
func (m *FloatingWindowManager) WindowAt(p Point) *FloatingWindow {
	ordered := m.Ordered()
	for i := len(ordered) - 1; i >= 0; i-- {
		if ordered[i].Bounds().Contains(p) {
			return ordered[i]
		}
	}
	return nil
}

// HitTest resolves the part of w under p.
func (m *FloatingWindowManager) HitTest(w *FloatingWindow, p Point) WindowHit {
	b := w.Bounds()
	if !b.Contains(p) {
		return WindowHit{Part: WindowPartNone, Tab: TabHit{Index: -1}}
	}
	if w.Resizable && !w.Minimized {
		if edges := m.edgesAt(w, p); edges != 0 {
			return WindowHit{Part: WindowPartBorder, Edges: edges, Tab: TabHit{Index: -1}}
		}
	}
	if th := w.Group.HitTest(p); th.Part != PartNone {
		return WindowHit{Part: WindowPartTabBar, Tab: th}
	}
	return WindowHit{Part: WindowPartContent, Tab: TabHit{Index: -1}}
}

func (m *FloatingWindowManager) edgesAt(w *FloatingWindow, p Point) ResizeEdge {
	b := w.Bounds()
	band := m.settings.ResizeBorder
	var e ResizeEdge
	if p.X < b.X+band {
		e |= EdgeLeft
	} else if p.X >= b.Right()-band {
		e |= EdgeRight
	}
	// The top band would swallow the whole tab bar when the bar is no
	// taller than the band.
	if p.Y < b.Y+band && band < m.settings.TabBarHeight {
		e |= EdgeTop
	} else if p.Y >= b.Bottom()-band {
		e |= EdgeBottom
	}
	return e
}

// BeginMove starts moving window id with the pointer at p.
func (m *FloatingWindowManager) BeginMove(id WindowID, p Point) error {
	w, err := m.lookup(id)
	if err != nil {
		return err
	}
	m.End()
	w.stamp = m.tick()
	w.mode = windowMoving
	w.grabOffset = p.Sub(w.Position)
	m.active = w
	return nil
}

// BeginResize starts resizing window id from edges. It reports false, and
// does nothing, for non-resizable or minimized windows.
func (m *FloatingWindowManager) BeginResize(id WindowID, edges ResizeEdge, p Point) (bool, error) {
	w, err := m.lookup(id)
	if err != nil {
		return false, err
	}
	w.stamp = m.tick()
	if !w.Resizable || w.Minimized || edges == 0 {
		return false, nil
	}
	m.End()
	w.mode = windowResizing
	w.edges = edges
	w.anchorPoint = p
	w.anchorSize = w.Size
	w.anchorPos = w.Position
	m.active = w
	return true, nil
}

// Interacting returns the window currently moving or resizing.
func (m *FloatingWindowManager) Interacting() *FloatingWindow { return m.active }

// Drag applies a pointer sample to the window being moved or resized.
// It reports whether a window was affected.
func (m *FloatingWindowManager) Drag(p Point) bool {
	w := m.active
	if w == nil {
		return false
	}
	switch w.mode {
	case windowMoving:
		w.Position = p.Sub(w.grabOffset)
	case windowResizing:
		m.resize(w, p)
	default:
		return false
	}
	m.layoutWindow(w)
	return true
}

func (m *FloatingWindowManager) resize(w *FloatingWindow, p Point) {
	d := p.Sub(w.anchorPoint)
	minW, minH := m.settings.MinWindowSize.W, m.settings.MinWindowSize.H
	pos, size := w.anchorPos, w.anchorSize

	if w.edges&EdgeRight != 0 {
		size.W = math.Max(minW, w.anchorSize.W+d.X)
	}
	if w.edges&EdgeLeft != 0 {
		size.W = math.Max(minW, w.anchorSize.W-d.X)
		pos.X = w.anchorPos.X + w.anchorSize.W - size.W
	}
	if w.edges&EdgeBottom != 0 {
		size.H = math.Max(minH, w.anchorSize.H+d.Y)
	}
	if w.edges&EdgeTop != 0 {
		size.H = math.Max(minH, w.anchorSize.H-d.Y)
		pos.Y = w.anchorPos.Y + w.anchorSize.H - size.H
	}
	w.Position, w.Size = pos, size
}

// End finishes any move or resize.
func (m *FloatingWindowManager) End() {
	if m.active != nil {
		m.active.mode = windowIdle
		m.active.edges = 0
		m.active = nil
	}
}

// Layout recomputes every window's tab bar and content rects.
func (m *FloatingWindowManager) Layout() {
	for _, w := range m.windows {
		m.layoutWindow(w)
	}
}

func (m *FloatingWindowManager) layoutWindow(w *FloatingWindow) {
	w.barHeight = m.settings.TabBarHeight
	full := Rect{X: w.Position.X, Y: w.Position.Y, W: w.Size.W, H: w.Size.H}
	barH := math.Min(w.barHeight, full.H)
	w.Group.layout(Rect{X: full.X, Y: full.Y, W: full.W, H: barH}, m.settings, m.measure)
	if w.Minimized {
		w.Content = Rect{X: full.X, Y: full.Y + barH}
		return
	}
	w.Content = Rect{X: full.X, Y: full.Y + barH, W: full.W, H: full.H - barH}
	for _, t := range w.Group.Tabs {
		t.contentSize = w.Content.Size()
	}
}
