// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package dock

import (
	"fmt"
	"math"
	"strings"
)

type fakeContent struct {
	title  string
	kind   string
	data   map[string]interface{}
	dirty  bool
	refuse bool
	veto   bool
	result EventResult

	focused, blurred, closed int
	events                   []Event
}

func (c *fakeContent) Title() string { return c.title }
func (c *fakeContent) Render(s Surface, r Rect) {
	s.DrawText(r.Origin(), c.title, PaintContentText, r.W)
}
func (c *fakeContent) HandleEvent(ev Event) EventResult {
	c.events = append(c.events, ev)
	return c.result
}
func (c *fakeContent) IsDirty() bool  { return c.dirty }
func (c *fakeContent) CanClose() bool { return !c.refuse }
func (c *fakeContent) OnClose() bool {
	c.closed++
	return !c.veto
}
func (c *fakeContent) OnFocus()                 { c.focused++ }
func (c *fakeContent) OnBlur()                  { c.blurred++ }
func (c *fakeContent) Icon() rune               { return 0 }
func (c *fakeContent) ContextMenuItems() []MenuItem {
	return []MenuItem{{Label: "Custom"}}
}
func (c *fakeContent) SnapshotMetadata() (string, map[string]interface{}) {
	return c.kind, c.data
}

func newFakeTab(title string) (*Tab, *fakeContent) {
	c := &fakeContent{title: title, kind: "fake"}
	return NewTab(c, WithTitle(title)), c
}

// fakeFactory builds fakeContent for the "fake" content type only.
type fakeFactory struct {
	built int
}

func (f *fakeFactory) Construct(rec TabRecord) (*Tab, error) {
	if rec.ContentType != "fake" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownContentType, rec.ContentType)
	}
	f.built++
	c := &fakeContent{title: rec.Title, kind: rec.ContentType, data: rec.ContentData}
	return NewTab(c, WithTitle(rec.Title), WithContentType(rec.ContentType)), nil
}

type drawCall struct {
	op    string
	rect  Rect
	at    Point
	text  string
	paint Paint
}

// recordingSurface captures draw calls for assertions.
type recordingSurface struct {
	calls []drawCall
	depth int
	max   int
}

func (s *recordingSurface) FillRect(r Rect, p Paint) {
	s.calls = append(s.calls, drawCall{op: "fill", rect: r, paint: p})
}
func (s *recordingSurface) DrawText(at Point, text string, p Paint, maxWidth float64) {
	s.calls = append(s.calls, drawCall{op: "text", at: at, text: text, paint: p})
}
func (s *recordingSurface) DrawIcon(at Point, icon rune, p Paint) {
	s.calls = append(s.calls, drawCall{op: "icon", at: at, text: string(icon), paint: p})
}
func (s *recordingSurface) DrawLine(from, to Point, p Paint) {
	s.calls = append(s.calls, drawCall{op: "line", at: from, paint: p})
}
func (s *recordingSurface) PushClip(r Rect) {
	s.depth++
	if s.depth > s.max {
		s.max = s.depth
	}
}
func (s *recordingSurface) PopClip() { s.depth-- }

func (s *recordingSurface) texts() []string {
	var out []string
	for _, c := range s.calls {
		if c.op == "text" {
			out = append(out, c.text)
		}
	}
	return out
}

func (s *recordingSurface) count(p Paint) int {
	n := 0
	for _, c := range s.calls {
		if c.paint == p {
			n++
		}
	}
	return n
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func titles(g *TabGroup) []string {
	out := make([]string, len(g.Tabs))
	for i, t := range g.Tabs {
		out[i] = t.Title
	}
	return out
}

func joined(g *TabGroup) string { return strings.Join(titles(g), ",") }

// describe renders a subtree's structure for equality checks.
func describe(n *Node) string {
	if n == nil {
		return "nil"
	}
	if n.IsLeaf() {
		parts := make([]string, len(n.Group.Tabs))
		for i, t := range n.Group.Tabs {
			parts[i] = fmt.Sprintf("%s/%s/%t/%t", t.Title, t.ContentType, t.Closable, t.Pinned)
		}
		return fmt.Sprintf("leaf[%d](%s)", n.Group.Active, strings.Join(parts, " "))
	}
	return fmt.Sprintf("split(%s,%.3f,%s,%s)", n.Direction, n.Ratio, describe(n.Left), describe(n.Right))
}

func pointer(a PointerAction, x, y float64) PointerEvent {
	return PointerEvent{Action: a, Button: ButtonPrimary, Pos: Point{X: x, Y: y}}
}
