// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/notes/notes.go
// Summary: Editable plain-text notes content.
// Usage: Registered as the "notes" content type; data key "text" holds the body.

package notes

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texeldock/apps/textview"
	"github.com/framegrace/texeldock/config"
	"github.com/framegrace/texeldock/dock"
)

// Notes is a small line editor. It turns dirty on the first edit.
type Notes struct {
	lines   [][]rune
	row     int
	col     int
	top     int
	dirty   bool
	focused bool
}

// New builds notes from layout data.
func New(data config.Section) (dock.Content, error) {
	return newNotes(data.GetString("text", "")), nil
}

func newNotes(text string) *Notes {
	n := &Notes{}
	for _, l := range strings.Split(text, "\n") {
		n.lines = append(n.lines, []rune(l))
	}
	return n
}

// Text returns the current body.
func (n *Notes) Text() string {
	parts := make([]string, len(n.lines))
	for i, l := range n.lines {
		parts[i] = string(l)
	}
	return strings.Join(parts, "\n")
}

// Cursor returns the cursor row and rune column.
func (n *Notes) Cursor() (row, col int) { return n.row, n.col }

func (n *Notes) Title() string {
	for _, l := range n.lines {
		if s := strings.TrimSpace(string(l)); s != "" {
			return runewidth.Truncate(s, 20, "…")
		}
	}
	return "Notes"
}

func (n *Notes) Render(s dock.Surface, bounds dock.Rect) {
	rows := textview.Rows(bounds)
	switch {
	case n.row < n.top:
		n.top = n.row
	case rows > 0 && n.row >= n.top+rows:
		n.top = n.row - rows + 1
	}
	lines := make([]textview.Line, len(n.lines))
	for i, l := range n.lines {
		lines[i] = textview.Plain(string(l))
	}
	textview.Draw(s, bounds, lines, n.top)
	if !n.focused || n.row-n.top >= rows {
		return
	}
	line := n.lines[n.row]
	r := ' '
	if n.col < len(line) {
		r = line[n.col]
	}
	x := bounds.X + float64(runewidth.StringWidth(string(line[:n.col])))
	if x < bounds.Right() {
		s.DrawIcon(dock.Point{X: x, Y: bounds.Y + float64(n.row-n.top)}, r, dock.PaintDragGhost)
	}
}

func (n *Notes) HandleEvent(ev dock.Event) dock.EventResult {
	ke, ok := ev.(dock.KeyEvent)
	if !ok {
		return dock.Ignored
	}
	if ke.Mods&(dock.ModCtrl|dock.ModAlt) != 0 {
		return dock.Propagate
	}
	switch ke.Key {
	case "Rune":
		n.insert(ke.Rune)
	case "Enter":
		n.newline()
	case "Backspace", "Backspace2":
		n.backspace()
	case "Delete":
		n.deleteForward()
	case "Left":
		n.left()
	case "Right":
		n.right()
	case "Up":
		n.vertical(-1)
	case "Down":
		n.vertical(1)
	case "Home":
		n.col = 0
	case "End":
		n.col = len(n.lines[n.row])
	default:
		return dock.Propagate
	}
	return dock.Handled
}

func (n *Notes) insert(r rune) {
	line := n.lines[n.row]
	line = append(line[:n.col], append([]rune{r}, line[n.col:]...)...)
	n.lines[n.row] = line
	n.col++
	n.dirty = true
}

func (n *Notes) newline() {
	line := n.lines[n.row]
	head := append([]rune(nil), line[:n.col]...)
	tail := append([]rune(nil), line[n.col:]...)
	n.lines[n.row] = head
	n.lines = append(n.lines[:n.row+1], append([][]rune{tail}, n.lines[n.row+1:]...)...)
	n.row++
	n.col = 0
	n.dirty = true
}

func (n *Notes) backspace() {
	switch {
	case n.col > 0:
		line := n.lines[n.row]
		n.lines[n.row] = append(line[:n.col-1], line[n.col:]...)
		n.col--
	case n.row > 0:
		prev := n.lines[n.row-1]
		n.col = len(prev)
		n.lines[n.row-1] = append(prev, n.lines[n.row]...)
		n.lines = append(n.lines[:n.row], n.lines[n.row+1:]...)
		n.row--
	default:
		return
	}
	n.dirty = true
}

func (n *Notes) deleteForward() {
	line := n.lines[n.row]
	switch {
	case n.col < len(line):
		n.lines[n.row] = append(line[:n.col], line[n.col+1:]...)
	case n.row < len(n.lines)-1:
		n.lines[n.row] = append(line, n.lines[n.row+1]...)
		n.lines = append(n.lines[:n.row+1], n.lines[n.row+2:]...)
	default:
		return
	}
	n.dirty = true
}

func (n *Notes) left() {
	switch {
	case n.col > 0:
		n.col--
	case n.row > 0:
		n.row--
		n.col = len(n.lines[n.row])
	}
}

func (n *Notes) right() {
	switch {
	case n.col < len(n.lines[n.row]):
		n.col++
	case n.row < len(n.lines)-1:
		n.row++
		n.col = 0
	}
}

func (n *Notes) vertical(step int) {
	n.row = min(max(n.row+step, 0), len(n.lines)-1)
	n.col = min(n.col, len(n.lines[n.row]))
}

func (n *Notes) IsDirty() bool  { return n.dirty }
func (n *Notes) CanClose() bool { return true }
func (n *Notes) OnClose() bool  { return true }
func (n *Notes) OnFocus()       { n.focused = true }
func (n *Notes) OnBlur()        { n.focused = false }
func (n *Notes) Icon() rune     { return 0 }

func (n *Notes) ContextMenuItems() []dock.MenuItem {
	return []dock.MenuItem{{
		Label:    "Clear Notes",
		Disabled: n.Text() == "",
		Action: func() {
			n.lines = [][]rune{{}}
			n.row, n.col, n.top = 0, 0, 0
			n.dirty = true
		},
	}}
}

func (n *Notes) SnapshotMetadata() (string, map[string]interface{}) {
	return Name, map[string]interface{}{"text": n.Text()}
}
