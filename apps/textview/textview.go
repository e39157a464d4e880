// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/textview/textview.go
// Summary: Line-oriented drawing shared by the bundled content types.
// Usage: Content types build []Line and call Draw from Render; one row is one surface unit.

package textview

import (
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texeldock/dock"
)

// TabWidth is the number of columns a tab character expands to.
const TabWidth = 4

// Span is a run of text drawn with a single paint.
type Span struct {
	Text  string
	Paint dock.Paint
}

// Line is one row of spans.
type Line []Span

// Plain returns a line of ordinary content text.
func Plain(s string) Line {
	return Line{{Text: s, Paint: dock.PaintContentText}}
}

// Width returns the line width in columns.
func (l Line) Width() int {
	w := 0
	for _, sp := range l {
		w += runewidth.StringWidth(sp.Text)
	}
	return w
}

// Text returns the concatenated span text.
func (l Line) Text() string {
	var b strings.Builder
	for _, sp := range l {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// Rows returns how many whole rows fit in bounds.
func Rows(bounds dock.Rect) int {
	return max(0, int(math.Floor(bounds.H)))
}

// Tail returns the first line index that keeps the last rows lines of n
// visible.
func Tail(n, rows int) int {
	return max(0, n-rows)
}

// ExpandTabs replaces tab characters with spaces up to the next tab stop.
func ExpandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := TabWidth - col%TabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

// Draw fills bounds with the content background and writes lines from index
// first, one per row, truncated to the bounds width.
func Draw(s dock.Surface, bounds dock.Rect, lines []Line, first int) {
	s.FillRect(bounds, dock.PaintBackground)
	rows := Rows(bounds)
	for row := 0; row < rows; row++ {
		i := first + row
		if i < 0 || i >= len(lines) {
			continue
		}
		x := bounds.X
		y := bounds.Y + float64(row)
		for _, sp := range lines[i] {
			room := bounds.Right() - x
			if room <= 0 {
				break
			}
			s.DrawText(dock.Point{X: x, Y: y}, sp.Text, sp.Paint, room)
			x += float64(runewidth.StringWidth(sp.Text))
		}
	}
}

// Center draws a single line centred in bounds.
func Center(s dock.Surface, bounds dock.Rect, line Line) {
	s.FillRect(bounds, dock.PaintBackground)
	w := float64(line.Width())
	x := bounds.X + math.Max(0, math.Floor((bounds.W-w)/2))
	y := bounds.Y + math.Floor(bounds.H/2)
	for _, sp := range line {
		room := bounds.Right() - x
		if room <= 0 {
			break
		}
		s.DrawText(dock.Point{X: x, Y: y}, sp.Text, sp.Paint, room)
		x += float64(runewidth.StringWidth(sp.Text))
	}
}
