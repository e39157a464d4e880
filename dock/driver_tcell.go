// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/driver_tcell.go
// Summary: Surface and input adapters over a tcell screen.
// Usage: The terminal front end renders the workspace through TcellSurface and
// feeds tcell events through TcellInput.

package dock

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texeldock/config"
)

// Theme maps paint roles to tcell styles.
type Theme map[Paint]tcell.Style

// DefaultTheme is a plain palette used when no theme is configured.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		PaintBackground:         base,
		PaintTabBar:             base.Background(tcell.ColorNavy),
		PaintTabActive:          base.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite),
		PaintTabHovered:         base.Background(tcell.ColorTeal),
		PaintTabDefault:         base.Background(tcell.ColorNavy),
		PaintTabDisabled:        base.Background(tcell.ColorNavy).Foreground(tcell.ColorGray),
		PaintTabText:            base.Foreground(tcell.ColorWhite),
		PaintTabCloseButton:     base.Foreground(tcell.ColorRed),
		PaintDirtyMarker:        base.Foreground(tcell.ColorYellow),
		PaintScrollButton:       base.Background(tcell.ColorGray),
		PaintSplitter:           base.Foreground(tcell.ColorGray),
		PaintSplitterActive:     base.Foreground(tcell.ColorAqua),
		PaintWindowFrame:        base.Foreground(tcell.ColorGray),
		PaintWindowFrameFocused: base.Foreground(tcell.ColorAqua).Bold(true),
		PaintDropPreview:        base.Background(tcell.ColorBlue),
		PaintDragGhost:          base.Background(tcell.ColorGreen).Foreground(tcell.ColorBlack),
		PaintMenu:               base.Background(tcell.ColorDarkSlateGray),
		PaintMenuText:           base.Foreground(tcell.ColorWhite),
		PaintMenuDisabled:       base.Foreground(tcell.ColorGray),
		PaintContentText:        base,
		PaintContentAccent:      base.Foreground(tcell.ColorOrange),
	}
}

// ThemeFromConfig overlays the "theme" section of cfg on base. Values are
// "fg:bg[:attr...]" where colours are tcell names or #rrggbb and "default"
// keeps the terminal colour. Malformed entries are ignored.
func ThemeFromConfig(cfg config.Config, base Theme) Theme {
	out := make(Theme, len(base))
	for p, st := range base {
		out[p] = st
	}
	section := cfg.Section("theme")
	for p := Paint(0); p < paintCount; p++ {
		spec := section.GetString(p.String(), "")
		if spec == "" {
			continue
		}
		if st, ok := ParseStyle(spec); ok {
			out[p] = st
		}
	}
	return out
}

// ParseStyle parses a "fg:bg[:attr...]" spec.
func ParseStyle(spec string) (tcell.Style, bool) {
	parts := strings.Split(spec, ":")
	st := tcell.StyleDefault
	color := func(name string) (tcell.Color, bool) {
		name = strings.TrimSpace(name)
		if name == "" || name == "default" {
			return tcell.ColorDefault, true
		}
		c := tcell.GetColor(name)
		return c, c != tcell.ColorDefault
	}
	if fg, ok := color(parts[0]); ok {
		st = st.Foreground(fg)
	} else {
		return st, false
	}
	if len(parts) > 1 {
		bg, ok := color(parts[1])
		if !ok {
			return st, false
		}
		st = st.Background(bg)
	}
	for _, attr := range parts[min(2, len(parts)):] {
		switch strings.TrimSpace(attr) {
		case "bold":
			st = st.Bold(true)
		case "italic":
			st = st.Italic(true)
		case "underline":
			st = st.Underline(true)
		case "reverse":
			st = st.Reverse(true)
		case "dim":
			st = st.Dim(true)
		}
	}
	return st, true
}

type cellRect struct {
	x0, y0, x1, y1 int // x1/y1 exclusive
}

func (c cellRect) contains(x, y int) bool {
	return x >= c.x0 && x < c.x1 && y >= c.y0 && y < c.y1
}

func (c cellRect) intersect(o cellRect) cellRect {
	r := cellRect{max(c.x0, o.x0), max(c.y0, o.y0), min(c.x1, o.x1), min(c.y1, o.y1)}
	if r.x1 < r.x0 {
		r.x1 = r.x0
	}
	if r.y1 < r.y0 {
		r.y1 = r.y0
	}
	return r
}

func toCells(r Rect) cellRect {
	return cellRect{
		x0: int(math.Floor(r.X)),
		y0: int(math.Floor(r.Y)),
		x1: int(math.Floor(r.Right())),
		y1: int(math.Floor(r.Bottom())),
	}
}

// TcellSurface draws onto a tcell screen, one surface unit per cell.
type TcellSurface struct {
	screen tcell.Screen
	theme  Theme
	clips  []cellRect
}

// NewTcellSurface wraps screen. A nil theme selects DefaultTheme.
func NewTcellSurface(screen tcell.Screen, theme Theme) *TcellSurface {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &TcellSurface{screen: screen, theme: theme}
}

// SetTheme replaces the paint mapping.
func (s *TcellSurface) SetTheme(theme Theme) {
	if theme != nil {
		s.theme = theme
	}
}

// Screen returns the wrapped screen.
func (s *TcellSurface) Screen() tcell.Screen { return s.screen }

func (s *TcellSurface) clip() cellRect {
	w, h := s.screen.Size()
	full := cellRect{0, 0, w, h}
	if len(s.clips) == 0 {
		return full
	}
	return s.clips[len(s.clips)-1].intersect(full)
}

func (s *TcellSurface) style(p Paint) tcell.Style {
	if st, ok := s.theme[p]; ok {
		return st
	}
	return tcell.StyleDefault
}

// overlay keeps the background already in the cell when the paint leaves
// its background unset, so text sits on whatever was filled below it.
func (s *TcellSurface) overlay(x, y int, p Paint) tcell.Style {
	st := s.style(p)
	_, bg, _ := st.Decompose()
	if bg != tcell.ColorDefault {
		return st
	}
	_, _, cur, _ := s.screen.GetContent(x, y)
	_, curBg, _ := cur.Decompose()
	return st.Background(curBg)
}

func (s *TcellSurface) set(x, y int, r rune, st tcell.Style) {
	if !s.clip().contains(x, y) {
		return
	}
	s.screen.SetContent(x, y, r, nil, st)
}

// FillRect paints every cell of r with blanks in the paint's style.
func (s *TcellSurface) FillRect(r Rect, p Paint) {
	c := toCells(r).intersect(s.clip())
	st := s.style(p)
	for y := c.y0; y < c.y1; y++ {
		for x := c.x0; x < c.x1; x++ {
			s.screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

// DrawText writes text from at, stopping before maxWidth cells.
func (s *TcellSurface) DrawText(at Point, text string, p Paint, maxWidth float64) {
	x, y := int(math.Floor(at.X)), int(math.Floor(at.Y))
	limit := x + int(math.Floor(maxWidth))
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			return
		}
		s.set(x, y, r, s.overlay(x, y, p))
		x += w
	}
}

// DrawIcon writes a single rune at at.
func (s *TcellSurface) DrawIcon(at Point, icon rune, p Paint) {
	x, y := int(math.Floor(at.X)), int(math.Floor(at.Y))
	s.set(x, y, icon, s.overlay(x, y, p))
}

// DrawLine draws from one cell to another, both inclusive. Axis-aligned
// lines use box-drawing runes.
func (s *TcellSurface) DrawLine(from, to Point, p Paint) {
	x0, y0 := int(math.Floor(from.X)), int(math.Floor(from.Y))
	x1, y1 := int(math.Floor(to.X)), int(math.Floor(to.Y))
	switch {
	case y0 == y1:
		for x := min(x0, x1); x <= max(x0, x1); x++ {
			s.set(x, y0, '─', s.overlay(x, y0, p))
		}
	case x0 == x1:
		for y := min(y0, y1); y <= max(y0, y1); y++ {
			s.set(x0, y, '│', s.overlay(x0, y, p))
		}
	default:
		steps := max(abs(x1-x0), abs(y1-y0))
		for i := 0; i <= steps; i++ {
			x := x0 + (x1-x0)*i/steps
			y := y0 + (y1-y0)*i/steps
			s.set(x, y, '·', s.overlay(x, y, p))
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// PushClip narrows drawing to r.
func (s *TcellSurface) PushClip(r Rect) {
	s.clips = append(s.clips, toCells(r).intersect(s.clip()))
}

// PopClip restores the previous clip.
func (s *TcellSurface) PopClip() {
	if len(s.clips) > 0 {
		s.clips = s.clips[:len(s.clips)-1]
	}
}

// TcellInput turns tcell events into workspace events. tcell reports button
// state, not transitions, so the previous mask is tracked here.
type TcellInput struct {
	buttons tcell.ButtonMask
}

const pointerButtons = tcell.Button1 | tcell.Button2 | tcell.Button3

// Translate converts a tcell event. It reports false for events the
// workspace does not consume.
func (in *TcellInput) Translate(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventMouse:
		return in.mouse(e), true
	case *tcell.EventKey:
		return translateKey(e), true
	}
	return nil, false
}

func (in *TcellInput) mouse(e *tcell.EventMouse) PointerEvent {
	x, y := e.Position()
	pos := Point{X: float64(x), Y: float64(y)}
	mask := e.Buttons()

	if wheel := mask & (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight); wheel != 0 {
		pe := PointerEvent{Action: PointerWheel, Pos: pos}
		switch {
		case wheel&tcell.WheelUp != 0:
			pe.WheelDY = -1
		case wheel&tcell.WheelDown != 0:
			pe.WheelDY = 1
		case wheel&tcell.WheelLeft != 0:
			pe.WheelDX = -1
		case wheel&tcell.WheelRight != 0:
			pe.WheelDX = 1
		}
		return pe
	}

	now := mask & pointerButtons
	prev := in.buttons
	in.buttons = now
	switch {
	case now&^prev != 0:
		return PointerEvent{Action: PointerDown, Button: buttonOf(now &^ prev), Pos: pos}
	case prev&^now != 0:
		return PointerEvent{Action: PointerUp, Button: buttonOf(prev &^ now), Pos: pos}
	}
	return PointerEvent{Action: PointerMove, Button: buttonOf(now), Pos: pos}
}

func buttonOf(m tcell.ButtonMask) PointerButton {
	switch {
	case m&tcell.Button1 != 0:
		return ButtonPrimary
	case m&tcell.Button3 != 0:
		return ButtonMiddle
	case m&tcell.Button2 != 0:
		return ButtonSecondary
	}
	return ButtonNone
}

func translateKey(e *tcell.EventKey) KeyEvent {
	ke := KeyEvent{}
	m := e.Modifiers()
	if e.Key() == tcell.KeyRune {
		ke.Key = "Rune"
		ke.Rune = e.Rune()
		if m&tcell.ModCtrl != 0 {
			ke.Key = "Ctrl+" + strings.ToUpper(string(e.Rune()))
		}
	} else if name, ok := tcell.KeyNames[e.Key()]; ok {
		ke.Key = strings.Replace(name, "Ctrl-", "Ctrl+", 1)
	} else {
		ke.Key = e.Name()
	}
	if m&tcell.ModShift != 0 {
		ke.Mods |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		ke.Mods |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		ke.Mods |= ModAlt
	}
	return ke
}
