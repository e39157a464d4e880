// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/surface.go
// Summary: Abstract drawing boundary and text metrics.
// Usage: Adapters (see driver_tcell.go) map these calls onto a real device.

package dock

import "github.com/mattn/go-runewidth"

// Paint is a semantic drawing role. Adapters decide the actual colours.
type Paint int

const (
	PaintBackground Paint = iota
	PaintTabBar
	PaintTabActive
	PaintTabHovered
	PaintTabDefault
	PaintTabDisabled
	PaintTabText
	PaintTabCloseButton
	PaintDirtyMarker
	PaintScrollButton
	PaintSplitter
	PaintSplitterActive
	PaintWindowFrame
	PaintWindowFrameFocused
	PaintDropPreview
	PaintDragGhost
	PaintMenu
	PaintMenuText
	PaintMenuDisabled
	PaintContentText
	PaintContentAccent
	paintCount
)

var paintNames = [...]string{
	PaintBackground:         "background",
	PaintTabBar:             "tab_bar",
	PaintTabActive:          "tab_active",
	PaintTabHovered:         "tab_hovered",
	PaintTabDefault:         "tab_default",
	PaintTabDisabled:        "tab_disabled",
	PaintTabText:            "tab_text",
	PaintTabCloseButton:     "tab_close",
	PaintDirtyMarker:        "dirty_marker",
	PaintScrollButton:       "scroll_button",
	PaintSplitter:           "splitter",
	PaintSplitterActive:     "splitter_active",
	PaintWindowFrame:        "window_frame",
	PaintWindowFrameFocused: "window_frame_focused",
	PaintDropPreview:        "drop_preview",
	PaintDragGhost:          "drag_ghost",
	PaintMenu:               "menu",
	PaintMenuText:           "menu_text",
	PaintMenuDisabled:       "menu_disabled",
	PaintContentText:        "content_text",
	PaintContentAccent:      "content_accent",
}

// String returns the theme key for the paint role.
func (p Paint) String() string {
	if p >= 0 && int(p) < len(paintNames) {
		return paintNames[p]
	}
	return "unknown"
}

// PaintNames lists every paint role key, in declaration order.
func PaintNames() []string {
	out := make([]string, 0, paintCount)
	for p := Paint(0); p < paintCount; p++ {
		out = append(out, p.String())
	}
	return out
}

// Surface receives the abstract drawing calls of a render pass.
type Surface interface {
	FillRect(r Rect, p Paint)
	DrawText(at Point, text string, p Paint, maxWidth float64)
	DrawIcon(at Point, icon rune, p Paint)
	DrawLine(from, to Point, p Paint)
	// PushClip restricts drawing to r intersected with the current clip.
	PushClip(r Rect)
	PopClip()
}

// TextMeasurer reports the rendered width of a string.
type TextMeasurer interface {
	MeasureText(s string) float64
}

// RuneWidthMeasurer measures text by terminal cell width, scaled by Scale
// surface units per cell. A zero Scale counts cells directly.
type RuneWidthMeasurer struct {
	Scale float64
}

func (m RuneWidthMeasurer) MeasureText(s string) float64 {
	w := float64(runewidth.StringWidth(s))
	if m.Scale > 0 {
		return w * m.Scale
	}
	return w
}

// truncateText shortens s so that it fits maxWidth, appending an ellipsis
// when something was cut.
func truncateText(m TextMeasurer, s string, maxWidth float64) string {
	if maxWidth <= 0 {
		return ""
	}
	if m.MeasureText(s) <= maxWidth {
		return s
	}
	if rm, ok := m.(RuneWidthMeasurer); ok {
		scale := rm.Scale
		if scale <= 0 {
			scale = 1
		}
		cells := int(maxWidth / scale)
		return runewidth.Truncate(s, cells, "…")
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if m.MeasureText(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
