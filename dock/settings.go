// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/settings.go
// Summary: Tunable geometry and interaction thresholds for the workspace.

package dock

import "github.com/framegrace/texeldock/config"

// Split ratio bounds. Ratios outside are clamped, never rejected.
const (
	MinSplitRatio = 0.05
	MaxSplitRatio = 0.95
)

// Settings holds every tunable used by layout, hit testing and dragging.
type Settings struct {
	TabBarHeight      float64
	SplitterWidth     float64
	TabMinWidth       float64
	TabMaxWidth       float64
	TabPadding        float64
	CloseButtonWidth  float64
	DirtyMarkerWidth  float64
	ScrollButtonWidth float64
	ScrollStep        float64

	// EdgeFraction is the thickness of split drop strips relative to the
	// shorter side of a leaf's content area.
	EdgeFraction  float64
	DragThreshold float64

	ResizeBorder      float64
	MinWindowSize     Size
	DefaultWindowSize Size

	MenuItemHeight float64
	MenuWidth      float64

	// TextScale converts runewidth cells to surface units for the default
	// measurer.
	TextScale float64

	// SnapToGrid rounds split boundaries to whole units (terminal cells).
	SnapToGrid bool
}

// DefaultSettings returns pixel-like defaults.
func DefaultSettings() Settings {
	return Settings{
		TabBarHeight:      24,
		SplitterWidth:     4,
		TabMinWidth:       80,
		TabMaxWidth:       150,
		TabPadding:        16,
		CloseButtonWidth:  16,
		DirtyMarkerWidth:  10,
		ScrollButtonWidth: 16,
		ScrollStep:        40,
		EdgeFraction:      0.25,
		DragThreshold:     4,
		ResizeBorder:      8,
		MinWindowSize:     Size{W: 150, H: 100},
		DefaultWindowSize: Size{W: 400, H: 300},
		MenuItemHeight:    20,
		MenuWidth:         160,
		TextScale:         7,
	}
}

// TerminalSettings returns a profile measured in character cells.
func TerminalSettings() Settings {
	return Settings{
		TabBarHeight:      1,
		SplitterWidth:     1,
		TabMinWidth:       8,
		TabMaxWidth:       24,
		TabPadding:        2,
		CloseButtonWidth:  2,
		DirtyMarkerWidth:  1,
		ScrollButtonWidth: 1,
		ScrollStep:        4,
		EdgeFraction:      0.25,
		DragThreshold:     1,
		ResizeBorder:      1,
		MinWindowSize:     Size{W: 20, H: 6},
		DefaultWindowSize: Size{W: 48, H: 14},
		MenuItemHeight:    1,
		MenuWidth:         20,
		TextScale:         1,
		SnapToGrid:        true,
	}
}

// SettingsFromConfig overlays the "dock" section of cfg on base. Missing
// keys keep the base value; malformed values are ignored.
func SettingsFromConfig(cfg config.Config, base Settings) Settings {
	const sec = "dock"
	s := base
	s.TabBarHeight = cfg.GetFloat(sec, "tab_bar_height", s.TabBarHeight)
	s.SplitterWidth = cfg.GetFloat(sec, "splitter_width", s.SplitterWidth)
	s.TabMinWidth = cfg.GetFloat(sec, "tab_min_width", s.TabMinWidth)
	s.TabMaxWidth = cfg.GetFloat(sec, "tab_max_width", s.TabMaxWidth)
	s.TabPadding = cfg.GetFloat(sec, "tab_padding", s.TabPadding)
	s.CloseButtonWidth = cfg.GetFloat(sec, "close_button_width", s.CloseButtonWidth)
	s.DirtyMarkerWidth = cfg.GetFloat(sec, "dirty_marker_width", s.DirtyMarkerWidth)
	s.ScrollButtonWidth = cfg.GetFloat(sec, "scroll_button_width", s.ScrollButtonWidth)
	s.ScrollStep = cfg.GetFloat(sec, "scroll_step", s.ScrollStep)
	s.EdgeFraction = cfg.GetFloat(sec, "edge_fraction", s.EdgeFraction)
	s.DragThreshold = cfg.GetFloat(sec, "drag_threshold", s.DragThreshold)
	s.ResizeBorder = cfg.GetFloat(sec, "resize_border", s.ResizeBorder)
	s.MinWindowSize.W = cfg.GetFloat(sec, "min_window_width", s.MinWindowSize.W)
	s.MinWindowSize.H = cfg.GetFloat(sec, "min_window_height", s.MinWindowSize.H)
	s.DefaultWindowSize.W = cfg.GetFloat(sec, "default_window_width", s.DefaultWindowSize.W)
	s.DefaultWindowSize.H = cfg.GetFloat(sec, "default_window_height", s.DefaultWindowSize.H)
	s.MenuItemHeight = cfg.GetFloat(sec, "menu_item_height", s.MenuItemHeight)
	s.MenuWidth = cfg.GetFloat(sec, "menu_width", s.MenuWidth)
	s.TextScale = cfg.GetFloat(sec, "text_scale", s.TextScale)
	s.SnapToGrid = cfg.GetBool(sec, "snap_to_grid", s.SnapToGrid)
	return s.normalized(base)
}

// normalized replaces nonsensical values with the fallback's.
func (s Settings) normalized(fallback Settings) Settings {
	if s.TabMinWidth <= 0 {
		s.TabMinWidth = fallback.TabMinWidth
	}
	if s.TabMaxWidth < s.TabMinWidth {
		s.TabMaxWidth = s.TabMinWidth
	}
	if s.EdgeFraction <= 0 || s.EdgeFraction >= 0.5 {
		s.EdgeFraction = fallback.EdgeFraction
	}
	if s.TabBarHeight < 0 {
		s.TabBarHeight = fallback.TabBarHeight
	}
	if s.SplitterWidth < 0 {
		s.SplitterWidth = fallback.SplitterWidth
	}
	if s.MinWindowSize.W <= 0 || s.MinWindowSize.H <= 0 {
		s.MinWindowSize = fallback.MinWindowSize
	}
	if s.DefaultWindowSize.W < s.MinWindowSize.W {
		s.DefaultWindowSize.W = s.MinWindowSize.W
	}
	if s.DefaultWindowSize.H < s.MinWindowSize.H {
		s.DefaultWindowSize.H = s.MinWindowSize.H
	}
	return s
}

// Measurer returns the default text measurer for these settings.
func (s Settings) Measurer() TextMeasurer {
	return RuneWidthMeasurer{Scale: s.TextScale}
}
