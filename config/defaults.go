// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the system and content-type configuration files.

package config

func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults("", Section{
		"profile":      "terminal",
		"defaultSlot":  "autosave",
		"autosave":     true,
		"manifestScan": true,
	})
	cfg.RegisterDefaults("dock", Section{
		"edge_fraction": 0.25,
	})
	cfg.RegisterDefaults("theme", defaultTheme())
	cfg.RegisterDefaults("storage", Section{
		"driver":   "sqlite",
		"database": "layouts.db",
		"dir":      "layouts",
		"format":   "json",
	})
}

func applyAppDefaults(app string, cfg Config) {
	if cfg == nil {
		return
	}
	switch app {
	case "source":
		cfg.RegisterDefaults("source", Section{
			"style":     "monokai",
			"max_bytes": 1 << 20,
		})
	case "command":
		cfg.RegisterDefaults("command", Section{
			"shell":         "/bin/sh",
			"history_lines": 500,
		})
	case "clock":
		cfg.RegisterDefaults("clock", Section{
			"format": "15:04:05",
		})
	}
}

// defaultTheme maps paint roles to "fg:bg[:attr]" colour specs.
func defaultTheme() Section {
	return Section{
		"background":           "silver:black",
		"tab_bar":              "silver:#1e1e2e",
		"tab_active":           "white:#45475a",
		"tab_hovered":          "white:#313244",
		"tab_default":          "silver:#1e1e2e",
		"tab_disabled":         "gray:#1e1e2e",
		"tab_text":             "white:default",
		"tab_close":            "#f38ba8:default",
		"dirty_marker":         "#f9e2af:default",
		"scroll_button":        "white:#585b70",
		"splitter":             "#585b70:#181825",
		"splitter_active":      "#89b4fa:#181825",
		"window_frame":         "#6c7086:default",
		"window_frame_focused": "#89b4fa:default:bold",
		"drop_preview":         "white:#1e66f5",
		"drag_ghost":           "black:#a6e3a1",
		"menu":                 "white:#313244",
		"menu_text":            "white:default",
		"menu_disabled":        "gray:default",
		"content_text":         "silver:black",
		"content_accent":       "#fab387:black",
	}
}
