// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/migrate.go
// Summary: Migration from the split dock.json/theme.json layout.

package config

// migrateSystemFromLegacy folds dock.json (flat dock settings plus
// per-content sections) and theme.json (flat paint roles) into cfg.
func migrateSystemFromLegacy(cfg Config) (bool, error) {
	if cfg == nil {
		return false, nil
	}
	migrated := false
	var firstErr error

	if legacyPath, err := legacyDockPath(); err == nil {
		legacyDock, exists, err := readConfig(legacyPath)
		if err != nil {
			firstErr = err
		}
		if exists && legacyDock != nil {
			dock := make(Section)
			for key, val := range legacyDock {
				if _, isSection := val.(map[string]interface{}); isSection {
					continue
				}
				dock[key] = val
			}
			if len(dock) > 0 {
				if _, ok := cfg["dock"]; !ok {
					cfg["dock"] = dock
					migrated = true
				}
			}
			if copySection(cfg, legacyDock, "storage") {
				migrated = true
			}
		}
	} else if firstErr == nil {
		firstErr = err
	}

	if legacyPath, err := legacyThemePath(); err == nil {
		legacyTheme, exists, err := readConfig(legacyPath)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if exists && len(legacyTheme) > 0 {
			if _, ok := cfg["theme"]; !ok {
				cfg["theme"] = Section(legacyTheme)
				migrated = true
			}
		}
	} else if firstErr == nil {
		firstErr = err
	}

	return migrated, firstErr
}

// migrateAppFromLegacy picks a content type's section out of dock.json.
func migrateAppFromLegacy(app string, cfg Config) (bool, error) {
	if cfg == nil || app == "" {
		return false, nil
	}
	legacyPath, err := legacyDockPath()
	if err != nil {
		return false, err
	}
	legacyDock, exists, err := readConfig(legacyPath)
	if err != nil {
		return false, err
	}
	if !exists || legacyDock == nil {
		return false, nil
	}
	return copySection(cfg, legacyDock, app), nil
}

func copySection(dst Config, src Config, name string) bool {
	if dst == nil || src == nil || name == "" {
		return false
	}
	if _, ok := dst[name]; ok {
		return false
	}
	if section, ok := src[name]; ok {
		dst[name] = section
		return true
	}
	return false
}
