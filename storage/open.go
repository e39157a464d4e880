// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: storage/open.go
// Summary: Opens the layout store named by the "storage" config section.

package storage

import (
	"fmt"
	"path/filepath"

	"github.com/framegrace/texeldock/config"
)

// Open builds the configured store. Relative paths resolve against root
// (normally the config directory).
func Open(cfg config.Config, root string) (LayoutStore, error) {
	sec := cfg.Section("storage")
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(root, p)
	}
	switch driver := sec.GetString("driver", "sqlite"); driver {
	case "sqlite":
		return OpenSQLite(resolve(sec.GetString("database", "layouts.db")))
	case "file":
		f, err := ParseFormat(sec.GetString("format", "json"))
		if err != nil {
			return nil, err
		}
		return OpenFileStore(resolve(sec.GetString("dir", "layouts")), f)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
