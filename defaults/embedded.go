// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded default configuration and starter layout files.

package defaults

import (
	"embed"
	"fmt"
)

//go:embed texeldock.json layout.json apps/*/config.json
var fs embed.FS

// SystemConfig returns the embedded texeldock.json.
func SystemConfig() ([]byte, error) {
	return fs.ReadFile("texeldock.json")
}

// AppConfig returns the embedded config JSON for a content type.
func AppConfig(app string) ([]byte, error) {
	if app == "" {
		return nil, fmt.Errorf("content type is required")
	}
	return fs.ReadFile(fmt.Sprintf("apps/%s/config.json", app))
}

// Layout returns the starter layout used when no layout has been saved.
func Layout() ([]byte, error) {
	return fs.ReadFile("layout.json")
}
