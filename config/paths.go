// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texeldock configuration.

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirEnv overrides the configuration directory.
const DirEnv = "TEXELDOCK_CONFIG_DIR"

// Root returns the configuration directory: $TEXELDOCK_CONFIG_DIR, or
// texeldock/ under the user config dir.
func Root() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texeldock"), nil
}

func systemConfigPath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, systemConfigName), nil
}

func legacyDockPath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, legacyDockName), nil
}

func legacyThemePath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, legacyThemeName), nil
}

func appConfigPath(app string) (string, error) {
	if app == "" {
		return "", fmt.Errorf("content type is required")
	}
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "apps", app, "config.json"), nil
}

// ManifestDir is where alias content-type manifests are scanned from.
func ManifestDir() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "content"), nil
}
