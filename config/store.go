// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/store.go
// Summary: Load, reload, and migration logic for the texeldock config store.

package config

import (
	"fmt"
	"log"
)

// fileSource describes one config file and how to seed it.
type fileSource struct {
	label    string
	path     func() (string, error)
	seed     func() Config
	migrate  func(Config) (bool, error)
	defaults func(Config)
}

// load reads a config file. Missing files are seeded from legacy files or
// embedded defaults and written back; empty files are replaced by the
// embedded defaults. Unreadable files are left alone.
func (src fileSource) load() (Config, error) {
	path, err := src.path()
	if err != nil {
		cfg := make(Config)
		src.defaults(cfg)
		return cfg, err
	}

	cfg, exists, readErr := readConfig(path)
	if readErr != nil {
		log.Printf("Config: Failed to read %s config %s: %v", src.label, path, readErr)
		cfg = make(Config)
	}
	keep := func(err error) {
		if err != nil && readErr == nil {
			readErr = err
		}
	}

	write := false
	switch {
	case exists && readErr == nil && len(cfg) == 0:
		if def := src.seed(); def != nil {
			cfg, write = def, true
		}
	case !exists && readErr == nil:
		cfg = make(Config)
		migrated, migrateErr := src.migrate(cfg)
		if migrateErr != nil {
			log.Printf("Config: Legacy %s migration error: %v", src.label, migrateErr)
			keep(migrateErr)
		}
		if !migrated {
			if def := src.seed(); def != nil {
				cfg = def
				migrated = true
			}
		}
		write = migrated
	}
	if cfg == nil {
		cfg = make(Config)
	}
	src.defaults(cfg)

	if write {
		if err := writeConfig(path, cfg); err != nil {
			log.Printf("Config: Failed to write %s config: %v", src.label, err)
			keep(err)
		}
	}
	if readErr == nil && exists {
		log.Printf("Config: Loaded %s config from %s", src.label, path)
	}
	return cfg, readErr
}

func systemSource() fileSource {
	return fileSource{
		label:    "system",
		path:     systemConfigPath,
		seed:     defaultSystemConfig,
		migrate:  migrateSystemFromLegacy,
		defaults: applySystemDefaults,
	}
}

func contentSource(name string) fileSource {
	return fileSource{
		label:    fmt.Sprintf("%q content", name),
		path:     func() (string, error) { return appConfigPath(name) },
		seed:     func() Config { return defaultAppConfig(name) },
		migrate:  func(c Config) (bool, error) { return migrateAppFromLegacy(name, c) },
		defaults: func(c Config) { applyAppDefaults(name, c) },
	}
}
