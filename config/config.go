// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: System + content-type configuration store for texeldock.
// Notes: texeldock.json holds the dock, theme and storage sections;
// apps/<name>/config.json holds per content-type defaults.

package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const (
	systemConfigName = "texeldock.json"
	legacyDockName   = "dock.json"
	legacyThemeName  = "theme.json"
)

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section. Content
// constructors receive their persisted data as a Section.
type Section map[string]interface{}

// cache holds everything read from disk. Content configs are loaded lazily
// the first time a content type asks for them.
type cache struct {
	mu      sync.RWMutex
	system  Config
	content map[string]Config
	err     error
}

var (
	state     *cache
	stateOnce sync.Once
)

func current() *cache {
	stateOnce.Do(func() {
		c := &cache{content: make(map[string]Config)}
		c.err = c.loadSystem()
		state = c
	})
	return state
}

func (c *cache) loadSystem() error {
	cfg, err := systemSource().load()
	c.system = cfg
	return err
}

// Err returns the error from the most recent system config load.
func Err() error {
	c := current()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// System returns the system configuration (texeldock.json).
func System() Config {
	c := current()
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.system
}

// App returns the config for a content type (apps/<name>/config.json).
// A file that cannot be read yields the embedded defaults.
func App(name string) Config {
	if name == "" {
		return nil
	}
	c := current()

	c.mu.RLock()
	cfg, ok := c.content[name]
	c.mu.RUnlock()
	if ok {
		return cfg
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cfg, ok := c.content[name]; ok {
		return cfg
	}
	cfg, err := contentSource(name).load()
	if err != nil {
		log.Printf("Config: Failed to load %q content config: %v", name, err)
	}
	c.content[name] = cfg
	return cfg
}

// Reload rereads texeldock.json and every content config already cached.
// The returned error is the system load error; content errors are logged.
func Reload() error {
	c := current()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.err = c.loadSystem()
	for name := range c.content {
		cfg, err := contentSource(name).load()
		if err != nil {
			log.Printf("Config: Failed to reload %q content config: %v", name, err)
			continue
		}
		c.content[name] = cfg
	}
	return c.err
}

// SetSystem replaces the in-memory system config with a copy of cfg.
func SetSystem(cfg Config) {
	c := current()
	c.mu.Lock()
	defer c.mu.Unlock()
	if cfg == nil {
		cfg = make(Config)
	}
	c.system = Clone(cfg)
}

// SaveSystem writes the in-memory system config to texeldock.json.
func SaveSystem() error {
	c := current()
	c.mu.RLock()
	defer c.mu.RUnlock()
	path, err := systemConfigPath()
	if err != nil {
		return err
	}
	return writeConfig(path, c.system)
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
