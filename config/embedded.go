// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/embedded.go
// Summary: Parses the embedded default files once and hands out copies.
// The embedded JSON files in defaults/ seed a fresh texeldock.json.

package config

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/framegrace/texeldock/defaults"
)

var embedded = struct {
	sync.Mutex
	parsed map[string]Config
}{parsed: make(map[string]Config)}

// seedFrom returns a copy of the embedded file under key, read with read.
// A missing file yields nil and is remembered as missing.
func seedFrom(key string, read func() ([]byte, error)) Config {
	embedded.Lock()
	defer embedded.Unlock()

	cfg, ok := embedded.parsed[key]
	if !ok {
		if data, err := read(); err == nil {
			if err := json.Unmarshal(data, &cfg); err != nil {
				log.Printf("Config: Embedded %s is malformed: %v", key, err)
				cfg = nil
			}
		}
		embedded.parsed[key] = cfg
	}
	return Clone(cfg)
}

func defaultSystemConfig() Config {
	return seedFrom(systemConfigName, defaults.SystemConfig)
}

func defaultAppConfig(app string) Config {
	return seedFrom("apps/"+app, func() ([]byte, error) { return defaults.AppConfig(app) })
}
