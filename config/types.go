// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/types.go
// Summary: Typed access helpers for config store data.
// Missing keys return the default; values of the wrong type are ignored.

package config

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Section returns the named section or nil if missing.
func (c Config) Section(sectionName string) Section {
	if c == nil {
		return nil
	}
	if sectionName == "" {
		return Section(c)
	}
	if raw, ok := c[sectionName]; ok {
		switch v := raw.(type) {
		case Section:
			return v
		case map[string]interface{}:
			return Section(v)
		}
	}
	return nil
}

// RegisterDefaults ensures a section has defaults without overwriting existing keys.
func (c Config) RegisterDefaults(sectionName string, defaults Section) {
	if c == nil || defaults == nil {
		return
	}
	section := c.Section(sectionName)
	if section == nil {
		section = make(Section)
		if sectionName == "" {
			for k, v := range defaults {
				if _, ok := c[k]; !ok {
					c[k] = v
				}
			}
			return
		}
		c[sectionName] = section
	}
	section.Merge(defaults)
}

// GetString retrieves a string value from the config.
func (c Config) GetString(sectionName, key, defaultValue string) string {
	return c.Section(sectionName).GetString(key, defaultValue)
}

// GetFloat retrieves a float value from the config.
func (c Config) GetFloat(sectionName, key string, defaultValue float64) float64 {
	return c.Section(sectionName).GetFloat(key, defaultValue)
}

// GetInt retrieves an integer value from the config.
func (c Config) GetInt(sectionName, key string, defaultValue int) int {
	return c.Section(sectionName).GetInt(key, defaultValue)
}

// GetBool retrieves a boolean value from the config.
func (c Config) GetBool(sectionName, key string, defaultValue bool) bool {
	return c.Section(sectionName).GetBool(key, defaultValue)
}

// Merge copies defaults into s without overwriting existing keys.
func (s Section) Merge(defaults Section) {
	if s == nil {
		return
	}
	for key, value := range defaults {
		if _, ok := s[key]; !ok {
			s[key] = value
		}
	}
}

// GetString retrieves a string value. Numbers and booleans are formatted.
func (s Section) GetString(key, defaultValue string) string {
	val, ok := s[key]
	if !ok {
		return defaultValue
	}
	switch v := val.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64, int, bool:
		return fmt.Sprint(v)
	}
	return defaultValue
}

// GetFloat retrieves a float value.
func (s Section) GetFloat(key string, defaultValue float64) float64 {
	val, ok := s[key]
	if !ok {
		return defaultValue
	}
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		if parsed, err := v.Float64(); err == nil {
			return parsed
		}
	case string:
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetInt retrieves an integer value.
func (s Section) GetInt(key string, defaultValue int) int {
	val, ok := s[key]
	if !ok {
		return defaultValue
	}
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case json.Number:
		if parsed, err := v.Int64(); err == nil {
			return int(parsed)
		}
	case string:
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetBool retrieves a boolean value.
func (s Section) GetBool(key string, defaultValue bool) bool {
	val, ok := s[key]
	if !ok {
		return defaultValue
	}
	switch v := val.(type) {
	case bool:
		return v
	case string:
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	case json.Number:
		if parsed, err := v.Int64(); err == nil {
			return parsed != 0
		}
	case float64:
		return v != 0
	case int:
		return v != 0
	}
	return defaultValue
}

// GetStrings retrieves a list of strings. Non-string elements are skipped;
// a single string becomes a one-element list.
func (s Section) GetStrings(key string, defaultValue []string) []string {
	val, ok := s[key]
	if !ok {
		return defaultValue
	}
	switch v := val.(type) {
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	case string:
		return []string{v}
	}
	return defaultValue
}
