// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Deep copies of config data handed across goroutines and to content constructors.
// Notes: The watcher goroutine passes Clone(System()) to the host loop, and
// the registry merges alias defaults into a cloned Section.

package config

// Clone returns a copy of cfg that shares no maps or slices with it.
// Nested objects come back as Section values.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	out := make(Config, len(cfg))
	for name, v := range cfg {
		out[name] = cloneValue(v)
	}
	return out
}

// Clone returns a copy of s that shares no maps or slices with it.
func (s Section) Clone() Section {
	if s == nil {
		return nil
	}
	out := make(Section, len(s))
	for k, v := range s {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case Section:
		return t.Clone()
	case map[string]interface{}:
		return Section(t).Clone()
	case Config:
		return Section(t).Clone()
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
