// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/manifest.go
// Summary: Content-type manifests for built-ins and alias content types.
// Usage: Alias manifests live in <config>/content/<name>/manifest.json or <config>/content/<name>.json.

package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/framegrace/texeldock/config"
)

// ContentKind specifies how a content type is constructed.
type ContentKind string

const (
	// KindBuiltIn uses a constructor compiled into the binary.
	KindBuiltIn ContentKind = "built-in"

	// KindAlias wraps a built-in with default data.
	// Example: go-source = source with {"path": "main.go"}
	KindAlias ContentKind = "alias"
)

// Manifest describes a content type.
type Manifest struct {
	// Name is the content-type tag persisted in layouts.
	Name string `json:"name"`

	// DisplayName is the default tab title.
	DisplayName string `json:"displayName"`

	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`

	// Type defaults to alias for manifests read from disk.
	Type ContentKind `json:"type,omitempty"`

	// Wraps names the built-in an alias constructs.
	Wraps string `json:"wraps,omitempty"`

	// Defaults is merged under the persisted data; persisted keys win.
	Defaults config.Section `json:"defaults,omitempty"`

	Icon     string `json:"icon,omitempty"`
	Category string `json:"category,omitempty"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Type == "" {
		m.Type = KindAlias
	}
	if m.DisplayName == "" {
		m.DisplayName = m.Name
	}
	return &m, nil
}

// Validate checks that the manifest is well-formed.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	switch m.Type {
	case KindAlias:
		if m.Wraps == "" {
			return fmt.Errorf("alias %q must specify 'wraps'", m.Name)
		}
		if m.Wraps == m.Name {
			return fmt.Errorf("alias %q cannot wrap itself", m.Name)
		}
	case KindBuiltIn:
	default:
		return fmt.Errorf("unknown content kind: %s", m.Type)
	}
	return nil
}

// IconRune returns the first rune of Icon, or 0.
func (m *Manifest) IconRune() rune {
	for _, r := range m.Icon {
		return r
	}
	return 0
}
