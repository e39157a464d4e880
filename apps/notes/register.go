// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/notes/register.go
// Summary: Registers notes as a built-in content type.

package notes

import (
	"github.com/framegrace/texeldock/registry"
)

// Name is the persisted content-type tag.
const Name = "notes"

func init() {
	registry.RegisterBuiltInProvider(func(_ *registry.Registry) (*registry.Manifest, registry.Constructor) {
		manifest := &registry.Manifest{
			Name:        Name,
			DisplayName: "Notes",
			Description: "Editable text notes",
			Type:        registry.KindBuiltIn,
			Category:    "editor",
		}
		return manifest, New
	})
}
