// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/command/register.go
// Summary: Registers the command runner as a built-in content type.

package command

import (
	"github.com/framegrace/texeldock/config"
	"github.com/framegrace/texeldock/dock"
	"github.com/framegrace/texeldock/registry"
)

// Name is the persisted content-type tag.
const Name = "command"

func init() {
	registry.RegisterBuiltInProvider(func(_ *registry.Registry) (*registry.Manifest, registry.Constructor) {
		manifest := &registry.Manifest{
			Name:        Name,
			DisplayName: "Command",
			Description: "Command output under a pty",
			Type:        registry.KindBuiltIn,
			Category:    "system",
		}
		return manifest, func(data config.Section) (dock.Content, error) {
			data.Merge(config.App(Name).Section(Name))
			return New(data)
		}
	})
}
