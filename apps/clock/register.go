// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/clock/register.go
// Summary: Registers the clock as a built-in content type.

package clock

import (
	"github.com/framegrace/texeldock/config"
	"github.com/framegrace/texeldock/dock"
	"github.com/framegrace/texeldock/registry"
)

// Name is the persisted content-type tag.
const Name = "clock"

func init() {
	registry.RegisterBuiltInProvider(func(_ *registry.Registry) (*registry.Manifest, registry.Constructor) {
		manifest := &registry.Manifest{
			Name:        Name,
			DisplayName: "Clock",
			Description: "Current time",
			Type:        registry.KindBuiltIn,
			Category:    "utility",
		}
		return manifest, func(data config.Section) (dock.Content, error) {
			data.Merge(config.App(Name).Section(Name))
			return New(data)
		}
	})
}
