// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/builtins.go
// Summary: Content types compiled into texeldock announce themselves from init.
// Usage: apps/<name>/register.go calls RegisterBuiltInProvider; every registry
// the CLI opens pulls them in with RegisterBuiltIns.

package registry

import (
	"log"
	"slices"
	"sync"
)

// BuiltInProvider yields the manifest and constructor of one bundled content
// type. It runs once per registry.
type BuiltInProvider func(reg *Registry) (*Manifest, Constructor)

var builtIns struct {
	sync.Mutex
	providers []BuiltInProvider
}

// RegisterBuiltInProvider queues a bundled content type. Call it from init.
func RegisterBuiltInProvider(p BuiltInProvider) {
	if p == nil {
		return
	}
	builtIns.Lock()
	defer builtIns.Unlock()
	builtIns.providers = append(builtIns.providers, p)
}

// RegisterBuiltIns installs every queued content type into reg and returns
// how many were installed. Providers without a name or constructor are
// skipped.
func RegisterBuiltIns(reg *Registry) int {
	if reg == nil {
		return 0
	}
	builtIns.Lock()
	providers := slices.Clone(builtIns.providers)
	builtIns.Unlock()

	n := 0
	for _, p := range providers {
		manifest, ctor := p(reg)
		if manifest == nil || manifest.Name == "" || ctor == nil {
			log.Printf("Registry: Skipping incomplete built-in provider")
			continue
		}
		reg.RegisterBuiltIn(manifest, ctor)
		n++
	}
	return n
}
