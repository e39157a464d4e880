// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/registry.go
// Summary: Content factory mapping content-type tags to constructors.
// Usage: Built-ins register at init; alias manifests are scanned from the config dir.

package registry

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/framegrace/texeldock/config"
	"github.com/framegrace/texeldock/dock"
)

// Constructor builds content from its persisted data. It must default
// missing keys and ignore malformed ones rather than fail.
type Constructor func(data config.Section) (dock.Content, error)

// Entry is a registered content type.
type Entry struct {
	Manifest  *Manifest
	Dir       string
	Construct Constructor
}

// Registry implements dock.ContentFactory.
type Registry struct {
	mu      sync.RWMutex
	aliases map[string]*Entry // name -> entry (scanned aliases)
	builtIn map[string]*Entry // name -> entry (compiled in)
}

var _ dock.ContentFactory = (*Registry)(nil)

// New creates a new empty registry.
func New() *Registry {
	return &Registry{
		aliases: make(map[string]*Entry),
		builtIn: make(map[string]*Entry),
	}
}

// Register adds a built-in constructor under name with a minimal manifest.
func (r *Registry) Register(name string, ctor Constructor) {
	r.RegisterBuiltIn(&Manifest{Name: name, DisplayName: name}, ctor)
}

// RegisterBuiltIn registers a constructor compiled into the binary.
// Built-ins take priority over aliases with the same name.
func (r *Registry) RegisterBuiltIn(manifest *Manifest, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	manifest.Type = KindBuiltIn
	if manifest.DisplayName == "" {
		manifest.DisplayName = manifest.Name
	}
	r.builtIn[manifest.Name] = &Entry{Manifest: manifest, Construct: ctor}
	log.Printf("Registry: Registered built-in content type '%s'", manifest.Name)
}

// RegisterAlias registers an alias manifest directly.
func (r *Registry) RegisterAlias(manifest *Manifest) error {
	if manifest.Type == "" {
		manifest.Type = KindAlias
	}
	if err := manifest.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[manifest.Name] = &Entry{Manifest: manifest}
	return nil
}

// Scan loads alias manifests from baseDir: each subdirectory holding a
// manifest.json, and each loose *.json file. Previously scanned aliases
// are dropped; built-ins are kept.
func (r *Registry) Scan(baseDir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.aliases = make(map[string]*Entry)

	if _, err := os.Stat(baseDir); os.IsNotExist(err) {
		log.Printf("Registry: Content directory does not exist: %s", baseDir)
		return nil
	}

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return fmt.Errorf("read content directory: %w", err)
	}

	for _, entry := range entries {
		var path string
		switch {
		case entry.IsDir():
			path = filepath.Join(baseDir, entry.Name(), "manifest.json")
		case strings.HasSuffix(entry.Name(), ".json"):
			path = filepath.Join(baseDir, entry.Name())
		default:
			continue
		}
		if err := r.loadAlias(path); err != nil {
			log.Printf("Registry: Failed to load content type from %s: %v", path, err)
		}
	}

	log.Printf("Registry: Loaded %d alias content types, %d built-ins", len(r.aliases), len(r.builtIn))
	return nil
}

func (r *Registry) loadAlias(path string) error {
	manifest, err := LoadManifest(path)
	if err != nil {
		return err
	}
	if err := manifest.Validate(); err != nil {
		return fmt.Errorf("validate manifest: %w", err)
	}
	if manifest.Type != KindAlias {
		return fmt.Errorf("manifest %q: only alias content types can be loaded from disk", manifest.Name)
	}
	r.aliases[manifest.Name] = &Entry{Manifest: manifest, Dir: filepath.Dir(path)}
	log.Printf("Registry: Loaded alias '%s' -> '%s' from %s", manifest.Name, manifest.Wraps, path)
	return nil
}

// Get retrieves an entry by name, built-ins first. Returns nil if missing.
func (r *Registry) Get(name string) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.getLocked(name)
}

func (r *Registry) getLocked(name string) *Entry {
	if entry, ok := r.builtIn[name]; ok {
		return entry
	}
	return r.aliases[name]
}

// List returns every content type sorted by display name.
func (r *Registry) List() []*Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]*Entry, 0, len(r.builtIn)+len(r.aliases))
	for _, entry := range r.builtIn {
		entries = append(entries, entry)
	}
	for name, entry := range r.aliases {
		if _, shadowed := r.builtIn[name]; !shadowed {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Manifest.DisplayName < entries[j].Manifest.DisplayName
	})
	return entries
}

// Count returns the number of distinct content types.
func (r *Registry) Count() int {
	return len(r.List())
}

// resolve returns the constructor and merged data for name, following one
// alias hop.
func (r *Registry) resolve(name string, data map[string]interface{}) (*Entry, Constructor, config.Section, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry := r.getLocked(name)
	if entry == nil {
		return nil, nil, nil, fmt.Errorf("%w: %q", dock.ErrUnknownContentType, name)
	}
	merged := config.Section(data).Clone()
	if merged == nil {
		merged = make(config.Section)
	}
	if entry.Manifest.Type != KindAlias {
		if entry.Construct == nil {
			return nil, nil, nil, fmt.Errorf("content type %q has no constructor", name)
		}
		return entry, entry.Construct, merged, nil
	}
	wrapped, ok := r.builtIn[entry.Manifest.Wraps]
	if !ok || wrapped.Construct == nil {
		return nil, nil, nil, fmt.Errorf("%w: %q (wrapped by %q)", dock.ErrUnknownContentType, entry.Manifest.Wraps, name)
	}
	merged.Merge(entry.Manifest.Defaults)
	return entry, wrapped.Construct, merged, nil
}

// New creates a tab for content type name with data.
func (r *Registry) New(name string, data map[string]interface{}) (*dock.Tab, error) {
	return r.Construct(dock.TabRecord{ContentType: name, Closable: true, ContentData: data})
}

// Construct implements dock.ContentFactory. The tab keeps the record's
// content type, so aliases survive a save/load cycle.
func (r *Registry) Construct(rec dock.TabRecord) (*dock.Tab, error) {
	entry, ctor, data, err := r.resolve(rec.ContentType, rec.ContentData)
	if err != nil {
		return nil, err
	}
	content, err := ctor(data)
	if err != nil {
		return nil, fmt.Errorf("construct %q: %w", rec.ContentType, err)
	}
	if content == nil {
		return nil, fmt.Errorf("construct %q: constructor returned no content", rec.ContentType)
	}
	title := rec.Title
	if title == "" {
		title = entry.Manifest.DisplayName
	}
	return dock.NewTab(content,
		dock.WithTitle(title),
		dock.WithContentType(rec.ContentType),
		dock.WithClosable(rec.Closable),
		dock.WithPinned(rec.Pinned),
	), nil
}
