// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/framegrace/texeldock/config"
	"github.com/framegrace/texeldock/dock"
)

type stubContent struct {
	data config.Section
}

func (s *stubContent) Title() string { return s.data.GetString("title", "") }
func (s *stubContent) Render(dock.Surface, dock.Rect) {}
func (s *stubContent) HandleEvent(dock.Event) dock.EventResult { return dock.Ignored }
func (s *stubContent) IsDirty() bool { return false }
func (s *stubContent) CanClose() bool { return true }
func (s *stubContent) OnClose() bool { return true }
func (s *stubContent) OnFocus() {}
func (s *stubContent) OnBlur() {}
func (s *stubContent) Icon() rune { return 0 }
func (s *stubContent) ContextMenuItems() []dock.MenuItem { return nil }

func stubConstructor(data config.Section) (dock.Content, error) {
	return &stubContent{data: data}, nil
}

func TestConstructUnknownContentType(t *testing.T) {
	r := New()
	_, err := r.Construct(dock.TabRecord{ContentType: "nope"})
	if !errors.Is(err, dock.ErrUnknownContentType) {
		t.Fatalf("expected ErrUnknownContentType, got %v", err)
	}
}

func TestConstructBuiltIn(t *testing.T) {
	r := New()
	r.RegisterBuiltIn(&Manifest{Name: "stub", DisplayName: "Stub"}, stubConstructor)

	tab, err := r.Construct(dock.TabRecord{
		ContentType: "stub",
		Closable:    false,
		Pinned:      true,
		ContentData: map[string]interface{}{"title": "hello"},
	})
	if err != nil {
		t.Fatalf("Construct: %v", err)
	}
	if tab.ContentType != "stub" || tab.Closable || !tab.Pinned {
		t.Fatalf("unexpected tab flags: %+v", tab)
	}
	if tab.DisplayTitle() != "hello" {
		t.Fatalf("expected content title, got %q", tab.DisplayTitle())
	}
	if tab.Title != "Stub" {
		t.Fatalf("expected display name as fallback title, got %q", tab.Title)
	}
}

func TestConstructorErrorIsWrapped(t *testing.T) {
	r := New()
	boom := errors.New("boom")
	r.Register("bad", func(config.Section) (dock.Content, error) { return nil, boom })
	if _, err := r.Construct(dock.TabRecord{ContentType: "bad"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped constructor error, got %v", err)
	}
}

func TestScanAliasMergesDefaults(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "greeter"), 0755); err != nil {
		t.Fatal(err)
	}
	manifest := `{"name":"greeter","displayName":"Greeter","wraps":"stub","defaults":{"title":"hi","extra":"x"}}`
	if err := os.WriteFile(filepath.Join(dir, "greeter", "manifest.json"), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}
	loose := `{"name":"loose","wraps":"stub"}`
	if err := os.WriteFile(filepath.Join(dir, "loose.json"), []byte(loose), 0644); err != nil {
		t.Fatal(err)
	}
	broken := `{"name":"broken"}`
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(broken), 0644); err != nil {
		t.Fatal(err)
	}

	r := New()
	r.Register("stub", stubConstructor)
	if err := r.Scan(dir); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if r.Get("greeter") == nil || r.Get("loose") == nil {
		t.Fatalf("expected aliases to be loaded")
	}
	if r.Get("broken") != nil {
		t.Fatalf("alias without wraps must be rejected")
	}

	tab, err := r.Construct(dock.TabRecord{ContentType: "greeter", Closable: true})
	if err != nil {
		t.Fatalf("Construct alias: %v", err)
	}
	if tab.ContentType != "greeter" {
		t.Fatalf("alias tag must be kept, got %q", tab.ContentType)
	}
	if tab.DisplayTitle() != "hi" {
		t.Fatalf("expected default data applied, got %q", tab.DisplayTitle())
	}

	tab, err = r.Construct(dock.TabRecord{
		ContentType: "greeter",
		ContentData: map[string]interface{}{"title": "override"},
	})
	if err != nil {
		t.Fatalf("Construct alias: %v", err)
	}
	if tab.DisplayTitle() != "override" {
		t.Fatalf("persisted data must win over defaults, got %q", tab.DisplayTitle())
	}
}

func TestAliasOfMissingBuiltIn(t *testing.T) {
	r := New()
	if err := r.RegisterAlias(&Manifest{Name: "orphan", Wraps: "ghost"}); err != nil {
		t.Fatalf("RegisterAlias: %v", err)
	}
	if _, err := r.Construct(dock.TabRecord{ContentType: "orphan"}); !errors.Is(err, dock.ErrUnknownContentType) {
		t.Fatalf("expected ErrUnknownContentType, got %v", err)
	}
}

func TestRegisterBuiltInsFromProviders(t *testing.T) {
	RegisterBuiltInProvider(func(*Registry) (*Manifest, Constructor) {
		return &Manifest{Name: "provided"}, stubConstructor
	})
	RegisterBuiltInProvider(func(*Registry) (*Manifest, Constructor) {
		return &Manifest{}, stubConstructor
	})
	r := New()
	if n := RegisterBuiltIns(r); n < 1 || r.Count() < 1 {
		t.Fatalf("installed %d, count %d", n, r.Count())
	}
	if e := r.Get(""); e != nil {
		t.Fatalf("nameless provider should be skipped")
	}
	if e := r.Get("provided"); e == nil || e.Manifest.Type != KindBuiltIn {
		t.Fatalf("expected provided built-in, got %+v", e)
	}
}
