// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/framegrace/texeldock/config"
	"github.com/framegrace/texeldock/dock"
	"github.com/framegrace/texeldock/registry"
)

const goSample = "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newSource(t *testing.T, data config.Section) *Source {
	t.Helper()
	content, err := New(data)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return content.(*Source)
}

func TestSourceDetectsLanguageAndHighlights(t *testing.T) {
	path := writeFile(t, "main.go", goSample)
	s := newSource(t, config.Section{"path": path})

	if s.Language() != "Go" {
		t.Fatalf("language = %q", s.Language())
	}
	lines := s.Lines()
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if got := lines[3].Text(); got != "    println(\"hi\")" {
		t.Fatalf("tabs should expand, line 3 = %q", got)
	}
	if len(lines[1]) != 0 {
		t.Fatalf("blank line should have no spans: %+v", lines[1])
	}
	first := lines[0][0]
	if first.Text != "package" || first.Paint != dock.PaintContentAccent {
		t.Fatalf("keyword span = %+v", first)
	}
	if s.Title() != "main.go" {
		t.Fatalf("title = %q", s.Title())
	}
}

func TestSourceLexerOverride(t *testing.T) {
	path := writeFile(t, "script.txt", "def f():\n    return 1\n")
	s := newSource(t, config.Section{"path": path, "lexer": "Python"})
	if s.Language() != "Python" {
		t.Fatalf("language = %q", s.Language())
	}
	accent := false
	for _, sp := range s.Lines()[0] {
		if sp.Text == "def" && sp.Paint == dock.PaintContentAccent {
			accent = true
		}
	}
	if !accent {
		t.Fatalf("def should be accented: %+v", s.Lines()[0])
	}
	kind, data := s.SnapshotMetadata()
	if kind != Name || data["lexer"] != "Python" || data["path"] != path {
		t.Fatalf("snapshot = %s %v", kind, data)
	}
}

func TestSourceTruncatesLargeFiles(t *testing.T) {
	path := writeFile(t, "big.txt", strings.Repeat("x", 50)+"\n")
	s := newSource(t, config.Section{"path": path, "max_bytes": 10})
	lines := s.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected content plus marker, got %d lines", len(lines))
	}
	if lines[0].Text() != "xxxxxxxxxx" {
		t.Fatalf("first line = %q", lines[0].Text())
	}
	if !strings.Contains(lines[1].Text(), "truncated at 10 bytes") {
		t.Fatalf("marker = %q", lines[1].Text())
	}
}

func TestSourceMissingFileStillBuilds(t *testing.T) {
	s := newSource(t, config.Section{"path": filepath.Join(t.TempDir(), "gone.go")})
	if len(s.Lines()) != 1 || !strings.Contains(s.Lines()[0].Text(), "gone.go") {
		t.Fatalf("expected error line, got %+v", s.Lines())
	}

	if _, err := New(config.Section{}); !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath, got %v", err)
	}
}

func TestSourceReloadPicksUpChanges(t *testing.T) {
	path := writeFile(t, "notes.txt", "one\n")
	s := newSource(t, config.Section{"path": path})
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	items := s.ContextMenuItems()
	if len(items) != 1 || items[0].Label != "Reload" {
		t.Fatalf("menu = %+v", items)
	}
	items[0].Action()
	if len(s.Lines()) != 2 {
		t.Fatalf("reload should see 2 lines, got %d", len(s.Lines()))
	}
}

type nopSurface struct{}

func (nopSurface) FillRect(dock.Rect, dock.Paint)                   {}
func (nopSurface) DrawText(dock.Point, string, dock.Paint, float64) {}
func (nopSurface) DrawIcon(dock.Point, rune, dock.Paint)            {}
func (nopSurface) DrawLine(dock.Point, dock.Point, dock.Paint)      {}
func (nopSurface) PushClip(dock.Rect)                               {}
func (nopSurface) PopClip()                                         {}

func TestSourceScrolling(t *testing.T) {
	var body strings.Builder
	for i := 0; i < 20; i++ {
		body.WriteString("line\n")
	}
	s := newSource(t, config.Section{"path": writeFile(t, "long.txt", body.String())})
	s.Render(nopSurface{}, dock.Rect{W: 20, H: 5})

	s.HandleEvent(dock.KeyEvent{Key: "PgDn"})
	if s.Top() != 4 {
		t.Fatalf("page down top = %d", s.Top())
	}
	s.HandleEvent(dock.KeyEvent{Key: "End"})
	if s.Top() != 15 {
		t.Fatalf("end top = %d", s.Top())
	}
	s.HandleEvent(dock.PointerEvent{Action: dock.PointerWheel, WheelDY: 1})
	if s.Top() != 15 {
		t.Fatalf("wheel past the end top = %d", s.Top())
	}
	s.HandleEvent(dock.PointerEvent{Action: dock.PointerWheel, WheelDY: -1})
	if s.Top() != 12 {
		t.Fatalf("wheel up top = %d", s.Top())
	}
	if got := s.HandleEvent(dock.KeyEvent{Key: "PgDn", Mods: dock.ModCtrl}); got != dock.Propagate {
		t.Fatalf("Ctrl+PgDn should reach the workspace, got %v", got)
	}
}

func TestSourceRegistersBuiltIn(t *testing.T) {
	t.Setenv(config.DirEnv, t.TempDir())
	reg := registry.New()
	registry.RegisterBuiltIns(reg)

	path := writeFile(t, "main.go", goSample)
	tab, err := reg.New(Name, config.Section{"path": path})
	if err != nil {
		t.Fatalf("construct source: %v", err)
	}
	_, data := tab.Content.(dock.SnapshotProvider).SnapshotMetadata()
	if data["style"] != "monokai" {
		t.Fatalf("style should come from config defaults, got %v", data["style"])
	}

	if _, err := reg.New(Name, nil); !errors.Is(err, ErrNoPath) {
		t.Fatalf("expected ErrNoPath through the registry, got %v", err)
	}
}
