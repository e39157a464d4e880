// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/framegrace/texeldock/config"
	"github.com/framegrace/texeldock/dock"
)

func sampleRecord() dock.LayoutRecord {
	return dock.LayoutRecord{
		Version: dock.LayoutVersion,
		Root: &dock.NodeRecord{
			Kind:      dock.KindSplit,
			Direction: "horizontal",
			Ratio:     0.4,
			Left: &dock.NodeRecord{Kind: dock.KindLeaf, Tabs: []dock.TabRecord{
				{ContentType: "notes", Title: "Notes", Closable: true, ContentData: map[string]interface{}{"text": "hello"}},
			}},
			Right: &dock.NodeRecord{Kind: dock.KindLeaf, Active: 1, Tabs: []dock.TabRecord{
				{ContentType: "clock", Title: "Clock", Pinned: true},
				{ContentType: "source", Title: "go.mod", Closable: true, ContentData: map[string]interface{}{"path": "go.mod"}},
			}},
		},
		FloatingWindows: []dock.WindowRecord{{
			Position:  dock.Point{X: 3, Y: 4},
			Size:      dock.Size{W: 40, H: 12},
			Tabs:      []dock.TabRecord{{ContentType: "notes", Title: "Scratch", Closable: true}},
			Resizable: true,
		}},
		NamedPresets: map[string]dock.LayoutRecord{
			"solo": {Version: dock.LayoutVersion, Root: &dock.NodeRecord{Kind: dock.KindLeaf, Tabs: []dock.TabRecord{{ContentType: "clock", Title: "Clock"}}}},
		},
	}
}

func TestEncodeDecodeFormats(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			rec := sampleRecord()
			data, err := Encode(rec, f)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := Decode(data, f)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(got, rec) {
				t.Fatalf("decoded record differs:\n%+v\n%+v", got, rec)
			}
		})
	}
	if _, err := Encode(sampleRecord(), "toml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("unknown format: %v", err)
	}
	if _, err := Decode([]byte("{"), FormatJSON); err == nil {
		t.Fatalf("malformed json should fail")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("YML"); err != nil || f != FormatYAML {
		t.Fatalf("yml = %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("xml: %v", err)
	}
	if FormatForPath("/tmp/x.yaml") != FormatYAML || FormatForPath("/tmp/x") != FormatJSON {
		t.Fatalf("FormatForPath")
	}
}

func exerciseStore(t *testing.T, s LayoutStore) {
	t.Helper()
	ctx := context.Background()
	if _, err := s.Load(ctx, AutosaveSlot); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty store load: %v", err)
	}
	rec := sampleRecord()
	if err := s.Save(ctx, AutosaveSlot, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx, AutosaveSlot)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, rec) {
		t.Fatalf("loaded record differs")
	}

	rec.Root.Ratio = 0.7
	if err := s.Save(ctx, AutosaveSlot, rec); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := s.Load(ctx, AutosaveSlot); got.Root.Ratio != 0.7 {
		t.Fatalf("overwrite not visible: %v", got.Root.Ratio)
	}
	if err := s.Save(ctx, "work", dock.LayoutRecord{Version: 1}); err != nil {
		t.Fatalf("save second: %v", err)
	}

	slots, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slots) != 2 || slots[0].Slot != AutosaveSlot || slots[1].Slot != "work" || slots[1].Version != 1 {
		t.Fatalf("slots = %+v", slots)
	}

	if err := s.Delete(ctx, "work"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "work"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
	if err := s.Save(ctx, "../escape", rec); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("bad slot: %v", err)
	}
	if err := s.Save(ctx, "  ", rec); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("blank slot: %v", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "layouts.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestFileStoreJSON(t *testing.T) {
	s, err := OpenFileStore(t.TempDir(), FormatJSON)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseStore(t, s)
}

func TestFileStoreYAML(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFileStore(dir, FormatYAML)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseStore(t, s)
	if _, err := os.Stat(filepath.Join(dir, "autosave.yaml")); err != nil {
		t.Fatalf("slot file: %v", err)
	}
}

func TestOpenFromConfig(t *testing.T) {
	root := t.TempDir()
	cfg := config.Config{"storage": map[string]interface{}{"driver": "file", "dir": "slots", "format": "yaml"}}
	s, err := Open(cfg, root)
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	fs, ok := s.(*FileStore)
	if !ok || fs.dir != filepath.Join(root, "slots") || fs.format != FormatYAML {
		t.Fatalf("store = %#v", s)
	}

	cfg = config.Config{"storage": map[string]interface{}{"driver": "sqlite"}}
	s, err = Open(cfg, root)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	s.Close()

	cfg = config.Config{"storage": map[string]interface{}{"driver": "etcd"}}
	if _, err := Open(cfg, root); err == nil {
		t.Fatalf("unknown driver should fail")
	}
}
