// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: storage/file.go
// Summary: Directory-backed layout store, one file per slot.

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/framegrace/texeldock/dock"
)

// FileStore writes slots as <dir>/<slot>.json or .yaml.
type FileStore struct {
	dir    string
	format Format
}

// OpenFileStore prepares dir for slots in the given format.
func OpenFileStore(dir string, f Format) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("storage dir is required")
	}
	if f == "" {
		f = FormatJSON
	}
	if _, err := Encode(dock.LayoutRecord{}, f); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir, format: f}, nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) path(slot string) string {
	return filepath.Join(s.dir, slot+"."+string(s.format))
}

// Save writes rec through a temporary file so readers never see a partial
// layout.
func (s *FileStore) Save(ctx context.Context, slot string, rec dock.LayoutRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := checkSlot(slot)
	if err != nil {
		return err
	}
	data, err := Encode(rec, s.format)
	if err != nil {
		return err
	}
	target := s.path(name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write layout %q: %w", name, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write layout %q: %w", name, err)
	}
	return nil
}

// Load reads slot.
func (s *FileStore) Load(ctx context.Context, slot string) (dock.LayoutRecord, error) {
	if err := ctx.Err(); err != nil {
		return dock.LayoutRecord{}, err
	}
	name, err := checkSlot(slot)
	if err != nil {
		return dock.LayoutRecord{}, err
	}
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return dock.LayoutRecord{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return dock.LayoutRecord{}, fmt.Errorf("read layout %q: %w", name, err)
	}
	return Decode(data, s.format)
}

// Delete removes slot.
func (s *FileStore) Delete(ctx context.Context, slot string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name, err := checkSlot(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(s.path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return fmt.Errorf("delete layout %q: %w", name, err)
	}
	return nil
}

// List returns the slots present in the directory, ordered by name. The
// version is read from each file.
func (s *FileStore) List(ctx context.Context) ([]SlotInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	ext := "." + string(s.format)
	var out []SlotInfo
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		slot := strings.TrimSuffix(e.Name(), ext)
		si := SlotInfo{Slot: slot, UpdatedAt: info.ModTime().UTC()}
		if rec, err := s.Load(ctx, slot); err == nil {
			si.Version = rec.Version
		}
		out = append(out, si)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}
