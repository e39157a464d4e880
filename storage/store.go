// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: storage/store.go
// Summary: Layout store contract and record encoding shared by the backends.
// Usage: The CLI opens a store from the "storage" config section and saves
// workspace captures into named slots.

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/framegrace/texeldock/dock"
)

// AutosaveSlot is written on exit and restored on start.
const AutosaveSlot = "autosave"

var (
	// ErrNotFound means the slot holds no layout.
	ErrNotFound = errors.New("layout slot not found")
	// ErrInvalidSlot means the slot name is empty or unusable.
	ErrInvalidSlot = errors.New("invalid layout slot name")
	// ErrUnknownFormat means the encoding is neither json nor yaml.
	ErrUnknownFormat = errors.New("unknown layout format")
)

// Format is a layout record encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" and "yml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatForPath guesses the format from a file extension, defaulting to JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// SlotInfo describes a stored slot.
type SlotInfo struct {
	Slot      string
	Version   int
	UpdatedAt time.Time
}

// LayoutStore persists layout records in named slots.
type LayoutStore interface {
	Save(ctx context.Context, slot string, rec dock.LayoutRecord) error
	Load(ctx context.Context, slot string) (dock.LayoutRecord, error)
	Delete(ctx context.Context, slot string) error
	List(ctx context.Context) ([]SlotInfo, error)
	Close() error
}

// Encode serializes rec.
func Encode(rec dock.LayoutRecord, f Format) ([]byte, error) {
	switch f {
	case FormatJSON, "":
		return json.MarshalIndent(rec, "", "  ")
	case FormatYAML:
		return yaml.Marshal(rec)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Decode parses a record. The version check is left to the loader so a
// newer record still decodes.
func Decode(data []byte, f Format) (dock.LayoutRecord, error) {
	var rec dock.LayoutRecord
	var err error
	switch f {
	case FormatJSON, "":
		err = json.Unmarshal(data, &rec)
	case FormatYAML:
		err = yaml.Unmarshal(data, &rec)
	default:
		return rec, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return dock.LayoutRecord{}, fmt.Errorf("decode %s layout: %w", f, err)
	}
	return rec, nil
}

func checkSlot(slot string) (string, error) {
	s := strings.TrimSpace(slot)
	if s == "" || strings.ContainsAny(s, `/\`) || s == "." || s == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlot, slot)
	}
	return s, nil
}
