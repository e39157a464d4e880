// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: storage/sqlite.go
// Summary: SQLite-backed layout store (pure Go driver).

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texeldock/dock"
)

const layoutsSchema = `
CREATE TABLE IF NOT EXISTS layouts (
	slot       TEXT PRIMARY KEY,
	version    INTEGER NOT NULL,
	body       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
`

// SQLiteStore keeps each slot as a JSON body in the layouts table.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	dsn := clean +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(layoutsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create layouts schema: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save writes rec into slot, replacing what was there.
func (s *SQLiteStore) Save(ctx context.Context, slot string, rec dock.LayoutRecord) error {
	name, err := checkSlot(slot)
	if err != nil {
		return err
	}
	body, err := Encode(rec, FormatJSON)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO layouts (slot, version, body, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			version = excluded.version,
			body = excluded.body,
			updated_at = excluded.updated_at`,
		name, rec.Version, string(body), s.now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("save layout %q: %w", name, err)
	}
	return nil
}

// Load reads slot. A missing slot fails with ErrNotFound.
func (s *SQLiteStore) Load(ctx context.Context, slot string) (dock.LayoutRecord, error) {
	name, err := checkSlot(slot)
	if err != nil {
		return dock.LayoutRecord{}, err
	}
	var body string
	err = s.db.QueryRowContext(ctx, `SELECT body FROM layouts WHERE slot = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return dock.LayoutRecord{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return dock.LayoutRecord{}, fmt.Errorf("load layout %q: %w", name, err)
	}
	return Decode([]byte(body), FormatJSON)
}

// Delete removes slot. A missing slot fails with ErrNotFound.
func (s *SQLiteStore) Delete(ctx context.Context, slot string) error {
	name, err := checkSlot(slot)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM layouts WHERE slot = ?`, name)
	if err != nil {
		return fmt.Errorf("delete layout %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

// List returns every slot ordered by name.
func (s *SQLiteStore) List(ctx context.Context) ([]SlotInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slot, version, updated_at FROM layouts ORDER BY slot`)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer rows.Close()
	var out []SlotInfo
	for rows.Next() {
		var info SlotInfo
		var millis int64
		if err := rows.Scan(&info.Slot, &info.Version, &millis); err != nil {
			return nil, fmt.Errorf("scan layout row: %w", err)
		}
		info.UpdatedAt = time.UnixMilli(millis).UTC()
		out = append(out, info)
	}
	return out, rows.Err()
}
