// Package store provides SQLite-backed persistence for Voyena.
// Uses ncruces/go-sqlite3/driver which provides a database/sql interface.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ErrNotFound is returned when an update or delete targets a row that
// does not exist. Callers compare with errors.Is.
var ErrNotFound = errors.New("not found")

// timeLayout is the persisted timestamp form. Fixed-width UTC so that
// lexicographic ordering of stored strings matches chronological order.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formats t in the store's persisted timestamp form.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// SQLiteStore is the SQLite-backed data store.
// A single connection guarded by a mutex: one logical operation at a time.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

// schema defines all tables for the Voyena data layer.
const schema = `
-- Folders (note hierarchy; no soft delete)
CREATE TABLE IF NOT EXISTS folders (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    parent_id TEXT,
    color TEXT,
    icon TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (parent_id) REFERENCES folders(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_folders_parent ON folders(parent_id);

-- Notes
CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL DEFAULT '',
    folder_id TEXT,
    tags TEXT NOT NULL DEFAULT '[]',
    is_pinned INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    deleted_at TEXT,
    FOREIGN KEY (folder_id) REFERENCES folders(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_folder ON notes(folder_id);
CREATE INDEX IF NOT EXISTS idx_notes_updated ON notes(updated_at DESC);
CREATE INDEX IF NOT EXISTS idx_notes_deleted ON notes(deleted_at);

-- Calendar events
CREATE TABLE IF NOT EXISTS events (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    start_at TEXT NOT NULL,
    end_at TEXT,
    all_day INTEGER NOT NULL DEFAULT 0,
    is_recurring INTEGER NOT NULL DEFAULT 0,
    recurrence_pattern TEXT,
    priority TEXT NOT NULL DEFAULT 'medium',
    category TEXT NOT NULL DEFAULT 'personal',
    status TEXT NOT NULL DEFAULT 'confirmed',
    reminders TEXT NOT NULL DEFAULT '[]',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    deleted_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_at);
CREATE INDEX IF NOT EXISTS idx_events_deleted ON events(deleted_at);

-- Brain maps
-- center_node_id is a weak back-reference into brain_map_nodes; the map row
-- is written before its root node inside the creation transaction, so it
-- carries no foreign key.
CREATE TABLE IF NOT EXISTS brain_maps (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    center_node_id TEXT,
    center_node_text TEXT NOT NULL DEFAULT '',
    position_x REAL NOT NULL DEFAULT 0,
    position_y REAL NOT NULL DEFAULT 0,
    zoom REAL NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    deleted_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_brain_maps_updated ON brain_maps(updated_at DESC);
CREATE INDEX IF NOT EXISTS idx_brain_maps_deleted ON brain_maps(deleted_at);

-- Brain map nodes
-- layer is assigned at creation and never recomputed by node updates.
CREATE TABLE IF NOT EXISTS brain_map_nodes (
    id TEXT PRIMARY KEY,
    brain_map_id TEXT NOT NULL,
    parent_node_id TEXT,
    label TEXT NOT NULL,
    description TEXT,
    position_x REAL NOT NULL DEFAULT 0,
    position_y REAL NOT NULL DEFAULT 0,
    color TEXT,
    shape TEXT NOT NULL DEFAULT 'circle',
    size TEXT NOT NULL DEFAULT 'medium',
    note_id TEXT,
    folder_id TEXT,
    is_collapsed INTEGER NOT NULL DEFAULT 0,
    layer INTEGER NOT NULL DEFAULT 1,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (brain_map_id) REFERENCES brain_maps(id) ON DELETE CASCADE,
    FOREIGN KEY (parent_node_id) REFERENCES brain_map_nodes(id) ON DELETE SET NULL,
    FOREIGN KEY (note_id) REFERENCES notes(id) ON DELETE SET NULL,
    FOREIGN KEY (folder_id) REFERENCES folders(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_brain_map_nodes_map ON brain_map_nodes(brain_map_id);
CREATE INDEX IF NOT EXISTS idx_brain_map_nodes_parent ON brain_map_nodes(parent_node_id);

-- Brain map connections (immutable once created: no update path)
CREATE TABLE IF NOT EXISTS brain_map_connections (
    id TEXT PRIMARY KEY,
    brain_map_id TEXT NOT NULL,
    source_node_id TEXT NOT NULL,
    target_node_id TEXT NOT NULL,
    label TEXT,
    color TEXT,
    style TEXT NOT NULL DEFAULT 'solid',
    animated INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    FOREIGN KEY (brain_map_id) REFERENCES brain_maps(id) ON DELETE CASCADE,
    FOREIGN KEY (source_node_id) REFERENCES brain_map_nodes(id) ON DELETE CASCADE,
    FOREIGN KEY (target_node_id) REFERENCES brain_map_nodes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_brain_map_connections_map ON brain_map_connections(brain_map_id);
CREATE INDEX IF NOT EXISTS idx_brain_map_connections_source ON brain_map_connections(source_node_id);
CREATE INDEX IF NOT EXISTS idx_brain_map_connections_target ON brain_map_connections(target_node_id);

-- Settings (flat key/value)
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// columnMigrations are forward-only additions for columns introduced after
// the first release. Each runs only when PRAGMA table_info shows the column
// missing.
var columnMigrations = []struct {
	table, column, ddl string
}{
	{"brain_maps", "theme", "ALTER TABLE brain_maps ADD COLUMN theme TEXT"},
	{"brain_map_nodes", "icon", "ALTER TABLE brain_map_nodes ADD COLUMN icon TEXT"},
	{"events", "color", "ALTER TABLE events ADD COLUMN color TEXT"},
}

// Open opens (or creates) the store at the given file path.
func Open(path string) (*SQLiteStore, error) {
	return openDSN("file:" + path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
}

// OpenMemory creates an in-memory store, used by tests.
func OpenMemory() (*SQLiteStore, error) {
	return openDSN("file::memory:?_pragma=foreign_keys(1)")
}

func openDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single shared connection; every operation serializes on s.mu anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return s, nil
}

// migrate applies forward-only column additions.
func (s *SQLiteStore) migrate() error {
	for _, m := range columnMigrations {
		ok, err := s.hasColumn(m.table, m.column)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if _, err := s.db.Exec(m.ddl); err != nil {
			return fmt.Errorf("add column %s.%s: %w", m.table, m.column, err)
		}
	}
	return nil
}

func (s *SQLiteStore) hasColumn(table, column string) (bool, error) {
	rows, err := s.db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid, notNull, pk int
			name, colType    string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
