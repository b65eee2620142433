package store

import (
	"encoding/json"
	"fmt"
)

// exportData is the JSON backup document. Slices are ordered so Import
// can re-insert without breaking foreign keys.
type exportData struct {
	Folders     []*Folder             `json:"folders"`
	Notes       []*Note               `json:"notes"`
	Events      []*Event              `json:"events"`
	BrainMaps   []*BrainMap           `json:"brainMaps"`
	Nodes       []*BrainMapNode       `json:"nodes"`
	Connections []*BrainMapConnection `json:"connections"`
	Settings    map[string]string     `json:"settings"`
}

// Export serializes every table, soft-deleted rows included, to a single
// JSON document.
func (s *SQLiteStore) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := exportData{Settings: map[string]string{}}

	rows, err := s.db.Query(`SELECT ` + folderColumns + ` FROM folders ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("export folders: %w", err)
	}
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		data.Folders = append(data.Folders, f)
	}
	rows.Close()

	rows, err = s.db.Query(`SELECT ` + noteColumns + ` FROM notes ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("export notes: %w", err)
	}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan note: %w", err)
		}
		data.Notes = append(data.Notes, n)
	}
	rows.Close()

	rows, err = s.db.Query(`SELECT ` + eventColumns + ` FROM events ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("export events: %w", err)
	}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan event: %w", err)
		}
		data.Events = append(data.Events, e)
	}
	rows.Close()

	rows, err = s.db.Query(`SELECT ` + brainMapColumns + ` FROM brain_maps ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("export brain maps: %w", err)
	}
	for rows.Next() {
		m, err := scanBrainMap(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan brain map: %w", err)
		}
		data.BrainMaps = append(data.BrainMaps, m)
	}
	rows.Close()

	// Layer order puts parents before children in the common case; Import
	// defers foreign keys anyway for trees with stale layers.
	rows, err = s.db.Query(`SELECT ` + nodeColumns + ` FROM brain_map_nodes ORDER BY layer ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("export nodes: %w", err)
	}
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan node: %w", err)
		}
		data.Nodes = append(data.Nodes, n)
	}
	rows.Close()

	rows, err = s.db.Query(`SELECT ` + connectionColumns + ` FROM brain_map_connections ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("export connections: %w", err)
	}
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan connection: %w", err)
		}
		data.Connections = append(data.Connections, c)
	}
	rows.Close()

	rows, err = s.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("export settings: %w", err)
	}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		data.Settings[k] = v
	}
	rows.Close()

	return json.Marshal(data)
}

// Import restores the store from an exported JSON document. Clears all
// existing data and re-inserts inside a single transaction.
func (s *SQLiteStore) Import(raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(raw) == 0 {
		return nil
	}

	var data exportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("import unmarshal: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Constraint checks move to commit time so insert order within the
	// transaction doesn't matter for self-referential tables.
	if _, err := tx.Exec(`PRAGMA defer_foreign_keys = ON`); err != nil {
		return err
	}

	for _, table := range []string{
		"brain_map_connections", "brain_map_nodes", "brain_maps",
		"notes", "events", "folders", "settings",
	} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, f := range data.Folders {
		if _, err := tx.Exec(`
			INSERT INTO folders (id, name, parent_id, color, icon, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, f.ID, f.Name, f.ParentID, f.Color, f.Icon, f.CreatedAt, f.UpdatedAt); err != nil {
			return fmt.Errorf("import folder %s: %w", f.ID, err)
		}
	}

	for _, n := range data.Notes {
		tagsJSON, _ := json.Marshal(n.Tags)
		if _, err := tx.Exec(`
			INSERT INTO notes (id, title, content, folder_id, tags, is_pinned, created_at, updated_at, deleted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, n.ID, n.Title, n.Content, n.FolderID, string(tagsJSON),
			boolToInt(n.IsPinned), n.CreatedAt, n.UpdatedAt, n.DeletedAt); err != nil {
			return fmt.Errorf("import note %s: %w", n.ID, err)
		}
	}

	for _, e := range data.Events {
		remindersJSON, _ := json.Marshal(e.Reminders)
		if _, err := tx.Exec(`
			INSERT INTO events (id, title, description, start_at, end_at, all_day, is_recurring,
				recurrence_pattern, priority, category, status, reminders, color,
				created_at, updated_at, deleted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, e.ID, e.Title, e.Description, e.StartAt, e.EndAt,
			boolToInt(e.AllDay), boolToInt(e.IsRecurring), e.RecurrencePattern,
			e.Priority, e.Category, e.Status, string(remindersJSON), e.Color,
			e.CreatedAt, e.UpdatedAt, e.DeletedAt); err != nil {
			return fmt.Errorf("import event %s: %w", e.ID, err)
		}
	}

	for _, m := range data.BrainMaps {
		if _, err := tx.Exec(`
			INSERT INTO brain_maps (id, title, description, center_node_id, center_node_text,
				position_x, position_y, zoom, theme, created_at, updated_at, deleted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, m.ID, m.Title, m.Description, m.CenterNodeID, m.CenterNodeText,
			m.PositionX, m.PositionY, m.Zoom, m.Theme,
			m.CreatedAt, m.UpdatedAt, m.DeletedAt); err != nil {
			return fmt.Errorf("import brain map %s: %w", m.ID, err)
		}
	}

	for _, n := range data.Nodes {
		if err := insertNode(tx, n); err != nil {
			return fmt.Errorf("import node %s: %w", n.ID, err)
		}
	}

	for _, c := range data.Connections {
		if _, err := tx.Exec(`
			INSERT INTO brain_map_connections (id, brain_map_id, source_node_id, target_node_id,
				label, color, style, animated, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, c.BrainMapID, c.SourceNodeID, c.TargetNodeID,
			c.Label, c.Color, c.Style, boolToInt(c.Animated), c.CreatedAt); err != nil {
			return fmt.Errorf("import connection %s: %w", c.ID, err)
		}
	}

	for k, v := range data.Settings {
		if _, err := tx.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("import setting %s: %w", k, err)
		}
	}

	return tx.Commit()
}
