package store

import (
	"database/sql"
	"fmt"
)

const brainMapColumns = `id, title, description, center_node_id, center_node_text,
	position_x, position_y, zoom, theme, created_at, updated_at, deleted_at`

const nodeColumns = `id, brain_map_id, parent_node_id, label, description,
	position_x, position_y, color, shape, size, icon, note_id, folder_id,
	is_collapsed, layer, created_at, updated_at`

const connectionColumns = `id, brain_map_id, source_node_id, target_node_id,
	label, color, style, animated, created_at`

func scanBrainMap(sc interface{ Scan(...any) error }) (*BrainMap, error) {
	var m BrainMap
	if err := sc.Scan(&m.ID, &m.Title, &m.Description, &m.CenterNodeID,
		&m.CenterNodeText, &m.PositionX, &m.PositionY, &m.Zoom, &m.Theme,
		&m.CreatedAt, &m.UpdatedAt, &m.DeletedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func scanNode(sc interface{ Scan(...any) error }) (*BrainMapNode, error) {
	var n BrainMapNode
	var isCollapsed int
	if err := sc.Scan(&n.ID, &n.BrainMapID, &n.ParentNodeID, &n.Label,
		&n.Description, &n.PositionX, &n.PositionY, &n.Color, &n.Shape,
		&n.Size, &n.Icon, &n.NoteID, &n.FolderID, &isCollapsed, &n.Layer,
		&n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	n.IsCollapsed = isCollapsed != 0
	return &n, nil
}

func scanConnection(sc interface{ Scan(...any) error }) (*BrainMapConnection, error) {
	var c BrainMapConnection
	var animated int
	if err := sc.Scan(&c.ID, &c.BrainMapID, &c.SourceNodeID, &c.TargetNodeID,
		&c.Label, &c.Color, &c.Style, &animated, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Animated = animated != 0
	return &c, nil
}

// =============================================================================
// Brain maps
// =============================================================================

// CreateBrainMapWithRoot inserts a map and its root node in one
// transaction. A map is never observable without its root: both inserts
// succeed or neither does.
func (s *SQLiteStore) CreateBrainMapWithRoot(m *BrainMap, root *BrainMapNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO brain_maps (id, title, description, center_node_id, center_node_text,
			position_x, position_y, zoom, theme, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Title, m.Description, m.CenterNodeID, m.CenterNodeText,
		m.PositionX, m.PositionY, m.Zoom, m.Theme, m.CreatedAt, m.UpdatedAt); err != nil {
		return err
	}

	if err := insertNode(tx, root); err != nil {
		return err
	}

	return tx.Commit()
}

// GetBrainMap retrieves a map by ID. Soft-deleted maps are still
// returned; a missing row yields (nil, nil).
func (s *SQLiteStore) GetBrainMap(id string) (*BrainMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := scanBrainMap(s.db.QueryRow(`
		SELECT `+brainMapColumns+` FROM brain_maps WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateBrainMap rewrites the mutable columns of a map.
func (s *SQLiteStore) UpdateBrainMap(m *BrainMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE brain_maps SET title = ?, description = ?, center_node_text = ?,
			position_x = ?, position_y = ?, zoom = ?, theme = ?, updated_at = ?
		WHERE id = ?
	`, m.Title, m.Description, m.CenterNodeText,
		m.PositionX, m.PositionY, m.Zoom, m.Theme, m.UpdatedAt, m.ID)
	if err != nil {
		return err
	}
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return fmt.Errorf("brain map %s: %w", m.ID, ErrNotFound)
	}
	return nil
}

// ListBrainMaps returns non-deleted maps, most recently touched first.
func (s *SQLiteStore) ListBrainMaps() ([]*BrainMap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT ` + brainMapColumns + ` FROM brain_maps
		WHERE deleted_at IS NULL
		ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var maps []*BrainMap
	for rows.Next() {
		m, err := scanBrainMap(rows)
		if err != nil {
			return nil, err
		}
		maps = append(maps, m)
	}
	return maps, rows.Err()
}

// SoftDeleteBrainMap marks a map deleted without removing its rows.
func (s *SQLiteStore) SoftDeleteBrainMap(id, deletedAt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE brain_maps SET deleted_at = ? WHERE id = ?`, deletedAt, id)
	return err
}

// HardDeleteBrainMap removes the map row; its nodes and connections go
// with it through foreign-key cascade.
func (s *SQLiteStore) HardDeleteBrainMap(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM brain_maps WHERE id = ?`, id)
	return err
}

// TouchBrainMap refreshes a map's updated_at so listings ordered by
// recency reflect content edits.
func (s *SQLiteStore) TouchBrainMap(id, updatedAt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE brain_maps SET updated_at = ? WHERE id = ?`, updatedAt, id)
	return err
}

// CountBrainMaps returns the number of non-deleted maps.
func (s *SQLiteStore) CountBrainMaps() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM brain_maps WHERE deleted_at IS NULL`).Scan(&count)
	return count, err
}

// =============================================================================
// Nodes
// =============================================================================

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertNode(e execer, n *BrainMapNode) error {
	_, err := e.Exec(`
		INSERT INTO brain_map_nodes (id, brain_map_id, parent_node_id, label, description,
			position_x, position_y, color, shape, size, icon, note_id, folder_id,
			is_collapsed, layer, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, n.ID, n.BrainMapID, n.ParentNodeID, n.Label, n.Description,
		n.PositionX, n.PositionY, n.Color, n.Shape, n.Size, n.Icon,
		n.NoteID, n.FolderID, boolToInt(n.IsCollapsed), n.Layer,
		n.CreatedAt, n.UpdatedAt)
	return err
}

// CreateNode inserts a new node row.
func (s *SQLiteStore) CreateNode(n *BrainMapNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return insertNode(s.db, n)
}

// GetNode retrieves a node by ID, (nil, nil) when absent.
func (s *SQLiteStore) GetNode(id string) (*BrainMapNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := scanNode(s.db.QueryRow(`
		SELECT `+nodeColumns+` FROM brain_map_nodes WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// UpdateNode rewrites the mutable columns of a node. Layer and owning map
// are deliberately not part of the statement.
func (s *SQLiteStore) UpdateNode(n *BrainMapNode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE brain_map_nodes SET parent_node_id = ?, label = ?, description = ?,
			position_x = ?, position_y = ?, color = ?, shape = ?, size = ?, icon = ?,
			note_id = ?, folder_id = ?, is_collapsed = ?, updated_at = ?
		WHERE id = ?
	`, n.ParentNodeID, n.Label, n.Description,
		n.PositionX, n.PositionY, n.Color, n.Shape, n.Size, n.Icon,
		n.NoteID, n.FolderID, boolToInt(n.IsCollapsed), n.UpdatedAt, n.ID)
	if err != nil {
		return err
	}
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return fmt.Errorf("node %s: %w", n.ID, ErrNotFound)
	}
	return nil
}

// UpdateNodePosition moves a single node. Missing ids are an error so
// batch callers can report the failing item.
func (s *SQLiteStore) UpdateNodePosition(id string, x, y float64, updatedAt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE brain_map_nodes SET position_x = ?, position_y = ?, updated_at = ?
		WHERE id = ?
	`, x, y, updatedAt, id)
	if err != nil {
		return err
	}
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return fmt.Errorf("node %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpdateNodeLayer rewrites a node's stored layer. Only the explicit
// recomputation operation uses this; ordinary updates never touch layer.
func (s *SQLiteStore) UpdateNodeLayer(id string, layer int, updatedAt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE brain_map_nodes SET layer = ?, updated_at = ? WHERE id = ?
	`, layer, updatedAt, id)
	if err != nil {
		return err
	}
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return fmt.Errorf("node %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteNode removes a node row. Connections referencing it as source or
// target cascade away; children keep their rows with parent_node_id
// cleared by the foreign key.
func (s *SQLiteStore) DeleteNode(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM brain_map_nodes WHERE id = ?`, id)
	return err
}

// ListNodes returns a map's nodes ordered by layer, then creation time,
// so rendering sees a stable breadth-first-ish order.
func (s *SQLiteStore) ListNodes(mapID string) ([]*BrainMapNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT `+nodeColumns+` FROM brain_map_nodes
		WHERE brain_map_id = ?
		ORDER BY layer ASC, created_at ASC
	`, mapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []*BrainMapNode
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// CountNodes returns the total number of nodes across all maps.
func (s *SQLiteStore) CountNodes() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM brain_map_nodes`).Scan(&count)
	return count, err
}

// =============================================================================
// Connections
// =============================================================================

// CreateConnection inserts a new connection row. Source and target must
// exist (foreign keys); cross-map consistency is not checked here.
func (s *SQLiteStore) CreateConnection(c *BrainMapConnection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO brain_map_connections (id, brain_map_id, source_node_id, target_node_id,
			label, color, style, animated, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.ID, c.BrainMapID, c.SourceNodeID, c.TargetNodeID,
		c.Label, c.Color, c.Style, boolToInt(c.Animated), c.CreatedAt)

	return err
}

// GetConnection retrieves a connection by ID, (nil, nil) when absent.
func (s *SQLiteStore) GetConnection(id string) (*BrainMapConnection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := scanConnection(s.db.QueryRow(`
		SELECT `+connectionColumns+` FROM brain_map_connections WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteConnection removes a connection row by ID.
func (s *SQLiteStore) DeleteConnection(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM brain_map_connections WHERE id = ?`, id)
	return err
}

// ListConnections returns all connections of a map, unordered.
func (s *SQLiteStore) ListConnections(mapID string) ([]*BrainMapConnection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT `+connectionColumns+` FROM brain_map_connections
		WHERE brain_map_id = ?
	`, mapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conns []*BrainMapConnection
	for rows.Next() {
		c, err := scanConnection(rows)
		if err != nil {
			return nil, err
		}
		conns = append(conns, c)
	}
	return conns, rows.Err()
}

// CountConnections returns the total number of connections across all maps.
func (s *SQLiteStore) CountConnections() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM brain_map_connections`).Scan(&count)
	return count, err
}
