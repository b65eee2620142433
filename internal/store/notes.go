package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

const noteColumns = `id, title, content, folder_id, tags, is_pinned, created_at, updated_at, deleted_at`

// scanNote maps one row of noteColumns to a Note.
func scanNote(sc interface{ Scan(...any) error }) (*Note, error) {
	var n Note
	var tagsJSON string
	var isPinned int

	if err := sc.Scan(&n.ID, &n.Title, &n.Content, &n.FolderID, &tagsJSON,
		&isPinned, &n.CreatedAt, &n.UpdatedAt, &n.DeletedAt); err != nil {
		return nil, err
	}

	n.IsPinned = isPinned != 0
	if err := json.Unmarshal([]byte(tagsJSON), &n.Tags); err != nil {
		n.Tags = []string{}
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return &n, nil
}

// CreateNote inserts a new note row.
func (s *SQLiteStore) CreateNote(n *Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tagsJSON, err := json.Marshal(n.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO notes (id, title, content, folder_id, tags, is_pinned, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, n.ID, n.Title, n.Content, n.FolderID, string(tagsJSON),
		boolToInt(n.IsPinned), n.CreatedAt, n.UpdatedAt)

	return err
}

// GetNote retrieves a note by ID. Soft-deleted notes are still returned;
// a missing row yields (nil, nil).
func (s *SQLiteStore) GetNote(id string) (*Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := scanNote(s.db.QueryRow(`
		SELECT `+noteColumns+` FROM notes WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// UpdateNote rewrites the mutable columns of a note.
func (s *SQLiteStore) UpdateNote(n *Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tagsJSON, err := json.Marshal(n.Tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE notes SET title = ?, content = ?, folder_id = ?, tags = ?, is_pinned = ?, updated_at = ?
		WHERE id = ?
	`, n.Title, n.Content, n.FolderID, string(tagsJSON),
		boolToInt(n.IsPinned), n.UpdatedAt, n.ID)
	if err != nil {
		return err
	}
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return fmt.Errorf("note %s: %w", n.ID, ErrNotFound)
	}
	return nil
}

// ListNotes returns non-deleted notes, optionally filtered by folder,
// pinned first and most recently updated first.
func (s *SQLiteStore) ListNotes(folderID *string) ([]*Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows *sql.Rows
	var err error

	if folderID != nil {
		rows, err = s.db.Query(`
			SELECT `+noteColumns+` FROM notes
			WHERE folder_id = ? AND deleted_at IS NULL
			ORDER BY is_pinned DESC, updated_at DESC
		`, *folderID)
	} else {
		rows, err = s.db.Query(`
			SELECT ` + noteColumns + ` FROM notes
			WHERE deleted_at IS NULL
			ORDER BY is_pinned DESC, updated_at DESC
		`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// SoftDeleteNote marks a note deleted without removing the row.
func (s *SQLiteStore) SoftDeleteNote(id, deletedAt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE notes SET deleted_at = ? WHERE id = ?`, deletedAt, id)
	return err
}

// HardDeleteNote physically removes a note row.
func (s *SQLiteStore) HardDeleteNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	return err
}

// MoveNotesToFolder reassigns notes to a folder (nil for "no folder") as
// independent per-row updates sharing one timestamp. Not atomic: a failure
// partway through leaves earlier updates committed.
func (s *SQLiteStore) MoveNotesToFolder(ids []string, folderID *string, updatedAt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if _, err := s.db.Exec(`
			UPDATE notes SET folder_id = ?, updated_at = ? WHERE id = ?
		`, folderID, updatedAt, id); err != nil {
			return fmt.Errorf("move note %s: %w", id, err)
		}
	}
	return nil
}

// CountNotes returns the number of non-deleted notes.
func (s *SQLiteStore) CountNotes() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM notes WHERE deleted_at IS NULL`).Scan(&count)
	return count, err
}
