package store

import (
	"database/sql"
	"fmt"
)

const folderColumns = `id, name, parent_id, color, icon, created_at, updated_at`

func scanFolder(sc interface{ Scan(...any) error }) (*Folder, error) {
	var f Folder
	if err := sc.Scan(&f.ID, &f.Name, &f.ParentID, &f.Color, &f.Icon,
		&f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateFolder inserts a new folder row.
func (s *SQLiteStore) CreateFolder(f *Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO folders (id, name, parent_id, color, icon, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, f.ID, f.Name, f.ParentID, f.Color, f.Icon, f.CreatedAt, f.UpdatedAt)

	return err
}

// GetFolder retrieves a folder by ID, (nil, nil) when absent.
func (s *SQLiteStore) GetFolder(id string) (*Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := scanFolder(s.db.QueryRow(`
		SELECT `+folderColumns+` FROM folders WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// UpdateFolder rewrites the mutable columns of a folder.
func (s *SQLiteStore) UpdateFolder(f *Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE folders SET name = ?, parent_id = ?, color = ?, icon = ?, updated_at = ?
		WHERE id = ?
	`, f.Name, f.ParentID, f.Color, f.Icon, f.UpdatedAt, f.ID)
	if err != nil {
		return err
	}
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return fmt.Errorf("folder %s: %w", f.ID, ErrNotFound)
	}
	return nil
}

// ListFolders returns all folders ordered by name.
func (s *SQLiteStore) ListFolders() ([]*Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT ` + folderColumns + ` FROM folders ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []*Folder
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// DeleteFolder moves the folder's notes to "no folder", then removes the
// row. Two statements, no transaction: notes already reassigned stay
// reassigned if the row delete fails.
func (s *SQLiteStore) DeleteFolder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`UPDATE notes SET folder_id = NULL WHERE folder_id = ?`, id); err != nil {
		return err
	}

	_, err := s.db.Exec(`DELETE FROM folders WHERE id = ?`, id)
	return err
}

// CountFolders returns the total number of folders.
func (s *SQLiteStore) CountFolders() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM folders`).Scan(&count)
	return count, err
}
