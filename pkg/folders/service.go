// Package folders is the CRUD facade over the folders table. Folders
// have no soft delete: removing one reassigns its notes to "no folder".
package folders

import (
	"fmt"
	"time"

	"github.com/voyena/voyena-core/internal/store"
	"github.com/voyena/voyena-core/pkg/ids"
)

// Service manages folders.
type Service struct {
	store store.Storer
	now   func() time.Time
}

// New creates a folders service.
func New(s store.Storer) *Service {
	return &Service{store: s, now: time.Now}
}

// FolderCreate seeds a new folder. Name is required.
type FolderCreate struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
	Color    *string `json:"color"`
	Icon     *string `json:"icon"`
}

// FolderUpdate is a partial patch.
type FolderUpdate struct {
	Name     *string `json:"name"`
	ParentID *string `json:"parentId"`
	Color    *string `json:"color"`
	Icon     *string `json:"icon"`
}

// Create inserts a folder.
func (s *Service) Create(in FolderCreate) (*store.Folder, error) {
	now := store.Timestamp(s.now())

	f := &store.Folder{
		ID:        ids.New(ids.Folder),
		Name:      in.Name,
		ParentID:  in.ParentID,
		Color:     in.Color,
		Icon:      in.Icon,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateFolder(f); err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	return f, nil
}

// Get returns a folder by id, (nil, nil) when unknown.
func (s *Service) Get(id string) (*store.Folder, error) {
	return s.store.GetFolder(id)
}

// List returns all folders ordered by name.
func (s *Service) List() ([]*store.Folder, error) {
	return s.store.ListFolders()
}

// Update applies a partial patch and refreshes updated_at.
func (s *Service) Update(id string, patch FolderUpdate) (*store.Folder, error) {
	cur, err := s.store.GetFolder(id)
	if err != nil {
		return nil, fmt.Errorf("get folder: %w", err)
	}
	if cur == nil {
		return nil, fmt.Errorf("folder %s: %w", id, store.ErrNotFound)
	}

	if patch.Name != nil {
		cur.Name = *patch.Name
	}
	if patch.ParentID != nil {
		cur.ParentID = patch.ParentID
	}
	if patch.Color != nil {
		cur.Color = patch.Color
	}
	if patch.Icon != nil {
		cur.Icon = patch.Icon
	}
	cur.UpdatedAt = store.Timestamp(s.now())

	if err := s.store.UpdateFolder(cur); err != nil {
		return nil, err
	}
	return cur, nil
}

// Delete reassigns the folder's notes to "no folder" and removes the row.
func (s *Service) Delete(id string) error {
	return s.store.DeleteFolder(id)
}
