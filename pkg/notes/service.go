// Package notes is the CRUD facade over the notes table: defaults,
// identifiers, timestamps, and soft-delete semantics.
package notes

import (
	"fmt"
	"time"

	"github.com/voyena/voyena-core/internal/store"
	"github.com/voyena/voyena-core/pkg/ids"
)

// Service manages notes.
type Service struct {
	store store.Storer
	now   func() time.Time
}

// New creates a notes service.
func New(s store.Storer) *Service {
	return &Service{store: s, now: time.Now}
}

// NoteCreate seeds a new note. Every field is optional.
type NoteCreate struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	FolderID *string  `json:"folderId"`
	Tags     []string `json:"tags"`
}

// NoteUpdate is a partial patch: present fields override, absent fields
// keep their stored value.
type NoteUpdate struct {
	Title    *string   `json:"title"`
	Content  *string   `json:"content"`
	FolderID *string   `json:"folderId"`
	Tags     *[]string `json:"tags"`
	IsPinned *bool     `json:"isPinned"`
}

// Create inserts a note with defaults for absent fields.
func (s *Service) Create(in NoteCreate) (*store.Note, error) {
	now := store.Timestamp(s.now())

	n := &store.Note{
		ID:        ids.New(ids.Note),
		FolderID:  in.FolderID,
		Tags:      in.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Title != nil {
		n.Title = *in.Title
	}
	if in.Content != nil {
		n.Content = *in.Content
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}

	if err := s.store.CreateNote(n); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

// Get returns a note by id, (nil, nil) when unknown. Soft-deleted notes
// are still returned.
func (s *Service) Get(id string) (*store.Note, error) {
	return s.store.GetNote(id)
}

// List returns non-deleted notes, optionally scoped to a folder, pinned
// first and most recently updated first.
func (s *Service) List(folderID *string) ([]*store.Note, error) {
	return s.store.ListNotes(folderID)
}

// Update applies a partial patch. updated_at always moves to the current
// time, even for an empty patch.
func (s *Service) Update(id string, patch NoteUpdate) (*store.Note, error) {
	cur, err := s.store.GetNote(id)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	if cur == nil {
		return nil, fmt.Errorf("note %s: %w", id, store.ErrNotFound)
	}

	if patch.Title != nil {
		cur.Title = *patch.Title
	}
	if patch.Content != nil {
		cur.Content = *patch.Content
	}
	if patch.FolderID != nil {
		cur.FolderID = patch.FolderID
	}
	if patch.Tags != nil {
		cur.Tags = *patch.Tags
	}
	if patch.IsPinned != nil {
		cur.IsPinned = *patch.IsPinned
	}
	cur.UpdatedAt = store.Timestamp(s.now())

	if err := s.store.UpdateNote(cur); err != nil {
		return nil, err
	}
	return cur, nil
}

// Delete soft-deletes by default; hard delete removes the row.
func (s *Service) Delete(id string, hard bool) error {
	if hard {
		return s.store.HardDeleteNote(id)
	}
	return s.store.SoftDeleteNote(id, store.Timestamp(s.now()))
}

// MoveToFolder reassigns notes to a folder (nil for "no folder"), all
// sharing one timestamp.
func (s *Service) MoveToFolder(noteIDs []string, folderID *string) error {
	return s.store.MoveNotesToFolder(noteIDs, folderID, store.Timestamp(s.now()))
}
