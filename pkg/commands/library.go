package commands

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"github.com/voyena/voyena-core/internal/store"
	"github.com/voyena/voyena-core/pkg/events"
	"github.com/voyena/voyena-core/pkg/folders"
	"github.com/voyena/voyena-core/pkg/notes"
)

// Notes

// CreateNote creates a note. All fields are optional.
func (s *Surface) CreateNote(in notes.NoteCreate) (*store.Note, error) {
	return s.Notes.Create(in)
}

// GetNote returns a note by id, (nil, nil) when unknown.
func (s *Surface) GetNote(id string) (*store.Note, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.Notes.Get(id)
}

// ListNotes returns non-deleted notes, optionally scoped to a folder.
func (s *Surface) ListNotes(folderID *string) ([]*store.Note, error) {
	return s.Notes.List(folderID)
}

// UpdateNote applies a partial patch to a note.
func (s *Surface) UpdateNote(id string, patch notes.NoteUpdate) (*store.Note, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.Notes.Update(id, patch)
}

// DeleteNote soft-deletes a note, or removes the row when hard is set.
func (s *Surface) DeleteNote(id string, hard bool) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.Notes.Delete(id, hard)
}

// MoveNotesToFolder reassigns notes to a folder, nil for "no folder".
func (s *Surface) MoveNotesToFolder(noteIDs []string, folderID *string) error {
	if err := validation.Validate(noteIDs, validation.Required, validation.Each(validation.Required)); err != nil {
		return err
	}
	return s.Notes.MoveToFolder(noteIDs, folderID)
}

// Folders

// CreateFolder creates a folder. Name is required.
func (s *Surface) CreateFolder(in folders.FolderCreate) (*store.Folder, error) {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required),
	); err != nil {
		return nil, err
	}
	return s.Folders.Create(in)
}

// GetFolder returns a folder by id, (nil, nil) when unknown.
func (s *Surface) GetFolder(id string) (*store.Folder, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.Folders.Get(id)
}

// ListFolders returns all folders ordered by name.
func (s *Surface) ListFolders() ([]*store.Folder, error) {
	return s.Folders.List()
}

// UpdateFolder applies a partial patch to a folder.
func (s *Surface) UpdateFolder(id string, patch folders.FolderUpdate) (*store.Folder, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.Folders.Update(id, patch)
}

// DeleteFolder removes a folder, reassigning its notes to "no folder".
func (s *Surface) DeleteFolder(id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := s.Folders.Delete(id); err != nil {
		return err
	}
	s.log.Info("folder deleted", zap.String("id", id))
	return nil
}

// Events

// CreateEvent creates a calendar event. Title and StartAt are required.
func (s *Surface) CreateEvent(in events.EventCreate) (*store.Event, error) {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.StartAt, validation.Required),
	); err != nil {
		return nil, err
	}
	return s.Events.Create(in)
}

// GetEvent returns an event by id, (nil, nil) when unknown.
func (s *Surface) GetEvent(id string) (*store.Event, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.Events.Get(id)
}

// ListEvents returns non-deleted events ordered by start time.
func (s *Surface) ListEvents() ([]*store.Event, error) {
	return s.Events.List()
}

// UpdateEvent applies a partial patch to an event.
func (s *Surface) UpdateEvent(id string, patch events.EventUpdate) (*store.Event, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	return s.Events.Update(id, patch)
}

// DeleteEvent soft-deletes an event, or removes the row when hard is set.
func (s *Surface) DeleteEvent(id string, hard bool) error {
	if err := requireID(id); err != nil {
		return err
	}
	return s.Events.Delete(id, hard)
}

// Settings

// GetSetting returns a setting value, nil when unset.
func (s *Surface) GetSetting(key string) (*string, error) {
	if err := requireID(key); err != nil {
		return nil, err
	}
	return s.Settings.Get(key)
}

// SetSetting writes a setting, replacing any existing value.
func (s *Surface) SetSetting(key, value string) error {
	if err := requireID(key); err != nil {
		return err
	}
	return s.Settings.Set(key, value)
}
