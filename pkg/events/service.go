// Package events is the CRUD facade over the events table: calendar
// entries with reminder lists and soft-delete semantics.
package events

import (
	"fmt"
	"time"

	"github.com/voyena/voyena-core/internal/store"
	"github.com/voyena/voyena-core/pkg/ids"
)

// Defaults applied when an event is created without explicit values.
const (
	DefaultPriority = "medium"
	DefaultCategory = "personal"
	DefaultStatus   = "confirmed"
)

// Service manages events.
type Service struct {
	store store.Storer
	now   func() time.Time
}

// New creates an events service.
func New(s store.Storer) *Service {
	return &Service{store: s, now: time.Now}
}

// EventCreate seeds a new event. Title and StartAt are required.
type EventCreate struct {
	Title             string                `json:"title"`
	Description       *string               `json:"description"`
	StartAt           string                `json:"startAt"`
	EndAt             *string               `json:"endAt"`
	AllDay            *bool                 `json:"allDay"`
	IsRecurring       *bool                 `json:"isRecurring"`
	RecurrencePattern *string               `json:"recurrencePattern"`
	Priority          *string               `json:"priority"`
	Category          *string               `json:"category"`
	Status            *string               `json:"status"`
	Reminders         []store.EventReminder `json:"reminders"`
	Color             *string               `json:"color"`
}

// EventUpdate is a partial patch.
type EventUpdate struct {
	Title             *string                `json:"title"`
	Description       *string                `json:"description"`
	StartAt           *string                `json:"startAt"`
	EndAt             *string                `json:"endAt"`
	AllDay            *bool                  `json:"allDay"`
	IsRecurring       *bool                  `json:"isRecurring"`
	RecurrencePattern *string                `json:"recurrencePattern"`
	Priority          *string                `json:"priority"`
	Category          *string                `json:"category"`
	Status            *string                `json:"status"`
	Reminders         *[]store.EventReminder `json:"reminders"`
	Color             *string                `json:"color"`
}

// Create inserts an event with defaults for absent fields.
func (s *Service) Create(in EventCreate) (*store.Event, error) {
	now := store.Timestamp(s.now())

	e := &store.Event{
		ID:                ids.New(ids.Event),
		Title:             in.Title,
		Description:       in.Description,
		StartAt:           in.StartAt,
		EndAt:             in.EndAt,
		RecurrencePattern: in.RecurrencePattern,
		Priority:          DefaultPriority,
		Category:          DefaultCategory,
		Status:            DefaultStatus,
		Reminders:         in.Reminders,
		Color:             in.Color,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if in.AllDay != nil {
		e.AllDay = *in.AllDay
	}
	if in.IsRecurring != nil {
		e.IsRecurring = *in.IsRecurring
	}
	if in.Priority != nil {
		e.Priority = *in.Priority
	}
	if in.Category != nil {
		e.Category = *in.Category
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	if e.Reminders == nil {
		e.Reminders = []store.EventReminder{}
	}

	if err := s.store.CreateEvent(e); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return e, nil
}

// Get returns an event by id, (nil, nil) when unknown. Soft-deleted
// events are still returned.
func (s *Service) Get(id string) (*store.Event, error) {
	return s.store.GetEvent(id)
}

// List returns non-deleted events ordered by start time.
func (s *Service) List() ([]*store.Event, error) {
	return s.store.ListEvents()
}

// Update applies a partial patch. updated_at always moves to the current
// time, even for an empty patch.
func (s *Service) Update(id string, patch EventUpdate) (*store.Event, error) {
	cur, err := s.store.GetEvent(id)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	if cur == nil {
		return nil, fmt.Errorf("event %s: %w", id, store.ErrNotFound)
	}

	if patch.Title != nil {
		cur.Title = *patch.Title
	}
	if patch.Description != nil {
		cur.Description = patch.Description
	}
	if patch.StartAt != nil {
		cur.StartAt = *patch.StartAt
	}
	if patch.EndAt != nil {
		cur.EndAt = patch.EndAt
	}
	if patch.AllDay != nil {
		cur.AllDay = *patch.AllDay
	}
	if patch.IsRecurring != nil {
		cur.IsRecurring = *patch.IsRecurring
	}
	if patch.RecurrencePattern != nil {
		cur.RecurrencePattern = patch.RecurrencePattern
	}
	if patch.Priority != nil {
		cur.Priority = *patch.Priority
	}
	if patch.Category != nil {
		cur.Category = *patch.Category
	}
	if patch.Status != nil {
		cur.Status = *patch.Status
	}
	if patch.Reminders != nil {
		cur.Reminders = *patch.Reminders
	}
	if patch.Color != nil {
		cur.Color = patch.Color
	}
	cur.UpdatedAt = store.Timestamp(s.now())

	if err := s.store.UpdateEvent(cur); err != nil {
		return nil, err
	}
	return cur, nil
}

// Delete soft-deletes by default; hard delete removes the row.
func (s *Service) Delete(id string, hard bool) error {
	if hard {
		return s.store.HardDeleteEvent(id)
	}
	return s.store.SoftDeleteEvent(id, store.Timestamp(s.now()))
}
