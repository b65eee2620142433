package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

const eventColumns = `id, title, description, start_at, end_at, all_day, is_recurring,
	recurrence_pattern, priority, category, status, reminders, color,
	created_at, updated_at, deleted_at`

func scanEvent(sc interface{ Scan(...any) error }) (*Event, error) {
	var e Event
	var remindersJSON string
	var allDay, isRecurring int

	if err := sc.Scan(&e.ID, &e.Title, &e.Description, &e.StartAt, &e.EndAt,
		&allDay, &isRecurring, &e.RecurrencePattern, &e.Priority, &e.Category,
		&e.Status, &remindersJSON, &e.Color,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt); err != nil {
		return nil, err
	}

	e.AllDay = allDay != 0
	e.IsRecurring = isRecurring != 0
	if err := json.Unmarshal([]byte(remindersJSON), &e.Reminders); err != nil {
		e.Reminders = []EventReminder{}
	}
	if e.Reminders == nil {
		e.Reminders = []EventReminder{}
	}
	return &e, nil
}

// CreateEvent inserts a new event row.
func (s *SQLiteStore) CreateEvent(e *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remindersJSON, err := json.Marshal(e.Reminders)
	if err != nil {
		return fmt.Errorf("failed to marshal reminders: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO events (id, title, description, start_at, end_at, all_day, is_recurring,
			recurrence_pattern, priority, category, status, reminders, color, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Title, e.Description, e.StartAt, e.EndAt,
		boolToInt(e.AllDay), boolToInt(e.IsRecurring), e.RecurrencePattern,
		e.Priority, e.Category, e.Status, string(remindersJSON), e.Color,
		e.CreatedAt, e.UpdatedAt)

	return err
}

// GetEvent retrieves an event by ID. Soft-deleted events are still
// returned; a missing row yields (nil, nil).
func (s *SQLiteStore) GetEvent(id string) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := scanEvent(s.db.QueryRow(`
		SELECT `+eventColumns+` FROM events WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateEvent rewrites the mutable columns of an event.
func (s *SQLiteStore) UpdateEvent(e *Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	remindersJSON, err := json.Marshal(e.Reminders)
	if err != nil {
		return fmt.Errorf("failed to marshal reminders: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE events SET title = ?, description = ?, start_at = ?, end_at = ?, all_day = ?,
			is_recurring = ?, recurrence_pattern = ?, priority = ?, category = ?, status = ?,
			reminders = ?, color = ?, updated_at = ?
		WHERE id = ?
	`, e.Title, e.Description, e.StartAt, e.EndAt, boolToInt(e.AllDay),
		boolToInt(e.IsRecurring), e.RecurrencePattern, e.Priority, e.Category, e.Status,
		string(remindersJSON), e.Color, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	if count, err := res.RowsAffected(); err == nil && count == 0 {
		return fmt.Errorf("event %s: %w", e.ID, ErrNotFound)
	}
	return nil
}

// ListEvents returns non-deleted events ordered by start time.
func (s *SQLiteStore) ListEvents() ([]*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT ` + eventColumns + ` FROM events
		WHERE deleted_at IS NULL
		ORDER BY start_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// SoftDeleteEvent marks an event deleted without removing the row.
func (s *SQLiteStore) SoftDeleteEvent(id, deletedAt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE events SET deleted_at = ? WHERE id = ?`, deletedAt, id)
	return err
}

// HardDeleteEvent physically removes an event row.
func (s *SQLiteStore) HardDeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	return err
}

// CountEvents returns the number of non-deleted events.
func (s *SQLiteStore) CountEvents() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM events WHERE deleted_at IS NULL`).Scan(&count)
	return count, err
}
