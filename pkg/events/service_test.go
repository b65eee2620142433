package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyena/voyena-core/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := New(st)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	step := 0
	svc.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}
	return svc
}

func strp(s string) *string { return &s }

func TestCreateDefaults(t *testing.T) {
	svc := newTestService(t)

	e, err := svc.Create(EventCreate{Title: "Dentist", StartAt: "2025-07-01T10:00:00.000Z"})
	require.NoError(t, err)

	assert.Equal(t, "medium", e.Priority)
	assert.Equal(t, "personal", e.Category)
	assert.Equal(t, "confirmed", e.Status)
	assert.NotNil(t, e.Reminders)
	assert.Empty(t, e.Reminders)
	assert.False(t, e.AllDay)
	assert.False(t, e.IsRecurring)
}

func TestCreateWithReminders(t *testing.T) {
	svc := newTestService(t)

	e, err := svc.Create(EventCreate{
		Title:   "Flight",
		StartAt: "2025-07-01T06:00:00.000Z",
		Reminders: []store.EventReminder{
			{ID: "rem_1", MinutesBefore: 120, Type: "notification"},
		},
		Priority: strp("high"),
	})
	require.NoError(t, err)
	assert.Equal(t, "high", e.Priority)

	got, err := svc.Get(e.ID)
	require.NoError(t, err)
	require.Len(t, got.Reminders, 1)
	assert.Equal(t, 120, got.Reminders[0].MinutesBefore)
}

func TestUpdatePatchSemantics(t *testing.T) {
	svc := newTestService(t)

	e, err := svc.Create(EventCreate{Title: "Review", StartAt: "2025-07-01T15:00:00.000Z"})
	require.NoError(t, err)

	got, err := svc.Update(e.ID, EventUpdate{Status: strp("cancelled")})
	require.NoError(t, err)

	assert.Equal(t, "Review", got.Title)
	assert.Equal(t, "cancelled", got.Status)
	assert.Greater(t, got.UpdatedAt, got.CreatedAt)
}

func TestUpdateMissing(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update("event_ghost", EventUpdate{Title: strp("x")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestDeleteSoftAndHard(t *testing.T) {
	svc := newTestService(t)

	e, err := svc.Create(EventCreate{Title: "Old", StartAt: "2025-07-01T15:00:00.000Z"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(e.ID, false))
	listed, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, listed)

	require.NoError(t, svc.Delete(e.ID, true))
	got, err := svc.Get(e.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
