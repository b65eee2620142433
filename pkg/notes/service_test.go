package notes

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

	n, err := svc.Create(NoteCreate{})
	require.NoError(t, err)

	assert.Equal(t, "", n.Title)
	assert.Equal(t, "", n.Content)
	assert.NotNil(t, n.Tags)
	assert.Empty(t, n.Tags)
	assert.False(t, n.IsPinned)
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)
}

func TestUpdatePatchSemantics(t *testing.T) {
	svc := newTestService(t)

	n, err := svc.Create(NoteCreate{Title: strp("draft"), Content: strp("body"), Tags: []string{"a"}})
	require.NoError(t, err)

	pinned := true
	got, err := svc.Update(n.ID, NoteUpdate{IsPinned: &pinned})
	require.NoError(t, err)

	// Untouched fields keep their stored values.
	assert.Equal(t, "draft", got.Title)
	assert.Equal(t, "body", got.Content)
	assert.Equal(t, []string{"a"}, got.Tags)
	assert.True(t, got.IsPinned)
	assert.Greater(t, got.UpdatedAt, got.CreatedAt)
}

func TestUpdateEmptyPatch(t *testing.T) {
	svc := newTestService(t)

	n, err := svc.Create(NoteCreate{Title: strp("draft"), Content: strp("body"), Tags: []string{"a"}})
	require.NoError(t, err)

	// An empty patch changes nothing but still advances updated_at.
	got, err := svc.Update(n.ID, NoteUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "draft", got.Title)
	assert.Equal(t, "body", got.Content)
	assert.Equal(t, []string{"a"}, got.Tags)
	assert.False(t, got.IsPinned)
	assert.Greater(t, got.UpdatedAt, n.CreatedAt)
}

func TestUpdateMissing(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update("note_ghost", NoteUpdate{Title: strp("x")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestDeleteSoftAndHard(t *testing.T) {
	svc := newTestService(t)

	n, err := svc.Create(NoteCreate{Title: strp("gone soon")})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(n.ID, false))
	got, err := svc.Get(n.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotNil(t, got.DeletedAt)

	listed, err := svc.List(nil)
	require.NoError(t, err)
	assert.Empty(t, listed)

	require.NoError(t, svc.Delete(n.ID, true))
	got, err = svc.Get(n.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
