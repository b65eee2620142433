package folders

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

func TestCreateAndNest(t *testing.T) {
	svc := newTestService(t)

	parent, err := svc.Create(FolderCreate{Name: "Work"})
	require.NoError(t, err)

	child, err := svc.Create(FolderCreate{Name: "Reports", ParentID: &parent.ID, Color: strp("#ff0000")})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)

	folders, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, folders, 2)
}

func TestUpdateMissing(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Update("folder_ghost", FolderUpdate{Name: strp("x")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestDelete(t *testing.T) {
	svc := newTestService(t)

	f, err := svc.Create(FolderCreate{Name: "Temp"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(f.ID))

	got, err := svc.Get(f.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
