package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyena/voyena-core/internal/store"
)

func TestGetSet(t *testing.T) {
	st, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := New(st)

	v, err := svc.Get("sidebar.width")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, svc.Set("sidebar.width", "320"))
	require.NoError(t, svc.Set("sidebar.width", "280"))

	v, err = svc.Get("sidebar.width")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "280", *v)
}
