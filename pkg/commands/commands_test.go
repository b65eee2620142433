package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voyena/voyena-core/internal/store"
	"github.com/voyena/voyena-core/pkg/brainmap"
	"github.com/voyena/voyena-core/pkg/events"
	"github.com/voyena/voyena-core/pkg/folders"
)

func newTestSurface(t *testing.T) *Surface {
	t.Helper()
	st, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return New(st, zap.NewNop())
}

func TestCreateNodeValidation(t *testing.T) {
	s := newTestSurface(t)

	_, err := s.CreateNode(brainmap.NodeCreate{Label: "no map"})
	assert.Error(t, err)

	_, err = s.CreateNode(brainmap.NodeCreate{BrainMapID: "brainmap_x"})
	assert.Error(t, err)
}

func TestCreateConnectionValidation(t *testing.T) {
	s := newTestSurface(t)

	_, err := s.CreateConnection(brainmap.ConnectionCreate{BrainMapID: "brainmap_x", SourceNodeID: "node_a"})
	assert.Error(t, err)
}

func TestCreateFolderValidation(t *testing.T) {
	s := newTestSurface(t)

	_, err := s.CreateFolder(folders.FolderCreate{})
	assert.Error(t, err)
}

func TestCreateEventValidation(t *testing.T) {
	s := newTestSurface(t)

	_, err := s.CreateEvent(events.EventCreate{Title: "no start"})
	assert.Error(t, err)

	_, err = s.CreateEvent(events.EventCreate{StartAt: "2025-07-01T10:00:00.000Z"})
	assert.Error(t, err)
}

func TestEmptyIDRejected(t *testing.T) {
	s := newTestSurface(t)

	_, err := s.GetBrainMap("")
	assert.Error(t, err)
	_, err = s.GetNote("")
	assert.Error(t, err)
	assert.Error(t, s.DeleteConnection(""))
	assert.Error(t, s.SetSetting("", "x"))
}

func TestMoveNotesValidation(t *testing.T) {
	s := newTestSurface(t)

	assert.Error(t, s.MoveNotesToFolder(nil, nil))
	assert.Error(t, s.MoveNotesToFolder([]string{"note_1", ""}, nil))
}

func TestBrainMapRoundTrip(t *testing.T) {
	s := newTestSurface(t)

	view, err := s.CreateBrainMap(brainmap.MapCreate{})
	require.NoError(t, err)
	require.Len(t, view.Nodes, 1)

	node, err := s.CreateNode(brainmap.NodeCreate{
		BrainMapID:   view.Map.ID,
		Label:        "idea",
		ParentNodeID: &view.Nodes[0].ID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, node.Layer)

	got, err := s.GetBrainMap(view.Map.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Nodes, 2)

	maps, err := s.ListBrainMaps()
	require.NoError(t, err)
	assert.Len(t, maps, 1)
}

func TestStatsAndBackup(t *testing.T) {
	s := newTestSurface(t)

	_, err := s.CreateBrainMap(brainmap.MapCreate{})
	require.NoError(t, err)

	stats, err := s.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.BrainMaps)
	assert.Equal(t, 1, stats.Nodes)
	assert.Equal(t, 0, stats.Notes)

	data, err := s.ExportData()
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	assert.Error(t, s.ImportData(nil))
	require.NoError(t, s.ImportData(data))

	stats, err = s.GetStats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.BrainMaps)
}
