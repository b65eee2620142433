package store

import (
	"errors"
	"testing"
)

// seedMap inserts a map with its root node and returns both ids.
func seedMap(t *testing.T, s *SQLiteStore, mapID, rootID string) {
	t.Helper()
	m := &BrainMap{
		ID:             mapID,
		Title:          "Untitled Map",
		CenterNodeID:   &rootID,
		CenterNodeText: "Central Idea",
		Zoom:           1,
		CreatedAt:      "2025-01-01T00:00:00.000Z",
		UpdatedAt:      "2025-01-01T00:00:00.000Z",
	}
	root := &BrainMapNode{
		ID:         rootID,
		BrainMapID: mapID,
		Label:      "Central Idea",
		Shape:      "circle",
		Size:       "large",
		Layer:      0,
		CreatedAt:  "2025-01-01T00:00:00.000Z",
		UpdatedAt:  "2025-01-01T00:00:00.000Z",
	}
	if err := s.CreateBrainMapWithRoot(m, root); err != nil {
		t.Fatalf("CreateBrainMapWithRoot failed: %v", err)
	}
}

func seedNode(t *testing.T, s *SQLiteStore, id, mapID string, parentID *string, layer int) {
	t.Helper()
	n := &BrainMapNode{
		ID:           id,
		BrainMapID:   mapID,
		ParentNodeID: parentID,
		Label:        id,
		Shape:        "circle",
		Size:         "medium",
		Layer:        layer,
		CreatedAt:    "2025-01-01T00:00:01.000Z",
		UpdatedAt:    "2025-01-01T00:00:01.000Z",
	}
	if err := s.CreateNode(n); err != nil {
		t.Fatalf("CreateNode %s failed: %v", id, err)
	}
}

func TestCreateBrainMapWithRoot(t *testing.T) {
	s := newTestStore(t)
	seedMap(t, s, "brainmap_1", "node_root")

	m, err := s.GetBrainMap("brainmap_1")
	if err != nil {
		t.Fatalf("GetBrainMap failed: %v", err)
	}
	if m == nil {
		t.Fatal("expected map, got nil")
	}
	if m.CenterNodeID == nil || *m.CenterNodeID != "node_root" {
		t.Errorf("center node id not persisted: %+v", m.CenterNodeID)
	}

	nodes, err := s.ListNodes("brainmap_1")
	if err != nil {
		t.Fatalf("ListNodes failed: %v", err)
	}
	if len(nodes) != 1 || nodes[0].ID != "node_root" || nodes[0].Layer != 0 {
		t.Errorf("unexpected root node: %+v", nodes)
	}
}

func TestHardDeleteBrainMapCascades(t *testing.T) {
	s := newTestStore(t)
	seedMap(t, s, "brainmap_1", "node_root")
	root := "node_root"
	seedNode(t, s, "node_a", "brainmap_1", &root, 1)

	c := &BrainMapConnection{
		ID:           "conn_1",
		BrainMapID:   "brainmap_1",
		SourceNodeID: "node_root",
		TargetNodeID: "node_a",
		Style:        "solid",
		CreatedAt:    "2025-01-01T00:00:02.000Z",
	}
	if err := s.CreateConnection(c); err != nil {
		t.Fatalf("CreateConnection failed: %v", err)
	}

	if err := s.HardDeleteBrainMap("brainmap_1"); err != nil {
		t.Fatalf("HardDeleteBrainMap failed: %v", err)
	}

	nodes, _ := s.ListNodes("brainmap_1")
	if len(nodes) != 0 {
		t.Errorf("expected nodes cascaded away, got %d", len(nodes))
	}
	conns, _ := s.ListConnections("brainmap_1")
	if len(conns) != 0 {
		t.Errorf("expected connections cascaded away, got %d", len(conns))
	}
}

func TestSoftDeleteBrainMapKeepsContent(t *testing.T) {
	s := newTestStore(t)
	seedMap(t, s, "brainmap_1", "node_root")

	if err := s.SoftDeleteBrainMap("brainmap_1", "2025-01-01T00:00:01.000Z"); err != nil {
		t.Fatalf("SoftDeleteBrainMap failed: %v", err)
	}

	maps, _ := s.ListBrainMaps()
	if len(maps) != 0 {
		t.Errorf("expected soft-deleted map hidden from listing, got %d", len(maps))
	}

	m, _ := s.GetBrainMap("brainmap_1")
	if m == nil || m.DeletedAt == nil {
		t.Errorf("expected map reachable by id with deleted_at set: %+v", m)
	}
	nodes, _ := s.ListNodes("brainmap_1")
	if len(nodes) != 1 {
		t.Errorf("expected nodes kept, got %d", len(nodes))
	}
}

func TestDeleteNodeCascadesConnectionsAndClearsChildren(t *testing.T) {
	s := newTestStore(t)
	seedMap(t, s, "brainmap_1", "node_root")
	root := "node_root"
	seedNode(t, s, "node_a", "brainmap_1", &root, 1)
	a := "node_a"
	seedNode(t, s, "node_b", "brainmap_1", &a, 2)

	c := &BrainMapConnection{
		ID:           "conn_1",
		BrainMapID:   "brainmap_1",
		SourceNodeID: "node_a",
		TargetNodeID: "node_b",
		Style:        "solid",
		CreatedAt:    "2025-01-01T00:00:02.000Z",
	}
	if err := s.CreateConnection(c); err != nil {
		t.Fatalf("CreateConnection failed: %v", err)
	}

	if err := s.DeleteNode("node_a"); err != nil {
		t.Fatalf("DeleteNode failed: %v", err)
	}

	// Connections touching the node go with it.
	conns, _ := s.ListConnections("brainmap_1")
	if len(conns) != 0 {
		t.Errorf("expected connection cascaded away, got %d", len(conns))
	}

	// The child survives, parent cleared, stored layer untouched.
	b, err := s.GetNode("node_b")
	if err != nil || b == nil {
		t.Fatalf("GetNode node_b: %v, %v", b, err)
	}
	if b.ParentNodeID != nil {
		t.Errorf("expected parent cleared, got %v", *b.ParentNodeID)
	}
	if b.Layer != 2 {
		t.Errorf("expected layer 2 preserved, got %d", b.Layer)
	}
}

func TestTouchBrainMap(t *testing.T) {
	s := newTestStore(t)
	seedMap(t, s, "brainmap_1", "node_root")

	if err := s.TouchBrainMap("brainmap_1", "2025-01-01T00:00:09.000Z"); err != nil {
		t.Fatalf("TouchBrainMap failed: %v", err)
	}
	m, _ := s.GetBrainMap("brainmap_1")
	if m.UpdatedAt != "2025-01-01T00:00:09.000Z" {
		t.Errorf("expected touched updated_at, got %s", m.UpdatedAt)
	}
}

func TestNodeUpdateLeavesLayerAlone(t *testing.T) {
	s := newTestStore(t)
	seedMap(t, s, "brainmap_1", "node_root")
	root := "node_root"
	seedNode(t, s, "node_a", "brainmap_1", &root, 1)

	n, _ := s.GetNode("node_a")
	n.Label = "renamed"
	n.Layer = 99 // must be ignored by UpdateNode
	n.UpdatedAt = "2025-01-01T00:00:02.000Z"
	if err := s.UpdateNode(n); err != nil {
		t.Fatalf("UpdateNode failed: %v", err)
	}

	got, _ := s.GetNode("node_a")
	if got.Label != "renamed" {
		t.Errorf("label not updated: %+v", got)
	}
	if got.Layer != 1 {
		t.Errorf("expected layer 1 untouched, got %d", got.Layer)
	}
}

func TestUpdateNodePositionMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateNodePosition("node_ghost", 1, 2, "2025-01-01T00:00:00.000Z")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
