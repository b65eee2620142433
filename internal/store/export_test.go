package store

import "testing"

func TestExportImport(t *testing.T) {
	s := newTestStore(t)

	f := &Folder{ID: "folder_1", Name: "Work", CreatedAt: "2025-01-01T00:00:00.000Z", UpdatedAt: "2025-01-01T00:00:00.000Z"}
	if err := s.CreateFolder(f); err != nil {
		t.Fatalf("CreateFolder failed: %v", err)
	}
	fid := "folder_1"
	n := &Note{ID: "note_1", Title: "Plan", FolderID: &fid, Tags: []string{"q1"}, CreatedAt: "2025-01-01T00:00:00.000Z", UpdatedAt: "2025-01-01T00:00:00.000Z"}
	if err := s.CreateNote(n); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	seedMap(t, s, "brainmap_1", "node_root")
	root := "node_root"
	seedNode(t, s, "node_a", "brainmap_1", &root, 1)
	c := &BrainMapConnection{
		ID: "conn_1", BrainMapID: "brainmap_1",
		SourceNodeID: "node_root", TargetNodeID: "node_a",
		Style: "solid", CreatedAt: "2025-01-01T00:00:02.000Z",
	}
	if err := s.CreateConnection(c); err != nil {
		t.Fatalf("CreateConnection failed: %v", err)
	}
	if err := s.SetSetting("theme", "dark"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	// Soft-deleted rows travel with the backup too.
	if err := s.SoftDeleteNote("note_1", "2025-01-01T00:00:03.000Z"); err != nil {
		t.Fatalf("SoftDeleteNote failed: %v", err)
	}

	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("exported data is empty")
	}

	s2 := newTestStore(t)
	if err := s2.Import(data); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	note, err := s2.GetNote("note_1")
	if err != nil || note == nil {
		t.Fatalf("restored note missing: %v, %v", note, err)
	}
	if note.DeletedAt == nil {
		t.Error("expected soft-delete marker to survive the round trip")
	}
	if len(note.Tags) != 1 || note.Tags[0] != "q1" {
		t.Errorf("tags did not survive the round trip: %v", note.Tags)
	}

	m, _ := s2.GetBrainMap("brainmap_1")
	if m == nil || m.CenterNodeID == nil || *m.CenterNodeID != "node_root" {
		t.Errorf("restored map wrong: %+v", m)
	}
	nodes, _ := s2.ListNodes("brainmap_1")
	if len(nodes) != 2 {
		t.Errorf("expected 2 restored nodes, got %d", len(nodes))
	}
	conns, _ := s2.ListConnections("brainmap_1")
	if len(conns) != 1 {
		t.Errorf("expected 1 restored connection, got %d", len(conns))
	}

	v, _ := s2.GetSetting("theme")
	if v == nil || *v != "dark" {
		t.Errorf("expected restored setting 'dark', got %v", v)
	}
}

func TestImportReplacesExistingData(t *testing.T) {
	s := newTestStore(t)
	n := &Note{ID: "note_keep", Tags: []string{}, CreatedAt: "2025-01-01T00:00:00.000Z", UpdatedAt: "2025-01-01T00:00:00.000Z"}
	if err := s.CreateNote(n); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	backup, err := s.Export()
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	s2 := newTestStore(t)
	other := &Note{ID: "note_old", Tags: []string{}, CreatedAt: "2025-01-01T00:00:00.000Z", UpdatedAt: "2025-01-01T00:00:00.000Z"}
	if err := s2.CreateNote(other); err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}

	if err := s2.Import(backup); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	old, _ := s2.GetNote("note_old")
	if old != nil {
		t.Errorf("expected pre-import data cleared, got %+v", old)
	}
	kept, _ := s2.GetNote("note_keep")
	if kept == nil {
		t.Error("expected imported note present")
	}
}
