package ids

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	id := New(Note)
	if !strings.HasPrefix(id, "note_") {
		t.Errorf("expected note_ prefix, got %q", id)
	}
	if len(id) != len("note_")+36 {
		t.Errorf("unexpected id length: %q", id)
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New(Node)
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}
