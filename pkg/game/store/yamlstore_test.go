package store

import (
	"path/filepath"
	"testing"

	"echoengine/pkg/engine/grid"
)

func TestYAMLStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mansion.yaml")
	s := NewYAMLStore(path, true)
	g := buildMainGraph(t)

	if err := s.Save(g); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Len() != g.Len() {
		t.Fatalf("loaded %d rooms, want %d", loaded.Len(), g.Len())
	}
	for _, c := range g.Coords() {
		want, got := g.Room(c), loaded.Room(c)
		if got == nil {
			t.Fatalf("loaded graph is missing room at %v", c)
		}
		if got.Name != want.Name || got.Description != want.Description {
			t.Errorf("room %v = %q/%q, want %q/%q", c, got.Name, got.Description, want.Name, want.Description)
		}
		if want.Puzzle != nil && (got.Puzzle == nil || *got.Puzzle != *want.Puzzle) {
			t.Errorf("room %v puzzle = %+v, want %+v", c, got.Puzzle, want.Puzzle)
		}
	}

	hall := grid.Coord{X: 1, Y: 0, Floor: 0}
	if got := loaded.Room(hall).HazardText; got != "A cold hand brushes your neck." {
		t.Errorf("hazard text = %q, want original", got)
	}
}

func TestYAMLStoreLoadMissingFile(t *testing.T) {
	s := NewYAMLStore(filepath.Join(t.TempDir(), "absent.yaml"), false)
	if _, err := s.Load(); err == nil {
		t.Error("Load of missing file succeeded, want error")
	}
}
