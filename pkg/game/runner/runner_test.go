package runner

import (
	"path/filepath"
	"testing"

	"echoengine/pkg/engine/grid"
	"echoengine/pkg/engine/input"
	"echoengine/pkg/game/config"
	"echoengine/pkg/game/state"
	"echoengine/pkg/game/store"
	"echoengine/pkg/game/world"
)

// buildGameDir lays out a minimal playable game: a two-room tutorial,
// a two-room main floor, and the global configuration files.
func buildGameDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	tutorial := world.NewGraph("Cellar", false)
	if _, err := tutorial.AddRoom(grid.Coord{X: 1}, "Passage"); err != nil {
		t.Fatalf("building tutorial graph: %v", err)
	}
	tutorial.Room(grid.Origin).Description = "A damp cellar."
	tutorial.Room(grid.Coord{X: 1}).FindableItems = []string{"Candle"}
	if err := store.NewDirStore(filepath.Join(root, config.TutorialRoomsDir), false).Save(tutorial); err != nil {
		t.Fatalf("saving tutorial rooms: %v", err)
	}

	main := world.NewGraph("Foyer", true)
	if _, err := main.AddRoom(grid.Coord{X: 1}, "Hall"); err != nil {
		t.Fatalf("building main graph: %v", err)
	}
	main.Room(grid.Origin).Description = "A grand foyer."
	if err := store.NewDirStore(filepath.Join(root, config.MainRoomsDir), true).Save(main); err != nil {
		t.Fatalf("saving main rooms: %v", err)
	}

	cfg := &config.Config{
		Title:         "Echo Test",
		BaseHealth:    20,
		DamageChance:  1000000,
		WinRoom:       grid.Coord{X: 1},
		WinItems:      []string{"Amulet"},
		TutorialItems: []string{"Candle"},
	}
	if err := cfg.Save(root); err != nil {
		t.Fatalf("saving configuration: %v", err)
	}

	return root
}

func newTestSession(t *testing.T, root string, commands ...string) *Session {
	t.Helper()
	s, err := NewSession(root, &input.ScriptReader{Commands: commands})
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	return s
}

func TestExitLeavesMenu(t *testing.T) {
	root := buildGameDir(t)
	s := newTestSession(t, root, "3")
	s.Run()
}

func TestResetWritesFreshSave(t *testing.T) {
	root := buildGameDir(t)
	saves := state.NewStore(root)
	if err := saves.WriteLocation(state.Location{World: state.WorldMain, Coord: grid.Coord{X: 1}}); err != nil {
		t.Fatalf("seeding save: %v", err)
	}

	s := newTestSession(t, root, "5", "", "3")
	s.Run()

	if !saves.ReadLocation().Fresh {
		t.Error("reset should write the fresh location sentinel")
	}
	if got := saves.ReadHealth(0); got != 20 {
		t.Errorf("reset health: got %d, want 20", got)
	}
}

func TestPlayFromFreshSaveEntersTutorial(t *testing.T) {
	root := buildGameDir(t)

	// Prolog press-enter, one rejected move, back out, exit.
	s := newTestSession(t, root, "1", "", "west", "menu", "3")
	s.Run()

	loc := state.NewStore(root).ReadLocation()
	if loc.Fresh {
		t.Fatal("play should persist the tutorial start")
	}
	if loc.World != state.WorldTutorial || loc.Coord != grid.Origin {
		t.Errorf("unexpected location %+v", loc)
	}
}

func TestPlayResumesPersistedLocation(t *testing.T) {
	root := buildGameDir(t)
	saves := state.NewStore(root)
	seeded := state.Location{World: state.WorldMain, Coord: grid.Coord{X: 1}}
	if err := saves.WriteLocation(seeded); err != nil {
		t.Fatalf("seeding save: %v", err)
	}

	s := newTestSession(t, root, "1", "menu", "3")
	s.Run()

	if got := saves.ReadLocation(); got != seeded {
		t.Errorf("resume changed the location: got %+v, want %+v", got, seeded)
	}
}

func TestTutorialCompletionMovesToMainGame(t *testing.T) {
	root := buildGameDir(t)

	// Move east to the item room, search picks up the tutorial item,
	// completion fires the same turn, cutscene press-enter, then out.
	s := newTestSession(t, root, "1", "", "east", "search", "", "menu", "3")
	s.Run()

	loc := state.NewStore(root).ReadLocation()
	if loc.World != state.WorldMain {
		t.Fatalf("expected main game location, got %+v", loc)
	}
	if loc.Coord != grid.Origin {
		t.Errorf("main game should start at the origin, got %v", loc.Coord)
	}
}
