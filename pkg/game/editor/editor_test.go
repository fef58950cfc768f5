package editor

import (
	"errors"
	"path/filepath"
	"testing"

	"echoengine/pkg/engine/grid"
	"echoengine/pkg/game/config"
	"echoengine/pkg/game/store"
	"echoengine/pkg/game/world"
)

func TestAddRoomBounds(t *testing.T) {
	s := NewSession(t.TempDir())

	cases := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x at width", GridWidth, 0},
		{"y at height", 0, GridHeight},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := s.AddRoom(tc.x, tc.y, "Out There"); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("got %v, want ErrOutOfBounds", err)
			}
		})
	}

	if err := s.AddRoom(1, 0, "Passage"); err != nil {
		t.Errorf("in-bounds frontier add should succeed: %v", err)
	}
}

func TestPuzzleAndHazardAreMainOnly(t *testing.T) {
	s := NewSession(t.TempDir())
	s.SelectTutorial()

	if err := s.SetHazard(0, 0, "whispers"); !errors.Is(err, ErrMainOnly) {
		t.Errorf("hazard on tutorial: got %v, want ErrMainOnly", err)
	}
	if err := s.SetPuzzle(0, 0, &world.Puzzle{RequiredItem: "Key"}); !errors.Is(err, ErrMainOnly) {
		t.Errorf("puzzle on tutorial: got %v, want ErrMainOnly", err)
	}

	s.SelectMain()
	if err := s.SetHazard(0, 0, "whispers"); err != nil {
		t.Errorf("hazard on main: %v", err)
	}
}

func TestFloorSelection(t *testing.T) {
	s := NewSession(t.TempDir())

	if err := s.SelectFloor(1); !errors.Is(err, ErrMainOnly) {
		t.Errorf("floor selection on tutorial: got %v, want ErrMainOnly", err)
	}

	s.SelectMain()
	if err := s.SelectFloor(1); err != nil {
		t.Fatalf("floor selection on main: %v", err)
	}
	if s.Floor() != 1 {
		t.Errorf("floor: got %d, want 1", s.Floor())
	}
}

func TestHandleAddRemoveRoundTrip(t *testing.T) {
	root := t.TempDir()
	s := NewSession(root)

	for _, line := range []string{
		"add 1 0 Hall",
		"name 1 0 Great Hall",
		"desc 1 0 Dust everywhere.",
		"items 1 0 Candle;Journal Entry 1",
		"main",
		"add 1 0 Landing",
		"save",
	} {
		if quit, messages := s.Handle(line); quit {
			t.Fatalf("command %q quit the session: %v", line, messages)
		} else {
			for _, msg := range messages {
				if len(msg) > 6 && msg[:6] == "error:" {
					t.Fatalf("command %q failed: %s", line, msg)
				}
			}
		}
	}

	loaded, err := store.NewDirStore(filepath.Join(root, config.TutorialRoomsDir), false).Load()
	if err != nil {
		t.Fatalf("loading saved tutorial: %v", err)
	}
	room := loaded.Room(grid.Coord{X: 1})
	if room == nil {
		t.Fatal("saved room missing")
	}
	if room.Name != "Great Hall" {
		t.Errorf("name: got %q", room.Name)
	}
	if len(room.FindableItems) != 2 {
		t.Errorf("items: got %v", room.FindableItems)
	}
}

func TestHandleRejectsDisconnectingRemove(t *testing.T) {
	s := NewSession(t.TempDir())
	if err := s.AddRoom(1, 0, "Middle"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddRoom(2, 0, "End"); err != nil {
		t.Fatal(err)
	}

	_, messages := s.Handle("remove 1 0")
	if len(messages) != 1 || messages[0] != "error: "+world.ErrDisconnects.Error() {
		t.Errorf("unexpected messages %v", messages)
	}
	if s.Room(1, 0) == nil {
		t.Error("rejected removal must not mutate the layout")
	}
}

func TestHandleGameSetup(t *testing.T) {
	root := t.TempDir()
	s := NewSession(root)

	for _, line := range []string{
		"title The Hollow House",
		"health 15",
		"chance 8",
		"winroom 3 2 1",
		"winitems Amulet;Silver Mirror",
		"tutorialitems Candle",
		"setup",
	} {
		if _, messages := s.Handle(line); len(messages) > 0 && messages[0][:6] == "error:" {
			t.Fatalf("command %q failed: %v", line, messages)
		}
	}

	cfg := config.Load(root)
	if cfg.Title != "The Hollow House" {
		t.Errorf("title: got %q", cfg.Title)
	}
	if cfg.BaseHealth != 15 || cfg.DamageChance != 8 {
		t.Errorf("numbers: got %d/%d", cfg.BaseHealth, cfg.DamageChance)
	}
	if cfg.WinRoom != (grid.Coord{X: 3, Y: 2, Floor: 1}) {
		t.Errorf("win room: got %+v", cfg.WinRoom)
	}
	if len(cfg.WinItems) != 2 || len(cfg.TutorialItems) != 1 {
		t.Errorf("item lists: got %v / %v", cfg.WinItems, cfg.TutorialItems)
	}
}
