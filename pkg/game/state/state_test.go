package state

import (
	"testing"

	"echoengine/pkg/engine/grid"
)

func TestCollectAddsToInventoryAndHistory(t *testing.T) {
	p := NewPlayer(20)

	if !p.Collect("Rusty Key") {
		t.Fatal("first collection should succeed")
	}
	if !p.HasItem("Rusty Key") {
		t.Error("inventory should hold the collected item")
	}
	if !p.History.Has("Rusty Key") {
		t.Error("history should record the collected item")
	}
}

func TestCollectIsIdempotent(t *testing.T) {
	p := NewPlayer(20)
	p.Collect("Candle")

	if p.Collect("Candle") {
		t.Error("second collection of the same item should be refused")
	}
	if len(p.Inventory) != 1 {
		t.Errorf("expected 1 item in inventory, got %d", len(p.Inventory))
	}
}

func TestConsumeKeepsHistory(t *testing.T) {
	p := NewPlayer(20)
	p.Collect("Rusty Key")

	if !p.Consume("Rusty Key") {
		t.Fatal("consuming a held item should succeed")
	}
	if p.HasItem("Rusty Key") {
		t.Error("consumed item should leave the inventory")
	}
	if !p.History.Has("Rusty Key") {
		t.Error("consumed item should stay in the history")
	}
	if p.Collect("Rusty Key") {
		t.Error("a consumed item must not be collectable again")
	}
}

func TestGrantIgnoresHistory(t *testing.T) {
	p := NewPlayer(20)
	p.Collect("Amulet")
	p.Consume("Amulet")

	p.Grant("Amulet")
	if !p.HasItem("Amulet") {
		t.Error("granting should restock a previously consumed item")
	}
	if p.Collect("Amulet") {
		t.Error("granting must not make the item findable again")
	}
}

func TestGrantRecordsNewItems(t *testing.T) {
	p := NewPlayer(20)
	p.Grant("Journal Entry 1")

	if !p.History.Has("Journal Entry 1") {
		t.Error("history should record the granted item")
	}
	if p.JournalEntries != 1 {
		t.Errorf("expected 1 journal entry, got %d", p.JournalEntries)
	}
}

func TestConsumeMissingItem(t *testing.T) {
	p := NewPlayer(20)
	if p.Consume("Ghost") {
		t.Error("consuming an item never held should fail")
	}
}

func TestJournalCounter(t *testing.T) {
	p := NewPlayer(20)
	p.Collect("Journal Entry 1")
	p.Collect("Candle")
	p.Collect("Journal Entry 2")

	if p.JournalEntries != 2 {
		t.Errorf("expected 2 journal entries, got %d", p.JournalEntries)
	}
}

func TestDamageClampsAtZero(t *testing.T) {
	p := NewPlayer(1)
	p.Damage()
	p.Damage()

	if p.Health != 0 {
		t.Errorf("expected health 0, got %d", p.Health)
	}
	if !p.Dead() {
		t.Error("player at zero health should be dead")
	}
}

func TestLocationRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		loc  Location
	}{
		{"fresh", FreshLocation()},
		{"tutorial", Location{World: WorldTutorial, Coord: grid.Coord{X: 2, Y: 1}}},
		{"main", Location{World: WorldMain, Coord: grid.Coord{X: 5, Y: 3, Floor: 2}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeLocation(EncodeLocation(tc.loc))
			if got != tc.loc {
				t.Errorf("round trip changed location: got %+v, want %+v", got, tc.loc)
			}
		})
	}
}

func TestDecodeLocationGarbage(t *testing.T) {
	for _, record := range []string{"", "banana", "0 1", "1 1 2", "3 1 2 3"} {
		loc := DecodeLocation(record)
		if !loc.Fresh {
			t.Errorf("record %q should decode as fresh", record)
		}
	}
}
