// Package state holds the player's runtime state and its persistence
// as flat files under the Save directory. One writer at a time: the
// game loop owns the Player and flushes through the Store after each
// mutating turn.
package state

import (
	"strings"

	"github.com/zyedidia/generic/mapset"

	"echoengine/pkg/engine/grid"
)

// World discriminates which room layout the player is in.
type World int

const (
	WorldTutorial World = iota
	WorldMain
)

// journalPattern marks collected items that count as journal entries.
const journalPattern = "Journal Entry"

// Location is the player's persisted position: which world, where in
// it, and whether the prolog has been seen at all (Fresh).
type Location struct {
	Fresh bool
	World World
	Coord grid.Coord
}

// FreshLocation is the pre-tutorial sentinel written on reset.
func FreshLocation() Location {
	return Location{Fresh: true}
}

// Player is the mutable runtime state. Inventory keeps collection
// order; History is the set of everything ever collected and is never
// shrunk, so a consumed item can not be found again.
type Player struct {
	Location       Location
	Inventory      []string
	History        mapset.Set[string]
	Health         int
	JournalEntries int
}

// NewPlayer creates a fresh player with the given starting health.
func NewPlayer(health int) *Player {
	return &Player{
		Location: FreshLocation(),
		History:  mapset.New[string](),
		Health:   health,
	}
}

// HasItem reports whether the item is currently held.
func (p *Player) HasItem(name string) bool {
	for _, item := range p.Inventory {
		if item == name {
			return true
		}
	}
	return false
}

// HasAll reports whether every named item is currently held.
func (p *Player) HasAll(names []string) bool {
	for _, name := range names {
		if !p.HasItem(name) {
			return false
		}
	}
	return true
}

// HistoryHasAll reports whether every named item has ever been
// collected.
func (p *Player) HistoryHasAll(names []string) bool {
	for _, name := range names {
		if !p.History.Has(name) {
			return false
		}
	}
	return true
}

// Collect adds an item to the inventory and the history, bumping the
// journal counter when the name matches the journal pattern. Items
// already in the history are not collected twice.
func (p *Player) Collect(name string) bool {
	if p.History.Has(name) {
		return false
	}
	p.Inventory = append(p.Inventory, name)
	p.History.Put(name)
	if strings.Contains(name, journalPattern) {
		p.JournalEntries++
	}
	return true
}

// Grant adds an item to the inventory even when the history already
// holds it. Puzzle rewards go through here, so consuming a granted
// item never makes the puzzle stop paying out.
func (p *Player) Grant(name string) {
	p.Inventory = append(p.Inventory, name)
	if p.History.Has(name) {
		return
	}
	p.History.Put(name)
	if strings.Contains(name, journalPattern) {
		p.JournalEntries++
	}
}

// Consume removes one held item from the inventory. The history keeps
// it, so consumption never makes an item findable again.
func (p *Player) Consume(name string) bool {
	for i, item := range p.Inventory {
		if item == name {
			p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// Damage deducts one health point, clamped at zero.
func (p *Player) Damage() {
	if p.Health > 0 {
		p.Health--
	}
}

// Dead reports whether health has reached the floor.
func (p *Player) Dead() bool {
	return p.Health <= 0
}
