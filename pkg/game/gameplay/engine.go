// Package gameplay implements the turn engine: one textual command in,
// zero or more messages and at most one phase transition out. The
// engine persists mutated player state before returning, so a restart
// resumes at the last completed turn.
package gameplay

import (
	"fmt"
	"math/rand"

	"github.com/leonelquinteros/gotext"

	"echoengine/pkg/engine/grid"
	"echoengine/pkg/game/config"
	"echoengine/pkg/game/state"
	"echoengine/pkg/game/world"
)

// Outcome is the phase transition a turn produced.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeMenu
	OutcomeTutorialDone
	OutcomeWin
	OutcomeGameOver
)

// Engine drives one player through the tutorial and main graphs. All
// randomness goes through Rand so turns are reproducible under test.
type Engine struct {
	Tutorial *world.Graph
	Main     *world.Graph
	Config   *config.Config
	Player   *state.Player
	Saves    *state.Store
	Rand     *rand.Rand
}

// New assembles an engine over loaded graphs and a restored player.
func New(tutorial, main *world.Graph, cfg *config.Config, player *state.Player, saves *state.Store, rng *rand.Rand) *Engine {
	return &Engine{
		Tutorial: tutorial,
		Main:     main,
		Config:   cfg,
		Player:   player,
		Saves:    saves,
		Rand:     rng,
	}
}

// Graph returns the graph the player is currently in.
func (e *Engine) Graph() *world.Graph {
	if e.Player.Location.World == state.WorldTutorial {
		return e.Tutorial
	}
	return e.Main
}

// CurrentRoom returns the room at the player's position, or nil when
// the position does not resolve against the loaded graph.
func (e *Engine) CurrentRoom() *world.Room {
	return e.Graph().Room(e.Player.Location.Coord)
}

// Describe renders the current room's name and description, degrading
// to a placeholder when the room is missing or has no description.
func (e *Engine) Describe() []string {
	room := e.CurrentRoom()
	if room == nil || room.Description == "" {
		return []string{gotext.Get("Room description not found.")}
	}
	return []string{fmt.Sprintf("ROOM{%s}", room.Name), room.Description}
}

// HandleCommand runs one full turn: the command itself, then the
// haunting roll (main game only), then the tutorial completion check.
func (e *Engine) HandleCommand(command string) (Outcome, []string) {
	outcome, messages := e.dispatch(command)
	if outcome != OutcomeContinue {
		return outcome, messages
	}

	if e.Player.Location.World == state.WorldMain {
		hauntOutcome, hauntMessages := e.rollHaunting()
		messages = append(messages, hauntMessages...)
		if hauntOutcome != OutcomeContinue {
			return hauntOutcome, messages
		}
	}

	if e.Player.Location.World == state.WorldTutorial && e.tutorialComplete() {
		if err := e.enterMainGame(); err != nil {
			messages = append(messages, gotext.Get("THE GAME COULD NOT BE SAVED"))
			return OutcomeContinue, messages
		}
		return OutcomeTutorialDone, messages
	}

	return OutcomeContinue, messages
}

func (e *Engine) dispatch(command string) (Outcome, []string) {
	if direction, ok := grid.ParseDirection(command); ok {
		return e.move(direction)
	}

	switch command {
	case "inventory":
		return OutcomeContinue, e.listInventory()
	case "search":
		return OutcomeContinue, e.search()
	case "use":
		if e.Player.Location.World == state.WorldTutorial {
			return OutcomeContinue, []string{gotext.Get("You can't do that here")}
		}
		return e.use()
	case "menu":
		return OutcomeMenu, []string{gotext.Get("Returning to main menu...")}
	}

	return OutcomeContinue, []string{gotext.Get("THAT IS NOT A VALID INPUT")}
}

func (e *Engine) move(direction grid.Direction) (Outcome, []string) {
	if direction.IsVertical() && e.Player.Location.World == state.WorldTutorial {
		return OutcomeContinue, []string{gotext.Get("You can't do that here")}
	}

	exits := e.Graph().Exits(e.Player.Location.Coord)
	allowed := false
	for _, exit := range exits {
		if exit == direction {
			allowed = true
			break
		}
	}
	if !allowed {
		return OutcomeContinue, []string{gotext.Get("You can't go that way.")}
	}

	e.Player.Location.Coord = e.Player.Location.Coord.Step(direction)
	if err := e.Saves.WriteLocation(e.Player.Location); err != nil {
		return OutcomeContinue, []string{gotext.Get("THE GAME COULD NOT BE SAVED")}
	}
	return OutcomeContinue, e.Describe()
}

func (e *Engine) listInventory() []string {
	if len(e.Player.Inventory) == 0 {
		return []string{gotext.Get("Your inventory is empty")}
	}
	messages := []string{gotext.Get("Your inventory:")}
	for _, item := range e.Player.Inventory {
		messages = append(messages, fmt.Sprintf("ITEM{%s}", item))
	}
	return messages
}

func (e *Engine) search() []string {
	room := e.CurrentRoom()
	var found []string
	if room != nil {
		for _, item := range room.FindableItems {
			if e.Player.Collect(item) {
				found = append(found, item)
			}
		}
	}

	if len(found) == 0 {
		return []string{gotext.Get("You found nothing")}
	}

	if err := e.persistItems(); err != nil {
		return []string{gotext.Get("THE GAME COULD NOT BE SAVED")}
	}

	messages := []string{gotext.Get("You found:")}
	for _, item := range found {
		messages = append(messages, fmt.Sprintf("ITEM{%s}", item))
	}
	return messages
}

func (e *Engine) use() (Outcome, []string) {
	if e.atWinRoom() {
		if len(e.Config.WinItems) > 0 && e.Player.HasAll(e.Config.WinItems) {
			return OutcomeWin, nil
		}
		return OutcomeContinue, []string{gotext.Get("You are missing one or more items")}
	}

	room := e.CurrentRoom()
	if room == nil || room.Puzzle == nil {
		return OutcomeContinue, []string{gotext.Get("You have no usable items for this room")}
	}

	puzzle := room.Puzzle
	if !e.Player.HasItem(puzzle.RequiredItem) {
		return OutcomeContinue, []string{gotext.Get("You don't have all usable items for this room")}
	}

	e.Player.Consume(puzzle.RequiredItem)
	if puzzle.GrantedItem != "" {
		e.Player.Grant(puzzle.GrantedItem)
	}
	if err := e.persistItems(); err != nil {
		return OutcomeContinue, []string{gotext.Get("THE GAME COULD NOT BE SAVED")}
	}

	messages := []string{puzzle.UseText}
	if puzzle.GrantedItem != "" {
		messages = append(messages, fmt.Sprintf("ITEM{%s}", puzzle.GrantedItem))
	}
	return OutcomeContinue, messages
}

func (e *Engine) atWinRoom() bool {
	return e.Player.Location.World == state.WorldMain &&
		e.Player.Location.Coord == e.Config.WinRoom
}

// rollHaunting rolls 1..DamageChance; a 1 costs one health point and
// shows the room's hazard text.
func (e *Engine) rollHaunting() (Outcome, []string) {
	if e.Config.DamageChance < 1 {
		return OutcomeContinue, nil
	}
	if e.Rand.Intn(e.Config.DamageChance)+1 != 1 {
		return OutcomeContinue, nil
	}

	e.Player.Damage()
	messages := []string{gotext.Get("Your health has decreased")}
	if room := e.CurrentRoom(); room != nil && room.HazardText != "" {
		messages = append(messages, room.HazardText)
	}
	if err := e.Saves.WriteHealth(e.Player.Health); err != nil {
		messages = append(messages, gotext.Get("THE GAME COULD NOT BE SAVED"))
	}

	if e.Player.Dead() {
		return OutcomeGameOver, messages
	}
	return OutcomeContinue, messages
}

// tutorialComplete holds once every configured tutorial item has been
// collected. A game that configures no tutorial items completes on the
// first turn.
func (e *Engine) tutorialComplete() bool {
	return e.Player.HistoryHasAll(e.Config.TutorialItems)
}

func (e *Engine) enterMainGame() error {
	e.Player.Location = state.Location{World: state.WorldMain, Coord: grid.Origin}
	return e.Saves.WriteLocation(e.Player.Location)
}

// StartTutorial moves a fresh player into the tutorial at the origin.
func (e *Engine) StartTutorial() error {
	e.Player.Location = state.Location{World: state.WorldTutorial, Coord: grid.Origin}
	return e.Saves.WriteLocation(e.Player.Location)
}

func (e *Engine) persistItems() error {
	if err := e.Saves.WriteInventory(e.Player.Inventory); err != nil {
		return err
	}
	if err := e.Saves.WriteHistory(e.Player.History); err != nil {
		return err
	}
	return e.Saves.WriteJournal(e.Player.JournalEntries)
}
