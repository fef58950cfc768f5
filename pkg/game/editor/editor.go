// Package editor implements the authoring session: a connected room
// layout per world, mutated through bounded add/remove operations and
// flushed through the same stores the runtime reads.
package editor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"echoengine/pkg/engine/grid"
	"echoengine/pkg/game/config"
	"echoengine/pkg/game/renderer"
	"echoengine/pkg/game/store"
	"echoengine/pkg/game/world"
)

// Per-floor grid bounds.
const (
	GridWidth  = 33
	GridHeight = 20
)

var (
	// ErrOutOfBounds rejects placements outside the editable grid.
	ErrOutOfBounds = errors.New("coordinate outside the editable grid")
	// ErrMainOnly rejects main-game-only edits on the tutorial layout.
	ErrMainOnly = errors.New("only the main game layout supports this")
)

// listSeparator splits multi-value command arguments.
const listSeparator = ";"

// Session is one editing session over a game directory. Tutorial and
// main layouts are edited independently; Current selects which one
// commands apply to.
type Session struct {
	Root     string
	Tutorial *world.Graph
	Main     *world.Graph
	Config   *config.Config

	current *world.Graph
	floor   int
}

// NewSession starts an editing session with empty graphs and the
// directory's configuration.
func NewSession(root string) *Session {
	s := &Session{
		Root:     root,
		Tutorial: world.NewGraph("", false),
		Main:     world.NewGraph("", true),
		Config:   config.Load(root),
	}
	s.current = s.Tutorial
	return s
}

// SelectTutorial switches editing to the tutorial layout.
func (s *Session) SelectTutorial() {
	s.current = s.Tutorial
	s.floor = 0
}

// SelectMain switches editing to the main game layout.
func (s *Session) SelectMain() {
	s.current = s.Main
	s.floor = 0
}

// SelectFloor switches the working floor of the main layout.
func (s *Session) SelectFloor(floor int) error {
	if s.current != s.Main {
		return ErrMainOnly
	}
	s.floor = floor
	return nil
}

// Current returns the graph commands currently apply to.
func (s *Session) Current() *world.Graph {
	return s.current
}

// Floor returns the working floor.
func (s *Session) Floor() int {
	return s.floor
}

func (s *Session) at(x, y int) grid.Coord {
	return grid.Coord{X: x, Y: y, Floor: s.floor}
}

func inBounds(c grid.Coord) bool {
	return c.X >= 0 && c.X < GridWidth && c.Y >= 0 && c.Y < GridHeight
}

// AddRoom places a room at a frontier cell on the working floor.
func (s *Session) AddRoom(x, y int, name string) error {
	c := s.at(x, y)
	if !inBounds(c) {
		return ErrOutOfBounds
	}
	_, err := s.current.AddRoom(c, name)
	return err
}

// RemoveRoom removes a room, refusing removals that would disconnect
// the layout.
func (s *Session) RemoveRoom(x, y int) error {
	return s.current.RemoveRoom(s.at(x, y))
}

// Room returns the room at the working floor's (x, y), or nil.
func (s *Session) Room(x, y int) *world.Room {
	return s.current.Room(s.at(x, y))
}

func (s *Session) editRoom(x, y int, edit func(*world.Room)) error {
	room := s.Room(x, y)
	if room == nil {
		return world.ErrNoRoom
	}
	edit(room)
	return nil
}

// SetName renames a room.
func (s *Session) SetName(x, y int, name string) error {
	return s.editRoom(x, y, func(r *world.Room) { r.Name = name })
}

// SetDescription replaces a room's description.
func (s *Session) SetDescription(x, y int, description string) error {
	return s.editRoom(x, y, func(r *world.Room) { r.Description = description })
}

// SetItems replaces a room's findable items.
func (s *Session) SetItems(x, y int, items []string) error {
	return s.editRoom(x, y, func(r *world.Room) { r.FindableItems = items })
}

// SetPuzzle replaces a room's usable-item puzzle. Main game only.
func (s *Session) SetPuzzle(x, y int, puzzle *world.Puzzle) error {
	if !s.current.MultiFloor() {
		return ErrMainOnly
	}
	return s.editRoom(x, y, func(r *world.Room) { r.Puzzle = puzzle })
}

// SetHazard replaces a room's hazard text. Main game only.
func (s *Session) SetHazard(x, y int, text string) error {
	if !s.current.MultiFloor() {
		return ErrMainOnly
	}
	return s.editRoom(x, y, func(r *world.Room) { r.HazardText = text })
}

// Map renders the working floor with frontier cells marked.
func (s *Session) Map() string {
	return renderer.RenderFloor(s.current, s.floor, grid.Coord{}, false, true)
}

func (s *Session) tutorialStore() store.GraphRepository {
	return store.NewDirStore(filepath.Join(s.Root, config.TutorialRoomsDir), false)
}

func (s *Session) mainStore() store.GraphRepository {
	return store.NewDirStore(filepath.Join(s.Root, config.MainRoomsDir), true)
}

// Save flushes both layouts to the game directory.
func (s *Session) Save() error {
	if err := s.tutorialStore().Save(s.Tutorial); err != nil {
		return err
	}
	return s.mainStore().Save(s.Main)
}

// Load replaces both layouts from the game directory.
func (s *Session) Load() error {
	tutorial, err := s.tutorialStore().Load()
	if err != nil {
		return err
	}
	main, err := s.mainStore().Load()
	if err != nil {
		return err
	}
	s.Tutorial = tutorial
	s.Main = main
	s.SelectTutorial()
	return nil
}

// Export writes the working layout to a single YAML file, a portable
// alternative to the directory-per-room tree.
func (s *Session) Export(path string) error {
	return store.NewYAMLStore(path, s.current.MultiFloor()).Save(s.current)
}

// Import replaces the working layout from a YAML export.
func (s *Session) Import(path string) error {
	g, err := store.NewYAMLStore(path, s.current.MultiFloor()).Load()
	if err != nil {
		return err
	}
	if s.current == s.Tutorial {
		s.Tutorial = g
	} else {
		s.Main = g
	}
	s.current = g
	return nil
}

// SaveConfig validates and writes the global configuration files.
func (s *Session) SaveConfig() error {
	return s.Config.Save(s.Root)
}

// Handle executes one editor command line and reports whether the
// session should end.
func (s *Session) Handle(line string) (quit bool, messages []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	fail := func(err error) (bool, []string) {
		return false, []string{fmt.Sprintf("error: %v", err)}
	}

	switch fields[0] {
	case "quit", "exit":
		return true, nil
	case "tutorial":
		s.SelectTutorial()
		return false, []string{"editing the tutorial layout"}
	case "main":
		s.SelectMain()
		return false, []string{"editing the main game layout"}
	case "floor":
		n, err := argInt(fields, 1)
		if err != nil {
			return fail(err)
		}
		if err := s.SelectFloor(n); err != nil {
			return fail(err)
		}
		return false, []string{fmt.Sprintf("editing floor %d", n)}
	case "add":
		x, y, err := argCoord(fields)
		if err != nil {
			return fail(err)
		}
		if err := s.AddRoom(x, y, rest(fields, 3)); err != nil {
			return fail(err)
		}
		return false, []string{fmt.Sprintf("room added at %d,%d", x, y)}
	case "remove":
		x, y, err := argCoord(fields)
		if err != nil {
			return fail(err)
		}
		if err := s.RemoveRoom(x, y); err != nil {
			return fail(err)
		}
		return false, []string{fmt.Sprintf("room removed at %d,%d", x, y)}
	case "removefloor":
		n, err := argInt(fields, 1)
		if err != nil {
			return fail(err)
		}
		if err := s.current.RemoveFloor(n); err != nil {
			return fail(err)
		}
		return false, []string{fmt.Sprintf("floor %d removed", n)}
	case "name":
		return s.handleEdit(fields, s.SetName)
	case "desc":
		return s.handleEdit(fields, s.SetDescription)
	case "items":
		return s.handleEdit(fields, func(x, y int, arg string) error {
			return s.SetItems(x, y, splitList(arg))
		})
	case "hazard":
		return s.handleEdit(fields, s.SetHazard)
	case "puzzle":
		return s.handleEdit(fields, func(x, y int, arg string) error {
			parts := splitList(arg)
			if len(parts) != 3 {
				return fmt.Errorf("puzzle needs required%suse text%sgranted", listSeparator, listSeparator)
			}
			return s.SetPuzzle(x, y, &world.Puzzle{
				RequiredItem: parts[0],
				UseText:      parts[1],
				GrantedItem:  parts[2],
			})
		})
	case "map":
		return false, []string{s.Map()}
	case "save":
		if err := s.Save(); err != nil {
			return fail(err)
		}
		return false, []string{"layouts saved"}
	case "export":
		if len(fields) < 2 {
			return fail(errors.New("missing file argument"))
		}
		if err := s.Export(fields[1]); err != nil {
			return fail(err)
		}
		return false, []string{fmt.Sprintf("layout exported to %s", fields[1])}
	case "import":
		if len(fields) < 2 {
			return fail(errors.New("missing file argument"))
		}
		if err := s.Import(fields[1]); err != nil {
			return fail(err)
		}
		return false, []string{fmt.Sprintf("layout imported from %s", fields[1])}
	case "load":
		if err := s.Load(); err != nil {
			return fail(err)
		}
		return false, []string{"layouts loaded"}
	case "title":
		s.Config.Title = rest(fields, 1)
		return false, nil
	case "health":
		return s.handleConfigInt(fields, func(n int) { s.Config.BaseHealth = n })
	case "chance":
		return s.handleConfigInt(fields, func(n int) { s.Config.DamageChance = n })
	case "winroom":
		x, y, err := argCoord(fields)
		if err != nil {
			return fail(err)
		}
		floor, err := argInt(fields, 3)
		if err != nil {
			return fail(err)
		}
		s.Config.WinRoom = grid.Coord{X: x, Y: y, Floor: floor}
		return false, nil
	case "winitems":
		s.Config.WinItems = splitList(rest(fields, 1))
		return false, nil
	case "tutorialitems":
		s.Config.TutorialItems = splitList(rest(fields, 1))
		return false, nil
	case "setup":
		if err := s.SaveConfig(); err != nil {
			return fail(err)
		}
		return false, []string{"configuration saved"}
	case "help":
		return false, helpText()
	}

	return false, []string{fmt.Sprintf("unknown command %q, try help", fields[0])}
}

func (s *Session) handleEdit(fields []string, edit func(x, y int, arg string) error) (bool, []string) {
	x, y, err := argCoord(fields)
	if err == nil {
		err = edit(x, y, rest(fields, 3))
	}
	if err != nil {
		return false, []string{fmt.Sprintf("error: %v", err)}
	}
	return false, nil
}

func (s *Session) handleConfigInt(fields []string, set func(int)) (bool, []string) {
	n, err := argInt(fields, 1)
	if err != nil {
		return false, []string{fmt.Sprintf("error: %v", err)}
	}
	set(n)
	return false, nil
}

func argInt(fields []string, i int) (int, error) {
	if len(fields) <= i {
		return 0, errors.New("missing argument")
	}
	return strconv.Atoi(fields[i])
}

func argCoord(fields []string) (x, y int, err error) {
	if x, err = argInt(fields, 1); err != nil {
		return 0, 0, err
	}
	if y, err = argInt(fields, 2); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func rest(fields []string, from int) string {
	if len(fields) <= from {
		return ""
	}
	return strings.Join(fields[from:], " ")
}

func splitList(arg string) []string {
	var items []string
	for _, item := range strings.Split(arg, listSeparator) {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

func helpText() []string {
	return []string{
		"tutorial | main | floor <n>      select what to edit",
		"add <x> <y> [name]               place a room at a frontier cell",
		"remove <x> <y>                   remove a room (connectivity permitting)",
		"removefloor <n>                  remove a whole floor (main only)",
		"name|desc <x> <y> <text>         set room name or description",
		"items <x> <y> <a;b;c>            set findable items",
		"puzzle <x> <y> <req;text;grant>  set the usable-item puzzle (main only)",
		"hazard <x> <y> <text>            set the haunting text (main only)",
		"map                              draw the working floor",
		"save | load                      flush or reload the room layouts",
		"export|import <file>             single-file YAML copy of the working layout",
		"title|health|chance|winroom|winitems|tutorialitems  game setup",
		"setup                            write the game setup files",
		"quit",
	}
}
