package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"echoengine/pkg/engine/grid"
	"echoengine/pkg/game/world"
)

// Fixed filenames of the per-room layout. These names, the 1-indexed
// y/x directory naming and the "-----" separator are the on-disk
// contract and must match the runner and every external tool exactly.
const (
	DescriptionFile = "Description.txt"
	ItemsFile       = "Items.txt"
	ExitsFile       = "Exits.txt"
	UsableFile      = "Usable_Items.txt"
	HazardFile      = "Strange_occerance.txt"

	descriptionSeparator = "-----"
)

var (
	roomDirPattern  = regexp.MustCompile(`^y(\d+)_x(\d+)$`)
	floorDirPattern = regexp.MustCompile(`^floor_(\d+)$`)
)

// DirStore reads and writes a graph as one directory per room under a
// root directory. Tutorial graphs keep their room directories directly
// under the root; main-game graphs group them under floor_<N>
// directories (N is the 0-based floor index, while y/x stay 1-indexed).
type DirStore struct {
	Root       string
	MultiFloor bool

	// OriginName seeds the origin room's name when the on-disk data
	// does not provide one.
	OriginName string
}

// NewDirStore creates a store rooted at the given directory.
func NewDirStore(root string, multiFloor bool) *DirStore {
	return &DirStore{Root: root, MultiFloor: multiFloor}
}

// Save wipes the backing directory tree and rewrites it wholesale from
// the graph. There is no incremental write: the file tree is a
// serialization target, not a database.
func (s *DirStore) Save(g *world.Graph) error {
	if err := os.RemoveAll(s.Root); err != nil {
		return fmt.Errorf("clearing %s: %w", s.Root, err)
	}
	if err := os.MkdirAll(s.Root, 0755); err != nil {
		return err
	}
	for _, c := range g.Coords() {
		if err := s.writeRoom(g, c); err != nil {
			return err
		}
	}
	return nil
}

// Load walks the directory tree and reconstructs the graph. Directory
// names that do not parse are skipped silently; missing optional files
// leave the matching room fields empty.
func (s *DirStore) Load() (*world.Graph, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, fmt.Errorf("reading room layout %s: %w", s.Root, err)
	}

	g := world.NewGraph(s.OriginName, s.MultiFloor)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if s.MultiFloor {
			m := floorDirPattern.FindStringSubmatch(entry.Name())
			if m == nil {
				continue
			}
			floor, _ := strconv.Atoi(m[1])
			if err := s.loadFloor(g, filepath.Join(s.Root, entry.Name()), floor); err != nil {
				return nil, err
			}
		} else if c, ok := parseRoomDir(entry.Name(), 0); ok {
			s.loadRoom(g, filepath.Join(s.Root, entry.Name()), c)
		}
	}
	return g, nil
}

func (s *DirStore) loadFloor(g *world.Graph, floorDir string, floor int) error {
	entries, err := os.ReadDir(floorDir)
	if err != nil {
		return fmt.Errorf("reading floor %s: %w", floorDir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if c, ok := parseRoomDir(entry.Name(), floor); ok {
			s.loadRoom(g, filepath.Join(floorDir, entry.Name()), c)
		}
	}
	return nil
}

func (s *DirStore) loadRoom(g *world.Graph, dir string, c grid.Coord) {
	room := readRoom(dir)
	if c == grid.Origin {
		// The origin always exists; fill it in place.
		origin := g.Room(grid.Origin)
		if room.Name != "" {
			origin.Name = room.Name
		}
		origin.Description = room.Description
		origin.FindableItems = room.FindableItems
		origin.Puzzle = room.Puzzle
		origin.HazardText = room.HazardText
		return
	}
	g.Put(c, room)
}

// readRoom parses a single room directory. Every file is optional;
// unreadable content degrades to empty fields rather than failing.
func readRoom(dir string) *world.Room {
	room := &world.Room{}

	if data, err := os.ReadFile(filepath.Join(dir, DescriptionFile)); err == nil {
		room.Name, room.Description = parseDescription(string(data))
	}

	if data, err := os.ReadFile(filepath.Join(dir, ItemsFile)); err == nil {
		room.FindableItems = nonEmptyLines(string(data))
	}

	if data, err := os.ReadFile(filepath.Join(dir, UsableFile)); err == nil {
		lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
		if len(lines) >= 3 && strings.TrimSpace(lines[0]) != "" {
			room.Puzzle = &world.Puzzle{
				RequiredItem: strings.TrimSpace(lines[0]),
				UseText:      strings.TrimSpace(lines[1]),
				GrantedItem:  strings.TrimSpace(lines[2]),
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join(dir, HazardFile)); err == nil {
		room.HazardText = strings.TrimRight(string(data), "\r\n")
	}

	return room
}

func (s *DirStore) writeRoom(g *world.Graph, c grid.Coord) error {
	dir := filepath.Join(s.Root, RoomDir(c, s.MultiFloor))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	room := g.Room(c)

	desc := room.Name + "\n" + descriptionSeparator + "\n" + room.Description
	if err := os.WriteFile(filepath.Join(dir, DescriptionFile), []byte(desc), 0644); err != nil {
		return err
	}

	if len(room.FindableItems) > 0 {
		data := strings.Join(room.FindableItems, "\n") + "\n"
		if err := os.WriteFile(filepath.Join(dir, ItemsFile), []byte(data), 0644); err != nil {
			return err
		}
	}

	// Exits are recomputed from adjacency at save time. Whatever was
	// on disk before is gone with the wipe, so stale exit data cannot
	// survive a save.
	exits := g.Exits(c)
	if len(exits) > 0 {
		var b strings.Builder
		for _, d := range exits {
			b.WriteString(d.String())
			b.WriteString("\n")
		}
		if err := os.WriteFile(filepath.Join(dir, ExitsFile), []byte(b.String()), 0644); err != nil {
			return err
		}
	}

	if s.MultiFloor && room.Puzzle != nil {
		data := room.Puzzle.RequiredItem + "\n" + room.Puzzle.UseText + "\n" + room.Puzzle.GrantedItem + "\n"
		if err := os.WriteFile(filepath.Join(dir, UsableFile), []byte(data), 0644); err != nil {
			return err
		}
	}

	if s.MultiFloor && room.HazardText != "" {
		if err := os.WriteFile(filepath.Join(dir, HazardFile), []byte(room.HazardText+"\n"), 0644); err != nil {
			return err
		}
	}

	return nil
}

// RoomDir returns the relative directory for a coordinate, converting
// the 0-based in-memory indices to the 1-indexed persisted form.
func RoomDir(c grid.Coord, multiFloor bool) string {
	name := fmt.Sprintf("y%d_x%d", c.Y+1, c.X+1)
	if multiFloor {
		return filepath.Join(fmt.Sprintf("floor_%d", c.Floor), name)
	}
	return name
}

// parseRoomDir converts a y<N>_x<M> directory name back to a 0-based
// coordinate on the given floor.
func parseRoomDir(name string, floor int) (grid.Coord, bool) {
	m := roomDirPattern.FindStringSubmatch(name)
	if m == nil {
		return grid.Coord{}, false
	}
	y, err1 := strconv.Atoi(m[1])
	x, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil || y < 1 || x < 1 {
		return grid.Coord{}, false
	}
	return grid.Coord{X: x - 1, Y: y - 1, Floor: floor}, true
}

// parseDescription splits Description.txt into name and description.
// Line 1 is the name, a literal "-----" line separates it from the
// free-text description.
func parseDescription(data string) (name, description string) {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	lines := strings.Split(data, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	name = strings.TrimSpace(lines[0])
	rest := lines[1:]
	if len(rest) > 0 && strings.TrimSpace(rest[0]) == descriptionSeparator {
		rest = rest[1:]
	}
	return name, strings.TrimRight(strings.Join(rest, "\n"), "\n")
}

func nonEmptyLines(data string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
