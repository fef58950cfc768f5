package world

import (
	"errors"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"echoengine/pkg/engine/grid"
)

// Graph mutation errors. These are expected operator errors, not
// faults: callers report them and carry on.
var (
	ErrOccupied      = errors.New("cell is already occupied")
	ErrNotAdjacent   = errors.New("cell is not adjacent to any room")
	ErrNoRoom        = errors.New("no room at that cell")
	ErrOrigin        = errors.New("the origin room cannot be removed")
	ErrDisconnects   = errors.New("removal would disconnect the graph")
	ErrOriginFloor   = errors.New("the origin floor cannot be removed")
	ErrMissingFloor  = errors.New("no rooms on that floor")
	ErrVerticalMoves = errors.New("vertical adjacency requires a multi-floor graph")
)

// Graph is a sparse mapping from coordinates to rooms. The origin room
// always exists. A tutorial graph is single-floor with 4-directional
// adjacency; a main-game graph spans floors with 6-directional
// adjacency.
type Graph struct {
	rooms      map[grid.Coord]*Room
	multiFloor bool
}

// NewGraph creates a graph containing only the origin room.
func NewGraph(originName string, multiFloor bool) *Graph {
	g := &Graph{
		rooms:      make(map[grid.Coord]*Room),
		multiFloor: multiFloor,
	}
	g.rooms[grid.Origin] = NewRoom(originName)
	return g
}

// MultiFloor reports whether up/down adjacency is in play.
func (g *Graph) MultiFloor() bool {
	return g.multiFloor
}

// Directions returns the adjacency directions this graph uses.
func (g *Graph) Directions() []grid.Direction {
	if g.multiFloor {
		return grid.AllDirections()
	}
	return grid.CardinalDirections()
}

// Len returns the number of occupied cells.
func (g *Graph) Len() int {
	return len(g.rooms)
}

// Occupied reports whether a room exists at the coordinate.
func (g *Graph) Occupied(c grid.Coord) bool {
	_, ok := g.rooms[c]
	return ok
}

// Room returns the room at the coordinate, or nil.
func (g *Graph) Room(c grid.Coord) *Room {
	return g.rooms[c]
}

// Coords returns all occupied coordinates in a stable order
// (floor, then y, then x).
func (g *Graph) Coords() []grid.Coord {
	coords := make([]grid.Coord, 0, len(g.rooms))
	for c := range g.rooms {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		a, b := coords[i], coords[j]
		if a.Floor != b.Floor {
			return a.Floor < b.Floor
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return coords
}

// Floors returns the sorted list of floor indices that contain rooms.
func (g *Graph) Floors() []int {
	seen := mapset.New[int]()
	for c := range g.rooms {
		seen.Put(c.Floor)
	}
	var floors []int
	seen.Each(func(f int) {
		floors = append(floors, f)
	})
	sort.Ints(floors)
	return floors
}

// AddRoom inserts an empty room with the given name. The cell must be
// unoccupied and adjacent to an existing room; placement anywhere else
// is a protocol violation and is rejected. Additions never need a
// connectivity re-check: a frontier cell extends the component it
// touches.
func (g *Graph) AddRoom(c grid.Coord, name string) (*Room, error) {
	if g.Occupied(c) {
		return nil, ErrOccupied
	}
	if !g.multiFloor && c.Floor != grid.Origin.Floor {
		return nil, ErrVerticalMoves
	}
	if !g.hasNeighbor(c) {
		return nil, ErrNotAdjacent
	}
	room := NewRoom(name)
	g.rooms[c] = room
	return room, nil
}

// CanRemove reports whether RemoveRoom would succeed, without mutating
// the graph. Used by editors to mark removable cells.
func (g *Graph) CanRemove(c grid.Coord) bool {
	return g.removeCheck(c) == nil
}

// RemoveRoom deletes the room at the coordinate. The origin and the
// last room are protected, and a removal that would orphan any other
// cell is rejected. A boundary-only rule is not enough here: removing
// an articulation point strands a whole subtree, so legality is a full
// reachability recount from the origin.
func (g *Graph) RemoveRoom(c grid.Coord) error {
	if err := g.removeCheck(c); err != nil {
		return err
	}
	delete(g.rooms, c)
	return nil
}

func (g *Graph) removeCheck(c grid.Coord) error {
	if !g.Occupied(c) {
		return ErrNoRoom
	}
	if c == grid.Origin {
		return ErrOrigin
	}
	excluded := mapset.New[grid.Coord]()
	excluded.Put(c)
	if g.reachableCount(excluded) != len(g.rooms)-1 {
		return ErrDisconnects
	}
	return nil
}

// RemoveFloor deletes every room on the given floor. Deleting a floor
// is an explicit operation with its own connectivity check, never a
// side effect of removing the floor's last room.
func (g *Graph) RemoveFloor(floor int) error {
	if floor == grid.Origin.Floor {
		return ErrOriginFloor
	}
	excluded := mapset.New[grid.Coord]()
	for c := range g.rooms {
		if c.Floor == floor {
			excluded.Put(c)
		}
	}
	if excluded.Size() == 0 {
		return ErrMissingFloor
	}
	if g.reachableCount(excluded) != len(g.rooms)-excluded.Size() {
		return ErrDisconnects
	}
	excluded.Each(func(c grid.Coord) {
		delete(g.rooms, c)
	})
	return nil
}

// Exits derives the exit set for the cell: a direction is an exit iff
// the neighboring cell in that direction is occupied. The result fully
// replaces any previously stored exit data.
func (g *Graph) Exits(c grid.Coord) []grid.Direction {
	var exits []grid.Direction
	for _, d := range g.Directions() {
		if g.Occupied(c.Step(d)) {
			exits = append(exits, d)
		}
	}
	return exits
}

// Frontier returns every unoccupied coordinate adjacent to a room:
// the only cells where AddRoom is legal.
func (g *Graph) Frontier() []grid.Coord {
	seen := mapset.New[grid.Coord]()
	for c := range g.rooms {
		for _, d := range g.Directions() {
			n := c.Step(d)
			if !g.Occupied(n) {
				seen.Put(n)
			}
		}
	}
	var frontier []grid.Coord
	seen.Each(func(c grid.Coord) {
		frontier = append(frontier, c)
	})
	sort.Slice(frontier, func(i, j int) bool {
		a, b := frontier[i], frontier[j]
		if a.Floor != b.Floor {
			return a.Floor < b.Floor
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return frontier
}

// Connected reports whether every occupied cell is reachable from the
// origin. Always true after legal mutations; exposed for validation of
// loaded data and for tests.
func (g *Graph) Connected() bool {
	return g.reachableCount(mapset.New[grid.Coord]()) == len(g.rooms)
}

// Put inserts a room record without the frontier check. Loaders use it
// to rebuild a graph from persisted data in arbitrary directory order;
// editor code must go through AddRoom.
func (g *Graph) Put(c grid.Coord, room *Room) {
	if room == nil {
		return
	}
	g.rooms[c] = room
}

func (g *Graph) hasNeighbor(c grid.Coord) bool {
	for _, d := range g.Directions() {
		if g.Occupied(c.Step(d)) {
			return true
		}
	}
	return false
}

// reachableCount runs a breadth-first walk from the origin over the
// occupied set, treating excluded cells as absent, and returns the
// number of cells reached.
func (g *Graph) reachableCount(excluded mapset.Set[grid.Coord]) int {
	if excluded.Has(grid.Origin) || !g.Occupied(grid.Origin) {
		return 0
	}
	visited := mapset.New[grid.Coord]()
	queue := []grid.Coord{grid.Origin}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited.Has(current) {
			continue
		}
		visited.Put(current)
		for _, d := range g.Directions() {
			n := current.Step(d)
			if g.Occupied(n) && !excluded.Has(n) && !visited.Has(n) {
				queue = append(queue, n)
			}
		}
	}
	return visited.Size()
}
