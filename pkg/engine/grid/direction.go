// Package grid provides generic grid-addressing primitives for
// room-based worlds: coordinates, directions and their deltas.
package grid

// Direction represents one of the six movement directions.
type Direction int

// Direction constants. North/South run along the Y axis (north is Y-1,
// matching the persisted room layout), East/West along X, Up/Down
// across floors.
const (
	North Direction = iota
	East
	South
	West
	Up
	Down
)

// CardinalDirections returns the four same-floor directions.
func CardinalDirections() []Direction {
	return []Direction{North, East, South, West}
}

// AllDirections returns all six directions, including Up and Down.
func AllDirections() []Direction {
	return []Direction{North, East, South, West, Up, Down}
}

// String returns the lowercase name of the direction. These names are
// part of the persisted Exits.txt contract and of the command
// vocabulary, so they never change with locale.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// IsValid returns true if the direction is one of the six known directions.
func (d Direction) IsValid() bool {
	return d >= North && d <= Down
}

// IsVertical returns true for Up and Down.
func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Up:
		return Down
	case Down:
		return Up
	default:
		return d
	}
}

// Delta returns the coordinate offsets for this direction.
func (d Direction) Delta() (dx, dy, dfloor int) {
	switch d {
	case North:
		return 0, -1, 0
	case East:
		return 1, 0, 0
	case South:
		return 0, 1, 0
	case West:
		return -1, 0, 0
	case Up:
		return 0, 0, 1
	case Down:
		return 0, 0, -1
	default:
		return 0, 0, 0
	}
}

// ParseDirection maps a direction name to its Direction. The match is
// exact and case-sensitive, per the command protocol.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "north":
		return North, true
	case "east":
		return East, true
	case "south":
		return South, true
	case "west":
		return West, true
	case "up":
		return Up, true
	case "down":
		return Down, true
	default:
		return North, false
	}
}
