package grid

import "fmt"

// Coord addresses a single grid cell. X grows east, Y grows south,
// Floor grows upward. Single-floor worlds keep Floor at 0.
type Coord struct {
	X     int
	Y     int
	Floor int
}

// Origin is the fixed root coordinate of every room graph.
var Origin = Coord{0, 0, 0}

// Step returns the coordinate one cell away in the given direction.
func (c Coord) Step(d Direction) Coord {
	dx, dy, df := d.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy, Floor: c.Floor + df}
}

// String renders the coordinate as "x,y,floor".
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Floor)
}
