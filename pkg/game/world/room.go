// Package world provides the Echo Engine room-graph model: typed room
// records on a sparse, grid-addressed graph whose occupied cells always
// form a single component connected to the origin.
package world

// Puzzle is a room's usable-item rule: using the required item consumes
// it, shows the use text and grants a new item. A room has at most one.
type Puzzle struct {
	RequiredItem string `yaml:"required_item"`
	UseText      string `yaml:"use_text"`
	GrantedItem  string `yaml:"granted_item"`
}

// Room is the content record for a single grid cell. Exits are not part
// of the record; they are derived from adjacency by the owning Graph.
type Room struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	// FindableItems are obtainable via "search", in discovery order.
	FindableItems []string `yaml:"findable_items,omitempty"`

	// Puzzle and HazardText are only meaningful in main-game rooms.
	Puzzle     *Puzzle `yaml:"puzzle,omitempty"`
	HazardText string  `yaml:"hazard_text,omitempty"`
}

// NewRoom creates an empty room with the given name.
func NewRoom(name string) *Room {
	return &Room{Name: name}
}

// Clone returns a deep copy of the room.
func (r *Room) Clone() *Room {
	if r == nil {
		return nil
	}
	out := *r
	out.FindableItems = append([]string(nil), r.FindableItems...)
	if r.Puzzle != nil {
		p := *r.Puzzle
		out.Puzzle = &p
	}
	return &out
}
