package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"echoengine/pkg/engine/grid"
	"echoengine/pkg/game/world"
)

// YAMLStore persists a whole graph as one structured YAML file. It is
// an alternative GraphRepository backend; graph logic is identical
// whichever store is plugged in. Exits are not serialized here either:
// they are derived state.
type YAMLStore struct {
	Path       string
	MultiFloor bool
}

// NewYAMLStore creates a store backed by a single YAML file.
func NewYAMLStore(path string, multiFloor bool) *YAMLStore {
	return &YAMLStore{Path: path, MultiFloor: multiFloor}
}

type yamlRoom struct {
	X          int `yaml:"x"`
	Y          int `yaml:"y"`
	Floor      int `yaml:"floor"`
	world.Room `yaml:",inline"`
}

type yamlGraph struct {
	MultiFloor bool       `yaml:"multi_floor"`
	Rooms      []yamlRoom `yaml:"rooms"`
}

// Save marshals the graph and rewrites the file in full.
func (s *YAMLStore) Save(g *world.Graph) error {
	doc := yamlGraph{MultiFloor: g.MultiFloor()}
	for _, c := range g.Coords() {
		doc.Rooms = append(doc.Rooms, yamlRoom{
			X:     c.X,
			Y:     c.Y,
			Floor: c.Floor,
			Room:  *g.Room(c).Clone(),
		})
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.Path, data, 0644)
}

// Load unmarshals the file and rebuilds the graph.
func (s *YAMLStore) Load() (*world.Graph, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading graph file %s: %w", s.Path, err)
	}

	var doc yamlGraph
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing graph file %s: %w", s.Path, err)
	}

	g := world.NewGraph("", s.MultiFloor)
	for i := range doc.Rooms {
		r := doc.Rooms[i]
		c := grid.Coord{X: r.X, Y: r.Y, Floor: r.Floor}
		room := r.Room
		if c == grid.Origin {
			*g.Room(grid.Origin) = room
			continue
		}
		g.Put(c, &room)
	}
	return g, nil
}
