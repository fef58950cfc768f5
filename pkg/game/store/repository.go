// Package store persists room graphs. The directory-per-room layout of
// DirStore is the integration contract between the editor and the
// runner; YAMLStore keeps the same graph in a single structured file.
package store

import "echoengine/pkg/game/world"

// GraphRepository abstracts the backing store for a room graph, so
// graph logic never touches the filesystem directly.
type GraphRepository interface {
	Load() (*world.Graph, error)
	Save(*world.Graph) error
}
