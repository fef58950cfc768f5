package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"echoengine/pkg/engine/grid"
	"echoengine/pkg/game/config"
)

// Save file names under the Save directory.
const (
	LocationFile  = "Location.txt"
	InventoryFile = "Inventory.txt"
	HistoryFile   = "Inventory_history.txt"
	HealthFile    = "Health.txt"
	JournalFile   = "Journal.txt"
)

// freshSentinel is the location record meaning "no game in progress".
const freshSentinel = "2"

// Store reads and writes the save files for one game directory.
// Every write replaces the whole file, so a load after a crash sees
// the last completed turn.
type Store struct {
	Root string
}

// NewStore returns a store rooted at the game directory. Save files
// live under Root/Save.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.Root, config.SaveDir, name)
}

func (s *Store) write(name, contents string) error {
	if err := os.MkdirAll(filepath.Join(s.Root, config.SaveDir), 0755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}
	if err := os.WriteFile(s.path(name), []byte(contents), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// EncodeLocation renders a location record. The first field selects
// the world, "2" alone marks a fresh save, and coordinates follow as
// y then x, with the floor last for the main world.
func EncodeLocation(loc Location) string {
	if loc.Fresh {
		return freshSentinel
	}
	if loc.World == WorldTutorial {
		return fmt.Sprintf("0 %d %d", loc.Coord.Y, loc.Coord.X)
	}
	return fmt.Sprintf("1 %d %d %d", loc.Coord.Y, loc.Coord.X, loc.Coord.Floor)
}

// DecodeLocation parses a location record. Anything unparseable is
// treated as a fresh save rather than an error, so a corrupted file
// restarts the game instead of wedging it.
func DecodeLocation(record string) Location {
	fields := strings.Fields(strings.TrimSpace(record))
	if len(fields) == 0 || fields[0] == freshSentinel {
		return FreshLocation()
	}
	nums := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return FreshLocation()
		}
		nums = append(nums, n)
	}
	switch {
	case nums[0] == 0 && len(nums) == 3:
		return Location{World: WorldTutorial, Coord: grid.Coord{Y: nums[1], X: nums[2]}}
	case nums[0] == 1 && len(nums) == 4:
		return Location{World: WorldMain, Coord: grid.Coord{Y: nums[1], X: nums[2], Floor: nums[3]}}
	}
	return FreshLocation()
}

// WriteLocation persists the player's position.
func (s *Store) WriteLocation(loc Location) error {
	return s.write(LocationFile, EncodeLocation(loc)+"\n")
}

// ReadLocation loads the persisted position, defaulting to a fresh
// save when the file is absent.
func (s *Store) ReadLocation() Location {
	data, err := os.ReadFile(s.path(LocationFile))
	if err != nil {
		return FreshLocation()
	}
	return DecodeLocation(string(data))
}

func (s *Store) writeLines(name string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return s.write(name, b.String())
}

func (s *Store) readLines(name string) []string {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// WriteInventory persists the held items in collection order.
func (s *Store) WriteInventory(items []string) error {
	return s.writeLines(InventoryFile, items)
}

// ReadInventory loads the held items.
func (s *Store) ReadInventory() []string {
	return s.readLines(InventoryFile)
}

// WriteHistory persists every item ever collected, one per line.
func (s *Store) WriteHistory(history mapset.Set[string]) error {
	var items []string
	history.Each(func(item string) {
		items = append(items, item)
	})
	// Set iteration order is arbitrary; keep the file diffable.
	sort.Strings(items)
	return s.writeLines(HistoryFile, items)
}

// ReadHistory loads the collection history.
func (s *Store) ReadHistory() mapset.Set[string] {
	history := mapset.New[string]()
	for _, item := range s.readLines(HistoryFile) {
		history.Put(item)
	}
	return history
}

func (s *Store) writeInt(name string, n int) error {
	return s.write(name, strconv.Itoa(n)+"\n")
}

func (s *Store) readInt(name, fallback string) int {
	data, err := os.ReadFile(s.path(name))
	text := fallback
	if err == nil {
		text = strings.TrimSpace(string(data))
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		n, _ = strconv.Atoi(fallback)
	}
	return n
}

// WriteHealth persists the current health.
func (s *Store) WriteHealth(health int) error {
	return s.writeInt(HealthFile, health)
}

// ReadHealth loads the persisted health, falling back to the given
// default for missing or unparseable files.
func (s *Store) ReadHealth(fallback int) int {
	return s.readInt(HealthFile, strconv.Itoa(fallback))
}

// WriteJournal persists the journal entry counter.
func (s *Store) WriteJournal(entries int) error {
	return s.writeInt(JournalFile, entries)
}

// ReadJournal loads the journal entry counter.
func (s *Store) ReadJournal() int {
	return s.readInt(JournalFile, "0")
}

// LoadPlayer restores a player from the save files, using the given
// base health for a fresh save.
func (s *Store) LoadPlayer(baseHealth int) *Player {
	return &Player{
		Location:       s.ReadLocation(),
		Inventory:      s.ReadInventory(),
		History:        s.ReadHistory(),
		Health:         s.ReadHealth(baseHealth),
		JournalEntries: s.ReadJournal(),
	}
}

// SavePlayer flushes the whole player state.
func (s *Store) SavePlayer(p *Player) error {
	if err := s.WriteLocation(p.Location); err != nil {
		return err
	}
	if err := s.WriteInventory(p.Inventory); err != nil {
		return err
	}
	if err := s.WriteHistory(p.History); err != nil {
		return err
	}
	if err := s.WriteHealth(p.Health); err != nil {
		return err
	}
	return s.WriteJournal(p.JournalEntries)
}

// Reset wipes the save back to a fresh game: sentinel location, empty
// inventory and history, default health, zero journal entries.
func (s *Store) Reset(baseHealth int) error {
	return s.SavePlayer(NewPlayer(baseHealth))
}
