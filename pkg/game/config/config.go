// Package config reads and writes the global game configuration: flat
// single-value text files under the game's data directory. The file
// paths and formats are a contract shared with external tooling, so
// they are fixed here and nowhere else.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"echoengine/pkg/engine/grid"
)

// Relative locations of the configuration files inside a game
// directory.
const (
	TitleFile          = "Text/Misc/Title.txt"
	CreditsFile        = "Text/Misc/Credits.txt"
	BaseHealthFile     = "Finishing/Default_health.txt"
	DamageChanceFile   = "Finishing/Damage_chance.txt"
	WinRoomFile        = "Finishing/Required_room.txt"
	WinItemsFile       = "Finishing/Required_items.txt"
	TutorialItemsFile  = "Tutorial/Required_items.txt"
	PrologFile         = "Text/Stories/Prolog/Prolog.txt"
	CutsceneFile       = "Text/Stories/Tutorial/Tutorial_completed.txt"
	GameOverFile       = "Text/Stories/Ending/Game_over.txt"
	WinTextFile        = "Text/Stories/Ending/Win.txt"
	TutorialRoomsDir   = "Text/Room_descriptions/Tutorial"
	MainRoomsDir       = "Text/Room_descriptions/Main"
	SaveDir            = "Save"
)

// Defaults applied when a configuration file is missing or unreadable.
const (
	DefaultTitle        = "Echo Engine"
	DefaultBaseHealth   = 20
	DefaultDamageChance = 10
)

// Config is the global game setup consumed by the runtime. The win
// coordinate is expressed in runtime (0-based) coordinates.
type Config struct {
	Title         string
	BaseHealth    int
	DamageChance  int
	WinRoom       grid.Coord
	WinItems      []string
	TutorialItems []string
}

// Load reads the configuration from the game directory. Missing or
// malformed files fall back to defaults; Load never fails.
func Load(root string) *Config {
	cfg := &Config{
		Title:        DefaultTitle,
		BaseHealth:   DefaultBaseHealth,
		DamageChance: DefaultDamageChance,
		WinRoom:      grid.Coord{X: -1, Y: -1, Floor: -1},
	}

	if title := readLine(filepath.Join(root, TitleFile)); title != "" {
		cfg.Title = title
	}
	if n, ok := readInt(filepath.Join(root, BaseHealthFile)); ok && n > 0 {
		cfg.BaseHealth = n
	}
	if n, ok := readInt(filepath.Join(root, DamageChanceFile)); ok && n > 0 {
		cfg.DamageChance = n
	}
	if c, ok := readCoord(filepath.Join(root, WinRoomFile)); ok {
		cfg.WinRoom = c
	}
	cfg.WinItems = readLines(filepath.Join(root, WinItemsFile))
	cfg.TutorialItems = readLines(filepath.Join(root, TutorialItemsFile))

	return cfg
}

// Validate applies the Game Setup rules: a title, positive health and
// damage chance. It mirrors what the setup editor enforces before
// writing.
func (c *Config) Validate() error {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if c.BaseHealth <= 0 {
		errs = append(errs, "base health must be a positive integer")
	}
	if c.DamageChance <= 0 {
		errs = append(errs, "damage chance must be a positive integer")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Save validates and writes every configuration file, creating parent
// directories as needed. Item lists are written one item per line.
func (c *Config) Save(root string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	writes := map[string]string{
		TitleFile:        c.Title,
		BaseHealthFile:   strconv.Itoa(c.BaseHealth),
		DamageChanceFile: strconv.Itoa(c.DamageChance),
		WinRoomFile: fmt.Sprintf("%d\n%d\n%d",
			c.WinRoom.X, c.WinRoom.Y, c.WinRoom.Floor),
		WinItemsFile:      strings.Join(c.WinItems, "\n"),
		TutorialItemsFile: strings.Join(c.TutorialItems, "\n"),
	}
	for rel, content := range writes {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// ReadStory returns the text of a story file, or the fallback when the
// file is missing or unreadable. Story text is flavor; its absence
// never aborts anything.
func ReadStory(root, rel, fallback string) string {
	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		return fallback
	}
	return strings.TrimRight(string(data), "\r\n")
}

func readLine(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	return strings.TrimSpace(line)
}

func readInt(path string) (int, bool) {
	line := readLine(path)
	if line == "" {
		return 0, false
	}
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, false
	}
	return n, true
}

func readLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// readCoord parses the win-room file: three lines, X then Y then floor.
func readCoord(path string) (grid.Coord, bool) {
	lines := readLines(path)
	if len(lines) < 3 {
		return grid.Coord{}, false
	}
	x, err1 := strconv.Atoi(lines[0])
	y, err2 := strconv.Atoi(lines[1])
	z, err3 := strconv.Atoi(lines[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return grid.Coord{}, false
	}
	return grid.Coord{X: x, Y: y, Floor: z}, true
}
