// Package runner drives the interactive session: the main menu, the
// prolog, and the tutorial and main game loops. It owns no game rules
// itself; every turn goes through the gameplay engine.
package runner

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/leonelquinteros/gotext"

	"echoengine/pkg/engine/input"
	"echoengine/pkg/game/config"
	"echoengine/pkg/game/gameplay"
	"echoengine/pkg/game/renderer"
	"echoengine/pkg/game/state"
	"echoengine/pkg/game/store"
)

// Menu options, matched against raw input.
const (
	optionPlay    = "1"
	optionHelp    = "2"
	optionExit    = "3"
	optionCredits = "4"
	optionReset   = "5"
)

// Session is one runner process over a game directory.
type Session struct {
	Root   string
	Config *config.Config
	Engine *gameplay.Engine
	Input  input.Reader
	Saves  *state.Store
}

// NewSession loads the graphs, configuration, and save files for the
// game directory and assembles a session around them.
func NewSession(root string, in input.Reader) (*Session, error) {
	cfg := config.Load(root)

	tutorialStore := store.NewDirStore(storePath(root, config.TutorialRoomsDir), false)
	tutorial, err := tutorialStore.Load()
	if err != nil {
		return nil, fmt.Errorf("loading tutorial rooms: %w", err)
	}

	mainStore := store.NewDirStore(storePath(root, config.MainRoomsDir), true)
	main, err := mainStore.Load()
	if err != nil {
		return nil, fmt.Errorf("loading main game rooms: %w", err)
	}

	saves := state.NewStore(root)
	player := saves.LoadPlayer(cfg.BaseHealth)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return &Session{
		Root:   root,
		Config: cfg,
		Engine: gameplay.New(tutorial, main, cfg, player, saves, rng),
		Input:  in,
		Saves:  saves,
	}, nil
}

func storePath(root, rel string) string {
	return filepath.Join(root, rel)
}

// Run loops on the main menu until the player exits.
func (s *Session) Run() {
	for {
		s.showMenu()
		switch s.Input.ReadCommand() {
		case optionPlay:
			s.play()
		case optionHelp:
			s.showHelp()
		case optionExit:
			return
		case optionCredits:
			s.showCredits()
		case optionReset:
			s.reset()
		default:
			renderer.Println("GT{THAT IS NOT A VALID INPUT}")
		}
	}
}

func (s *Session) showMenu() {
	renderer.Clear()
	renderer.PrintStringCenter(s.Config.Title)
	fmt.Println()
	renderer.Println("1: GT{PLAY}")
	renderer.Println("2: GT{HELP}")
	renderer.Println("3: GT{EXIT}")
	renderer.Println("4: GT{CREDITS}")
	renderer.Println("5: GT{RESET}")
}

// play resumes from the persisted location record: fresh saves get
// the prolog and the tutorial, anything else re-enters its loop.
func (s *Session) play() {
	player := s.Engine.Player

	if player.Location.Fresh {
		s.showStory(config.PrologFile, gotext.Get("You wake in darkness."))
		if err := s.Engine.StartTutorial(); err != nil {
			renderer.Println("GT{THE GAME COULD NOT BE SAVED}")
			return
		}
	}

	s.describeRoom()
	s.loop()
}

func (s *Session) loop() {
	for {
		if s.Engine.Player.Location.World == state.WorldMain {
			renderer.Println(renderer.HealthBar(s.Engine.Player.Health))
		}
		renderer.PrintString("> ")

		outcome, messages := s.Engine.HandleCommand(s.Input.ReadCommand())
		for _, msg := range messages {
			renderer.Println(msg)
		}

		switch outcome {
		case gameplay.OutcomeMenu:
			return
		case gameplay.OutcomeTutorialDone:
			s.showStory(config.CutsceneFile, gotext.Get("The floor gives way beneath you."))
			s.describeRoom()
		case gameplay.OutcomeWin:
			s.showStory(config.WinTextFile, gotext.Get("You escaped."))
			s.resetSave()
			return
		case gameplay.OutcomeGameOver:
			s.showStory(config.GameOverFile, gotext.Get("GAME OVER"))
			s.resetSave()
			return
		}
	}
}

func (s *Session) describeRoom() {
	for _, line := range s.Engine.Describe() {
		renderer.Println(line)
	}
}

func (s *Session) showStory(rel, fallback string) {
	renderer.Clear()
	fmt.Println(config.ReadStory(s.Root, rel, fallback))
	s.pressEnter()
}

func (s *Session) pressEnter() {
	renderer.PrintString("GT{PRESS ENTER TO CONTINUE... }")
	s.Input.ReadCommand()
}

func (s *Session) showHelp() {
	renderer.Clear()
	renderer.Println("GT{Commands:}")
	for _, cmd := range []string{"north", "south", "east", "west", "up", "down", "inventory", "search", "use", "menu"} {
		renderer.Printlnf("ACTION{%s}", cmd)
	}
	s.pressEnter()
}

func (s *Session) showCredits() {
	s.showStory(config.CreditsFile, s.Config.Title)
}

func (s *Session) reset() {
	s.resetSave()
	renderer.Println("GT{THE GAME HAS BEEN RESET}")
	s.pressEnter()
}

func (s *Session) resetSave() {
	if err := s.Saves.Reset(s.Config.BaseHealth); err != nil {
		renderer.Println("GT{THE GAME COULD NOT BE SAVED}")
		return
	}
	*s.Engine.Player = *state.NewPlayer(s.Config.BaseHealth)
}
