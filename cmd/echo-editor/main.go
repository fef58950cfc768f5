// The echo-editor command edits a game directory's room layouts and
// setup files from a line-oriented prompt.
package main

import (
	"flag"
	"fmt"

	"echoengine/pkg/engine/input"
	"echoengine/pkg/game/editor"
	"echoengine/pkg/game/renderer"
)

func main() {
	gameDir := flag.String("game", ".", "game directory to edit")
	flag.Parse()

	renderer.InitColors()

	session := editor.NewSession(*gameDir)
	if err := session.Load(); err != nil {
		fmt.Printf("starting with empty layouts: %v\n", err)
	}

	fmt.Println("echo-editor, type help for commands")
	for {
		fmt.Printf("[%s] > ", sessionLabel(session))
		quit, messages := session.Handle(input.GetInput())
		for _, msg := range messages {
			fmt.Println(msg)
		}
		if quit {
			return
		}
	}
}

func sessionLabel(s *editor.Session) string {
	if s.Current() == s.Tutorial {
		return "tutorial"
	}
	return fmt.Sprintf("main floor %d", s.Floor())
}
