package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/leonelquinteros/gotext"

	"echoengine/pkg/engine/input"
	"echoengine/pkg/game/renderer"
	"echoengine/pkg/game/runner"
)

func initGettext() {
	gotext.Configure("mo/", "en_GB.utf8", "default")
}

func main() {
	gameDir := flag.String("game", ".", "game directory holding Text/ and Save/")
	flag.Parse()

	initGettext()
	renderer.InitColors()

	session, err := runner.NewSession(*gameDir, input.StdinReader{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "echoengine: %v\n", err)
		os.Exit(1)
	}

	session.Run()
}
