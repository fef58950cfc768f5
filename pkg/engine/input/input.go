// Package input reads player commands from stdin for the REPL loops.
package input

import (
	"bufio"
	"io"
	"log"
	"os"
	"strings"
)

var stdinReader *bufio.Reader

// GetInput reads a single line from stdin and trims the trailing
// newline. The command protocol is case-sensitive, so no other
// normalization is applied.
func GetInput() string {
	if stdinReader == nil {
		stdinReader = bufio.NewReader(os.Stdin)
	}

	line, err := stdinReader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			os.Exit(0)
		}
		log.Fatalf("Cannot read stdin: %v", err)
		return ""
	}

	return strings.Trim(line, "\r\n")
}

// Reader abstracts a source of player commands so game loops can be
// driven from stdin or from a scripted source in tests.
type Reader interface {
	ReadCommand() string
}

// StdinReader reads commands interactively from stdin.
type StdinReader struct{}

// ReadCommand implements Reader.
func (StdinReader) ReadCommand() string {
	return GetInput()
}

// ScriptReader replays a fixed command sequence. Once exhausted it
// alternates "menu" and "3" so both a game loop and the main menu
// terminate instead of spinning on one ignored command.
type ScriptReader struct {
	Commands []string
	next     int
}

// ReadCommand implements Reader.
func (s *ScriptReader) ReadCommand() string {
	if s.next >= len(s.Commands) {
		s.next++
		if s.next%2 == 1 {
			return "menu"
		}
		return "3"
	}
	cmd := s.Commands[s.next]
	s.next++
	return cmd
}
