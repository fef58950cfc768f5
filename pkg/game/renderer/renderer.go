// Package renderer turns engine output into styled terminal text.
// Messages carry a light markup (ITEM{...}, ROOM{...}, GT{...}) that
// is resolved to colors and translations at print time.
package renderer

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"golang.org/x/term"

	"echoengine/pkg/engine/grid"
	"echoengine/pkg/game/world"
)

// Map icons.
const (
	PlayerIcon   = "@"
	IconRoom     = "○"
	IconOrigin   = "●"
	IconFrontier = "+"
	IconVoid     = " "
)

var (
	ColorItem   color.Style
	ColorRoom   color.Style
	ColorAction color.Style
	ColorDenied color.Style
	ColorSubtle color.Style
	ColorPlayer color.Style

	regexpStringFunctions *regexp.Regexp
)

// InitColors initializes the color styles and the markup matcher.
func InitColors() {
	ColorItem = color.Style{color.FgGreen, color.OpBold}
	ColorRoom = color.Style{color.FgBlue, color.OpBold}
	ColorAction = color.Style{color.FgMagenta}
	ColorDenied = color.Style{color.FgRed, color.OpBold}
	ColorSubtle = color.Style{color.FgGray}
	ColorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}

	regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:.'!?-]+)}`)
}

// FormatString resolves the markup in a message. The message is not a
// printf format; authored text is free to contain percent signs.
func FormatString(msg string) string {
	ret := msg

	if regexpStringFunctions == nil {
		InitColors()
	}

	matches := regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		var val string

		switch function {
		case "GT":
			val = gotext.Get(operand)
		case "ITEM":
			val = ColorItem.Sprint(operand)
		case "ROOM":
			val = ColorRoom.Sprint(operand)
		case "ACTION":
			val = ColorAction.Sprint(operand)
		case "DENIED":
			val = ColorDenied.Sprint(operand)
		default:
			continue
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// PrintString prints a message with its markup resolved.
func PrintString(msg string) {
	fmt.Print(FormatString(msg))
}

// Println prints a message with its markup resolved, followed by a
// newline.
func Println(msg string) {
	fmt.Println(FormatString(msg))
}

// Printlnf formats and prints a line. Only trusted format strings
// belong here; authored content goes through Println.
func Printlnf(format string, a ...any) {
	Println(fmt.Sprintf(format, a...))
}

// PrintStringCenter prints a line centered for the terminal width.
func PrintStringCenter(s string) {
	width := terminalWidth()
	visible := len(color.ClearCode(s))
	pad := (width - visible) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Println(strings.Repeat(" ", pad) + FormatString(s))
}

// terminalWidth reports the column count of the terminal on stdout.
// Piped output gets a classic 80 column screen.
func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	return width
}

// HealthBar renders health as a row of marks.
func HealthBar(health int) string {
	return "HEALTH: " + strings.Repeat("#", health)
}

// Clear clears the terminal screen.
func Clear() {
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// RenderFloor draws one floor of a graph as an ASCII plan. The player
// coordinate is marked when it is on the rendered floor; frontier
// cells are marked when requested (the editor's legal add positions).
func RenderFloor(g *world.Graph, floor int, player grid.Coord, showPlayer, showFrontier bool) string {
	cells := make(map[grid.Coord]string)

	for _, c := range g.Coords() {
		if c.Floor != floor {
			continue
		}
		icon := ColorRoom.Sprint(IconRoom)
		if c == grid.Origin {
			icon = ColorRoom.Sprint(IconOrigin)
		}
		cells[c] = icon
	}
	if showFrontier {
		for _, c := range g.Frontier() {
			if c.Floor == floor {
				cells[c] = ColorSubtle.Sprint(IconFrontier)
			}
		}
	}
	if showPlayer && player.Floor == floor {
		cells[player] = ColorPlayer.Sprint(PlayerIcon)
	}

	if len(cells) == 0 {
		return ""
	}

	minX, maxX, minY, maxY := bounds(cells)

	var b strings.Builder
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			icon, ok := cells[grid.Coord{X: x, Y: y, Floor: floor}]
			if !ok {
				icon = IconVoid
			}
			b.WriteString(icon)
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func bounds(cells map[grid.Coord]string) (minX, maxX, minY, maxY int) {
	first := true
	for c := range cells {
		if first {
			minX, maxX, minY, maxY = c.X, c.X, c.Y, c.Y
			first = false
			continue
		}
		minX = min(minX, c.X)
		maxX = max(maxX, c.X)
		minY = min(minY, c.Y)
		maxY = max(maxY, c.Y)
	}
	return minX, maxX, minY, maxY
}
