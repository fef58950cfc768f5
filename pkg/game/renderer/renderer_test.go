package renderer

import (
	"strings"
	"testing"

	"github.com/gookit/color"

	"echoengine/pkg/engine/grid"
	"echoengine/pkg/game/world"
)

func init() {
	color.Disable()
	InitColors()
}

func TestFormatStringResolvesMarkup(t *testing.T) {
	got := color.ClearCode(FormatString("You found: ITEM{Rusty Key}"))
	if got != "You found: Rusty Key" {
		t.Errorf("got %q", got)
	}
}

func TestFormatStringKeepsPercentSigns(t *testing.T) {
	msg := "The vault door is 50% open."
	if got := color.ClearCode(FormatString(msg)); got != msg {
		t.Errorf("got %q, want %q", got, msg)
	}
}

func TestFormatStringLeavesUnknownMarkup(t *testing.T) {
	got := color.ClearCode(FormatString("WAT{thing}"))
	if got != "WAT{thing}" {
		t.Errorf("got %q", got)
	}
}

func TestHealthBar(t *testing.T) {
	if got := HealthBar(3); got != "HEALTH: ###" {
		t.Errorf("got %q", got)
	}
	if got := HealthBar(0); got != "HEALTH: " {
		t.Errorf("got %q", got)
	}
}

func TestRenderFloorMarksPlayerAndRooms(t *testing.T) {
	g := world.NewGraph("Foyer", false)
	if _, err := g.AddRoom(grid.Coord{X: 1}, "Hall"); err != nil {
		t.Fatalf("adding room: %v", err)
	}

	plan := color.ClearCode(RenderFloor(g, 0, grid.Coord{X: 1}, true, false))
	if !strings.Contains(plan, PlayerIcon) {
		t.Error("player icon missing from plan")
	}
	if !strings.Contains(plan, IconOrigin) {
		t.Error("origin icon missing from plan")
	}
}

func TestRenderFloorFrontier(t *testing.T) {
	g := world.NewGraph("Foyer", false)

	plan := color.ClearCode(RenderFloor(g, 0, grid.Coord{}, false, true))
	if strings.Count(plan, IconFrontier) != 4 {
		t.Errorf("expected 4 frontier marks around a single room, got:\n%s", plan)
	}
}
