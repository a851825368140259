package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Pellet-Maze/internal/maze"
)

// keyTurnRate is the look delta added per tick while Q or E is held.
const keyTurnRate = 60.0

// moveBindings maps each movement key to the keyboard keys that trigger it.
var moveBindings = []struct {
	key  maze.Keys
	keys []ebiten.Key
}{
	{maze.KeyForward, []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}},
	{maze.KeyBack, []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}},
	{maze.KeyLeft, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}},
	{maze.KeyRight, []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}},
}

// keysFrom builds the held movement set from a key-state query.
func keysFrom(pressed func(ebiten.Key) bool) maze.Keys {
	var k maze.Keys
	for _, b := range moveBindings {
		for _, key := range b.keys {
			if pressed(key) {
				k |= b.key
				break
			}
		}
	}
	return k
}

// turnFrom returns the look delta contributed by the Q/E turn keys.
func turnFrom(pressed func(ebiten.Key) bool) float64 {
	dx := 0.0
	if pressed(ebiten.KeyQ) {
		dx -= keyTurnRate
	}
	if pressed(ebiten.KeyE) {
		dx += keyTurnRate
	}
	return dx
}

// frameInput gathers this tick's movement keys and the accumulated look delta.
func (g *Game) frameInput() maze.FrameInput {
	g.look.Add(turnFrom(ebiten.IsKeyPressed), 0)
	dx, dy := g.look.Take()
	return maze.FrameInput{
		Keys:   keysFrom(ebiten.IsKeyPressed),
		LookDX: dx,
		LookDY: dy,
	}
}

// handleInput processes toggles (edge-triggered) and mouse look.
func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	justPressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	// P: pause/resume.
	if justPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	// R: restart with the next seed.
	if justPressed(ebiten.KeyR) {
		g.restart()
	}
	// H: toggle HUD.
	if justPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	// F1: copy the debug report.
	if justPressed(ebiten.KeyF1) {
		g.copyReport()
	}

	// Right click toggles mouse look; the cursor is captured while it is on.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.mouseLook = !g.mouseLook
		if g.mouseLook {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
		} else {
			ebiten.SetCursorMode(ebiten.CursorModeVisible)
		}
		g.prevMX, g.prevMY = ebiten.CursorPosition()
	}
	if g.mouseLook {
		mx, my := ebiten.CursorPosition()
		// Screen y grows downward; looking up is a positive pitch delta.
		g.look.Add(float64(mx-g.prevMX), float64(g.prevMY-my))
		g.prevMX, g.prevMY = mx, my
	}

	g.prevKeys = currentKeys
}
