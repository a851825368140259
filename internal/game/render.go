package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/Garsondee/Pellet-Maze/internal/level"
	"github.com/Garsondee/Pellet-Maze/internal/maze"
)

var (
	colBackground     = color.RGBA{R: 6, G: 6, B: 14, A: 255}
	colWall           = colornames.Midnightblue
	colWallEdge       = colornames.Royalblue
	colPellet         = colornames.Wheat
	colPlayer         = colornames.Gold
	colAlert          = colornames.Crimson
	colWrap           = colornames.Mediumseagreen
	colPanel          = color.RGBA{R: 10, G: 10, B: 18, A: 248}
	colPanelEdge      = colornames.Slategray
	colPanelTitle     = color.RGBA{R: 24, G: 24, B: 44, A: 255}
	colPanelHighlight = color.RGBA{R: 30, G: 30, B: 56, A: 160}
	colHUD            = color.RGBA{R: 6, G: 6, B: 14, A: 210}

	// agentColors cycles per agent id.
	agentColors = []color.RGBA{
		colornames.Red,
		colornames.Hotpink,
		colornames.Cyan,
		colornames.Orange,
	}
)

// viewport maps world X/Z onto screen pixels for a top-down view.
type viewport struct {
	offX, offY float32
	cell       float32 // pixels per tile
	tileSize   float64
}

// fitViewport sizes tiles so the whole grid fits in w x h minus border, centred.
func fitViewport(grid *level.Grid, w, h, border int) viewport {
	availW := float32(w - 2*border)
	availH := float32(h - 2*border)
	cell := min(availW/float32(grid.Width()), availH/float32(grid.Height()))
	if cell < 1 {
		cell = 1
	}
	return viewport{
		offX:     float32(border) + (availW-cell*float32(grid.Width()))/2,
		offY:     float32(border) + (availH-cell*float32(grid.Height()))/2,
		cell:     cell,
		tileSize: grid.TileSize(),
	}
}

// toScreen converts a world X/Z position to screen pixels.
func (v viewport) toScreen(x, z float64) (float32, float32) {
	return v.offX + float32(x/v.tileSize)*v.cell, v.offY + float32(z/v.tileSize)*v.cell
}

func (g *Game) drawMaze(screen *ebiten.Image) {
	v := g.view
	for z := 0; z < g.grid.Height(); z++ {
		for x := 0; x < g.grid.Width(); x++ {
			if !g.grid.IsWall(x, z) {
				continue
			}
			px := v.offX + float32(x)*v.cell
			py := v.offY + float32(z)*v.cell
			vector.FillRect(screen, px, py, v.cell, v.cell, colWall, false)
			vector.StrokeRect(screen, px+0.5, py+0.5, v.cell-1, v.cell-1, 1.0, colWallEdge, false)
		}
	}

	// Mark open tiles on a wrapping edge so tunnels are visible.
	if g.grid.Wraps(level.AxisX) {
		for z := 0; z < g.grid.Height(); z++ {
			for _, x := range []int{0, g.grid.Width() - 1} {
				if !g.grid.IsWall(x, z) {
					px := v.offX + float32(x)*v.cell
					if x > 0 {
						px += v.cell - 2
					}
					vector.FillRect(screen, px, v.offY+float32(z)*v.cell, 2, v.cell, colWrap, false)
				}
			}
		}
	}
	if g.grid.Wraps(level.AxisZ) {
		for x := 0; x < g.grid.Width(); x++ {
			for _, z := range []int{0, g.grid.Height() - 1} {
				if !g.grid.IsWall(x, z) {
					py := v.offY + float32(z)*v.cell
					if z > 0 {
						py += v.cell - 2
					}
					vector.FillRect(screen, v.offX+float32(x)*v.cell, py, v.cell, 2, colWrap, false)
				}
			}
		}
	}
}

func (g *Game) drawCollectibles(screen *ebiten.Image, snap maze.Snapshot) {
	r := max(g.view.cell*0.12, 1.5)
	for _, c := range snap.Collectibles {
		x, y := g.view.toScreen(c.X, c.Z)
		vector.FillCircle(screen, x, y, r, colPellet, true)
	}
}

func (g *Game) drawAgents(screen *ebiten.Image, snap maze.Snapshot) {
	r := g.view.cell * 0.4
	for i, a := range snap.Agents {
		x, y := g.view.toScreen(a.Pos.X, a.Pos.Z)
		vector.FillCircle(screen, x, y, r, agentColors[i%len(agentColors)], true)
		if a.State == maze.AgentStuck {
			vector.StrokeCircle(screen, x, y, r+2, 1.5, colAlert, true)
			continue
		}
		dv := a.Dir.Vector()
		vector.StrokeLine(screen, x, y, x+float32(dv.X)*r*1.4, y+float32(dv.Z)*r*1.4, 2.0, colornames.White, true)
	}
}

func (g *Game) drawPlayer(screen *ebiten.Image, snap maze.Snapshot) {
	p := snap.Player
	x, y := g.view.toScreen(p.Pos.X, p.Pos.Z)
	r := g.view.cell * 0.35

	// Catch radius ring.
	catch := float32(g.cfg.Agents.CatchRadius/g.view.tileSize) * g.view.cell
	vector.StrokeCircle(screen, x, y, catch, 1.0, color.RGBA{R: 255, G: 215, B: 0, A: 60}, true)

	vector.FillCircle(screen, x, y, r, colPlayer, true)
	yaw := p.Yaw * math.Pi / 180
	fx := float32(math.Cos(yaw)) * g.view.cell * 0.8
	fz := float32(math.Sin(yaw)) * g.view.cell * 0.8
	vector.StrokeLine(screen, x, y, x+fx, y+fz, 2.0, colPlayer, true)
}

func (g *Game) drawHUD(screen *ebiten.Image, snap maze.Snapshot) {
	state := "RUNNING"
	switch {
	case snap.Caught:
		state = "CAUGHT by " + snap.CaughtBy
	case snap.Cleared:
		state = "CLEARED"
	case g.paused:
		state = "PAUSED"
	}
	look := "off"
	if g.mouseLook {
		look = "on"
	}

	lines := []string{
		fmt.Sprintf("%s  tick %d  seed %d", state, snap.Tick, g.seed),
		fmt.Sprintf("pellets %d left, %d eaten", snap.Remaining, snap.Eaten),
		fmt.Sprintf("WASD/arrows move  Q/E turn  RMB mouse look [%s]", look),
		"P pause  R restart  H hud  F1 copy report",
	}
	if g.statusT > 0 && g.status != "" {
		lines = append(lines, g.status)
	}

	const lineH = 14
	const charW = 6
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	bx, by := float32(4), float32(4)
	vector.FillRect(screen, bx, by, float32(maxLen*charW+10), float32(len(lines)*lineH+6), colHUD, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(bx)+5, int(by)+3+i*lineH)
	}
}
