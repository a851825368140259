package maze

import (
	"math"

	"github.com/Garsondee/Pellet-Maze/internal/geom"
	"github.com/Garsondee/Pellet-Maze/internal/level"
)

const (
	pitchLimit   = 89.0 // degrees; keeps the view off the vertical singularity
	playerHeight = 1.0
)

var worldUp = geom.V3(0, 1, 0)

// Keys is the set of movement keys held during a frame.
type Keys uint8

const (
	KeyForward Keys = 1 << iota
	KeyBack
	KeyLeft
	KeyRight
)

// Has reports whether every key in k2 is held.
func (k Keys) Has(k2 Keys) bool { return k&k2 == k2 }

// PlayerConfig holds the player's motion tuning.
type PlayerConfig struct {
	MoveSpeed  float64 // world units per second
	TurnSpeed  float64 // degrees per unit of look delta
	StartYaw   float64 // degrees
	StartPitch float64 // degrees
}

// DefaultPlayerConfig mirrors the classic camera tuning.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{MoveSpeed: 4.0, TurnSpeed: 0.03}
}

// Player is the first-person walker. Orientation vectors are derived from yaw and
// pitch and recomputed whenever either changes.
type Player struct {
	grid *level.Grid
	cfg  PlayerConfig

	pos   geom.Vec3
	yaw   float64
	pitch float64

	front geom.Vec3
	right geom.Vec3
	up    geom.Vec3
}

// NewPlayer places a player at the centre of the grid's start tile.
func NewPlayer(grid *level.Grid, cfg PlayerConfig) *Player {
	start := grid.StartTile()
	p := &Player{
		grid:  grid,
		cfg:   cfg,
		pos:   grid.TileCenter(start.X, start.Z, playerHeight),
		yaw:   cfg.StartYaw,
		pitch: clampPitch(cfg.StartPitch),
	}
	p.updateVectors()
	return p
}

func (p *Player) Position() geom.Vec3 { return p.pos }
func (p *Player) Yaw() float64 { return p.yaw }
func (p *Player) Pitch() float64 { return p.pitch }
func (p *Player) Front() geom.Vec3 { return p.front }
func (p *Player) Right() geom.Vec3 { return p.right }
func (p *Player) Up() geom.Vec3 { return p.up }

// SetPosition moves the player without any collision check. Used by tests and replays.
func (p *Player) SetPosition(pos geom.Vec3) { p.pos = pos }

// ApplyInput moves the player for each held key. Every key is validated on its own,
// so diagonal motion is the sum of independently collision-checked moves.
// It returns true if at least one move was rejected by a wall.
func (p *Player) ApplyInput(keys Keys, dt float64) (blocked bool) {
	speed := p.cfg.MoveSpeed * dt
	moves := [...]struct {
		key Keys
		dir geom.Vec3
	}{
		{KeyForward, p.front},
		{KeyBack, p.front.Neg()},
		{KeyLeft, p.right.Neg()},
		{KeyRight, p.right},
	}
	for _, m := range moves {
		if !keys.Has(m.key) {
			continue
		}
		if WouldCollide(p.grid, p.pos, m.dir, speed) {
			blocked = true
			continue
		}
		p.pos = p.pos.Add(m.dir.Scale(speed))
	}
	return blocked
}

// ApplyEdgeWrap teleports the player across any wrapping edge it has crossed.
func (p *Player) ApplyEdgeWrap() []level.Axis {
	var wrapped []level.Axis
	p.pos, wrapped = applyWrap(p.grid, p.pos, PlayerWrap)
	return wrapped
}

// ApplyLook turns the view by the look delta scaled by turnSpeed.
func (p *Player) ApplyLook(dx, dy, turnSpeed float64) {
	if dx == 0 && dy == 0 {
		return
	}
	p.yaw += dx * turnSpeed
	p.pitch = clampPitch(p.pitch + dy*turnSpeed)
	p.updateVectors()
}

// updateVectors derives front/right/up from yaw and pitch. front.y stays 0 so
// movement is planar.
func (p *Player) updateVectors() {
	yaw := p.yaw * math.Pi / 180
	pitch := p.pitch * math.Pi / 180
	p.front = geom.V3(
		math.Cos(yaw)*math.Cos(pitch),
		0,
		math.Sin(yaw)*math.Cos(pitch),
	).Normalize()
	p.right = p.front.Cross(worldUp).Normalize()
	p.up = p.right.Cross(p.front).Normalize()
}

func clampPitch(v float64) float64 {
	return math.Max(-pitchLimit, math.Min(pitchLimit, v))
}

// LookAccumulator gathers look deltas between frames. Take returns the total and
// resets it, so each delta is applied exactly once.
type LookAccumulator struct {
	dx, dy float64
}

// Add accumulates one raw look delta.
func (a *LookAccumulator) Add(dx, dy float64) {
	a.dx += dx
	a.dy += dy
}

// Take returns the accumulated delta and zeroes it.
func (a *LookAccumulator) Take() (dx, dy float64) {
	dx, dy = a.dx, a.dy
	a.dx, a.dy = 0, 0
	return dx, dy
}
