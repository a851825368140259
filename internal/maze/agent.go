package maze

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/Garsondee/Pellet-Maze/internal/geom"
	"github.com/Garsondee/Pellet-Maze/internal/level"
)

// ErrNoSpawnTile is returned when a grid has no open, unreserved tile to spawn an agent on.
var ErrNoSpawnTile = errors.New("maze: no eligible agent spawn tile")

// AgentState is the agent's movement state.
type AgentState int

const (
	AgentMovingStraight  AgentState = iota // travelling in a fixed direction
	AgentAtDecisionPoint                   // just entered a new tile, choosing a heading
	AgentStuck                             // no legal heading; re-evaluated every frame
)

func (s AgentState) String() string {
	switch s {
	case AgentMovingStraight:
		return "moving"
	case AgentAtDecisionPoint:
		return "deciding"
	case AgentStuck:
		return "stuck"
	default:
		return "unknown"
	}
}

// AgentConfig holds per-agent motion tuning.
type AgentConfig struct {
	SpeedScale   float64 // world units per second along the heading
	MaxFrameTime float64 // frame times above this are replaced by ClampedFrame
	ClampedFrame float64
	CornerOffset float64 // world units applied before flooring the decision tile
	Height       float64 // y of the agent's position
	Bias         int     // pursuit happens with probability 1/Bias; <=0 means id+1
}

// DefaultAgentConfig mirrors the classic ghost tuning.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		SpeedScale:   2.0,
		MaxFrameTime: 0.03,
		ClampedFrame: 0.02,
		CornerOffset: 0.9,
		Height:       0.5,
	}
}

// AgentReport describes what happened to an agent during one Update.
type AgentReport struct {
	Tile     level.Tile // decision tile after the update
	Decided  bool       // a new heading was computed this frame
	Pursued  bool       // the heading came from pursuit, not the random fallback
	Turned   bool       // the heading changed
	From, To Direction
	Stuck    bool // entered AgentStuck this frame
	Unstuck  bool // left AgentStuck this frame
	Refused  bool // the motion guard refused a step into a wall
	Wrapped  []level.Axis
}

// Agent is an autonomous chaser. It moves in straight lines and picks a new heading
// only when it enters a new tile that offers a choice.
type Agent struct {
	id    int
	label string
	grid  *level.Grid
	rng   *rand.Rand
	cfg   AgentConfig

	pos   geom.Vec3
	dir   Direction
	bias  int
	state AgentState

	lastTile level.Tile
}

// NewAgent spawns an agent on a random open, unreserved tile with a random legal heading.
// The rng is shared with the rest of the session; agents never seed their own.
func NewAgent(id int, grid *level.Grid, rng *rand.Rand, cfg AgentConfig) (*Agent, error) {
	var spawns []level.Tile
	for _, t := range grid.OpenTiles() {
		if !grid.IsReservedRow(t.Z) {
			spawns = append(spawns, t)
		}
	}
	if len(spawns) == 0 {
		return nil, ErrNoSpawnTile
	}
	return NewAgentAt(id, grid, rng, cfg, spawns[rng.Intn(len(spawns))])
}

// NewAgentAt spawns an agent at the centre of tile with a random legal heading.
func NewAgentAt(id int, grid *level.Grid, rng *rand.Rand, cfg AgentConfig, tile level.Tile) (*Agent, error) {
	if !grid.InBounds(tile.X, tile.Z) || grid.IsWall(tile.X, tile.Z) {
		return nil, fmt.Errorf("maze: agent %d spawn tile (%d,%d) is not walkable", id, tile.X, tile.Z)
	}
	bias := cfg.Bias
	if bias <= 0 {
		bias = id + 1
	}
	a := &Agent{
		id:       id,
		label:    fmt.Sprintf("A%d", id),
		grid:     grid,
		rng:      rng,
		cfg:      cfg,
		pos:      grid.TileCenter(tile.X, tile.Z, cfg.Height),
		bias:     bias,
		lastTile: tile,
	}
	if legal := a.legalDirections(); len(legal) > 0 {
		a.dir = legal[rng.Intn(len(legal))]
		a.state = AgentMovingStraight
	} else {
		a.state = AgentStuck
	}
	return a, nil
}

func (a *Agent) ID() int { return a.id }
func (a *Agent) Label() string { return a.label }
func (a *Agent) Position() geom.Vec3 { return a.pos }
func (a *Agent) Direction() Direction { return a.dir }
func (a *Agent) State() AgentState { return a.state }
func (a *Agent) Bias() int { return a.bias }
func (a *Agent) DecisionTile() level.Tile { return a.decisionTile() }

// Update advances the agent by dt seconds and re-plans at tile boundaries. target is
// the position pursuit steers toward, normally the player's position this frame.
func (a *Agent) Update(dt float64, target geom.Vec3) AgentReport {
	if dt > a.cfg.MaxFrameTime {
		dt = a.cfg.ClampedFrame
	}
	rep := AgentReport{From: a.dir, To: a.dir}

	if a.state == AgentStuck {
		a.decide(target, &rep)
		if a.state == AgentStuck {
			rep.Tile = a.decisionTile()
			return rep
		}
		rep.Unstuck = true
	}

	next := a.pos.Add(a.dir.Vector().Scale(dt * a.cfg.SpeedScale))
	if InWall(a.grid, next) {
		rep.Refused = true
		a.decide(target, &rep)
		rep.Tile = a.decisionTile()
		return rep
	}
	a.pos = next

	tile := a.decisionTile()
	if tile != a.lastTile {
		a.lastTile = tile
		a.state = AgentAtDecisionPoint
		if a.isJunction() || !a.CanMove(a.dir) {
			a.decide(target, &rep)
		}
		if a.state == AgentAtDecisionPoint {
			a.state = AgentMovingStraight
		}
	}

	a.pos, rep.Wrapped = applyWrap(a.grid, a.pos, AgentWrap)
	rep.Tile = a.decisionTile()
	return rep
}

// decide picks a heading from the current decision tile and records the outcome in rep.
func (a *Agent) decide(target geom.Vec3, rep *AgentReport) {
	d, pursued := a.chooseDirection(target)
	rep.Decided = true
	if d == DirNone {
		if a.state != AgentStuck {
			rep.Stuck = true
		}
		a.state = AgentStuck
		return
	}
	rep.Pursued = pursued
	if d != a.dir {
		rep.Turned = true
		a.turn(d)
	}
	rep.To = d
	if a.state == AgentStuck {
		a.state = AgentMovingStraight
	}
}

// turn sets a new heading and centres the agent on the cross axis so it travels
// down the middle of the corridor.
func (a *Agent) turn(d Direction) {
	if d.Vertical() && !a.dir.Vertical() {
		t := a.decisionTile()
		a.pos.X = a.grid.TileCenter(t.X, t.Z, 0).X
	} else if d.Horizontal() && !a.dir.Horizontal() {
		t := a.decisionTile()
		a.pos.Z = a.grid.TileCenter(t.X, t.Z, 0).Z
	}
	a.dir = d
}

// chooseDirection runs biased pursuit and falls back to a uniform random legal heading.
// It returns DirNone only when the agent is boxed in.
func (a *Agent) chooseDirection(target geom.Vec3) (Direction, bool) {
	if a.rng.Intn(a.bias) == 0 {
		if d := a.pursue(target); d != DirNone {
			return d, true
		}
	}
	legal := a.legalDirections()
	if len(legal) == 0 {
		return DirNone, false
	}
	return legal[a.rng.Intn(len(legal))], false
}

// pursue returns the legal heading that closes the larger axis gap to target, falling
// back to the other axis. Ties favour the Z axis.
func (a *Agent) pursue(target geom.Vec3) Direction {
	zDir, xDir := DirNone, DirNone
	if a.pos.Z > target.Z {
		if a.CanMove(DirNorth) {
			zDir = DirNorth
		}
	} else if a.CanMove(DirSouth) {
		zDir = DirSouth
	}
	if a.pos.X > target.X {
		if a.CanMove(DirWest) {
			xDir = DirWest
		}
	} else if a.CanMove(DirEast) {
		xDir = DirEast
	}

	primary, secondary := xDir, zDir
	if math.Abs(target.Z-a.pos.Z) >= math.Abs(target.X-a.pos.X) {
		primary, secondary = zDir, xDir
	}
	if primary != DirNone {
		return primary
	}
	return secondary
}

func (a *Agent) legalDirections() []Direction {
	legal := make([]Direction, 0, len(cardinals))
	for _, d := range cardinals {
		if a.CanMove(d) {
			legal = append(legal, d)
		}
	}
	return legal
}

// isJunction reports whether the decision tile offers a turn: an L, T or cross shape
// rather than a straight corridor.
func (a *Agent) isJunction() bool {
	n, s := a.CanMove(DirNorth), a.CanMove(DirSouth)
	side := a.CanMove(DirEast) || a.CanMove(DirWest)
	return (n && side) || (s && side)
}

// CanMove reports whether the neighbour of the decision tile in direction d is walkable.
// On a wrapping axis the neighbour index wraps to the opposite edge.
func (a *Agent) CanMove(d Direction) bool {
	if d == DirNone {
		return false
	}
	return neighbourWalkable(a.grid, a.decisionTile(), d)
}

// decisionTile floors the position after shifting it back along the heading, so the
// tile changes shortly before the agent reaches a tile centre and it can turn
// without clipping corners.
func (a *Agent) decisionTile() level.Tile {
	x, z := a.pos.X, a.pos.Z
	switch a.dir {
	case DirWest:
		x += a.cfg.CornerOffset
	case DirEast:
		x -= a.cfg.CornerOffset
	case DirNorth:
		z += a.cfg.CornerOffset
	case DirSouth:
		z -= a.cfg.CornerOffset
	}
	ts := a.grid.TileSize()
	return level.Tile{X: floorDiv(x, ts), Z: floorDiv(z, ts)}
}

// CheckProximity reports whether other is strictly within radius of the agent on the X/Z plane.
func (a *Agent) CheckProximity(other geom.Vec3, radius float64) bool {
	return planarClose(a.pos, other, radius)
}

func neighbourWalkable(grid *level.Grid, t level.Tile, d Direction) bool {
	dx, dz := d.Step()
	nx, nz := t.X+dx, t.Z+dz
	if grid.Wraps(level.AxisX) {
		nx = mod(nx, grid.Width())
	}
	if grid.Wraps(level.AxisZ) {
		nz = mod(nz, grid.Height())
	}
	if !grid.InBounds(nx, nz) {
		return false
	}
	return !grid.IsWall(nx, nz)
}

func mod(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
